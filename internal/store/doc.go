// Package store holds live, file-backed configuration data behind a staged
// mutation protocol.
//
// Readers take copies with Latest. Writers take a Draft, stage changes on it
// and hand it back to Commit, which persists the staged data to disk first
// and only then swaps it in memory:
//
//	d := projects.Draft()
//	d.Replace(imported)
//	if err := projects.Commit(d); err != nil {
//	    // the previously committed list is untouched, in memory and on disk
//	}
//
// A Draft remembers the revision it was taken from. Committing a draft after
// another commit landed fails with ErrStaleDraft, so two writers cannot
// silently overwrite each other.
package store
