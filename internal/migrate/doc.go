// Package migrate upgrades the on-disk layout under the home directory to
// the layout this build expects.
//
// The persisted schema version lives in the plain-text "migration" file. A
// missing or unreadable marker counts as version 0, a fresh install. Steps
// run in order, each gated on the persisted version:
//
//	bootstrap   version == 0       materialize the dispatcher and its shims
//	normalize   version < target   refresh the dispatcher to this build
//
// The marker is written once, after every applicable step succeeded, so a
// failed run is retried in full on the next start. Steps are idempotent.
//
// Start runs the migration detached from the caller. Failures are logged and,
// after a short delay that lets the window finish loading, reported to the
// window as the "app-migration-error" event.
package migrate
