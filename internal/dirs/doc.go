// Package dirs resolves the canonical locations of nvmd's persisted state.
//
// Everything lives under a single home root (~/.nvmd, or $NVMD_HOME):
//
//	setting.json    settings object
//	projects.json   project list store
//	groups.json     group list store
//	migration       schema version marker (plain-text integer)
//	bin/            dispatcher binary and node/npm/npx/corepack shims
//	default         default node version
//	versions.json   cached remote version list
//	versions/       default install directory
//
// Paths is immutable; the only side effect in this package is the lazy
// creation of the default install directory.
package dirs
