// Package platform provides the host-dependent filesystem operations behind
// the schema migration: materializing the dispatcher shims for node, npm, npx
// and corepack, plus symlink, copy and permission helpers.
//
// Shim layout is a capability interface with two implementations.
// LinkShims copies one dispatcher and symlinks every other name to it;
// CopyShims copies the dispatcher once per name and adds .cmd wrappers, for
// hosts without usable symlinks. NewShims picks one from runtime.GOOS, but
// both compile everywhere.
package platform
