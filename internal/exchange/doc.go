// Package exchange exports the live configuration to a JSON snapshot and
// imports a snapshot back.
//
// An import validates the chosen file against the embedded snapshot schema,
// optionally writes each project's resolved node version into the project
// (sync), and only then commits the imported projects and groups. A sync
// failure aborts the import before anything is committed. Colors, settings
// and mirrors are not applied; they are handed back to the caller.
package exchange
