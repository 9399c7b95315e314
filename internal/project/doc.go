// Package project defines the project and group records kept in
// projects.json and groups.json, and resolves a project's pinned version
// through the group indirection.
//
// A project's Version is either a literal node version ("20.9.0") or the
// name of a group; the group then carries the effective version. Resolve
// performs that lookup and SyncVersion writes the result into the project's
// own version file.
package project
