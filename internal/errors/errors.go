package errors

import "errors"

// Environment errors indicate the host cannot provide what the persistence layer needs.
var (
	// ErrEnvironmentUnavailable indicates the user home directory could not be resolved.
	ErrEnvironmentUnavailable = errors.New("home directory is unavailable")
)

// Migration errors.
var (
	// ErrMigrationStepFailed indicates a schema migration step aborted.
	// The version marker is left at its previous value.
	ErrMigrationStepFailed = errors.New("migration step failed")
)

// Exchange errors indicate failures while exporting or importing configuration.
var (
	// ErrImportSourceInvalid indicates the chosen import source cannot be read
	// as a local configuration snapshot (remote URL, schema violation).
	ErrImportSourceInvalid = errors.New("unsupported import source")

	// ErrInvalidSnapshot indicates the snapshot file is not valid JSON.
	ErrInvalidSnapshot = errors.New("configuration snapshot is malformed")

	// ErrSyncFailed indicates a project version could not be synced during import.
	ErrSyncFailed = errors.New("project version sync failed")
)

// Store and project errors.
var (
	// ErrStaleDraft indicates a draft was committed after another commit
	// changed the store it was taken from.
	ErrStaleDraft = errors.New("draft is based on a stale revision")

	// ErrInvalidVersion indicates a node version string is empty or not a version.
	ErrInvalidVersion = errors.New("invalid node version")
)
