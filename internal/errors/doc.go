// Package errors provides sentinel error values for nvmd's persistence layer.
//
// Callers match conditions with errors.Is rather than by string:
//
//	res, err := ex.ImportFile(ctx, path, true)
//	if errors.Is(err, nerrors.ErrSyncFailed) {
//	    // one of the projects could not be pinned; nothing was committed
//	}
//
// Internal packages wrap these with context:
//
//	return fmt.Errorf("step %s: %w", step.Name, nerrors.ErrMigrationStepFailed)
//
// Two conditions of the persistence layer are deliberately not errors: an
// unreadable migration marker is treated as schema version 0, and a cancelled
// file picker yields an empty import result.
package errors
