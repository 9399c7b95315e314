// Package logging provides the leveled logger used across nvmd.
//
// Every message carries a target (for example "app" or "migrate") so output
// from the detached schema migration can be told apart from command output.
//
// # Verbosity
//
//   - Errors and warnings are always written to Err.
//   - Info messages need Verbose or Debug.
//   - Debug messages need Debug.
//
// The zero value writes to os.Stdout and os.Stderr with target "app".
//
//	log := logging.Logger{Verbose: verbose, Debug: debug}
//	log.WithTarget("migrate").Errorf("copy failed: %v", err)
package logging
