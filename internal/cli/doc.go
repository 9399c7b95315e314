// Package cli defines the Cobra command tree for the nvmd CLI. Each file
// registers one top-level command (migrate, config, settings, project,
// version) with the root command. Commands delegate to internal packages for
// the work and only handle flag parsing, output formatting and prompting.
//
// The root command builds one session per invocation: resolved paths, the
// logger, the app handle and, on first use, the live state. Every command
// except migrate and version also starts the schema migration in the
// background; Execute waits for it before returning.
package cli
