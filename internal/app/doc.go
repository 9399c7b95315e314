// Package app holds the process-wide context that commands share: the Handle
// to the UI surfaces (window and tray) and the live State loaded from the
// home directory. Both are built once in the CLI root and passed explicitly.
package app
