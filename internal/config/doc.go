// Package config manages the user settings stored at ~/.nvmd/setting.json.
// It provides the default template, loading through viper (defaults, the
// JSON file and NVMD_* environment overrides), and typed access to single
// keys for the settings command.
package config
