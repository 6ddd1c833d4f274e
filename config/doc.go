// Package config holds the settings of the s7layout command.
//
// Settings come from Default, optionally overlaid by a TOML file:
//
//	format = "json"
//	strict = true
//	types = ["udt/motor.udt", "udt/valve.udt"]
//	log_level = "debug"
//
// Relative entries in types are resolved against the file's directory.
// Unknown keys are rejected.
package config
