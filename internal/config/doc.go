// Package config loads and validates the keypad's startup configuration.
//
// Configuration is read once at startup and is immutable for the life of
// the process. Two layout formats share one validation path:
//
//   - TOML files: a [pad] table for grid geometry and transport settings,
//     plus [[slot]] entries binding individual keys
//   - Lua scripts: a sandboxed script returning the same structure, for
//     layouts that want to generate bindings programmatically
//
// Validation is fatal: a pad must refuse to start with a contradictory
// layout rather than run with undefined behavior. All slot problems are
// collected into one ConfigError so a bad file is reported in a single
// pass.
//
// # Example
//
//	[pad]
//	rows = 4
//	cols = 4
//	common = ["gui"]
//
//	[[slot]]
//	index = 0
//	mode = "group"
//	group = "scene"
//	hue = "red"
//	on = ["ctrl", "f13"]
package config
