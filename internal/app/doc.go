// Package app provides the orchestration layer for the Greenhouse application.
//
// # Overview
//
// This package wires together configuration, preferences, logging, the item
// store and the UI. It is the composition root: everything is built here and
// handed to ui.Run.
//
// # Startup
//
//  1. Load ~/.config/greenhouse/config.toml (missing file means defaults)
//  2. Load ~/.config/greenhouse/prefs.toml (any problem means defaults)
//  3. Open the rotating JSON log file
//  4. Seed the store's Sidebar and Grouped sections from the config
//  5. Start the TUI and block until the user exits or the context cancels
//
// # Precedence
//
// The starting view comes from the -table flag, then the saved preference,
// then the config. A theme written to the prefs file wins, even when it is
// the default; otherwise the config's theme applies.
//
// # Error Handling
//
// Config, log and store setup errors are returned from Run and end the
// process. Errors inside the UI are logged and never reach the terminal
// until the program exits.
package app
