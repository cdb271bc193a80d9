// Package config loads Greenhouse's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/greenhouse/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # File Format
//
//	log_file  = "~/.local/state/greenhouse/greenhouse.log"
//	log_debug = false
//	view      = "list"        # or "table"
//	theme     = "Nightfox"
//
//	[[sidebar]]
//	name = "Asparagus Fern"
//
//	[[grouped]]
//	name     = "English Ivy"
//	favorite = true
//
// The sidebar and grouped tables are the record source for the item store.
// When a table is absent the three default plants are used. Plant names
// are trimmed and blank entries are skipped.
//
// # Errors
//
// A missing file is not an error. Unreadable files and TOML syntax errors
// are returned wrapped ("open config", "read config", "parse config") and
// stop startup.
package config
