// Package cmd implements the asciimath subcommands.
//
// Every command receives the parsed [Globals], which turn the --var and
// --defs flags into the [lang.Scope] that expressions are evaluated in.
package cmd

var (
	// CacheIdentifier is the kong variable holding the path to the runtime
	// cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the path to the
	// configuration file. It is also the top-level key read from that file.
	ConfigIdentifier = "config"
)
