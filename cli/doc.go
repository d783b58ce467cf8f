// Package cli contains the command line interface for asciimath.
//
// # Usage
//
// With no command, arguments are evaluated as expressions:
//
//	asciimath '3 + 4 * 2 / (1 - 5)^2^3'
//	asciimath --var r=2 '2r^2'
//	asciimath --defs consts.yaml 'sqrt(2h/g)'
//
// Other commands format expressions, start an interactive session, or write
// the configuration file:
//
//	asciimath fmt json 'max(1, x)'
//	asciimath repl
//	asciimath init --force
//
// # Configuration
//
// Flag values are read from the "config" mapping of config.yaml in the
// configuration directory, then overridden by the command line:
//
//	config:
//	  log-level: debug
//	  var:
//	    - g=9.80665
//
// Definition files named by --defs are looked up in the working directory,
// then the configuration directory, then each directory in ASCIIMATH_PATH.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout, a layout name, or none
//   - --log-caller: include caller information
//   - --log-pretty: colorize output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: profile to collect (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: output directory
package cli
