// Package profile wraps [github.com/pkg/profile] behind the "pprof" build
// tag.
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty, so
// callers can start and stop a profile unconditionally:
//
//	defer profile.Profiler{Mode: "cpu", Dir: dir}.Start().Stop()
//
// Build with profiling support and analyze the result with pprof:
//
//	go build -tags pprof .
//	asciimath --pprof-mode cpu eval '2^3^2'
//	go tool pprof -http=: cpu.pprof
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
