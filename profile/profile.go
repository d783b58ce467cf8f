package profile

// Profiler selects a profiling mode and where its output is written.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Dir   string // output directory; empty uses the pkg/profile default
	Quiet bool
}

// Stopper stops a running profile and flushes its output.
type Stopper interface{ Stop() }

// Start begins profiling and returns a [Stopper] that ends it.
//
// Without the pprof build tag, or with an empty or unknown Mode, Start
// returns a no-op. Both Start and Stop are always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether the binary was built with profiling support.
func Enabled() bool { return len(Modes()) > 0 }

type ignore struct{}

func (ignore) Stop() {}
