package core

import "pressfw/config"

// TransitionPolicy decides which signal, if any, the mode state machine
// receives on a main loop iteration. delta is the number of presses seen
// since the previous call; it is zero on iterations where nothing changed.
type TransitionPolicy interface {
	Evaluate(now, delta uint32, mode SystemMode) Signal
}

// ActivityPolicy derives signals from press timing:
//   - standalone: ActivityPresses presses no more than ActivityWindowMS apart
//     from first to last is sustained activity
//   - continuous: InactivityTimeoutMS without a press is an inactivity timeout
//   - sleep: any press is an edge
type ActivityPolicy struct {
	window  uint32
	timeout uint32

	started   bool
	lastPress uint32

	// stamps is a ring of the latest press times. Once full, the entry at
	// head is the oldest of the last len(stamps) presses.
	stamps []uint32
	head   int
	filled int
}

// NewActivityPolicy builds a policy from cfg.
func NewActivityPolicy(cfg *config.Config) *ActivityPolicy {
	n := cfg.ActivityPresses
	if n == 0 {
		n = 1
	}
	return &ActivityPolicy{
		window:  cfg.ActivityWindowMS,
		timeout: cfg.InactivityTimeoutMS,
		stamps:  make([]uint32, n),
	}
}

// Evaluate implements TransitionPolicy.
func (p *ActivityPolicy) Evaluate(now, delta uint32, mode SystemMode) Signal {
	if !p.started {
		p.started = true
		p.lastPress = now
	}

	if delta > 0 {
		p.lastPress = now
		// Presses folded into one observation all get this poll's time.
		for i := uint32(0); i < delta && int(i) < len(p.stamps); i++ {
			p.stamps[p.head] = now
			p.head = (p.head + 1) % len(p.stamps)
			if p.filled < len(p.stamps) {
				p.filled++
			}
		}
	}

	var sig Signal
	switch mode {
	case ModeSleep:
		if delta > 0 {
			sig = SignalEdge
		}
	case ModeStandalone:
		if p.sustained(now) {
			sig = SignalSustainedActivity
		}
	case ModeContinuous:
		if delta == 0 && Elapsed(p.lastPress, now) >= p.timeout {
			sig = SignalInactivityTimeout
		}
	}

	if sig != SignalNone {
		p.filled = 0
	}
	return sig
}

// sustained reports whether the last len(stamps) presses all fall inside
// one window ending now.
func (p *ActivityPolicy) sustained(now uint32) bool {
	if p.filled < len(p.stamps) {
		return false
	}
	return Elapsed(p.stamps[p.head], now) <= p.window
}
