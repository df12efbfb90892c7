package core

// Output is a binary signal the main loop flips on every observed change,
// typically the board LED. It starts low.
type Output interface {
	Toggle()
	Get() bool
}

// ModeIndicator shows the system mode, e.g. on an RGB pixel.
type ModeIndicator interface {
	ShowMode(m SystemMode)
}

// Controller is the main control loop. It polls the press counter, flips
// the output when the counter changes and drives the mode state machine.
// It never blocks and touches shared state only through the store.
type Controller struct {
	store     *Store
	out       Output
	policy    TransitionPolicy
	indicator ModeIndicator
	clock     Clock

	last    uint32
	toggles uint32
	polls   uint32

	line [64]byte
}

// NewController wires a loop to its store, output and tick source. policy
// may be nil, in which case the mode never changes and clock may be nil too.
// A policy without a clock panics: its timeouts would never fire.
func NewController(store *Store, out Output, policy TransitionPolicy, clock Clock) *Controller {
	if policy != nil && clock == nil {
		panic("core: controller policy needs a clock")
	}
	return &Controller{
		store:  store,
		out:    out,
		policy: policy,
		clock:  clock,
	}
}

// SetIndicator attaches a mode indicator and shows the current mode on it.
func (c *Controller) SetIndicator(ind ModeIndicator) {
	c.indicator = ind
	if ind != nil {
		ind.ShowMode(c.store.Mode())
	}
}

// Start takes the current counter value as the baseline.
func (c *Controller) Start() {
	c.last = c.store.PressCount()
}

// Poll runs one loop iteration and reports whether the counter had changed.
// Count and mode are read together in a single critical section.
func (c *Controller) Poll() bool {
	c.polls++
	snap := c.store.Snapshot()
	delta := snap.Count - c.last
	changed := delta != 0

	if changed {
		c.out.Toggle()
		c.toggles++
		c.last = snap.Count
		c.logPress(snap)
	}

	if c.policy == nil {
		return changed
	}

	sig := c.policy.Evaluate(c.clock(), delta, snap.Mode)
	if sig == SignalNone {
		return changed
	}

	from, to := c.store.ApplySignal(sig)
	if from != to {
		c.logMode(from, to, snap.Count)
		if c.indicator != nil {
			c.indicator.ShowMode(to)
		}
	}
	return changed
}

// Run polls forever.
func (c *Controller) Run() {
	c.Start()
	for {
		c.Poll()
	}
}

// LastCount returns the counter value seen on the latest change.
func (c *Controller) LastCount() uint32 {
	return c.last
}

// Toggles returns how many times the output has been flipped.
func (c *Controller) Toggles() uint32 {
	return c.toggles
}

// Polls returns how many iterations have run.
func (c *Controller) Polls() uint32 {
	return c.polls
}

// Lines are only built with debug on; the string conversion allocates.
func (c *Controller) logPress(snap Snapshot) {
	if !IsDebugEnabled() {
		return
	}
	b := append(c.line[:0], "press count="...)
	b = appendUint(b, snap.Count)
	b = append(b, " mode="...)
	b = append(b, snap.Mode.String()...)
	DebugPrintln(string(b))
}

func (c *Controller) logMode(from, to SystemMode, count uint32) {
	if !IsDebugEnabled() {
		return
	}
	b := append(c.line[:0], "mode from="...)
	b = append(b, from.String()...)
	b = append(b, " to="...)
	b = append(b, to.String()...)
	b = append(b, " count="...)
	b = appendUint(b, count)
	DebugPrintln(string(b))
}
