package core

// mockButton records how the ISR drives a button handle.
type mockButton struct {
	pending bool
	stuck   bool
	checks  int
	clears  int
}

func (b *mockButton) CheckInterrupt() bool {
	b.checks++
	return b.pending
}

func (b *mockButton) ClearInterruptPending() {
	b.clears++
	if !b.stuck {
		b.pending = false
	}
}

// mockOutput is an Output that counts toggles.
type mockOutput struct {
	high    bool
	toggles int
}

func (o *mockOutput) Toggle() {
	o.high = !o.high
	o.toggles++
}

func (o *mockOutput) Get() bool {
	return o.high
}

// manualClock is a Clock the test advances by hand.
type manualClock struct {
	now uint32
}

func (c *manualClock) read() uint32 {
	return c.now
}

func (c *manualClock) advance(ms uint32) {
	c.now += ms
}
