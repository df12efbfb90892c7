package core

// Clock returns a free-running millisecond tick count. It wraps at 2^32;
// compare readings with wrapping subtraction only.
type Clock func() uint32

// Elapsed returns the ticks from since to now, correct across one wrap.
func Elapsed(since, now uint32) uint32 {
	return now - since
}
