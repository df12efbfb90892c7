package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// EdgeEvent is one recorded button edge, kept for post-mortem analysis.
type EdgeEvent struct {
	Count uint32 // Counter value after the edge
	Clock uint32 // Clock reading when the ISR ran
}

const (
	EdgeRingSize = 16 // Keep the last 16 edges for the fault dump
)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether debug output is active.
	// Off by default: formatting a line allocates and the loop is hot.
	debugEnabled bool

	// faultWrite receives fault reports. It takes a byte slice so the fault
	// path never has to build a string.
	faultWrite func([]byte)

	// Edge ring buffer, written by the ISR under the critical section and
	// read without locking by the fault handler.
	edgeRing     [EdgeRingSize]EdgeEvent
	edgeRingHead uint8
	edgeClock    Clock
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(s string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled {
		debugPrintln(msg)
	}
}

// SetFaultWriter sets where fault reports go. nil drops them; the halt
// happens either way.
func SetFaultWriter(w func([]byte)) {
	faultWrite = w
}

// SetEdgeClock sets the clock stamped on recorded edges. Without one, edges
// are stamped zero.
func SetEdgeClock(c Clock) {
	edgeClock = c
}

// recordEdge stores an edge in the ring. Callers hold the critical section.
func recordEdge(count uint32) {
	var now uint32
	if edgeClock != nil {
		now = edgeClock()
	}
	idx := edgeRingHead
	edgeRing[idx] = EdgeEvent{Count: count, Clock: now}
	edgeRingHead = (idx + 1) % EdgeRingSize
}

// RecentEdges copies the recorded edges, oldest first, into dst and returns
// the filled part.
func RecentEdges(dst []EdgeEvent) []EdgeEvent {
	dst = dst[:0]
	Critical(func(cs CS) {
		dst = appendEdges(dst)
	})
	return dst
}

func appendEdges(dst []EdgeEvent) []EdgeEvent {
	start := edgeRingHead
	for i := uint8(0); i < EdgeRingSize; i++ {
		evt := edgeRing[(start+i)%EdgeRingSize]
		if evt.Count == 0 && evt.Clock == 0 {
			continue // Empty slot
		}
		dst = append(dst, evt)
	}
	return dst
}

// ClearEdgeRing empties the edge ring.
func ClearEdgeRing() {
	Critical(func(cs CS) {
		for i := range edgeRing {
			edgeRing[i] = EdgeEvent{}
		}
		edgeRingHead = 0
	})
}

// dumpEdgeRing writes the ring through the fault writer using buf as
// scratch. It reads the ring without a critical section: the fault may have
// hit while one was held.
func dumpEdgeRing(buf []byte) {
	if faultWrite == nil {
		return
	}
	start := edgeRingHead % EdgeRingSize
	for i := uint8(0); i < EdgeRingSize; i++ {
		evt := &edgeRing[(start+i)%EdgeRingSize]
		if evt.Count == 0 && evt.Clock == 0 {
			continue
		}
		b := append(buf[:0], "edge count="...)
		b = appendUint(b, evt.Count)
		b = append(b, " clock="...)
		b = appendUint(b, evt.Clock)
		b = append(b, '\n')
		faultWrite(b)
	}
}
