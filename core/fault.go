package core

import "sync/atomic"

// FaultContext is the register snapshot handed to the fault handler, plus a
// short reason. TinyGo does not pass the hardware exception frame to Go code,
// so on real targets the registers are zero and only Reason is set; the
// simulation fills them to exercise the report format.
type FaultContext struct {
	Reason string

	R0, R1, R2, R3 uint32
	R12            uint32
	LR             uint32
	PC             uint32
	XPSR           uint32
}

func (f *FaultContext) Error() string {
	return "fault: " + f.Reason
}

// maxReasonLen bounds the quoted reason so the whole fault line, with its
// three registers, fits in faultBuf.
const maxReasonLen = len(faultBuf) - len(`fault reason="" pc=0x00000000 lr=0x00000000 xpsr=0x00000000`+"\n")

var (
	haltFunc   = halt
	faultDepth atomic.Uint32
	faultCount atomic.Uint32

	// Static scratch for the fault report. The handler must not allocate.
	faultBuf [128]byte

	// panicFault carries the reason for panics that are not a FaultContext.
	panicFault FaultContext
)

// SetHaltFunc replaces the function that stops the machine after a fault.
// It must not return. nil restores the platform default.
func SetHaltFunc(fn func()) {
	if fn == nil {
		fn = halt
	}
	haltFunc = fn
}

// Faults returns how many times HandleFault has been entered.
func Faults() uint32 {
	return faultCount.Load()
}

// ResetFaults clears the fault counters. Simulations use it between runs.
func ResetFaults() {
	faultDepth.Store(0)
	faultCount.Store(0)
}

// HandleFault reports ctx through the fault writer, if any, and halts. It
// never returns. It does not read the store, which may be half-updated.
// A fault raised while a fault is being handled goes straight to halt.
func HandleFault(ctx *FaultContext) {
	faultCount.Add(1)
	if faultDepth.Add(1) == 1 && faultWrite != nil {
		reportFault(ctx)
		dumpEdgeRing(faultBuf[:])
	}
	haltFunc()
	for {
	}
}

func reportFault(ctx *FaultContext) {
	if ctx == nil {
		ctx = &panicFault
	}
	b := append(faultBuf[:0], "fault reason=\""...)
	b = appendQuotable(b, ctx.Reason, maxReasonLen)
	b = append(b, "\" pc="...)
	b = appendHex(b, ctx.PC)
	b = append(b, " lr="...)
	b = appendHex(b, ctx.LR)
	b = append(b, " xpsr="...)
	b = appendHex(b, ctx.XPSR)
	b = append(b, '\n')
	faultWrite(b)

	b = append(faultBuf[:0], "regs r0="...)
	b = appendHex(b, ctx.R0)
	b = append(b, " r1="...)
	b = appendHex(b, ctx.R1)
	b = append(b, " r2="...)
	b = appendHex(b, ctx.R2)
	b = append(b, " r3="...)
	b = appendHex(b, ctx.R3)
	b = append(b, " r12="...)
	b = appendHex(b, ctx.R12)
	b = append(b, '\n')
	faultWrite(b)
}

// Trap runs fn and sends any panic that escapes it to HandleFault. Targets
// wrap their main loop and interrupt bodies with it; critical sections
// inside fn have restored the interrupt state by the time the handler runs.
func Trap(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			HandleFault(faultFromPanic(r))
		}
	}()
	fn()
}

func faultFromPanic(r interface{}) *FaultContext {
	switch v := r.(type) {
	case *FaultContext:
		return v
	case string:
		panicFault.Reason = v
	case error:
		panicFault.Reason = v.Error()
	default:
		panicFault.Reason = "panic"
	}
	return &panicFault
}
