package core

// SystemMode is the device's operating posture.
type SystemMode uint8

const (
	ModeSleep SystemMode = iota
	ModeStandalone
	ModeContinuous

	modeCount
)

// InitialMode is the mode every Store starts in.
const InitialMode = ModeStandalone

var modeNames = [modeCount]string{
	ModeSleep:      "sleep",
	ModeStandalone: "standalone",
	ModeContinuous: "continuous",
}

func (m SystemMode) String() string {
	if !m.Valid() {
		return "invalid"
	}
	return modeNames[m]
}

// Valid reports whether m is one of the defined modes.
func (m SystemMode) Valid() bool {
	return m < modeCount
}

// ParseMode converts a mode name as written by String.
func ParseMode(name string) (SystemMode, error) {
	for i, n := range modeNames {
		if n == name {
			return SystemMode(i), nil
		}
	}
	return 0, ErrInvalidMode
}

// Signal is an input to the mode state machine.
type Signal uint8

const (
	SignalNone Signal = iota
	SignalSustainedActivity
	SignalInactivityTimeout
	SignalEdge
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalSustainedActivity:
		return "sustained_activity"
	case SignalInactivityTimeout:
		return "inactivity_timeout"
	case SignalEdge:
		return "edge"
	}
	return "invalid"
}

// Transition returns the mode reached from m on signal s.
//
//	standalone --sustained_activity--> continuous
//	continuous --inactivity_timeout--> sleep
//	sleep      --edge--------------> standalone
//
// Every other combination leaves the mode unchanged.
func Transition(m SystemMode, s Signal) SystemMode {
	switch {
	case m == ModeStandalone && s == SignalSustainedActivity:
		return ModeContinuous
	case m == ModeContinuous && s == SignalInactivityTimeout:
		return ModeSleep
	case m == ModeSleep && s == SignalEdge:
		return ModeStandalone
	}
	return m
}
