// Package monitor decodes the diagnostic lines a device writes on its debug
// UART and keeps a running summary.
//
// Lines are a kind word followed by key=value fields:
//
//	press count=5 mode=standalone
//	mode from=standalone to=continuous count=7
//	fault reason="busfault" pc=0x08001000 lr=0xfffffff9 xpsr=0x01000003
//	regs r0=0x00000000 r1=0x00000001 r2=0x20000100 r3=0x00000000 r12=0x00000000
//	edge count=4 clock=1200
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// Kind is the first word of a diagnostic line.
type Kind string

const (
	KindPress Kind = "press"
	KindMode  Kind = "mode"
	KindFault Kind = "fault"
	KindRegs  Kind = "regs"
	KindEdge  Kind = "edge"
)

var knownKinds = map[Kind]bool{
	KindPress: true,
	KindMode:  true,
	KindFault: true,
	KindRegs:  true,
	KindEdge:  true,
}

var (
	ErrEmptyLine   = errors.New("empty line")
	ErrUnknownKind = errors.New("unknown line kind")
	ErrBadField    = errors.New("malformed field")
)

// Event is one decoded line.
type Event struct {
	Kind   Kind
	Fields map[string]string
}

// Uint returns field key parsed as a decimal or 0x-prefixed number.
func (e Event) Uint(key string) (uint32, error) {
	v, ok := e.Fields[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	n, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return uint32(n), nil
}

// ParseLine decodes one line.
func ParseLine(line string) (Event, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return Event{}, fmt.Errorf("tokenize %q: %w", line, err)
	}
	if len(tokens) == 0 {
		return Event{}, ErrEmptyLine
	}

	ev := Event{Kind: Kind(tokens[0]), Fields: make(map[string]string, len(tokens)-1)}
	if !knownKinds[ev.Kind] {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownKind, tokens[0])
	}

	for _, tok := range tokens[1:] {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			return Event{}, fmt.Errorf("%w: %q", ErrBadField, tok)
		}
		ev.Fields[key] = value
	}
	return ev, nil
}

// Stats summarizes everything seen so far.
type Stats struct {
	Lines       int
	Malformed   int
	Presses     int    // press lines seen
	LastCount   uint32 // count on the latest press or mode line
	Coalesced   uint32 // presses folded into a later report
	Mode        string
	Transitions int
	Faults      int
	LastFault   string
}

// Monitor tracks device state from decoded events.
type Monitor struct {
	stats     Stats
	haveCount bool
}

// New returns a monitor that assumes the device just booted.
func New() *Monitor {
	return &Monitor{stats: Stats{Mode: "standalone"}}
}

// Handle folds ev into the summary.
func (m *Monitor) Handle(ev Event) {
	switch ev.Kind {
	case KindPress:
		count, err := ev.Uint("count")
		if err != nil {
			m.stats.Malformed++
			return
		}
		m.stats.Presses++
		if m.haveCount {
			// Counts wrap; a forward jump of more than one means the loop
			// saw several presses at once.
			if jump := count - m.stats.LastCount; jump > 1 {
				m.stats.Coalesced += jump - 1
			}
		}
		m.stats.LastCount = count
		m.haveCount = true
		if mode, ok := ev.Fields["mode"]; ok {
			m.stats.Mode = mode
		}
	case KindMode:
		if to, ok := ev.Fields["to"]; ok {
			m.stats.Mode = to
			m.stats.Transitions++
		}
		// A timeout transition carries the count without a press line.
		if count, err := ev.Uint("count"); err == nil {
			m.stats.LastCount = count
			m.haveCount = true
		}
	case KindFault:
		m.stats.Faults++
		m.stats.LastFault = ev.Fields["reason"]
	}
}

// Stats returns the current summary.
func (m *Monitor) Stats() Stats {
	return m.stats
}

// Run reads lines from r until EOF, decoding each and handing good events to
// fn (which may be nil). Undecodable lines are counted, not fatal.
func (m *Monitor) Run(r io.Reader, fn func(Event)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		m.stats.Lines++

		ev, err := ParseLine(line)
		if err != nil {
			m.stats.Malformed++
			continue
		}
		m.Handle(ev)
		if fn != nil {
			fn(ev)
		}
	}
	return scanner.Err()
}
