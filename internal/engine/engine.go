// Package engine talks to the external expression evaluation service.
// The service is stateless per call: it receives the full sheet text and an
// evaluation mode and returns one raw outcome per input line.
package engine

import (
	"context"
	"fmt"
)

// Mode selects the evaluation domain the engine interprets all lines under.
type Mode int

const (
	ModeFloat Mode = iota
	ModeComplex
	ModeUnits
)

func (m Mode) String() string {
	switch m {
	case ModeFloat:
		return "float"
	case ModeComplex:
		return "complex"
	case ModeUnits:
		return "units"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses the string form used in config and on the wire.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "float", "":
		return ModeFloat, nil
	case "complex":
		return ModeComplex, nil
	case "units":
		return ModeUnits, nil
	default:
		return ModeFloat, fmt.Errorf("unknown evaluation mode %q", s)
	}
}

// Evaluator evaluates a full sheet. Implementations must return one outcome
// per line of input, in line order, or a transport error.
type Evaluator interface {
	Evaluate(ctx context.Context, mode Mode, input string) ([]RawOutcome, error)
}
