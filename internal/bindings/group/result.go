package group

import (
	"github.com/louisbranch/partybind/internal/world"
)

// Kind classifies the outcome of a binding call.
type Kind uint8

const (
	// KindOK means the binding ran and returns Values (possibly none).
	KindOK Kind = iota
	// KindSkip means the binding did nothing and returns nothing, silently.
	KindSkip
	// KindArgumentError means the caller passed a malformed argument.
	KindArgumentError
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindSkip:
		return "skip"
	case KindArgumentError:
		return "argument_error"
	default:
		return "unknown"
	}
}

// Roster is an ordered member list. Bridges expose it to scripts as a table
// keyed 1..len(Roster).
type Roster []world.Player

// Result is the value list a binding hands back to its dispatcher.
//
// Values holds only these kinds: bool, uint8, uint32, world.ObjectGuid,
// world.Player (nil when unresolved) and Roster.
type Result struct {
	Kind   Kind
	Values []any
	Err    error
}

// OK returns a successful result carrying values.
func OK(values ...any) Result {
	return Result{Kind: KindOK, Values: values}
}

// Skip returns an empty result for a call that was silently ignored.
func Skip() Result {
	return Result{Kind: KindSkip}
}

// Fail returns an argument error result.
func Fail(err error) Result {
	return Result{Kind: KindArgumentError, Err: err}
}

// Count is the number of values the script receives.
func (r Result) Count() int {
	if r.Kind != KindOK {
		return 0
	}
	return len(r.Values)
}
