package qmem

// Width is the number of slots in a QuantumMemory.
const Width = 64

/*
Value is the tri-state input accepted by SetBit. A slot is either given a
definite value or sent back into superposition.
*/
type Value int

const (
	DefiniteFalse Value = iota
	DefiniteTrue
	Indeterminate
)

// Definite converts a plain bool into the matching definite Value.
func Definite(b bool) Value {
	if b {
		return DefiniteTrue
	}
	return DefiniteFalse
}

func (v Value) String() string {
	switch v {
	case DefiniteFalse:
		return "false"
	case DefiniteTrue:
		return "true"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}

// SlotState is the observable state of a single slot.
type SlotState int

const (
	Superposed SlotState = iota
	Collapsed
)

func (s SlotState) String() string {
	if s == Superposed {
		return "superposed"
	}
	return "collapsed"
}

// Probability is the chance that a superposed slot collapses to 1.
type Probability float64

const (
	MinProbability     Probability = 0.0
	MaxProbability     Probability = 1.0
	DefaultProbability Probability = 0.5
)

// valid reports whether p is a usable collapse probability; NaN fails both comparisons.
func (p Probability) valid() bool {
	return p >= MinProbability && p <= MaxProbability
}

func bit(index uint) uint64 {
	return uint64(1) << index
}
