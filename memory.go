package qmem

import (
	"fmt"
	"io"
	"math/bits"
	"os"
	"strings"
)

/*
QuantumMemory is a 64-slot register with quantum-like properties.

Every slot is either definite (0 or 1) or superposed. The register is packed
into two words: state holds the collapsed values and superposition flags the
slots whose value is still undetermined. The first measurement of a superposed
slot collapses it for good; until the slot is superposed again every later
measurement returns the same value.

Invariant: state & superposition == 0. A superposed slot never carries a stale
state bit, so Print output and Equal are deterministic.

A QuantumMemory is not safe for concurrent use. Wrap it in a SyncMemory when
several goroutines share one register.
*/
type QuantumMemory struct {
	state         uint64
	superposition uint64

	// Collapse bias per slot, reset to the default whenever a slot is superposed.
	probability  [Width]Probability
	entanglement Entanglement

	defaultProbability Probability
	source             RandomSource
	metrics            *Metrics
	recordHistory      bool
	historyLimit       int
	historySeq         uint64
	history            []Transition
}

/*
New creates a register with every slot superposed and every state bit
cleared.
*/
func New(opts ...Option) *QuantumMemory {
	cfg := NewConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	qm := &QuantumMemory{
		superposition:      ^uint64(0),
		defaultProbability: cfg.DefaultProbability,
		source:             cfg.Source,
		metrics:            cfg.Metrics,
		recordHistory:      cfg.RecordHistory,
		historyLimit:       cfg.HistoryLimit,
	}

	for i := range qm.probability {
		qm.probability[i] = cfg.DefaultProbability
	}

	return qm
}

/*
SetBit gives the slot at index a definite value, or sends it back into
superposition for Indeterminate.
*/
func (qm *QuantumMemory) SetBit(index uint, v Value) error {
	if err := qm.checkIndex(index); err != nil {
		return err
	}

	switch v {
	case DefiniteTrue, DefiniteFalse:
		from := qm.slot(index)
		qm.write(index, v == DefiniteTrue)
		qm.record(index, from, Collapsed, v == DefiniteTrue, causeSet)
	case Indeterminate:
		qm.superpose(index, qm.defaultProbability, causeSet)
	default:
		return fmt.Errorf("%w: %d", ErrInvalidValue, int(v))
	}

	return nil
}

/*
SetSuperposed sends the slot into superposition with a biased collapse
probability p, the chance of measuring 1.
*/
func (qm *QuantumMemory) SetSuperposed(index uint, p Probability) error {
	if err := qm.checkIndex(index); err != nil {
		return err
	}

	if !p.valid() {
		return fmt.Errorf("%w: %v", ErrInvalidProbability, float64(p))
	}

	qm.superpose(index, p, causeSuperpose)
	return nil
}

/*
Measure returns the value of the slot at index. A definite slot is returned
as is. A superposed slot collapses: a random outcome is drawn, written to the
register and returned, and every later measurement sees the same value.
*/
func (qm *QuantumMemory) Measure(index uint) (bool, error) {
	if err := qm.checkIndex(index); err != nil {
		return false, err
	}

	if qm.metrics != nil {
		qm.metrics.recordMeasurement()
	}

	if qm.superposition&bit(index) != 0 {
		return qm.collapse(index), nil
	}

	return qm.state&bit(index) != 0, nil
}

// Print writes the register to standard output.
func (qm *QuantumMemory) Print() {
	_ = qm.Fprint(os.Stdout)
}

/*
Fprint writes two lines, "State: " and "Superposition: ", each followed by 64
characters of '0' or '1' with slot 0 leftmost. Superposed slots show their
(always cleared) state bit.
*/
func (qm *QuantumMemory) Fprint(w io.Writer) error {
	_, err := io.WriteString(w, qm.String())
	return err
}

func (qm *QuantumMemory) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "State: %s\n", render(qm.state))
	fmt.Fprintf(&sb, "Superposition: %s\n", render(qm.superposition))
	return sb.String()
}

// State returns the collapsed-value word.
func (qm *QuantumMemory) State() uint64 {
	return qm.state
}

// Superposition returns the superposition mask.
func (qm *QuantumMemory) Superposition() uint64 {
	return qm.superposition
}

func (qm *QuantumMemory) IsSuperposed(index uint) (bool, error) {
	if err := qm.checkIndex(index); err != nil {
		return false, err
	}

	return qm.superposition&bit(index) != 0, nil
}

// Slot reports the state machine position of the slot at index.
func (qm *QuantumMemory) Slot(index uint) (SlotState, error) {
	if err := qm.checkIndex(index); err != nil {
		return Superposed, err
	}

	return qm.slot(index), nil
}

// Probability returns the chance that the slot collapses to 1 when measured.
func (qm *QuantumMemory) Probability(index uint) (Probability, error) {
	if err := qm.checkIndex(index); err != nil {
		return 0, err
	}

	return qm.probability[index], nil
}

// Equal compares the observable register of two memories.
func (qm *QuantumMemory) Equal(other *QuantumMemory) bool {
	if qm == nil || other == nil {
		return qm == other
	}

	return qm.state == other.state && qm.superposition == other.superposition
}

// Metrics returns the attached collector, or nil.
func (qm *QuantumMemory) Metrics() *Metrics {
	return qm.metrics
}

func (qm *QuantumMemory) slot(index uint) SlotState {
	if qm.superposition&bit(index) != 0 {
		return Superposed
	}
	return Collapsed
}

// write stores a definite value and clears the superposition flag.
func (qm *QuantumMemory) write(index uint, value bool) {
	if value {
		qm.state |= bit(index)
	} else {
		qm.state &^= bit(index)
	}
	qm.superposition &^= bit(index)
}

// superpose flags the slot as undetermined and clears its stale state bit.
func (qm *QuantumMemory) superpose(index uint, p Probability, cause string) {
	from := qm.slot(index)

	qm.superposition |= bit(index)
	qm.state &^= bit(index)
	qm.probability[index] = p

	qm.record(index, from, Superposed, false, cause)
}

// render lays a word out with bit 0 as the leftmost character.
func render(word uint64) string {
	return fmt.Sprintf("%064b", bits.Reverse64(word))
}

func lowest(mask uint64) uint {
	return uint(bits.TrailingZeros64(mask))
}
