package qmem

const (
	causeSet          = "set"
	causeSuperpose    = "superpose"
	causeMeasure      = "measure"
	causeEntanglement = "entanglement"
)

/*
Transition records a change in a slot's state.

The ledger keeps the order in which slots moved between superposition and
definite values together with the cause of each move, so the evolution of a
register can be replayed when debugging. Value is the definite value written
and is always false for a move into superposition.
*/
type Transition struct {
	Sequence uint64
	Index    uint
	From     SlotState
	To       SlotState
	Value    bool
	Cause    string
}

func (qm *QuantumMemory) record(index uint, from, to SlotState, value bool, cause string) {
	if !qm.recordHistory {
		return
	}

	qm.history = append(qm.history, Transition{
		Sequence: qm.historySeq,
		Index:    index,
		From:     from,
		To:       to,
		Value:    value,
		Cause:    cause,
	})
	qm.historySeq++

	// Drop the oldest entries once the window is full.
	if qm.historyLimit > 0 && len(qm.history) > qm.historyLimit {
		qm.history = qm.history[len(qm.history)-qm.historyLimit:]
	}
}

/*
History returns the retained transitions whose sequence is at least since (0
for all of them). Sequences keep counting after the window drops old entries,
so a caller can resume from the last sequence it saw. It is empty unless the
register was built WithHistory.
*/
func (qm *QuantumMemory) History(since uint64) []Transition {
	start := len(qm.history)
	for i, t := range qm.history {
		if t.Sequence >= since {
			start = i
			break
		}
	}

	out := make([]Transition, len(qm.history)-start)
	copy(out, qm.history[start:])
	return out
}

// SlotHistory filters the ledger down to a single slot.
func (qm *QuantumMemory) SlotHistory(index uint) []Transition {
	var out []Transition
	for _, t := range qm.history {
		if t.Index == index {
			out = append(out, t)
		}
	}
	return out
}
