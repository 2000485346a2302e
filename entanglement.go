package qmem

import (
	"math/bits"

	"github.com/theapemachine/errnie"
)

/*
Entanglement tracks which slots share a fate.

Inspired by quantum entanglement, slots in the same group collapse together:
when measurement resolves one superposed member, every other member that is
still superposed takes the same value. Members already holding a definite
value are left alone, and writing a definite value with SetBit never reaches
across the group.

Each slot stores the mask of its whole group (itself included), or zero when
it is not entangled. Joining slots that already belong to groups merges those
groups into one.
*/
type Entanglement struct {
	groups [Width]uint64
}

// join merges every slot in mask, and the groups they already belong to, into one group.
func (e *Entanglement) join(mask uint64) uint64 {
	union := mask
	for m := mask; m != 0; m &= m - 1 {
		union |= e.groups[lowest(m)]
	}

	for m := union; m != 0; m &= m - 1 {
		e.groups[lowest(m)] = union
	}

	return union
}

// leave removes index from its group; a group left with a single member dissolves.
func (e *Entanglement) leave(index uint) {
	group := e.groups[index]
	if group == 0 {
		return
	}

	e.groups[index] = 0
	rest := group &^ bit(index)

	if bits.OnesCount64(rest) < 2 {
		rest, group = 0, rest
	} else {
		group = rest
	}

	for m := group; m != 0; m &= m - 1 {
		e.groups[lowest(m)] = rest
	}
}

// partners returns the other members of the slot's group.
func (e *Entanglement) partners(index uint) uint64 {
	return e.groups[index] &^ bit(index)
}

// Entangle links two slots. Entangling a slot with itself does nothing.
func (qm *QuantumMemory) Entangle(a, b uint) error {
	return qm.EntangleGroup(a, b)
}

/*
EntangleGroup links all the given slots into a single group, absorbing any
group one of them already belongs to. Fewer than two distinct slots is a
no-op.
*/
func (qm *QuantumMemory) EntangleGroup(indices ...uint) error {
	if err := qm.checkIndex(indices...); err != nil {
		return err
	}

	var mask uint64
	for _, index := range indices {
		mask |= bit(index)
	}

	if bits.OnesCount64(mask) < 2 {
		return nil
	}

	group := qm.entanglement.join(mask)
	errnie.Info("qmem - entangled group %s", render(group))

	return nil
}

// Disentangle takes the slot out of its group. The slot keeps its current value.
func (qm *QuantumMemory) Disentangle(index uint) error {
	if err := qm.checkIndex(index); err != nil {
		return err
	}

	qm.entanglement.leave(index)
	return nil
}

// Entangled lists the other members of the slot's group in ascending order.
func (qm *QuantumMemory) Entangled(index uint) ([]uint, error) {
	if err := qm.checkIndex(index); err != nil {
		return nil, err
	}

	partners := qm.entanglement.partners(index)
	out := make([]uint, 0, bits.OnesCount64(partners))

	for m := partners; m != 0; m &= m - 1 {
		out = append(out, lowest(m))
	}

	return out, nil
}

// BellResult is the outcome of a BellTest.
type BellResult struct {
	A, B       bool
	Correlated bool
}

/*
BellTest measures slot a and then slot b and reports whether the two outcomes
agree. For two superposed, entangled slots they always do.
*/
func (qm *QuantumMemory) BellTest(a, b uint) (BellResult, error) {
	if err := qm.checkIndex(a, b); err != nil {
		return BellResult{}, err
	}

	va, _ := qm.Measure(a)
	vb, _ := qm.Measure(b)

	result := BellResult{A: va, B: vb, Correlated: va == vb}

	errnie.Info(
		"qmem - bell test slots %d=%v %d=%v correlated=%v",
		a, va, b, vb, result.Correlated,
	)

	return result, nil
}
