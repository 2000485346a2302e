package qmem

import "math/rand/v2"

/*
RandomSource supplies the uniform draws behind every collapse. A *rand.Rand
from math/rand/v2 satisfies it, which lets tests seed the register:

	qm := New(WithSource(rand.New(rand.NewPCG(1, 2))))
*/
type RandomSource interface {
	Float64() float64
}

// globalSource draws from the math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

/*
collapse resolves a superposed slot. The draw is a Bernoulli trial with the
slot's probability of landing on 1; the result is written into state and the
superposition flag is cleared. Entangled partners that are still superposed
follow the same outcome.
*/
func (qm *QuantumMemory) collapse(index uint) bool {
	outcome := qm.source.Float64() < float64(qm.probability[index])

	qm.write(index, outcome)
	qm.record(index, Superposed, Collapsed, outcome, causeMeasure)

	propagated := qm.propagate(index, outcome)

	if qm.metrics != nil {
		qm.metrics.recordCollapse(outcome, propagated)
	}

	return outcome
}

// propagate collapses the superposed partners of index onto value.
func (qm *QuantumMemory) propagate(index uint, value bool) int {
	targets := qm.entanglement.partners(index) & qm.superposition
	count := 0

	for m := targets; m != 0; m &= m - 1 {
		partner := lowest(m)
		qm.write(partner, value)
		qm.record(partner, Superposed, Collapsed, value, causeEntanglement)
		count++
	}

	return count
}
