package qmem

/*
Hadamard places the slot into an even superposition. A slot that held a
definite value forgets it.
*/
func (qm *QuantumMemory) Hadamard(index uint) error {
	return qm.SetSuperposed(index, DefaultProbability)
}

// PauliX flips the slot, measuring it first if it is superposed.
func (qm *QuantumMemory) PauliX(index uint) error {
	if err := qm.checkIndex(index); err != nil {
		return err
	}

	value, _ := qm.Measure(index)
	return qm.SetBit(index, Definite(!value))
}

// CNOT flips target when control measures 1.
func (qm *QuantumMemory) CNOT(control, target uint) error {
	if err := qm.checkIndex(control, target); err != nil {
		return err
	}

	if value, _ := qm.Measure(control); !value {
		return nil
	}

	return qm.PauliX(target)
}

/*
Swap exchanges the values of two slots. Both are measured first, so a
superposed slot collapses before its value moves.
*/
func (qm *QuantumMemory) Swap(a, b uint) error {
	if err := qm.checkIndex(a, b); err != nil {
		return err
	}

	if a == b {
		return nil
	}

	va, _ := qm.Measure(a)
	vb, _ := qm.Measure(b)

	if err := qm.SetBit(a, Definite(vb)); err != nil {
		return err
	}

	return qm.SetBit(b, Definite(va))
}
