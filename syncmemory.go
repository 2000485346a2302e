package qmem

import (
	"io"
	"os"
	"sync"
)

/*
SyncMemory serializes access to a QuantumMemory. Measure both reads and
writes the register, so every call, reads included, takes the same lock.
Each forwarded operation is atomic on its own; use Do for a sequence of
operations that must not interleave with other goroutines.
*/
type SyncMemory struct {
	mu sync.Mutex
	qm *QuantumMemory
}

func NewSyncMemory(qm *QuantumMemory) *SyncMemory {
	if qm == nil {
		qm = New()
	}
	return &SyncMemory{qm: qm}
}

func (s *SyncMemory) SetBit(index uint, v Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.SetBit(index, v)
}

func (s *SyncMemory) SetSuperposed(index uint, p Probability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.SetSuperposed(index, p)
}

func (s *SyncMemory) Measure(index uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.Measure(index)
}

func (s *SyncMemory) Print() {
	_ = s.Fprint(os.Stdout)
}

func (s *SyncMemory) Fprint(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.Fprint(w)
}

func (s *SyncMemory) State() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.State()
}

func (s *SyncMemory) Superposition() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.Superposition()
}

func (s *SyncMemory) IsSuperposed(index uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.IsSuperposed(index)
}

func (s *SyncMemory) Hadamard(index uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.Hadamard(index)
}

func (s *SyncMemory) PauliX(index uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.PauliX(index)
}

func (s *SyncMemory) CNOT(control, target uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.CNOT(control, target)
}

func (s *SyncMemory) Swap(a, b uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.Swap(a, b)
}

func (s *SyncMemory) Entangle(a, b uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.Entangle(a, b)
}

func (s *SyncMemory) EntangleGroup(indices ...uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.EntangleGroup(indices...)
}

func (s *SyncMemory) Disentangle(index uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.Disentangle(index)
}

func (s *SyncMemory) BellTest(a, b uint) (BellResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.BellTest(a, b)
}

// Snapshot returns both words read under a single lock.
func (s *SyncMemory) Snapshot() (state, superposition uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qm.state, s.qm.superposition
}

// Do runs fn with exclusive access, for sequences that must not interleave.
func (s *SyncMemory) Do(fn func(qm *QuantumMemory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.qm)
}
