package qmem

import "sync"

/*
Metrics counts what happens to one or more registers. A single collector may
be shared between memories used from different goroutines, so every counter
is read and written under its mutex.
*/
type Metrics struct {
	mu sync.RWMutex

	measurements   int64
	collapses      int64
	collapsedOnes  int64
	propagations   int64
	outOfRangeHits int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordMeasurement() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.measurements++
}

func (m *Metrics) recordCollapse(outcome bool, propagated int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.collapses++
	if outcome {
		m.collapsedOnes++
	}
	m.propagations += int64(propagated)
}

func (m *Metrics) recordOutOfRange() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.outOfRangeHits++
}

// Measurements counts in-range Measure calls, definite slots included.
func (m *Metrics) Measurements() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.measurements
}

// Collapses counts slots resolved by measurement, not by entanglement.
func (m *Metrics) Collapses() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collapses
}

func (m *Metrics) CollapsedOnes() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collapsedOnes
}

// Propagations counts partners collapsed through an entanglement group.
func (m *Metrics) Propagations() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.propagations
}

func (m *Metrics) OutOfRangeHits() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.outOfRangeHits
}

// CollapseBias is the fraction of collapses that landed on 1, or 0 before any collapse.
func (m *Metrics) CollapseBias() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bias()
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"measurements":  m.measurements,
		"collapses":     m.collapses,
		"collapsed_one": m.collapsedOnes,
		"propagations":  m.propagations,
		"out_of_range":  m.outOfRangeHits,
		"collapse_bias": m.bias(),
	}
}

func (m *Metrics) bias() float64 {
	if m.collapses == 0 {
		return 0
	}
	return float64(m.collapsedOnes) / float64(m.collapses)
}
