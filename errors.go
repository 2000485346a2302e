package qmem

import (
	"errors"
	"fmt"

	"github.com/theapemachine/errnie"
)

var (
	// ErrIndexOutOfRange is returned for any slot index >= Width.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidValue is returned by SetBit for a Value outside the three known variants.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidProbability is returned for a collapse probability outside [0, 1].
	ErrInvalidProbability = errors.New("invalid probability")
)

/*
checkIndex validates every index before an operation touches the register, so a
failing call never leaves a partial mutation behind.
*/
func (qm *QuantumMemory) checkIndex(indices ...uint) error {
	for _, index := range indices {
		if index >= Width {
			if qm.metrics != nil {
				qm.metrics.recordOutOfRange()
			}

			errnie.Info("qmem - rejected slot index %d (width %d)", index, Width)
			return fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, index, Width)
		}
	}

	return nil
}
