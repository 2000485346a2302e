package qmem

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fixedSource returns the same draw every time; below the slot probability means 1.
type fixedSource float64

func (f fixedSource) Float64() float64 {
	return float64(f)
}

func seeded() RandomSource {
	return rand.New(rand.NewPCG(42, 1024))
}

func TestNew(t *testing.T) {
	Convey("Given a freshly constructed memory", t, func() {
		qm := New()

		Convey("Every slot should be superposed", func() {
			for i := uint(0); i < Width; i++ {
				superposed, err := qm.IsSuperposed(i)
				So(err, ShouldBeNil)
				So(superposed, ShouldBeTrue)
			}
		})

		Convey("The words should be all-ones and zero", func() {
			So(qm.Superposition(), ShouldEqual, ^uint64(0))
			So(qm.State(), ShouldEqual, uint64(0))
		})

		Convey("Every slot should collapse with even odds", func() {
			p, err := qm.Probability(17)
			So(err, ShouldBeNil)
			So(p, ShouldEqual, DefaultProbability)
		})
	})
}

func TestSetBit(t *testing.T) {
	Convey("Given a memory", t, func() {
		qm := New(WithSource(seeded()))

		Convey("When every slot is set to true", func() {
			for i := uint(0); i < Width; i++ {
				So(qm.SetBit(i, DefiniteTrue), ShouldBeNil)
			}

			Convey("Measure should return true on every call without mutation", func() {
				for i := uint(0); i < Width; i++ {
					for n := 0; n < 3; n++ {
						v, err := qm.Measure(i)
						So(err, ShouldBeNil)
						So(v, ShouldBeTrue)
					}
				}
				So(qm.State(), ShouldEqual, ^uint64(0))
				So(qm.Superposition(), ShouldEqual, uint64(0))
			})
		})

		Convey("When every slot is set to false", func() {
			for i := uint(0); i < Width; i++ {
				So(qm.SetBit(i, DefiniteFalse), ShouldBeNil)
			}

			Convey("Measure should return false on every call", func() {
				for i := uint(0); i < Width; i++ {
					for n := 0; n < 3; n++ {
						v, err := qm.Measure(i)
						So(err, ShouldBeNil)
						So(v, ShouldBeFalse)
					}
				}
				So(qm.State(), ShouldEqual, uint64(0))
			})
		})

		Convey("When a definite slot is made indeterminate again", func() {
			So(qm.SetBit(5, DefiniteTrue), ShouldBeNil)
			So(qm.SetBit(5, Indeterminate), ShouldBeNil)

			Convey("It should be superposed with its state bit cleared", func() {
				superposed, _ := qm.IsSuperposed(5)
				So(superposed, ShouldBeTrue)
				So(qm.State()&bit(5), ShouldEqual, uint64(0))
				So(qm.State()&qm.Superposition(), ShouldEqual, uint64(0))
			})

			Convey("A later measurement may return either value", func() {
				seen := map[bool]bool{}
				for n := 0; n < 200; n++ {
					So(qm.SetBit(5, Indeterminate), ShouldBeNil)
					v, err := qm.Measure(5)
					So(err, ShouldBeNil)
					seen[v] = true
				}
				So(seen[true], ShouldBeTrue)
				So(seen[false], ShouldBeTrue)
			})
		})

		Convey("When an unknown value is given", func() {
			err := qm.SetBit(3, Value(7))

			Convey("It should be rejected without mutation", func() {
				So(errors.Is(err, ErrInvalidValue), ShouldBeTrue)
				So(qm.Equal(New()), ShouldBeTrue)
			})
		})
	})
}

func TestMeasure(t *testing.T) {
	Convey("Given a freshly superposed slot", t, func() {
		qm := New(WithSource(seeded()))

		Convey("Collapse should be sticky", func() {
			first, err := qm.Measure(9)
			So(err, ShouldBeNil)

			superposed, _ := qm.IsSuperposed(9)
			So(superposed, ShouldBeFalse)

			second, err := qm.Measure(9)
			So(err, ShouldBeNil)
			So(second, ShouldEqual, first)

			state, _ := qm.Slot(9)
			So(state, ShouldEqual, Collapsed)
		})

		Convey("Collapse should only touch the measured slot", func() {
			_, _ = qm.Measure(9)
			So(qm.Superposition(), ShouldEqual, ^bit(9))
		})
	})

	Convey("Given an injected source", t, func() {
		Convey("A low draw should collapse to 1", func() {
			qm := New(WithSource(fixedSource(0.1)))
			v, _ := qm.Measure(0)
			So(v, ShouldBeTrue)
			So(qm.State(), ShouldEqual, bit(0))
		})

		Convey("A high draw should collapse to 0", func() {
			qm := New(WithSource(fixedSource(0.9)))
			v, _ := qm.Measure(0)
			So(v, ShouldBeFalse)
			So(qm.State(), ShouldEqual, uint64(0))
		})
	})

	Convey("Given many fresh superposed slots", t, func() {
		const trials = 10000
		qm := New(WithSource(seeded()))
		ones := 0

		for n := 0; n < trials; n++ {
			So(qm.SetBit(0, Indeterminate), ShouldBeNil)
			if v, _ := qm.Measure(0); v {
				ones++
			}
		}

		Convey("About half of them should collapse to 1", func() {
			So(float64(ones)/trials, ShouldAlmostEqual, 0.5, 0.03)
		})
	})
}

func TestSetSuperposed(t *testing.T) {
	Convey("Given a memory", t, func() {
		qm := New(WithSource(seeded()))

		Convey("A certain probability should always collapse to 1", func() {
			for n := 0; n < 100; n++ {
				So(qm.SetSuperposed(4, MaxProbability), ShouldBeNil)
				v, _ := qm.Measure(4)
				So(v, ShouldBeTrue)
			}
		})

		Convey("A zero probability should always collapse to 0", func() {
			for n := 0; n < 100; n++ {
				So(qm.SetSuperposed(4, MinProbability), ShouldBeNil)
				v, _ := qm.Measure(4)
				So(v, ShouldBeFalse)
			}
		})

		Convey("Going back through SetBit should restore the default", func() {
			So(qm.SetSuperposed(4, 0.9), ShouldBeNil)
			So(qm.SetBit(4, Indeterminate), ShouldBeNil)
			p, _ := qm.Probability(4)
			So(p, ShouldEqual, DefaultProbability)
		})

		Convey("Probabilities outside [0, 1] should be rejected", func() {
			So(qm.SetBit(4, DefiniteTrue), ShouldBeNil)
			So(errors.Is(qm.SetSuperposed(4, 1.5), ErrInvalidProbability), ShouldBeTrue)
			So(errors.Is(qm.SetSuperposed(4, -0.1), ErrInvalidProbability), ShouldBeTrue)

			superposed, _ := qm.IsSuperposed(4)
			So(superposed, ShouldBeFalse)
		})
	})
}

func TestBounds(t *testing.T) {
	Convey("Given a memory with some definite slots", t, func() {
		metrics := NewMetrics()
		qm := New(WithMetrics(metrics))
		So(qm.SetBit(0, DefiniteTrue), ShouldBeNil)
		before := *qm

		for _, index := range []uint{Width, Width + 1, 1 << 20} {
			Convey(fmt.Sprintf("Index %d should be rejected by every operation", index), func() {
				So(errors.Is(qm.SetBit(index, DefiniteTrue), ErrIndexOutOfRange), ShouldBeTrue)
				So(errors.Is(qm.SetBit(index, Indeterminate), ErrIndexOutOfRange), ShouldBeTrue)
				So(errors.Is(qm.SetSuperposed(index, 0.5), ErrIndexOutOfRange), ShouldBeTrue)

				_, err := qm.Measure(index)
				So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)

				_, err = qm.IsSuperposed(index)
				So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)

				Convey("And leave the register untouched", func() {
					So(qm.State(), ShouldEqual, before.state)
					So(qm.Superposition(), ShouldEqual, before.superposition)
					So(metrics.OutOfRangeHits(), ShouldEqual, int64(5))
					So(metrics.Measurements(), ShouldEqual, int64(0))
				})
			})
		}
	})
}

func TestPrint(t *testing.T) {
	Convey("Given a memory with mixed slots", t, func() {
		qm := New(WithSource(seeded()))
		So(qm.SetBit(0, DefiniteTrue), ShouldBeNil)
		So(qm.SetBit(1, DefiniteFalse), ShouldBeNil)
		So(qm.SetBit(63, DefiniteTrue), ShouldBeNil)

		Convey("Fprint should emit exactly two labelled lines of 64 bits", func() {
			var buf bytes.Buffer
			So(qm.Fprint(&buf), ShouldBeNil)

			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			So(len(lines), ShouldEqual, 2)
			So(lines[0], ShouldStartWith, "State: ")
			So(lines[1], ShouldStartWith, "Superposition: ")

			state := strings.TrimPrefix(lines[0], "State: ")
			superposition := strings.TrimPrefix(lines[1], "Superposition: ")

			So(len(state), ShouldEqual, Width)
			So(len(superposition), ShouldEqual, Width)
			So(strings.Trim(state, "01"), ShouldBeEmpty)
			So(strings.Trim(superposition, "01"), ShouldBeEmpty)

			So(state[:2], ShouldEqual, "10")
			So(state[63:], ShouldEqual, "1")
			So(superposition[:3], ShouldEqual, "001")
			So(superposition[63:], ShouldEqual, "0")
		})

		Convey("Printing should not mutate the register", func() {
			before := qm.String()
			var buf bytes.Buffer
			So(qm.Fprint(&buf), ShouldBeNil)
			So(qm.String(), ShouldEqual, before)
			So(buf.String(), ShouldEqual, before)
		})
	})
}

func TestWorkedExample(t *testing.T) {
	Convey("Given slots 0 and 1 set and slot 2 left alone", t, func() {
		qm := New()
		So(qm.SetBit(0, DefiniteTrue), ShouldBeNil)
		So(qm.SetBit(1, DefiniteFalse), ShouldBeNil)

		Convey("Measurements should match and slot 2 should be stable", func() {
			v0, _ := qm.Measure(0)
			v1, _ := qm.Measure(1)
			v2, _ := qm.Measure(2)
			again, _ := qm.Measure(2)

			So(v0, ShouldBeTrue)
			So(v1, ShouldBeFalse)
			So(again, ShouldEqual, v2)
		})
	})
}

func TestEqual(t *testing.T) {
	Convey("Given two memories", t, func() {
		a, b := New(), New()

		Convey("Fresh memories should be equal", func() {
			So(a.Equal(b), ShouldBeTrue)
		})

		Convey("A slot superposed again should compare equal to a fresh one", func() {
			So(a.SetBit(8, DefiniteTrue), ShouldBeNil)
			So(a.Equal(b), ShouldBeFalse)
			So(a.SetBit(8, Indeterminate), ShouldBeNil)
			So(a.Equal(b), ShouldBeTrue)
		})

		Convey("Nil memories should only equal nil", func() {
			var n *QuantumMemory
			So(n.Equal(nil), ShouldBeTrue)
			So(a.Equal(nil), ShouldBeFalse)
		})
	})
}
