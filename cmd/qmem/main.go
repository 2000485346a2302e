package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qmem"
)

func main() {
	qm := qmem.New(qmem.WithHistory(), qmem.WithMetrics(qmem.NewMetrics()))
	qm.Print()

	if err := qm.SetBit(0, qmem.DefiniteTrue); err != nil {
		errnie.Info("set slot 0 - %v", err)
		return
	}

	if err := qm.SetBit(1, qmem.DefiniteFalse); err != nil {
		errnie.Info("set slot 1 - %v", err)
		return
	}

	value, err := qm.Measure(2)
	if err != nil {
		errnie.Info("measure slot 2 - %v", err)
		return
	}

	fmt.Printf("Slot 2 collapsed to %v\n", value)
	qm.Print()

	spew.Dump(qm.History(0))
	spew.Dump(qm.Metrics().ExportMetrics())
}
