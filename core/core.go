package core

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

// Core is a clocked component that executes one instruction of a loaded
// Machine per cycle.
type Core struct {
	*sim.TickingComponent

	machine    *Machine
	stepLimit  uint64
	cycles     uint64
	finishTime sim.VTimeInSec
	err        error
}

// Load arms the core with a machine and schedules the first tick. The
// machine runs when the engine runs.
func (c *Core) Load(m *Machine) {
	c.machine = m
	c.cycles = 0
	c.finishTime = 0
	c.err = nil

	Trace("Load",
		"Core", c.Name(),
		"Instructions", m.Program().Len(),
		"IP", m.Program().IPRegister,
	)

	c.TickNow()
}

// Machine returns the loaded machine.
func (c *Core) Machine() *Machine {
	return c.machine
}

// Cycles returns the number of cycles in which an instruction executed.
func (c *Core) Cycles() uint64 {
	return c.cycles
}

// FinishTime returns the virtual time of the last executed instruction.
func (c *Core) FinishTime() sim.VTimeInSec {
	return c.finishTime
}

// Halted reports whether the loaded program ran off its end.
func (c *Core) Halted() bool {
	return c.machine != nil && c.machine.Halted()
}

// Err returns the fault or step-limit error that stopped the core.
func (c *Core) Err() error {
	return c.err
}

// Tick runs the machine for one cycle.
func (c *Core) Tick() (madeProgress bool) {
	if c.machine == nil || c.err != nil {
		return false
	}

	if c.stepLimit > 0 && c.cycles >= c.stepLimit {
		if !c.machine.Halted() {
			c.err = fmt.Errorf("%s: %w: %d cycles", c.Name(), ErrStepLimit, c.cycles)
		}
		return false
	}

	pc := c.machine.PC()
	ok, err := c.machine.Step()
	if err != nil {
		c.err = fmt.Errorf("%s: %w", c.Name(), err)
		return false
	}

	if !ok {
		return false
	}

	c.cycles++
	c.finishTime = c.Engine.CurrentTime()

	Trace("Tick",
		"Core", c.Name(),
		"Time", float64(c.finishTime*1e9),
		"PC", pc,
		"Cycle", c.cycles,
	)

	return true
}
