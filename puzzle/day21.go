package puzzle

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/chronal/core"
)

func init() {
	Register("21a", day21a)
	Register("21b", day21b)
}

// haltCheck is the only instruction of the activation program that reads
// register 0: an eqrr comparing it against a generated value.
type haltCheck struct {
	pc  uint64
	reg uint64
}

func findHaltCheck(prog *core.Program, numRegisters int) (haltCheck, error) {
	for pc, inst := range prog.Instructions {
		if inst.Opcode != core.Eqrr {
			continue
		}

		var check haltCheck
		switch {
		case inst.A == 0 && inst.B != 0:
			check = haltCheck{pc: uint64(pc), reg: inst.B}
		case inst.B == 0 && inst.A != 0:
			check = haltCheck{pc: uint64(pc), reg: inst.A}
		default:
			continue
		}

		if check.reg >= uint64(numRegisters) {
			return haltCheck{}, fmt.Errorf("pc %d: %w: r%d with %d registers",
				pc, core.ErrRegisterOutOfRange, check.reg, numRegisters)
		}
		return check, nil
	}

	return haltCheck{}, fmt.Errorf("%w: no eqrr against register 0", ErrNoAnswer)
}

// watchHaltCheck calls visit with the compared value every time the
// machine reaches the halt check, until visit returns false.
func watchHaltCheck(input string, visit func(v uint64) bool) error {
	m, err := newMachine(input, 0)
	if err != nil {
		return err
	}

	check, err := findHaltCheck(m.Program(), len(m.Registers()))
	if err != nil {
		return err
	}

	slog.Debug("HaltCheck", "PC", check.pc, "Register", check.reg)

	for {
		if err := m.RunToPC(check.pc); err != nil {
			return err
		}
		if m.Halted() {
			return fmt.Errorf("%w: halted after %d steps", ErrNoAnswer, m.Steps())
		}

		if !visit(m.Registers()[check.reg]) {
			return nil
		}

		if _, err := m.Step(); err != nil {
			return err
		}
	}
}

// day21a finds the register 0 seed that halts after the fewest
// instructions: the first value compared against it.
func day21a(input string) (string, error) {
	var first uint64
	err := watchHaltCheck(input, func(v uint64) bool {
		first = v
		return false
	})
	if err != nil {
		return "", err
	}

	return answer(first), nil
}

// day21b finds the seed that halts after the most instructions: the last
// new value compared before the generated sequence repeats.
func day21b(input string) (string, error) {
	seen := map[uint64]bool{}
	var last uint64

	err := watchHaltCheck(input, func(v uint64) bool {
		if seen[v] {
			return false
		}
		seen[v] = true
		last = v
		return true
	})
	if err != nil {
		return "", err
	}

	slog.Debug("HaltSeeds", "Distinct", len(seen))

	return answer(last), nil
}
