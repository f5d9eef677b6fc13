package puzzle

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/chronal/core"
)

func init() {
	Register("19a", day19a)
	Register("19b", day19b)
}

func newMachine(input string, r0 uint64) (*core.Machine, error) {
	prog, err := core.ParseProgram(input)
	if err != nil {
		return nil, err
	}

	regs := core.NewRegisters(core.DefaultRegisterCount)
	regs[0] = r0

	return core.NewMachine(prog, regs)
}

func day19a(input string) (string, error) {
	m, err := newMachine(input, 0)
	if err != nil {
		return "", err
	}

	if err := m.Run(); err != nil {
		return "", err
	}

	return answer(m.Registers()[0]), nil
}

// divisorLoopPC is where the puzzle program enters its divisor sum loop
// once the setup code has computed the target.
const divisorLoopPC = 1

// day19b lets the setup code compute the target number and sums its
// divisors instead of running the quadratic loop.
func day19b(input string) (string, error) {
	m, err := newMachine(input, 1)
	if err != nil {
		return "", err
	}

	if err := m.RunToPC(divisorLoopPC); err != nil {
		return "", err
	}
	if m.Halted() {
		return "", fmt.Errorf("%w: halted before reaching pc %d",
			ErrNoAnswer, divisorLoopPC)
	}

	var target uint64
	for _, v := range m.Registers() {
		target = max(target, v)
	}

	slog.Debug("DivisorTarget", "Target", target, "Steps", m.Steps())

	return answer(sumOfDivisors(target)), nil
}

func sumOfDivisors(n uint64) uint64 {
	var sum uint64
	for d := uint64(1); d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		sum += d
		if q := n / d; q != d {
			sum += q
		}
	}
	return sum
}
