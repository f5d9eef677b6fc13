package puzzle

import (
	"github.com/sarchlab/chronal/core"
	"github.com/sarchlab/chronal/verify"
)

func init() {
	Register("16a", day16a)
	Register("16b", day16b)
}

// day16a counts the samples that behave like three or more opcodes.
func day16a(input string) (string, error) {
	in, err := verify.ParseInput(input)
	if err != nil {
		return "", err
	}

	return answer(uint64(verify.CountMatching(in.Samples, 3))), nil
}

// day16b decodes the test program with the inferred opcode numbering and
// runs it on a zeroed register file.
func day16b(input string) (string, error) {
	in, err := verify.ParseInput(input)
	if err != nil {
		return "", err
	}

	mapping, err := verify.Resolve(in.Samples)
	if err != nil {
		return "", err
	}

	insts, err := mapping.DecodeAll(in.Program)
	if err != nil {
		return "", err
	}

	regs := core.NewRegisters(verify.SampleRegisterCount)
	if err := core.ExecuteSequence(insts, regs); err != nil {
		return "", err
	}

	return answer(regs[0]), nil
}
