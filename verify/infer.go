package verify

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/chronal/core"
)

// Matches returns the opcodes that turn the sample's Before registers into
// its After registers. An opcode that faults is not consistent.
func Matches(s Sample) OpcodeSet {
	var set OpcodeSet

	for _, op := range core.AllOpcodes() {
		regs := s.Before.Clone()
		if err := s.Raw.WithOpcode(op).Execute(regs); err != nil {
			continue
		}
		if regs.Equal(s.After) {
			set = set.Add(op)
		}
	}

	return set
}

// CountMatching counts the samples consistent with at least threshold
// opcodes.
func CountMatching(samples []Sample, threshold int) int {
	n := 0
	for _, s := range samples {
		if Matches(s).Len() >= threshold {
			n++
		}
	}
	return n
}

// Candidates intersects the consistent opcodes of all samples per raw id.
// Ids without samples keep every opcode.
func Candidates(samples []Sample) ([core.OpcodeCount]OpcodeSet, error) {
	var cands [core.OpcodeCount]OpcodeSet
	for id := range cands {
		cands[id] = AllOpcodes
	}

	for n, s := range samples {
		id := s.Raw.ID()
		if id >= core.OpcodeCount {
			return cands, fmt.Errorf("sample %d: %w: %d", n, ErrUnknownID, id)
		}
		cands[id] = cands[id].Intersect(Matches(s))
	}

	return cands, nil
}

// Resolve assigns a unique opcode to every raw id by constraint
// propagation over the candidates of the samples.
func Resolve(samples []Sample) (Mapping, error) {
	cands, err := Candidates(samples)
	if err != nil {
		return nil, err
	}

	return Propagate(cands)
}

// Propagate repeatedly fixes ids with a single candidate and removes the
// fixed opcodes from all other ids. It runs at most OpcodeCount rounds.
func Propagate(cands [core.OpcodeCount]OpcodeSet) (Mapping, error) {
	mapping := make(Mapping, core.OpcodeCount)

	for round := 0; round < core.OpcodeCount && len(mapping) < core.OpcodeCount; round++ {
		var fixed OpcodeSet

		for id, set := range cands {
			if _, done := mapping[uint64(id)]; done {
				continue
			}

			if set.Len() == 0 {
				return nil, fmt.Errorf("%w: id %d has no candidate left", ErrContradiction, id)
			}

			op, ok := set.Only()
			if !ok {
				continue
			}
			if fixed.Has(op) {
				return nil, fmt.Errorf("%w: %s claimed by two ids", ErrContradiction, op)
			}

			mapping[uint64(id)] = op
			fixed = fixed.Add(op)
		}

		if fixed == 0 {
			break
		}

		for id := range cands {
			if _, done := mapping[uint64(id)]; !done {
				cands[id] = cands[id].Remove(fixed)
			}
		}

		slog.Debug("OpcodePropagation",
			"Round", round,
			"Fixed", fixed.String(),
			"Resolved", len(mapping),
		)
	}

	if len(mapping) < core.OpcodeCount {
		return nil, fmt.Errorf("%w: %d of %d ids resolved",
			ErrAmbiguous, len(mapping), core.OpcodeCount)
	}

	return mapping, nil
}
