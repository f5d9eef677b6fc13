package core

import "errors"

var (
	// ErrUnknownOpcode is returned when a mnemonic names none of the
	// sixteen opcodes.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrMalformedInstruction is returned for instruction text that is not
	// an opcode followed by three non-negative integers.
	ErrMalformedInstruction = errors.New("malformed instruction")

	// ErrMalformedProgram is returned when the program text lacks a valid
	// instruction pointer declaration.
	ErrMalformedProgram = errors.New("malformed program")

	// ErrMalformedRegisters is returned for register snapshots that are not
	// a comma-separated list of non-negative integers.
	ErrMalformedRegisters = errors.New("malformed registers")

	// ErrRegisterOutOfRange is returned when an instruction names a register
	// outside the register file.
	ErrRegisterOutOfRange = errors.New("register out of range")

	// ErrStepLimit is returned when a bounded run does not halt in time.
	ErrStepLimit = errors.New("step limit reached")
)
