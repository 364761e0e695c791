package asm

import "errors"

// The following errors may be returned while assembling a source file,
// matching the teacher's sentinel-error-plus-%w-wrap style (ErrCannotEncode,
// ErrOutOfRange in pkg/asm/instruction.go).
var (
	// ErrParse covers malformed lines: bad label syntax, unknown
	// mnemonics, unknown addressing-mode prefixes, and malformed operands.
	ErrParse = errors.New("asm: parse error")

	// ErrLabelRedefined is returned when the same label is defined twice.
	ErrLabelRedefined = errors.New("asm: label redefined")

	// ErrLabelUndefined is returned when an operand references a label
	// that was never defined.
	ErrLabelUndefined = errors.New("asm: label undefined")

	// ErrOperandArity is returned when a mnemonic's operand count or
	// writability doesn't match its required shape (spec.md §6).
	ErrOperandArity = errors.New("asm: wrong operand count or shape")

	// ErrOutOfRange is returned when a resolved operand value doesn't
	// fit in the 12-bit signed field.
	ErrOutOfRange = errors.New("asm: value out of 12-bit range")

	// ErrLabelOnlyLine is returned when a label is defined on a line with
	// no instruction; spec.md §6 says labels anchor the instruction on
	// their own line, so a bare label has nothing to anchor.
	ErrLabelOnlyLine = errors.New("asm: label with no instruction")
)
