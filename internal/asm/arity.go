package asm

import "github.com/bassosimone/corewar/internal/isa"

// shape describes how many operands a mnemonic takes and whether any of
// them must be a writable addressing mode (anything but immediate),
// per spec.md §6's mnemonic validation rules. This is the "explicit
// per-mnemonic arity table" carried forward from original_source's
// assembler.py, where it is a dict keyed by mnemonic; here it is a Go
// map keyed by opcode.
type shape struct {
	operands          int
	writableOperand   int // 1-based index of the operand that must be writable, 0 if none
}

var shapes = map[isa.Opcode]shape{
	isa.OpFORK: {operands: 0},
	isa.OpMOV:  {operands: 2, writableOperand: 2},
	isa.OpNOT:  {operands: 2, writableOperand: 2},
	isa.OpAND:  {operands: 2, writableOperand: 2},
	isa.OpOR:   {operands: 2, writableOperand: 2},
	isa.OpLS:   {operands: 2, writableOperand: 2},
	isa.OpAS:   {operands: 2, writableOperand: 2},
	isa.OpADD:  {operands: 2, writableOperand: 2},
	isa.OpSUB:  {operands: 2, writableOperand: 2},
	isa.OpCMP:  {operands: 2},
	isa.OpLT:   {operands: 2},
	isa.OpPOP:  {operands: 1, writableOperand: 1},
	isa.OpPUSH: {operands: 1},
	isa.OpJMP:  {operands: 1},
	isa.OpBZ:   {operands: 1},
	isa.OpDIE:  {operands: 0},
}
