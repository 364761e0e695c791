package asm

import (
	"fmt"

	"github.com/bassosimone/corewar/internal/bits"
	"github.com/bassosimone/corewar/internal/isa"
)

// Instruction is one parsed assembly line, ready to be label-resolved
// and encoded once every label in the source has been seen. Mirrors the
// teacher's Instruction interface (pkg/asm/instruction.go) of
// Err/Label/Line/Encode, but Core War's operand shape is uniform across
// all 16 opcodes (at most two (mode, value) operands), so one
// parameterized struct plays the role the teacher gives one struct per
// RiSC-32 mnemonic (whose operand shapes genuinely differ: RRR, RRI, RI).
type Instruction interface {
	// Err returns the error that occurred parsing this line, or nil.
	Err() error
	// Label returns the label anchored to this line, or nil.
	Label() *string
	// Line returns the 1-based source line number.
	Line() int
	// Encode resolves any label operands against labels (label name to
	// instruction address) and assembles the 32-bit instruction word.
	// pc is this instruction's own address.
	Encode(labels map[string]int, pc int) (uint32, error)
}

// errInstruction wraps a parse-time error so it can flow through the
// same channel as successfully parsed instructions, exactly like the
// teacher's InstructionErr.
type errInstruction struct {
	err    error
	lineno int
}

func (e errInstruction) Err() error      { return e.err }
func (e errInstruction) Label() *string  { return nil }
func (e errInstruction) Line() int       { return e.lineno }
func (e errInstruction) Encode(map[string]int, int) (uint32, error) {
	return 0, fmt.Errorf("%w: line %d", ErrParse, e.lineno)
}

var _ Instruction = errInstruction{}

// operandRef is an unresolved operand: either a literal signed value or
// a label reference to be resolved PC-relatively at Encode time.
type operandRef struct {
	mode    isa.Mode
	isLabel bool
	label   string
	literal int64
}

func (o operandRef) resolve(labels map[string]int, pc int) (uint32, error) {
	var v int64
	if o.isLabel {
		addr, ok := labels[o.label]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrLabelUndefined, o.label)
		}
		v = int64(addr) - int64(pc)
	} else {
		v = o.literal
	}
	const lo, hi = -(1 << (isa.ValueWidth - 1)), (1 << (isa.ValueWidth - 1)) - 1
	if v < lo || v > hi {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, v)
	}
	return bits.OfSigned(int32(v), isa.ValueWidth), nil
}

// parsedInstruction is a successfully parsed line with zero, one, or two
// operands; absent operands are treated as immediate zero, per spec.md
// §3 ("opcodes needing absent operands treat those operand fields as
// zero").
type parsedInstruction struct {
	lineno int
	label  *string
	op     isa.Opcode
	a, b   *operandRef
}

func (p *parsedInstruction) Err() error     { return nil }
func (p *parsedInstruction) Label() *string { return p.label }
func (p *parsedInstruction) Line() int      { return p.lineno }

func (p *parsedInstruction) Encode(labels map[string]int, pc int) (uint32, error) {
	modeA, valueA, err := p.resolveOperand(p.a, labels, pc)
	if err != nil {
		return 0, fmt.Errorf("line %d: operand A: %w", p.lineno, err)
	}
	modeB, valueB, err := p.resolveOperand(p.b, labels, pc)
	if err != nil {
		return 0, fmt.Errorf("line %d: operand B: %w", p.lineno, err)
	}
	return isa.Encode(p.op, modeA, valueA, modeB, valueB), nil
}

func (p *parsedInstruction) resolveOperand(o *operandRef, labels map[string]int, pc int) (isa.Mode, uint32, error) {
	if o == nil {
		return isa.ModeImmediate, 0, nil
	}
	v, err := o.resolve(labels, pc)
	if err != nil {
		return 0, 0, err
	}
	return o.mode, v, nil
}

var _ Instruction = &parsedInstruction{}
