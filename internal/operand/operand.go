// Package operand implements the four addressing modes' read/write
// semantics over shared memory and the executing process's registers
// (spec.md §4.4). Each mode is a tagged variant; dispatch is a plain
// switch rather than an interface hierarchy, per spec.md §9 ("there is
// no need for virtual dispatch" for a closed four-mode set).
package operand

import (
	"errors"

	"github.com/bassosimone/corewar/internal/bits"
	"github.com/bassosimone/corewar/internal/isa"
	"github.com/bassosimone/corewar/internal/memory"
	"github.com/bassosimone/corewar/internal/process"
)

// ErrWriteToImmediate is returned by Write when the operand addresses
// the immediate mode, which is read-only. The engine treats this as an
// invalid operation that kills the executing process (spec.md §7).
var ErrWriteToImmediate = errors.New("operand: write to immediate operand")

// Operand is a decoded (mode, value) pair ready to be read or written
// against a given memory and process.
type Operand struct {
	Mode  isa.Mode
	Value uint32 // raw 12-bit field, as extracted from the instruction word
}

// address computes the target memory address for the relative and
// computed modes, using proc.PC as the base per spec.md §4.4 (both
// address computations use the current process's PC).
func (o Operand) address(mem *memory.Memory, proc *process.Process) int {
	offset := int(bits.ToSigned(o.Value, isa.ValueWidth))
	switch o.Mode {
	case isa.ModeRelative:
		return proc.PC + offset
	case isa.ModeComputed:
		p := proc.PC + offset
		indirect := mem.Read(p)
		q := proc.PC + int(bits.ToSigned(bits.Extract(indirect, 0, 12), 12))
		return q
	default:
		panic("operand: address() called on a mode with no memory address")
	}
}

// Read returns the operand's current value.
func (o Operand) Read(mem *memory.Memory, proc *process.Process) uint32 {
	switch o.Mode {
	case isa.ModeImmediate:
		return bits.OfSigned(bits.ToSigned(o.Value, isa.ValueWidth), 32)
	case isa.ModeRelative, isa.ModeComputed:
		return mem.Read(o.address(mem, proc))
	case isa.ModeRegister:
		return proc.Register(o.Value)
	default:
		panic("operand: unknown addressing mode")
	}
}

// Write stores v through the operand. Writes to memory-backed modes are
// always deferred through mem.Write; writes to registers are immediate,
// since registers are process-local (spec.md §4.4). Write to the
// immediate mode returns ErrWriteToImmediate.
func (o Operand) Write(mem *memory.Memory, proc *process.Process, v uint32) error {
	switch o.Mode {
	case isa.ModeImmediate:
		return ErrWriteToImmediate
	case isa.ModeRelative, isa.ModeComputed:
		mem.Write(o.address(mem, proc), v)
		return nil
	case isa.ModeRegister:
		proc.SetRegister(o.Value, v)
		return nil
	default:
		panic("operand: unknown addressing mode")
	}
}
