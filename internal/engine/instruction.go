// Package engine implements instruction execution (spec.md §4.5, §4.6)
// and the two-player scheduler (spec.md §4.7). Instructions dispatch on
// a plain opcode switch rather than a virtual hierarchy, per spec.md §9.
package engine

import (
	"errors"
	"math"

	"github.com/bassosimone/corewar/internal/isa"
	"github.com/bassosimone/corewar/internal/memory"
	"github.com/bassosimone/corewar/internal/operand"
	"github.com/bassosimone/corewar/internal/process"
)

// The following sentinels mark the runtime errors that kill a process
// (spec.md §7). They never propagate past the scheduler.
var (
	// ErrDie is returned when the process executes DIE.
	ErrDie = errors.New("engine: DIE")

	// ErrInvalidOpcode is returned when decode produces an opcode with no
	// defined semantics. The current 16-opcode table fills all 4 bits of
	// the opcode field, so this is unreachable today; it is kept for
	// forward compatibility and defensive dispatch.
	ErrInvalidOpcode = errors.New("engine: undefined opcode")
)

// Instruction is a decoded, ready-to-execute instruction: an opcode and
// its two operands (unused operand slots are simply never read for
// opcodes of lower arity, per spec.md §3 "treat those operand fields as
// zero").
type Instruction struct {
	Op Opcode
	A  operand.Operand
	B  operand.Operand
}

// Opcode re-exports isa.Opcode so callers of this package don't need to
// also import isa for the common case.
type Opcode = isa.Opcode

// Decode reads the instruction word at mem.Read(pc) and builds its
// operand pair.
func Decode(mem *memory.Memory, pc int) Instruction {
	word := mem.Read(pc)
	op, modeA, valueA, modeB, valueB := isa.Decode(word)
	return Instruction{
		Op: op,
		A:  operand.Operand{Mode: modeA, Value: valueA},
		B:  operand.Operand{Mode: modeB, Value: valueB},
	}
}

// Outcome is the result of executing one instruction for one process.
type Outcome struct {
	// Child is the forked process, non-nil only after FORK.
	Child *process.Process
	// Err is non-nil when the process must die this turn (spec.md §7):
	// DIE, an undefined opcode, or a write to an immediate operand.
	Err error
}

// wrap reduces v into [0, n) for n > 0.
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Execute runs instr against mem and proc. Reads observe the memory
// snapshot committed at the start of the turn; writes to memory are
// buffered in mem's pending table. Register, stack, PC and Z mutations
// on proc are immediate. n is the arena size, used to wrap PC.
func Execute(instr Instruction, mem *memory.Memory, proc *process.Process, n int) Outcome {
	switch instr.Op {
	case isa.OpFORK:
		next := wrap(proc.PC+1, n)
		child := proc.Fork(next)
		proc.Z = false
		proc.PC = next
		return Outcome{Child: child}

	case isa.OpMOV:
		v := instr.A.Read(mem, proc)
		if err := instr.B.Write(mem, proc, v); err != nil {
			return Outcome{Err: err}
		}
		proc.PC = wrap(proc.PC+1, n)
		return Outcome{}

	case isa.OpNOT:
		result := ^instr.A.Read(mem, proc)
		return finishArith(instr, mem, proc, n, result)

	case isa.OpAND:
		result := instr.A.Read(mem, proc) & instr.B.Read(mem, proc)
		return finishArith(instr, mem, proc, n, result)

	case isa.OpOR:
		result := instr.A.Read(mem, proc) | instr.B.Read(mem, proc)
		return finishArith(instr, mem, proc, n, result)

	case isa.OpLS:
		a := int32(instr.A.Read(mem, proc))
		b := instr.B.Read(mem, proc)
		return finishArith(instr, mem, proc, n, logicalShift(b, a))

	case isa.OpAS:
		a := int32(instr.A.Read(mem, proc))
		b := instr.B.Read(mem, proc)
		return finishArith(instr, mem, proc, n, arithmeticShift(b, a))

	case isa.OpADD:
		result := instr.A.Read(mem, proc) + instr.B.Read(mem, proc)
		return finishArith(instr, mem, proc, n, result)

	case isa.OpSUB:
		// A - B as unsigned wraparound is bit-for-bit identical to signed
		// subtraction re-encoded into 32-bit two's complement.
		result := instr.A.Read(mem, proc) - instr.B.Read(mem, proc)
		return finishArith(instr, mem, proc, n, result)

	case isa.OpCMP:
		a, b := instr.A.Read(mem, proc), instr.B.Read(mem, proc)
		proc.Z = a == b
		proc.PC = wrap(proc.PC+1, n)
		return Outcome{}

	case isa.OpLT:
		a, b := int32(instr.A.Read(mem, proc)), int32(instr.B.Read(mem, proc))
		proc.Z = a < b
		proc.PC = wrap(proc.PC+1, n)
		return Outcome{}

	case isa.OpPOP:
		v := proc.Stack.Pop()
		if err := instr.A.Write(mem, proc, v); err != nil {
			return Outcome{Err: err}
		}
		proc.PC = wrap(proc.PC+1, n)
		return Outcome{}

	case isa.OpPUSH:
		proc.Stack.Push(instr.A.Read(mem, proc))
		proc.PC = wrap(proc.PC+1, n)
		return Outcome{}

	case isa.OpJMP:
		delta := int(int32(instr.A.Read(mem, proc)))
		proc.PC = wrap(proc.PC+delta, n)
		return Outcome{}

	case isa.OpBZ:
		if proc.Z {
			delta := int(int32(instr.A.Read(mem, proc)))
			// Intentional quirk (spec.md §9): BZ's target wraps modulo
			// 2^12, not modulo the arena size n, unlike JMP. Preserved
			// for compatibility with the original engine.
			proc.PC = wrap(proc.PC+delta, 1<<isa.ValueWidth)
		} else {
			proc.PC = wrap(proc.PC+1, n)
		}
		return Outcome{}

	case isa.OpDIE:
		return Outcome{Err: ErrDie}

	default:
		return Outcome{Err: ErrInvalidOpcode}
	}
}

// finishArith writes result to instr.B, sets Z from it, and advances PC.
// Shared tail for the seven "result-producing" opcodes (spec.md §4.5):
// NOT, AND, OR, LS, AS, ADD, SUB.
func finishArith(instr Instruction, mem *memory.Memory, proc *process.Process, n int, result uint32) Outcome {
	if err := instr.B.Write(mem, proc, result); err != nil {
		return Outcome{Err: err}
	}
	proc.Z = result == 0
	proc.PC = wrap(proc.PC+1, n)
	return Outcome{}
}

// logicalShift shifts b right by a (a > 0) or left by |a| (a < 0), both
// modulo 2^32. Shift amounts with magnitude >= 32 yield 0.
func logicalShift(b uint32, a int32) uint32 {
	if a >= 0 {
		if a >= 32 {
			return 0
		}
		return b >> uint(a)
	}
	if a == math.MinInt32 {
		return 0 // magnitude overflows int32; certainly >= 32
	}
	n := -a
	if n >= 32 {
		return 0
	}
	return b << uint(n)
}

// arithmeticShift is the sign-preserving variant of logicalShift. For
// a >= 0 it is equivalent to the source's loop of "shift right by one,
// OR in the original sign bit at position 31" repeated a times, i.e. a
// sign-extending right shift; for a >= 32 it saturates to all-ones or
// all-zeros depending on b's sign bit (spec.md §9 allows a constant-time
// implementation as long as results match for A in [-32, 32] and it
// saturates outside that range). For a < 0 it is a left shift by |a|,
// identical to logicalShift's negative branch.
func arithmeticShift(b uint32, a int32) uint32 {
	if a >= 0 {
		if a >= 32 {
			if int32(b) < 0 {
				return 0xFFFFFFFF
			}
			return 0
		}
		return uint32(int32(b) >> uint(a))
	}
	if a == math.MinInt32 {
		return 0
	}
	n := -a
	if n >= 32 {
		return 0
	}
	return b << uint(n)
}
