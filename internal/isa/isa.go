// Package isa defines the Core War instruction word layout: the opcode
// table, the addressing-mode table, and the encode/decode functions that
// convert between a 32-bit word and its (opcode, operandA, operandB)
// fields. Both the engine and the assembler share these constants so the
// two always agree on the wire format.
//
// Instruction word layout (bit positions, LSB = 0):
//
//	0-3   opcode (0..15)
//	4-5   operand A addressing mode (0..3)
//	6-7   operand B addressing mode (0..3)
//	8-19  operand A value (12 bits)
//	20-31 operand B value (12 bits)
package isa

import "github.com/bassosimone/corewar/internal/bits"

// Opcode identifies one of the 16 instructions.
type Opcode uint32

// The following constants define the opcodes. We have 4 bits to define
// opcodes, so up to 16 opcodes; all 16 are in use.
const (
	OpFORK Opcode = iota
	OpMOV
	OpNOT
	OpAND
	OpOR
	OpLS
	OpAS
	OpADD
	OpSUB
	OpCMP
	OpLT
	OpPOP
	OpPUSH
	OpJMP
	OpBZ
	OpDIE
)

// Mnemonics maps each opcode to its assembly mnemonic.
var Mnemonics = map[Opcode]string{
	OpFORK: "FORK",
	OpMOV:  "MOV",
	OpNOT:  "NOT",
	OpAND:  "AND",
	OpOR:   "OR",
	OpLS:   "LS",
	OpAS:   "AS",
	OpADD:  "ADD",
	OpSUB:  "SUB",
	OpCMP:  "CMP",
	OpLT:   "LT",
	OpPOP:  "POP",
	OpPUSH: "PUSH",
	OpJMP:  "JMP",
	OpBZ:   "BZ",
	OpDIE:  "DIE",
}

// MnemonicToOpcode is the inverse of Mnemonics, built once at init time.
var MnemonicToOpcode = func() map[string]Opcode {
	m := make(map[string]Opcode, len(Mnemonics))
	for op, name := range Mnemonics {
		m[name] = op
	}
	return m
}()

// Mode identifies one of the four addressing modes.
type Mode uint32

const (
	ModeImmediate Mode = iota // $ — literal signed 12-bit value
	ModeRelative              // @ — mem[PC + sign12(V)]
	ModeComputed              // # — mem[PC + sign12(low12(mem[PC + sign12(V)]))]
	ModeRegister              // r — process register V mod 16
)

// ModePrefixes maps each addressing mode to its assembly prefix character.
var ModePrefixes = map[Mode]byte{
	ModeImmediate: '$',
	ModeRelative:  '@',
	ModeComputed:  '#',
	ModeRegister:  'r',
}

// PrefixToMode is the inverse of ModePrefixes.
var PrefixToMode = func() map[byte]Mode {
	m := make(map[byte]Mode, len(ModePrefixes))
	for mode, prefix := range ModePrefixes {
		m[prefix] = mode
	}
	return m
}()

// Bit field widths and offsets within the instruction word.
const (
	opcodeWidth = 4
	modeWidth   = 2
	valueWidth  = 12

	opcodeOffset = 0
	modeAOffset  = opcodeOffset + opcodeWidth
	modeBOffset  = modeAOffset + modeWidth
	valueAOffset = modeBOffset + modeWidth
	valueBOffset = valueAOffset + valueWidth
)

// ValueWidth is the bit width of an operand value field, exported for the
// assembler's range checks.
const ValueWidth = valueWidth

// Encode assembles an instruction word from its fields, masking each
// value to 12 bits. It packs the modes and values exactly as given and
// consults no arity table; callers pass ModeImmediate and value 0 for
// absent operands.
func Encode(op Opcode, modeA Mode, valueA uint32, modeB Mode, valueB uint32) uint32 {
	var w uint32
	w |= uint32(op) << opcodeOffset
	w |= uint32(modeA) << modeAOffset
	w |= uint32(modeB) << modeBOffset
	w |= (valueA & (1<<valueWidth - 1)) << valueAOffset
	w |= (valueB & (1<<valueWidth - 1)) << valueBOffset
	return w
}

// Decode splits an instruction word into its fields.
func Decode(w uint32) (op Opcode, modeA Mode, valueA uint32, modeB Mode, valueB uint32) {
	op = Opcode(bits.Extract(w, opcodeOffset, opcodeWidth))
	modeA = Mode(bits.Extract(w, modeAOffset, modeWidth))
	modeB = Mode(bits.Extract(w, modeBOffset, modeWidth))
	valueA = bits.Extract(w, valueAOffset, valueWidth)
	valueB = bits.Extract(w, valueBOffset, valueWidth)
	return
}
