package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bassosimone/corewar/internal/isa"
)

// StartParsing starts a goroutine that consumes lexed lines from in and
// turns each into an Instruction, validating the mnemonic, its operand
// count, and operand writability against the arity table in arity.go.
// Mirrors the teacher's StartParsing stage in the asm.go pipeline.
func StartParsing(in <-chan line) <-chan Instruction {
	out := make(chan Instruction)
	go parseAsync(in, out)
	return out
}

func parseAsync(in <-chan line, out chan<- Instruction) {
	defer close(out)
	for l := range in {
		if l.Err != nil {
			out <- errInstruction{err: l.Err, lineno: l.Lineno}
			continue
		}
		instr, err := parseLine(l)
		if err != nil {
			out <- errInstruction{err: err, lineno: l.Lineno}
			continue
		}
		out <- instr
	}
}

func parseLine(l line) (Instruction, error) {
	if l.Body == "" {
		return nil, fmt.Errorf("%w: line %d", ErrLabelOnlyLine, l.Lineno)
	}
	fields := strings.Fields(l.Body)
	mnemonic := strings.ToUpper(fields[0])
	op, ok := isa.MnemonicToOpcode[mnemonic]
	if !ok {
		return nil, fmt.Errorf("%w: line %d: unknown mnemonic %q", ErrParse, l.Lineno, fields[0])
	}
	operandTokens := fields[1:]
	want := shapes[op]
	if len(operandTokens) != want.operands {
		return nil, fmt.Errorf("%w: line %d: %s takes %d operand(s), got %d",
			ErrOperandArity, l.Lineno, mnemonic, want.operands, len(operandTokens))
	}

	operands := make([]*operandRef, len(operandTokens))
	for i, tok := range operandTokens {
		ref, err := parseOperand(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", ErrParse, l.Lineno, err)
		}
		if want.writableOperand == i+1 && ref.mode == isa.ModeImmediate {
			return nil, fmt.Errorf("%w: line %d: operand %d of %s must be writable, got immediate",
				ErrOperandArity, l.Lineno, i+1, mnemonic)
		}
		operands[i] = ref
	}

	instr := &parsedInstruction{lineno: l.Lineno, label: l.Label, op: op}
	if len(operands) > 0 {
		instr.a = operands[0]
	}
	if len(operands) > 1 {
		instr.b = operands[1]
	}
	return instr, nil
}

// parseOperand parses a single operand token: a one-character addressing
// mode prefix followed by either a decimal integer or an &label
// reference.
func parseOperand(tok string) (*operandRef, error) {
	if len(tok) < 2 {
		return nil, fmt.Errorf("malformed operand %q", tok)
	}
	mode, ok := isa.PrefixToMode[tok[0]]
	if !ok {
		return nil, fmt.Errorf("unknown addressing-mode prefix %q", tok[:1])
	}
	rest := tok[1:]
	if strings.HasPrefix(rest, "&") {
		name := rest[1:]
		if name == "" {
			return nil, fmt.Errorf("empty label reference in operand %q", tok)
		}
		return &operandRef{mode: mode, isLabel: true, label: name}, nil
	}
	v, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed operand value %q", tok)
	}
	return &operandRef{mode: mode, literal: v}, nil
}
