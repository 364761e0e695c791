// Package asm is the Core War assembler: text source in, a stream of
// 32-bit instruction words out (spec.md §6). It mirrors the teacher's
// two-stage channel pipeline (pkg/asm/asm.go in bassosimone-risc32):
// lex, then parse, then a final pass that resolves labels and encodes.
package asm

import (
	"fmt"
	"io"
)

// WordOrError carries either an assembled instruction word or an error
// that occurred assembling it, one per source instruction (blank and
// comment-only lines produce none). Mirrors the teacher's
// InstructionOrError.
type WordOrError struct {
	Word   uint32
	Err    error
	Lineno int
}

// StartAssembler starts the assembler in a background goroutine and
// returns a channel of its per-line results, in source order.
func StartAssembler(r io.Reader) <-chan WordOrError {
	out := make(chan WordOrError)
	go AssembleAsync(r, out)
	return out
}

// AssembleAsync runs the full pipeline and writes one WordOrError per
// source instruction to out, then closes it. A parse error or a
// duplicate label stops it early: it writes that single error and
// closes out without encoding anything.
func AssembleAsync(r io.Reader, out chan<- WordOrError) {
	defer close(out)

	var instructions []Instruction
	labels := make(map[string]int)
	addr := 0
	for instr := range StartParsing(StartLexing(r)) {
		if err := instr.Err(); err != nil {
			out <- WordOrError{Err: err, Lineno: instr.Line()}
			return
		}
		if label := instr.Label(); label != nil {
			if _, exists := labels[*label]; exists {
				out <- WordOrError{
					Err:    fmt.Errorf("%w: %q", ErrLabelRedefined, *label),
					Lineno: instr.Line(),
				}
				return
			}
			labels[*label] = addr
		}
		instructions = append(instructions, instr)
		addr++
	}

	for pc, instr := range instructions {
		word, err := instr.Encode(labels, pc)
		if err != nil {
			out <- WordOrError{Err: err, Lineno: instr.Line()}
			continue
		}
		out <- WordOrError{Word: word, Lineno: instr.Line()}
	}
}

// Assemble runs the pipeline to completion and returns the full word
// sequence, or the first error encountered.
func Assemble(r io.Reader) ([]uint32, error) {
	var words []uint32
	for woe := range StartAssembler(r) {
		if woe.Err != nil {
			return nil, fmt.Errorf("line %d: %w", woe.Lineno, woe.Err)
		}
		words = append(words, woe.Word)
	}
	return words, nil
}
