package main

import (
	"encoding/binary"
	"fmt"
	"io"
)

// loadBinary reads a little-endian sequence of 32-bit words (spec.md
// §6). The input length must be a multiple of 4.
func loadBinary(r io.Reader) ([]uint32, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("binary length %d is not a multiple of 4", len(raw))
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return words, nil
}

// saveBinary writes words as a little-endian byte stream.
func saveBinary(w io.Writer, words []uint32) error {
	raw := make([]byte, len(words)*4)
	for i, word := range words {
		binary.LittleEndian.PutUint32(raw[i*4:], word)
	}
	_, err := w.Write(raw)
	return err
}
