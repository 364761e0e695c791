package isa

import "testing"

func TestDecodeRoundTrip(t *testing.T) {
	for op := Opcode(0); op < 16; op++ {
		for modeA := Mode(0); modeA < 4; modeA++ {
			for modeB := Mode(0); modeB < 4; modeB++ {
				for _, v := range []uint32{0, 1, 0xFFF, 0x800, 0x7FF} {
					w := Encode(op, modeA, v, modeB, v)
					gotOp, gotModeA, gotValueA, gotModeB, gotValueB := Decode(w)
					if gotOp != op || gotModeA != modeA || gotModeB != modeB ||
						gotValueA != v || gotValueB != v {
						t.Fatalf("round trip mismatch for op=%d modeA=%d modeB=%d v=%#x: got op=%d modeA=%d valueA=%#x modeB=%d valueB=%#x",
							op, modeA, modeB, v, gotOp, gotModeA, gotValueA, gotModeB, gotValueB)
					}
				}
			}
		}
	}
}

func TestMnemonicTableIsBijective(t *testing.T) {
	if len(Mnemonics) != 16 {
		t.Fatalf("expected 16 opcodes, got %d", len(Mnemonics))
	}
	for op, name := range Mnemonics {
		if MnemonicToOpcode[name] != op {
			t.Fatalf("mnemonic %s does not round-trip to opcode %d", name, op)
		}
	}
}

func TestModePrefixTableIsBijective(t *testing.T) {
	for mode, prefix := range ModePrefixes {
		if PrefixToMode[prefix] != mode {
			t.Fatalf("prefix %c does not round-trip to mode %d", prefix, mode)
		}
	}
}

func TestFieldsDoNotOverlap(t *testing.T) {
	w := Encode(OpMOV, ModeRegister, 0xFFF, ModeRegister, 0)
	op, _, valueA, _, valueB := Decode(w)
	if op != OpMOV {
		t.Fatalf("opcode leaked into by operand A field: %d", op)
	}
	if valueA != 0xFFF {
		t.Fatalf("valueA = %#x, want 0xFFF", valueA)
	}
	if valueB != 0 {
		t.Fatalf("valueB = %#x, want 0", valueB)
	}
}
