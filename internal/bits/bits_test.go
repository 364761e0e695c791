package bits

import "testing"

func TestExtract(t *testing.T) {
	w := uint32(0b1011_0110)
	if got := Extract(w, 0, 4); got != 0b0110 {
		t.Fatalf("Extract low nibble: got %b", got)
	}
	if got := Extract(w, 4, 4); got != 0b1011 {
		t.Fatalf("Extract high nibble: got %b", got)
	}
}

func TestSignedRoundTrip(t *testing.T) {
	for n := uint(1); n <= 32; n++ {
		lo := -(int64(1) << (n - 1))
		hi := (int64(1) << (n - 1)) - 1
		for _, v := range []int64{lo, lo + 1, -1, 0, 1, hi - 1, hi} {
			if v < lo || v > hi {
				continue
			}
			got := ToSigned(OfSigned(int32(v), n), n)
			if int64(got) != v {
				t.Fatalf("n=%d v=%d: round-trip got %d", n, v, got)
			}
		}
	}
}

func TestToSigned12(t *testing.T) {
	if ToSigned(0xFFF, 12) != -1 {
		t.Fatalf("0xFFF as 12-bit signed should be -1")
	}
	if ToSigned(0x7FF, 12) != 2047 {
		t.Fatalf("0x7FF as 12-bit signed should be 2047")
	}
	if ToSigned(0x800, 12) != -2048 {
		t.Fatalf("0x800 as 12-bit signed should be -2048")
	}
}

func TestOfSignedSignExtend32(t *testing.T) {
	got := OfSigned(ToSigned(0xFFE, 12), 32)
	if got != 0xFFFFFFFE {
		t.Fatalf("sign-extend -2 from 12 to 32 bits: got %#x", got)
	}
}

func TestBitOps(t *testing.T) {
	var w uint32
	w = SetBit(w, 3)
	if !Bit(w, 3) {
		t.Fatal("bit 3 should be set")
	}
	w = ToggleBit(w, 3)
	if Bit(w, 3) {
		t.Fatal("bit 3 should be cleared after toggle")
	}
	w = SetBit(w, 5)
	w = ClearBit(w, 5)
	if Bit(w, 5) {
		t.Fatal("bit 5 should be cleared")
	}
}
