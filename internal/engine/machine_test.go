package engine

import (
	"testing"

	"github.com/bassosimone/corewar/internal/bits"
	"github.com/bassosimone/corewar/internal/isa"
	"github.com/bassosimone/corewar/internal/memory"
)

func word(op isa.Opcode, modeA isa.Mode, a int32, modeB isa.Mode, b int32) uint32 {
	return isa.Encode(op, modeA, bits.OfSigned(a, isa.ValueWidth), modeB, bits.OfSigned(b, isa.ValueWidth))
}

func TestProgramTooLargeRefused(t *testing.T) {
	big := make([]uint32, memory.Size/2+1)
	_, err := NewStandard(big, []uint32{word(isa.OpDIE, isa.ModeImmediate, 0, isa.ModeImmediate, 0)})
	if err != ErrProgramTooLarge {
		t.Fatalf("expected ErrProgramTooLarge, got %v", err)
	}
}

// TestCountdownLoopEndsInDraw assembles the countdown loop of spec.md §8
// scenario (a) by hand and runs it as both players: each process
// executes 127 ADDs, branches to DIE, and both die on the same turn.
// (Against an opponent that only executes DIE, player 1 wins on the
// first turn instead, since only the opponent's cohort is then empty.)
func TestCountdownLoopEndsInDraw(t *testing.T) {
	prog := []uint32{
		word(isa.OpMOV, isa.ModeImmediate, 127, isa.ModeRegister, 1), // 0: MOV $127 r1
		word(isa.OpADD, isa.ModeImmediate, -1, isa.ModeRegister, 1),  // 1 (&loop): ADD $-1 r1
		word(isa.OpBZ, isa.ModeImmediate, 2, isa.ModeImmediate, 0),   // 2: BZ $&end (end=4, delta=2)
		word(isa.OpJMP, isa.ModeImmediate, -2, isa.ModeImmediate, 0), // 3: JMP $&loop (loop=1, delta=-2)
		word(isa.OpDIE, isa.ModeImmediate, 0, isa.ModeImmediate, 0),  // 4 (&end): DIE
	}
	opponent := prog

	m, err := NewStandard(prog, opponent)
	if err != nil {
		t.Fatalf("NewStandard: %v", err)
	}
	status := m.Run()
	if status != Draw {
		t.Fatalf("status = %s, want draw", status)
	}
}

// TestMajorityMergeAcrossPlayers assembles spec.md §8 scenario (b): both
// players write to the same address on turn 0.
func TestMajorityMergeAcrossPlayers(t *testing.T) {
	target := DefaultOffset1 + 100
	relFromP1 := target - DefaultOffset1
	relFromP2 := target - DefaultOffset2

	prog1 := []uint32{
		word(isa.OpMOV, isa.ModeImmediate, 0x00FF, isa.ModeRelative, int32(relFromP1)),
		word(isa.OpDIE, 0, 0, 0, 0),
	}
	prog2 := []uint32{
		word(isa.OpMOV, isa.ModeImmediate, 0x000F, isa.ModeRelative, int32(relFromP2)),
		word(isa.OpDIE, 0, 0, 0, 0),
	}
	m, err := NewStandard(prog1, prog2)
	if err != nil {
		t.Fatalf("NewStandard: %v", err)
	}
	m.Step()
	if got := m.Mem.Read(target); got != 0x0000000F {
		t.Fatalf("merged value = %#x, want 0xf", got)
	}
}

// TestForkCohortNeverExceedsForkCount is spec.md §8 scenario (c): a
// program of FORK; DIE, trace cohort size across turns.
func TestForkCohortNeverExceedsForkCount(t *testing.T) {
	prog := []uint32{
		word(isa.OpFORK, 0, 0, 0, 0),
		word(isa.OpDIE, 0, 0, 0, 0),
	}
	// The opponent spins forever so player 1's cohort runs to empty on
	// its own, letting the FORK/DIE trajectory play out fully.
	opponent := []uint32{word(isa.OpJMP, isa.ModeImmediate, 0, 0, 0)}
	m, err := NewStandard(prog, opponent)
	if err != nil {
		t.Fatalf("NewStandard: %v", err)
	}
	forks := 0
	steps := 0
	for m.Status() == Running && steps < 10_000 {
		before := m.Cohort1Size()
		m.Step()
		steps++
		after := m.Cohort1Size()
		if after > before {
			forks++
		}
		if m.Cohort1Size() > forks+1 {
			t.Fatalf("cohort size %d exceeds forks executed (%d) + 1", m.Cohort1Size(), forks)
		}
	}
	if m.Status() != Player2Wins {
		t.Fatalf("status = %s, want player2-wins once player 1's cohort dies out", m.Status())
	}
}

func TestStepLeavesNoPendingWrites(t *testing.T) {
	prog := []uint32{
		word(isa.OpMOV, isa.ModeImmediate, 1, isa.ModeRelative, 1),
		word(isa.OpDIE, 0, 0, 0, 0),
	}
	opponent := []uint32{word(isa.OpDIE, 0, 0, 0, 0)}
	m, _ := NewStandard(prog, opponent)
	m.Step()
	if m.Mem.PendingLen() != 0 {
		t.Fatalf("pending writes should be empty after Step, got %d", m.Mem.PendingLen())
	}
}

func TestStatusPlayer1WinsWhenOnlyPlayer2Dies(t *testing.T) {
	prog1 := []uint32{word(isa.OpJMP, isa.ModeImmediate, 0, 0, 0)} // infinite no-op loop
	prog2 := []uint32{word(isa.OpDIE, 0, 0, 0, 0)}
	m, err := NewStandard(prog1, prog2)
	if err != nil {
		t.Fatalf("NewStandard: %v", err)
	}
	m.Step()
	if m.Status() != Player1Wins {
		t.Fatalf("status = %s, want player1-wins", m.Status())
	}
}
