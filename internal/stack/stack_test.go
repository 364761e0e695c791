package stack

import "testing"

func TestPushPop(t *testing.T) {
	var s Stack
	s.Push(42)
	if got := s.Pop(); got != 42 {
		t.Fatalf("push(42); pop() = %d, want 42", got)
	}
}

func TestTopWrapsAfterMatchedPushPop(t *testing.T) {
	var s Stack
	start := s.Top()
	for i := 0; i < 100; i++ {
		s.Push(uint32(i))
	}
	for i := 0; i < 100; i++ {
		s.Pop()
	}
	if s.Top() != start {
		t.Fatalf("top after matched pushes/pops = %d, want %d", s.Top(), start)
	}
}

func TestTopWrapsAroundCapacity(t *testing.T) {
	var s Stack
	for i := 0; i < Capacity; i++ {
		s.Push(uint32(i))
	}
	if s.Top() != 0 {
		t.Fatalf("top after Capacity pushes = %d, want 0", s.Top())
	}
}

func TestOverflowIsSilentRing(t *testing.T) {
	var s Stack
	for i := 0; i < Capacity+3; i++ {
		s.Push(uint32(i))
	}
	// The oldest three pushes (0, 1, 2) were overwritten by pushes
	// Capacity, Capacity+1, Capacity+2.
	if s.Top() != 3 {
		t.Fatalf("top = %d, want 3", s.Top())
	}
}

func TestCloneIsDeepAndEqual(t *testing.T) {
	var s Stack
	s.Push(1)
	s.Push(2)
	c := s.Clone()
	if !s.Equal(c) {
		t.Fatal("clone should be equal to original")
	}
	c.Push(3)
	if s.Equal(c) {
		t.Fatal("mutating the clone should not affect the original")
	}
}
