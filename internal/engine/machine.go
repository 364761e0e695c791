package engine

import (
	"errors"

	"github.com/bassosimone/corewar/internal/memory"
	"github.com/bassosimone/corewar/internal/process"
)

// DefaultOffset1 and DefaultOffset2 are the two programs' default load
// offsets in the standard memory.Size configuration.
const (
	DefaultOffset1 = 0
	DefaultOffset2 = memory.Size / 2
)

// Status is the machine's win-condition state (spec.md §4.7 status()).
type Status int

const (
	// Running means both cohorts are still non-empty.
	Running Status = iota
	// Draw means both cohorts emptied on the same turn.
	Draw
	// Player1Wins means only player 1's cohort is non-empty.
	Player1Wins
	// Player2Wins means only player 2's cohort is non-empty.
	Player2Wins
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Draw:
		return "draw"
	case Player1Wins:
		return "player1-wins"
	case Player2Wins:
		return "player2-wins"
	default:
		return "unknown"
	}
}

// ErrProgramTooLarge is returned by New when a program is longer than
// half the arena (spec.md §9: the correct guard is len <= n/2, not the
// source's typo'd len(program > 2048)).
var ErrProgramTooLarge = errors.New("engine: program exceeds half the arena size")

// queue is a plain FIFO of live processes. Forked children are always
// appended to the tail, so they never run ahead of processes already
// queued this turn (spec.md §9 "Process queue").
type queue struct {
	procs []*process.Process
}

func (q *queue) popFront() *process.Process {
	if len(q.procs) == 0 {
		return nil
	}
	p := q.procs[0]
	q.procs = q.procs[1:]
	return p
}

func (q *queue) pushBack(p *process.Process) {
	q.procs = append(q.procs, p)
}

func (q *queue) empty() bool {
	return len(q.procs) == 0
}

// Machine is the two-player round-robin scheduler (spec.md §4.7).
type Machine struct {
	Mem *memory.Memory
	p1  queue
	p2  queue
}

// New constructs a Machine, loading program1 at offset1 and program2 at
// offset2 in an n-word arena, and seeding each cohort with one process
// whose PC starts at the respective offset. It refuses to construct the
// machine if either program is larger than n/2 words (spec.md §7).
func New(n int, program1 []uint32, offset1 int, program2 []uint32, offset2 int) (*Machine, error) {
	if len(program1) > n/2 || len(program2) > n/2 {
		return nil, ErrProgramTooLarge
	}
	mem := memory.New(n)
	mem.Load(program1, offset1)
	mem.Load(program2, offset2)
	m := &Machine{Mem: mem}
	m.p1.pushBack(process.New(wrap(offset1, n)))
	m.p2.pushBack(process.New(wrap(offset2, n)))
	return m, nil
}

// NewStandard builds a Machine with the standard 4096-word arena and the
// default load offsets (0 and n/2).
func NewStandard(program1, program2 []uint32) (*Machine, error) {
	return New(memory.Size, program1, DefaultOffset1, program2, DefaultOffset2)
}

// Cohort1Size and Cohort2Size report the number of live processes in
// each player's cohort, mostly useful for tests and tracing.
func (m *Machine) Cohort1Size() int { return len(m.p1.procs) }
func (m *Machine) Cohort2Size() int { return len(m.p2.procs) }

// Status reports the current win condition.
func (m *Machine) Status() Status {
	empty1, empty2 := m.p1.empty(), m.p2.empty()
	switch {
	case empty1 && empty2:
		return Draw
	case empty1:
		return Player2Wins
	case empty2:
		return Player1Wins
	default:
		return Running
	}
}

// Step advances the machine by one turn: pop the head process from each
// non-empty cohort, decode and execute its current instruction against
// the committed memory snapshot, requeue survivors and forked children,
// then commit every write buffered during the turn in one majority
// merge pass (spec.md §4.7).
func (m *Machine) Step() {
	n := m.Mem.Len()

	if !m.p1.empty() {
		p := m.p1.popFront()
		instr := Decode(m.Mem, p.PC)
		outcome := Execute(instr, m.Mem, p, n)
		// The parent is re-queued before its forked child, so a child
		// never runs ahead of the parent that spawned it (spec.md §4.6).
		if outcome.Err == nil {
			m.p1.pushBack(p)
		}
		if outcome.Child != nil {
			m.p1.pushBack(outcome.Child)
		}
	}

	if !m.p2.empty() {
		p := m.p2.popFront()
		instr := Decode(m.Mem, p.PC)
		outcome := Execute(instr, m.Mem, p, n)
		if outcome.Err == nil {
			m.p2.pushBack(p)
		}
		if outcome.Child != nil {
			m.p2.pushBack(outcome.Child)
		}
	}

	m.Mem.Commit()
}

// Run steps the machine until Status() is no longer Running.
func (m *Machine) Run() Status {
	for m.Status() == Running {
		m.Step()
	}
	return m.Status()
}
