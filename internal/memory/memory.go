// Package memory implements the shared circular memory arena: a ring of N
// words with a deferred-write buffer and a per-turn majority-merge
// commit. Writes issued by either player during a turn are invisible
// until Commit resolves them; this is the engine's core interference
// mechanic (spec.md §4.3).
package memory

// Size is the standard configuration's arena size in words.
const Size = 4096

// Memory is a ring of n words with a pending-write table.
type Memory struct {
	n       int
	cells   []uint32
	pending map[int][]uint32
}

// New returns a Memory of n words, all zeroed.
func New(n int) *Memory {
	return &Memory{
		n:       n,
		cells:   make([]uint32, n),
		pending: make(map[int][]uint32),
	}
}

// Len returns the number of words in the arena.
func (m *Memory) Len() int {
	return m.n
}

func (m *Memory) index(i int) int {
	i %= m.n
	if i < 0 {
		i += m.n
	}
	return i
}

// Read returns the committed value at address i (mod Len()).
func (m *Memory) Read(i int) uint32 {
	return m.cells[m.index(i)]
}

// Write buffers v as a candidate new value for address i (mod Len());
// it does not mutate the committed cell. Multiple writes to the same
// address in the same turn all become candidates for the majority merge
// performed at Commit.
func (m *Memory) Write(i int, v uint32) {
	idx := m.index(i)
	m.pending[idx] = append(m.pending[idx], v)
}

// Commit resolves every pending write with the bitwise majority rule and
// clears the pending table. For each address with pending values
// v1..vk, each of the 32 bits of the new committed value is:
//
//   - 0 if a strict majority of the vj have that bit clear,
//   - 1 if a strict majority have that bit set,
//   - the previous committed bit on a tie (including when k is even).
//
// Addresses with no pending writes are left unchanged.
func (m *Memory) Commit() {
	for idx, candidates := range m.pending {
		m.cells[idx] = majority(m.cells[idx], candidates)
	}
	m.pending = make(map[int][]uint32)
}

func majority(prev uint32, candidates []uint32) uint32 {
	var result uint32
	k := len(candidates)
	for bit := uint(0); bit < 32; bit++ {
		ones := 0
		for _, v := range candidates {
			if (v>>bit)&1 != 0 {
				ones++
			}
		}
		zeros := k - ones
		var set bool
		switch {
		case ones > zeros:
			set = true
		case zeros > ones:
			set = false
		default:
			set = (prev>>bit)&1 != 0
		}
		if set {
			result |= 1 << bit
		}
	}
	return result
}

// PendingLen reports how many addresses currently have buffered writes.
// Used by tests asserting the pending table is empty at turn boundaries
// (spec.md §8 invariant 2).
func (m *Memory) PendingLen() int {
	return len(m.pending)
}

// Load writes a sequence of words starting at offset (mod Len()),
// wrapping, directly into the committed cells. Used only at machine
// init to place the two compiled programs; it bypasses the deferred
// write buffer entirely.
func (m *Memory) Load(data []uint32, offset int) {
	for i, v := range data {
		m.cells[m.index(offset+i)] = v
	}
}
