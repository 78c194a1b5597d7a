// Package sequence generates trade identifiers.
package sequence

import "sync/atomic"

// Generator hands out strictly increasing ids, starting at its initial
// value. Each Market owns its own Generator; there is no process-wide
// counter.
type Generator struct {
	start uint64
	next  atomic.Uint64
}

// New returns a generator whose first id is start.
func New(start uint64) *Generator {
	g := &Generator{start: start}
	g.next.Store(start)
	return g
}

// Next returns the next id. Safe for concurrent use.
func (g *Generator) Next() uint64 {
	return g.next.Add(1) - 1
}

// Peek returns the id the next call to Next will return.
func (g *Generator) Peek() uint64 {
	return g.next.Load()
}

// Reset rewinds the generator to its initial value.
func (g *Generator) Reset() {
	g.next.Store(g.start)
}
