package store

import "github.com/jonboulle/clockwork"

// idGenerator hands out millisecond timestamps, bumped past the previous id
// so that two records created in the same millisecond never collide.
// Callers hold the store mutex.
type idGenerator struct {
	clock clockwork.Clock
	last  int64
}

func (g *idGenerator) next() int64 {
	id := g.clock.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// observe makes sure future ids are above an id already in use.
func (g *idGenerator) observe(id int64) {
	if id > g.last {
		g.last = id
	}
}
