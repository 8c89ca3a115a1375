package store

import "time"

// idGenerator hands out strictly increasing ids shaped like millisecond
// timestamps, which keeps ids from older corpora in the same range.
type idGenerator struct {
	last int64
	now  func() time.Time
}

func (g *idGenerator) observe(id int64) {
	if id > g.last {
		g.last = id
	}
}

func (g *idGenerator) next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
