package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Item is a keyed rectangle stored in a QuadTree.
type Item[K comparable] struct {
	Key K
	BB  cp.BB
}

// QuadTree is a broad-phase index rebuilt from scratch every tick. Build it on
// one goroutine, then Retrieve from any number.
type QuadTree[K comparable] struct {
	level      int
	maxObjects int
	maxLevels  int
	bounds     cp.BB
	objects    []Item[K]
	nodes      *[4]QuadTree[K]
}

func NewQuadTree[K comparable](bounds cp.BB, maxObjects, maxLevels int) *QuadTree[K] {
	if maxObjects < 1 {
		maxObjects = 1
	}
	if maxLevels < 0 {
		maxLevels = 0
	}
	return &QuadTree[K]{bounds: bounds, maxObjects: maxObjects, maxLevels: maxLevels}
}

func (q *QuadTree[K]) Bounds() cp.BB {
	return q.bounds
}

// Len counts every stored item.
func (q *QuadTree[K]) Len() int {
	n := len(q.objects)
	if q.nodes != nil {
		for i := range q.nodes {
			n += q.nodes[i].Len()
		}
	}
	return n
}

// Depth returns the deepest level in use, with the root at 0.
func (q *QuadTree[K]) Depth() int {
	if q.nodes == nil {
		return q.level
	}
	d := q.level
	for i := range q.nodes {
		d = max(d, q.nodes[i].Depth())
	}
	return d
}

// Insert stores bb under key. Items that straddle a split line stay at the
// deepest node that fully contains them.
func (q *QuadTree[K]) Insert(key K, bb cp.BB) {
	if q.nodes != nil {
		if idx := q.index(bb); idx != -1 {
			q.nodes[idx].Insert(key, bb)
			return
		}
	}

	q.objects = append(q.objects, Item[K]{Key: key, BB: bb})

	if len(q.objects) <= q.maxObjects || q.level >= q.maxLevels {
		return
	}
	if q.nodes == nil {
		q.split()
	}

	kept := q.objects[:0]
	for _, it := range q.objects {
		if idx := q.index(it.BB); idx != -1 {
			q.nodes[idx].Insert(it.Key, it.BB)
			continue
		}
		kept = append(kept, it)
	}
	clear(q.objects[len(kept):])
	q.objects = kept
}

// Retrieve appends every item that may intersect bb. It never misses an item
// whose rectangle intersects bb.
func (q *QuadTree[K]) Retrieve(bb cp.BB) []Item[K] {
	return q.retrieve(nil, bb)
}

func (q *QuadTree[K]) retrieve(out []Item[K], bb cp.BB) []Item[K] {
	if q.nodes != nil {
		if idx := q.index(bb); idx != -1 {
			out = q.nodes[idx].retrieve(out, bb)
		} else {
			// Insert routes by split lines only, so children may hold items
			// outside their own bounds.
			for i := range q.nodes {
				out = q.nodes[i].retrieve(out, bb)
			}
		}
	}
	return append(out, q.objects...)
}

func (q *QuadTree[K]) split() {
	level := q.level + 1
	if level > q.maxLevels {
		panic(fmt.Sprintf("physics: quadtree split past max level %d", q.maxLevels))
	}
	b := q.bounds
	midX := (b.L + b.R) / 2
	midY := (b.B + b.T) / 2

	child := func(l, bot, r, top float64) QuadTree[K] {
		return QuadTree[K]{
			level:      level,
			maxObjects: q.maxObjects,
			maxLevels:  q.maxLevels,
			bounds:     cp.BB{L: l, B: bot, R: r, T: top},
		}
	}
	q.nodes = &[4]QuadTree[K]{
		child(midX, b.B, b.R, midY),
		child(b.L, b.B, midX, midY),
		child(b.L, midY, midX, b.T),
		child(midX, midY, b.R, b.T),
	}
}

// index returns the child that fully contains bb, or -1 when bb touches or
// crosses a split line.
func (q *QuadTree[K]) index(bb cp.BB) int {
	midX := (q.bounds.L + q.bounds.R) / 2
	midY := (q.bounds.B + q.bounds.T) / 2

	lower := bb.B < midY && bb.T < midY
	upper := bb.B > midY

	switch {
	case bb.L < midX && bb.R < midX:
		if lower {
			return 1
		}
		if upper {
			return 2
		}
	case bb.L > midX:
		if lower {
			return 0
		}
		if upper {
			return 3
		}
	}
	return -1
}
