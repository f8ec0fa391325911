package renderer

import "sort"

// DepthQueue implements painter's-algorithm compositing for the projected
// scene: primitives are queued with their camera-space depth, then stroked
// far to near so near geometry covers far geometry without a z-buffer.
type DepthQueue struct {
	items []queued
}

type queued struct {
	zCam float32
	draw func()
}

// Add queues one primitive at the given camera-space depth.
func (q *DepthQueue) Add(zCam float32, draw func()) {
	q.items = append(q.items, queued{zCam: zCam, draw: draw})
}

// Len returns the number of queued primitives.
func (q *DepthQueue) Len() int {
	return len(q.items)
}

// Flush draws everything far to near and empties the queue. Equal depths keep
// their insertion order, so a flower's stem, glow and petals can be queued in
// paint order at the same depth.
func (q *DepthQueue) Flush() {
	sort.SliceStable(q.items, func(i, j int) bool {
		return q.items[i].zCam > q.items[j].zCam
	})
	for i := range q.items {
		q.items[i].draw()
	}
	q.items = q.items[:0]
}
