package renderer

import "testing"

func TestDepthQueueFarToNear(t *testing.T) {
	var q DepthQueue
	var order []string

	q.Add(2, func() { order = append(order, "mid") })
	q.Add(8, func() { order = append(order, "far") })
	q.Add(-1, func() { order = append(order, "near") })
	q.Flush()

	want := []string{"far", "mid", "near"}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("draw order %v, want %v", order, want)
		}
	}
}

func TestDepthQueueTiesKeepInsertionOrder(t *testing.T) {
	var q DepthQueue
	var order []string

	// Stem, glow and petals of one flower share a depth; they must paint in
	// the order they were queued.
	q.Add(3, func() { order = append(order, "stem") })
	q.Add(3, func() { order = append(order, "glow") })
	q.Add(3, func() { order = append(order, "petals") })
	q.Flush()

	want := []string{"stem", "glow", "petals"}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("tie order %v, want %v", order, want)
		}
	}
}

func TestDepthQueueReusableAfterFlush(t *testing.T) {
	var q DepthQueue
	n := 0

	q.Add(1, func() { n++ })
	q.Flush()
	if q.Len() != 0 {
		t.Fatalf("queue not emptied: %d items", q.Len())
	}

	q.Add(1, func() { n++ })
	q.Flush()
	if n != 2 {
		t.Errorf("draws across reuse = %d, want 2", n)
	}
}
