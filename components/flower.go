// Package components defines the ECS components for the flower field.
package components

// Position is a flower's world-space position. X and Z are fixed at field
// construction (lane position plus jitter); Y is recomputed every frame from
// the depth-normalized lane height plus the per-flower jitter and the
// breathing offset.
type Position struct {
	X, Y, Z float32
}

// Bloom is the wave-driven animation state of a flower.
type Bloom struct {
	// Life is imposed externally by the field's wave pass each frame, 0..1.
	Life float32

	// BloomMax is the monotonic latch: once a flower begins opening it never
	// visually regresses, even when Life transiently dips from ripple noise.
	BloomMax float32

	// Clock is the flower's internal animation time, de-synced at creation.
	Clock float32

	// Breath is the continuous additive vertical jitter, recomputed each
	// frame from Clock, depth and Life.
	Breath float32

	// Sway is the current stem midpoint offset, combining the per-flower
	// sinusoid with the shared wind field.
	Sway float32
}

// Blossom holds per-flower visual parameters randomized once at creation.
type Blossom struct {
	Size       float32 // Base size in world units
	Hue        float32 // 0..1 hue offset
	RoseTwist  float32 // Petal ring rotation offset
	StemPhase  float32 // Phase offset for sway and post-bloom breathing
	SwaySeed   float32 // Per-flower coordinate into the wind noise field
	LaneJitter float32 // Small fixed vertical offset off the lane height
}
