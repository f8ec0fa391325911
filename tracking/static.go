package tracking

import (
	"time"

	"github.com/chewxy/math32"
)

// StaticSource stands in for the webcam when none is available: a centered,
// always-detected face whose smile ramps up after a startup delay so the full
// awakening sequence still plays out unattended.
type StaticSource struct {
	SmileDelay time.Duration // How long to stay neutral before smiling

	started time.Time
}

// NewStaticSource creates a source that smiles after the given delay.
func NewStaticSource(smileDelay time.Duration) *StaticSource {
	return &StaticSource{SmileDelay: smileDelay}
}

// Start records the activation time.
func (s *StaticSource) Start() error {
	s.started = time.Now()
	return nil
}

// Snapshot returns a gently drifting head and the scripted smile.
func (s *StaticSource) Snapshot() Face {
	elapsed := float32(time.Since(s.started).Seconds())

	smile := float32(0)
	delay := float32(s.SmileDelay.Seconds())
	if elapsed > delay {
		smile = clampf((elapsed-delay)/2, 0, 1)
	}

	// A slow figure-eight drift keeps the parallax alive without a viewer.
	return Face{
		Detected:   true,
		HeadX:      0.15 * math32.Sin(elapsed*0.3),
		HeadY:      0.08 * math32.Sin(elapsed*0.6),
		Smile:      smile,
		Score:      1,
		Calibrated: true,
	}
}

// Stop is a no-op.
func (s *StaticSource) Stop() {}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
