package game

import (
	"github.com/pthm-cable/bloomroom/config"
	"github.com/pthm-cable/bloomroom/systems"
)

// State is the installation's world state.
type State int

const (
	StateDormant State = iota
	StateAwakening
	StateAlive
)

// String returns the state name used in logs and telemetry.
func (s State) String() string {
	switch s {
	case StateDormant:
		return "DORMANT"
	case StateAwakening:
		return "AWAKENING"
	case StateAlive:
		return "ALIVE"
	}
	return "UNKNOWN"
}

// Director runs the installation's dramaturgy: it decides when the invitation
// appears, when a smile counts, and how the world energy rises afterwards.
// The awakening is one-way; once triggered the world never goes back to
// sleep, no matter what the face does.
type Director struct {
	revealDelay    float32
	awakenDuration float32
	smileThreshold float32
	smileSustain   float32

	state       State
	presence    float32 // Continuous seconds with a detected face, pre-reveal
	sustain     float32 // Continuous seconds above the smile threshold
	awakenClock float32 // Seconds since the trigger
	reveal      bool
}

// NewDirector creates a dormant director from config.
func NewDirector(cfg config.DirectorConfig) *Director {
	return &Director{
		revealDelay:    float32(cfg.RevealDelay),
		awakenDuration: float32(cfg.AwakenDuration),
		smileThreshold: float32(cfg.SmileThreshold),
		smileSustain:   float32(cfg.SmileSustain),
	}
}

// Update advances the state machine one frame. textVisible tells the director
// whether the invitation is currently readable; a smile only counts once the
// viewer has been asked.
func (d *Director) Update(dt float32, faceDetected bool, smile float32, textVisible bool) {
	switch d.state {
	case StateDormant:
		if faceDetected {
			d.presence += dt
		} else {
			d.presence = 0
		}
		if d.presence >= d.revealDelay {
			d.reveal = true
		}

		// The gate needs the full conjunction, continuously. Any gap in
		// detection or any dip below the threshold starts the sustain over.
		if textVisible && faceDetected && smile > d.smileThreshold {
			d.sustain += dt
		} else {
			d.sustain = 0
		}
		if d.sustain >= d.smileSustain {
			d.state = StateAwakening
			d.awakenClock = 0
		}

	case StateAwakening:
		d.awakenClock += dt
		if d.awakenClock >= d.awakenDuration {
			d.state = StateAlive
		}

	case StateAlive:
		// Terminal.
	}
}

// State returns the current world state.
func (d *Director) State() State {
	return d.state
}

// ShouldRevealText reports whether the invitation should be on screen.
// Latched; the text object runs its own fade-out after the trigger.
func (d *Director) ShouldRevealText() bool {
	return d.reveal
}

// Triggered reports whether the smile has landed.
func (d *Director) Triggered() bool {
	return d.state != StateDormant
}

// Energy returns the world energy driving the wave, 0..1. It eases through
// the awakening and is pinned at 1 once alive so the field can never
// partially wilt from numeric drift.
func (d *Director) Energy() float32 {
	switch d.state {
	case StateDormant:
		return 0
	case StateAlive:
		return 1
	default:
		t := d.awakenClock / d.awakenDuration
		if t > 1 {
			t = 1
		}
		return systems.Smoothstep(t)
	}
}
