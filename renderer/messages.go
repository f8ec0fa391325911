package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Message is one timed caption shown at the bottom of the screen.
type Message struct {
	Text string
	At   float32 // Seconds into the sequence
	Dur  float32 // Seconds on screen
}

// Sequencer plays a fixed caption script against its own clock. The clock
// only runs while the sequencer is running, so the script can be keyed to a
// state transition rather than wall time.
type Sequencer struct {
	msgs    []Message
	clock   float32
	running bool
}

// NewSequencer creates a stopped sequencer for the given script.
func NewSequencer(msgs []Message) *Sequencer {
	return &Sequencer{msgs: msgs}
}

// Start begins (or restarts) the script.
func (s *Sequencer) Start() {
	s.clock = 0
	s.running = true
}

// Update advances the script clock.
func (s *Sequencer) Update(dt float32) {
	if s.running {
		s.clock += dt
	}
}

// Done reports whether every message has finished.
func (s *Sequencer) Done() bool {
	if !s.running {
		return false
	}
	for _, m := range s.msgs {
		if s.clock < m.At+m.Dur {
			return false
		}
	}
	return true
}

// Current returns the active message and its opacity, fading over the first
// and last half second of its window. ok is false between messages.
func (s *Sequencer) Current() (text string, alpha float32, ok bool) {
	if !s.running {
		return "", 0, false
	}
	for _, m := range s.msgs {
		local := s.clock - m.At
		if local < 0 || local > m.Dur {
			continue
		}
		alpha = 1.0
		if local < 0.5 {
			alpha = local / 0.5
		} else if rem := m.Dur - local; rem < 0.5 {
			alpha = rem / 0.5
		}
		return m.Text, alpha, true
	}
	return "", 0, false
}

// Draw renders the active caption centered near the bottom of the screen.
func (s *Sequencer) Draw(screenW, screenH int32) {
	text, alpha, ok := s.Current()
	if !ok {
		return
	}

	const fontSize = 24
	width := rl.MeasureText(text, fontSize)
	x := (screenW - width) / 2
	y := screenH - 80
	rl.DrawText(text, x, y, fontSize, fade(rl.Color{R: 255, G: 210, B: 220, A: 255}, alpha))
}
