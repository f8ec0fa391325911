package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bloomroom/camera"
	"github.com/pthm-cable/bloomroom/systems"
)

// The invitation text, stroked as letterform segments on the back wall. It
// fades in letter by letter once the viewer has been present for a while,
// and fades back out in reverse once the smile lands.

type textState int

const (
	textHidden textState = iota
	textFadingIn
	textVisible
	textFadingOut
	textGone
)

const (
	letterStagger = 0.3 // Seconds between letters starting their fade
	letterFade    = 0.5 // Seconds for one letter to fade
	dismissDelay  = 3.0 // Seconds the text lingers after the smile lands
)

type stroke []rl.Vector2

// Letterforms in a local 0..1 box, y up.
var letterStrokes = map[rune][]stroke{
	'S': {{{1, 1}, {0, 1}, {0, 0.5}, {1, 0.5}, {1, 0}, {0, 0}}},
	'M': {{{0, 0}, {0, 1}, {0.5, 0.45}, {1, 1}, {1, 0}}},
	'I': {{{0.2, 1}, {0.8, 1}}, {{0.5, 1}, {0.5, 0}}, {{0.2, 0}, {0.8, 0}}},
	'L': {{{0, 1}, {0, 0}, {1, 0}}},
	'E': {{{1, 1}, {0, 1}, {0, 0}, {1, 0}}, {{0, 0.5}, {0.7, 0.5}}},
}

// SmileText renders the staged invitation on the back wall.
type SmileText struct {
	word    string
	z       float32
	centerY float32
	letterW float32
	letterH float32
	gap     float32

	state textState
	clock float32
}

// NewSmileText places the word on the back wall at the given depth and
// vertical center.
func NewSmileText(z, centerY float32) *SmileText {
	return &SmileText{
		word:    "SMILE",
		z:       z,
		centerY: centerY,
		letterW: 0.55,
		letterH: 0.8,
		gap:     0.2,
	}
}

// Reveal starts the fade-in. Idempotent.
func (t *SmileText) Reveal() {
	if t.state == textHidden {
		t.state = textFadingIn
		t.clock = 0
	}
}

// Dismiss starts the delayed fade-out. Idempotent, and a no-op before the
// text has appeared.
func (t *SmileText) Dismiss() {
	if t.state == textFadingIn || t.state == textVisible {
		t.state = textFadingOut
		t.clock = 0
	}
}

// Visible reports whether the text is fully readable, which is what gates the
// smile detector: the viewer must have been shown the word before their smile
// counts.
func (t *SmileText) Visible() bool {
	return t.state == textVisible
}

// Gone reports whether the fade-out has completed.
func (t *SmileText) Gone() bool {
	return t.state == textGone
}

// Update advances the letter animation.
func (t *SmileText) Update(dt float32) {
	switch t.state {
	case textFadingIn:
		t.clock += dt
		if t.clock >= float32(len(t.word)-1)*letterStagger+letterFade {
			t.state = textVisible
		}
	case textFadingOut:
		t.clock += dt
		last := dismissDelay + float32(len(t.word)-1)*letterStagger + letterFade
		if t.clock >= last {
			t.state = textGone
		}
	}
}

// letterAlpha returns the opacity of one letter for the current state.
// Fade-in runs left to right; fade-out lingers, then runs right to left.
// Each fade eases through a smoothstep so letters swell in rather than ramp.
func (t *SmileText) letterAlpha(index int) float32 {
	switch t.state {
	case textHidden, textGone:
		return 0
	case textVisible:
		return 1
	case textFadingIn:
		start := float32(index) * letterStagger
		return systems.Smoothstep((t.clock - start) / letterFade)
	case textFadingOut:
		start := float32(dismissDelay) + float32(len(t.word)-1-index)*letterStagger
		return 1 - systems.Smoothstep((t.clock-start)/letterFade)
	}
	return 0
}

// Draw strokes the visible letters with a layered glow.
func (t *SmileText) Draw(project camera.Projector, pixelScale float32) {
	if t.state == textHidden || t.state == textGone {
		return
	}

	total := float32(len(t.word))*t.letterW + float32(len(t.word)-1)*t.gap
	x := -total / 2
	bottom := t.centerY - t.letterH/2

	var pts []camera.Point3
	for i, r := range t.word {
		alpha := t.letterAlpha(i)
		if alpha > 0 {
			for _, s := range letterStrokes[r] {
				pts = pts[:0]
				for _, v := range s {
					pts = append(pts, camera.Point3{
						X: x + v.X*t.letterW,
						Y: bottom + v.Y*t.letterH,
						Z: t.z,
					})
				}
				// Halo passes under a crisp core.
				strokePolyline(project, pts, pixelScale, 9, fade(rl.Color{R: 255, G: 120, B: 160, A: 255}, 0.10*alpha))
				strokePolyline(project, pts, pixelScale, 4, fade(rl.Color{R: 255, G: 180, B: 200, A: 255}, 0.35*alpha))
				strokePolyline(project, pts, pixelScale, 1.5, fade(rl.White, 0.9*alpha))
			}
		}
		x += t.letterW + t.gap
	}
}
