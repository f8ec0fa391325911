package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes the operator keys. The installation is meant to run
// unattended; everything here is for setup and debugging.
func (s *Scene) handleInput() {
	s.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		s.showOverlay = !s.showOverlay
		if !s.showOverlay {
			s.overlay.SmileOverride = 0
		}
	}
}

// handleResize propagates window size changes to the camera and glow target.
func (s *Scene) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	s.cam.Resize(float32(w), float32(h))
	s.glow.Resize(w, h)
}
