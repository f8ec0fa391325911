package renderer

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bloomroom/camera"
	"github.com/pthm-cable/bloomroom/systems"
)

// PollenRenderer draws the drifting motes as additive soft dots. Pollen never
// occludes anything, so it is drawn in its own depth-sorted additive pass
// after the painter flush instead of competing in the queue.
type PollenRenderer struct {
	cam   *camera.Camera
	order []int
}

// NewPollenRenderer creates a pollen renderer.
func NewPollenRenderer(cam *camera.Camera) *PollenRenderer {
	return &PollenRenderer{cam: cam}
}

// Draw renders all particles back to front.
func (r *PollenRenderer) Draw(particles []systems.PollenParticle, project camera.Projector, pixelScale float32) {
	if len(particles) == 0 {
		return
	}

	r.order = r.order[:0]
	for i := range particles {
		r.order = append(r.order, i)
	}
	sort.Slice(r.order, func(a, b int) bool {
		za, _ := r.cam.Depth(particles[r.order[a]].Pos)
		zb, _ := r.cam.Depth(particles[r.order[b]].Pos)
		return za > zb
	})

	rl.BeginBlendMode(rl.BlendAdditive)
	for _, i := range r.order {
		p := &particles[i]

		proj, ok := project(p.Pos)
		if !ok {
			continue
		}

		alpha := p.Alpha()
		size := p.Size * proj.Scale * 0.01 * pixelScale
		if size < 0.5*pixelScale {
			size = 0.5 * pixelScale
		}

		center := rl.Vector2{X: proj.X * pixelScale, Y: proj.Y * pixelScale}
		color := hsv(p.Hue, 0.5, 1)
		rl.DrawCircleV(center, size*2.2, fade(color, 0.10*alpha*p.GlowMul))
		rl.DrawCircleV(center, size, fade(color, 0.55*alpha))
	}
	rl.EndBlendMode()
}
