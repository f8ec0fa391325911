package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bloomroom/camera"
)

// hsv wraps raylib's HSV conversion with the 0..1 hue convention used by the
// blossom components.
func hsv(h, s, v float32) rl.Color {
	h -= float32(int(h))
	if h < 0 {
		h++
	}
	return rl.ColorFromHSV(h*360, s, v)
}

// fade scales a color's alpha.
func fade(c rl.Color, alpha float32) rl.Color {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return rl.Fade(c, alpha)
}

// blend mixes two colors, t=0 giving a and t=1 giving b.
func blend(a, b rl.Color, t float32) rl.Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: uint8(float32(a.A) + (float32(b.A)-float32(a.A))*t),
	}
}

// strokePolyline projects a world-space polyline and strokes the visible
// segments. Segments with an endpoint behind the near plane are dropped
// rather than clipped; the sampling density keeps the gaps subpixel.
func strokePolyline(project camera.Projector, pts []camera.Point3, pixelScale, thickness float32, color rl.Color) {
	var prev camera.Projection
	havePrev := false
	for _, p := range pts {
		proj, ok := project(p)
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			rl.DrawLineEx(
				rl.Vector2{X: prev.X * pixelScale, Y: prev.Y * pixelScale},
				rl.Vector2{X: proj.X * pixelScale, Y: proj.Y * pixelScale},
				thickness*pixelScale,
				color,
			)
		}
		prev = proj
		havePrev = true
	}
}
