package renderer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bloomroom/camera"
)

// RoomRenderer draws the wireframe room: a red gridded box receding away from
// the screen plane. The grid is the main depth cue for the head-coupled
// parallax, so every line is depth-shaded toward black at the far end.
type RoomRenderer struct {
	Width     float32
	Height    float32
	Depth     float32
	FloorY    float32
	FloorStep float32
	WallStep  float32
	LineWidth float32

	hueCycle float32 // Degrees, advanced when the room goes rainbow
}

// NewRoomRenderer creates a room of the given dimensions with the floor at
// floorY.
func NewRoomRenderer(width, height, depth, floorY, floorStep, wallStep float32) *RoomRenderer {
	return &RoomRenderer{
		Width:     width,
		Height:    height,
		Depth:     depth,
		FloorY:    floorY,
		FloorStep: floorStep,
		WallStep:  wallStep,
		LineWidth: 1.5,
	}
}

// Update advances the rainbow hue cycle while the world is fully alive.
func (r *RoomRenderer) Update(dt, energy float32) {
	if energy > 0.8 {
		r.hueCycle += 18 * dt
		if r.hueCycle >= 360 {
			r.hueCycle -= 360
		}
	}
}

// Draw strokes the room grid through the given projector. pixelScale maps
// projected pixels into the current render target (1 for the screen, smaller
// for the glow layer).
func (r *RoomRenderer) Draw(project camera.Projector, pixelScale, energy float32) {
	r.draw(project, pixelScale, energy, false)
}

// DrawGlow strokes the same grid into the glow layer. The halo alpha rises
// with the world energy, which is the room's main visible reaction to the
// awakening beyond the rainbow blend.
func (r *RoomRenderer) DrawGlow(project camera.Projector, pixelScale, energy float32) {
	r.draw(project, pixelScale, energy, true)
}

func (r *RoomRenderer) draw(project camera.Projector, pixelScale, energy float32, glow bool) {
	halfW := r.Width / 2
	top := r.FloorY + r.Height

	// Floor and ceiling: lines running into the depth, plus cross lines.
	for x := -halfW; x <= halfW+0.001; x += r.FloorStep {
		r.line(project, pixelScale, energy, glow,
			camera.Point3{X: x, Y: r.FloorY, Z: 0}, camera.Point3{X: x, Y: r.FloorY, Z: r.Depth})
	}
	for x := -halfW; x <= halfW+0.001; x += r.WallStep {
		r.line(project, pixelScale, energy, glow,
			camera.Point3{X: x, Y: top, Z: 0}, camera.Point3{X: x, Y: top, Z: r.Depth})
	}
	for z := float32(0); z <= r.Depth+0.001; z += r.FloorStep {
		r.line(project, pixelScale, energy, glow,
			camera.Point3{X: -halfW, Y: r.FloorY, Z: z}, camera.Point3{X: halfW, Y: r.FloorY, Z: z})
	}
	for z := float32(0); z <= r.Depth+0.001; z += r.WallStep {
		r.line(project, pixelScale, energy, glow,
			camera.Point3{X: -halfW, Y: top, Z: z}, camera.Point3{X: halfW, Y: top, Z: z})
	}

	// Side walls: horizontals into the depth, verticals at intervals.
	for _, x := range []float32{-halfW, halfW} {
		for y := r.FloorY; y <= top+0.001; y += r.WallStep {
			r.line(project, pixelScale, energy, glow,
				camera.Point3{X: x, Y: y, Z: 0}, camera.Point3{X: x, Y: y, Z: r.Depth})
		}
		for z := float32(0); z <= r.Depth+0.001; z += r.WallStep {
			r.line(project, pixelScale, energy, glow,
				camera.Point3{X: x, Y: r.FloorY, Z: z}, camera.Point3{X: x, Y: top, Z: z})
		}
	}

	// Back wall grid.
	for x := -halfW; x <= halfW+0.001; x += r.WallStep {
		r.line(project, pixelScale, energy, glow,
			camera.Point3{X: x, Y: r.FloorY, Z: r.Depth}, camera.Point3{X: x, Y: top, Z: r.Depth})
	}
	for y := r.FloorY; y <= top+0.001; y += r.WallStep {
		r.line(project, pixelScale, energy, glow,
			camera.Point3{X: -halfW, Y: y, Z: r.Depth}, camera.Point3{X: halfW, Y: y, Z: r.Depth})
	}
}

// line subdivides a wall edge and strokes each piece with its own depth
// shade, since the falloff varies along lines that run into the scene.
func (r *RoomRenderer) line(project camera.Projector, pixelScale, energy float32, glow bool, a, b camera.Point3) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	length := math32.Sqrt(dx*dx + dy*dy + dz*dz)
	segments := int(length) + 1
	if segments < 2 {
		segments = 2
	}

	thickness := r.LineWidth
	if glow {
		thickness = r.LineWidth * 2.5
	}

	var pts [2]camera.Point3
	for i := 0; i < segments; i++ {
		t0 := float32(i) / float32(segments)
		t1 := float32(i+1) / float32(segments)
		pts[0] = camera.Point3{X: a.X + dx*t0, Y: a.Y + dy*t0, Z: a.Z + dz*t0}
		pts[1] = camera.Point3{X: a.X + dx*t1, Y: a.Y + dy*t1, Z: a.Z + dz*t1}

		midZ := (pts[0].Z + pts[1].Z) / 2
		color := r.gridColor(midZ, energy)
		if glow {
			color = fade(color, r.glowAlpha(midZ, energy))
		}
		strokePolyline(project, pts[:], pixelScale, thickness, color)
	}
}

// glowAlpha is the halo opacity for one grid segment: a dim base that
// brightens as the world wakes, attenuated by the same depth falloff as the
// core stroke.
func (r *RoomRenderer) glowAlpha(z, energy float32) float32 {
	falloff := 1 - math32.Pow(z/r.Depth, 1.3)*0.65
	return (35 + 20*energy) / 255 * falloff
}

// gridColor shades the base red by depth and blends toward a cycling rainbow
// once the room is close to fully alive.
func (r *RoomRenderer) gridColor(z, energy float32) rl.Color {
	falloff := 1 - math32.Pow(z/r.Depth, 1.3)*0.65
	base := hsv(0.98, 0.8, 0.85*falloff)

	strength := (energy - 0.3) / 0.7
	if strength <= 0 || r.hueCycle == 0 {
		return base
	}
	if strength > 1 {
		strength = 1
	}
	rainbow := hsv((r.hueCycle+z*20)/360, 0.7, 0.85*falloff)
	return blend(base, rainbow, 0.4*strength)
}
