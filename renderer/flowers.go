package renderer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bloomroom/camera"
	"github.com/pthm-cable/bloomroom/components"
	"github.com/pthm-cable/bloomroom/systems"
)

// Culling thresholds. Deep rows contribute almost nothing on screen but cost
// as much as near ones to stroke.
const (
	cullDepthFrac = 0.9  // Drop flowers beyond this fraction of the field depth
	minHeadScale  = 0.15 // Skip petal geometry below this projected scale
	minLife       = 0.01 // Skip the flower entirely below this life
	minHeadLife   = 0.05 // Stem only below this life
)

// FlowerRenderer strokes the flower field: stems, ground glow and petal
// ribbons, queued into the painter so rows overlap correctly.
type FlowerRenderer struct {
	cam         *camera.Camera
	depthRepeat float32

	stemBuf  []camera.Point3
	petalBuf []systems.PetalShape
	vecBuf   []rl.Vector2
}

// NewFlowerRenderer creates a renderer for fields of the given depth.
func NewFlowerRenderer(cam *camera.Camera, depthRepeat float32) *FlowerRenderer {
	return &FlowerRenderer{cam: cam, depthRepeat: depthRepeat}
}

// Draw queues every visible flower into the painter queue. glowOnly restricts
// the pass to the bright elements that feed the glow layer.
func (r *FlowerRenderer) Draw(field *systems.FlowerField, project camera.Projector, queue *DepthQueue, pixelScale float32, glowOnly bool) {
	field.Each(func(pos *components.Position, bloom *components.Bloom, blossom *components.Blossom) {
		if bloom.Life <= minLife {
			return
		}
		if pos.Z > cullDepthFrac*r.depthRepeat {
			return
		}

		zCam, _ := r.cam.Depth(camera.Point3{X: pos.X, Y: pos.Y, Z: pos.Z})

		depthNorm := pos.Z / r.depthRepeat
		if depthNorm > 1 {
			depthNorm = 1
		}

		// Copy the per-flower state: the component pointers die with the
		// callback but the queued closures run later.
		p := *pos
		b := *bloom
		bl := *blossom
		dn := depthNorm

		if !glowOnly {
			queue.Add(zCam, func() {
				r.drawStem(p, b, bl, project, pixelScale, dn)
			})
		}
		queue.Add(zCam, func() {
			r.drawGroundGlow(p, b, bl, project, pixelScale, dn)
		})
		if b.Life >= minHeadLife {
			queue.Add(zCam, func() {
				r.drawHead(p, b, bl, project, pixelScale, dn, glowOnly)
			})
		}
	})
}

func (r *FlowerRenderer) drawStem(pos components.Position, bloom components.Bloom, blossom components.Blossom, project camera.Projector, pixelScale, depthNorm float32) {
	base, ok := project(camera.Point3{X: pos.X, Y: pos.Y, Z: pos.Z})
	if !ok {
		return
	}

	satScale := 1 - depthNorm*0.35
	valScale := 1 - depthNorm*0.25
	color := hsv(blossom.Hue, 0.55*satScale, 0.75*valScale)

	thickness := 0.4 * math32.Pow(base.Scale, 0.55) * math32.Pow(bloom.Life, 1.4)
	if thickness < 1 {
		thickness = 1
	}

	r.stemBuf = systems.StemCurve(pos, bloom.Life, bloom.Sway, r.stemBuf)
	strokePolyline(project, r.stemBuf, pixelScale, thickness, fade(color, bloom.Life))
}

// drawGroundGlow paints the soft pool of light at the flower base. It reads
// as stored energy: bright while the bud is closed, transferred up into the
// bloom as it opens.
func (r *FlowerRenderer) drawGroundGlow(pos components.Position, bloom components.Bloom, blossom components.Blossom, project camera.Projector, pixelScale, depthNorm float32) {
	base, ok := project(camera.Point3{X: pos.X, Y: pos.Y, Z: pos.Z})
	if !ok {
		return
	}

	glow := systems.StemGlowFactor(bloom.BloomMax) * bloom.Life
	if glow <= 0 {
		return
	}
	glowDepthMod := 1 - depthNorm*0.6

	center := rl.Vector2{X: base.X * pixelScale, Y: base.Y * pixelScale}
	color := hsv(blossom.Hue, 0.7, 0.9)

	radius := blossom.Size * base.Scale * pixelScale
	rl.DrawCircleV(center, radius*1.6, fade(color, 7.0/255*glow*glowDepthMod))
	rl.DrawCircleV(center, radius, fade(color, 16.0/255*glow*glowDepthMod))
	if depthNorm < 0.65 {
		rl.DrawCircleV(center, radius*0.45, fade(color, 40.0/255*glow*glowDepthMod))
	}
}

func (r *FlowerRenderer) drawHead(pos components.Position, bloom components.Bloom, blossom components.Blossom, project camera.Projector, pixelScale, depthNorm float32, glowOnly bool) {
	headY := systems.HeadAnchor(pos, blossom, bloom.Clock, bloom.Life, depthNorm)
	head, ok := project(camera.Point3{X: pos.X, Y: headY, Z: pos.Z})
	if !ok || head.Scale < minHeadScale {
		return
	}

	satScale := 1 - depthNorm*0.35
	valScale := 1 - depthNorm*0.25
	petalColor := hsv(blossom.Hue, 0.85*satScale, valScale)

	if glowOnly {
		// The glow layer only needs the head's bright core.
		center := rl.Vector2{X: head.X * pixelScale, Y: head.Y * pixelScale}
		radius := blossom.Size * head.Scale * pixelScale * (0.4 + 0.6*bloom.BloomMax)
		rl.DrawCircleV(center, radius, fade(petalColor, 0.5*bloom.Life))
		return
	}

	open := systems.Ease(bloom.BloomMax)
	r.petalBuf = systems.BuildPetals(pos, blossom, bloom.Clock, bloom.Life, bloom.BloomMax, open, depthNorm, r.petalBuf)

	for i := range r.petalBuf {
		shape := &r.petalBuf[i]

		fill := fade(petalColor, 0.35*shape.FadeIn)
		edge := fade(petalColor, 0.9*shape.FadeIn)
		if shape.Inner {
			fill = fade(hsv(blossom.Hue, 0.7*satScale, valScale), 0.45*shape.FadeIn)
		}

		r.vecBuf = r.vecBuf[:0]
		for _, p := range shape.Points {
			proj, ok := project(p)
			if !ok {
				r.vecBuf = r.vecBuf[:0]
				break
			}
			r.vecBuf = append(r.vecBuf, rl.Vector2{X: proj.X * pixelScale, Y: proj.Y * pixelScale})
		}
		if len(r.vecBuf) < 3 {
			continue
		}

		rl.DrawTriangleFan(r.vecBuf, fill)
		strokePolyline(project, shape.Points, pixelScale, 1, edge)
	}

	// Bud core before the petals take over.
	if bloom.BloomMax < 0.5 {
		center := rl.Vector2{X: head.X * pixelScale, Y: head.Y * pixelScale}
		radius := blossom.Size * head.Scale * pixelScale * 0.25 * (1 - bloom.BloomMax)
		rl.DrawCircleV(center, radius, fade(petalColor, 0.8*bloom.Life))
	}
}
