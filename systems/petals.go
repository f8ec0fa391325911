package systems

import (
	"github.com/chewxy/math32"

	"github.com/pthm-cable/bloomroom/camera"
	"github.com/pthm-cable/bloomroom/components"
)

// Procedural rose-head and stem geometry. All functions produce world-space
// polylines; the renderer projects and strokes them.

// PetalCount is the number of petals per rose head. Even indices form the
// inner cupped ring, odd indices the outer flared ring.
const PetalCount = 6

// PetalShape is one petal's closed ribbon outline: the left bezier edge from
// base to tip, the right edge from tip back to base, then the base again.
type PetalShape struct {
	Points []camera.Point3
	FadeIn float32 // 0..1 fade after the ring's visibility threshold
	Inner  bool
}

// HeadAnchor returns the y coordinate of the rose head: the top of the stem,
// plus a slow post-bloom breathing motion once the flower is mostly open.
func HeadAnchor(pos components.Position, blossom components.Blossom, clock, life, depthNorm float32) float32 {
	y := pos.Y + StemHeight(life)
	if life > 0.6 {
		amp := 0.012 * life * (1 - depthNorm*0.8)
		y += math32.Sin(clock*0.85+blossom.StemPhase) * amp
	}
	return y
}

// StemCurve samples the stem's quadratic bezier: anchored at the flower base,
// rising to the head, with the midpoint swayed sideways by the given offset.
func StemCurve(pos components.Position, life, sway float32, buf []camera.Point3) []camera.Point3 {
	height := StemHeight(life)
	p0 := camera.Point3{X: pos.X, Y: pos.Y, Z: pos.Z}
	p1 := camera.Point3{X: pos.X + sway, Y: pos.Y + height*0.5, Z: pos.Z}
	p2 := camera.Point3{X: pos.X, Y: pos.Y + height, Z: pos.Z}

	const steps = 5
	buf = buf[:0]
	for i := 0; i <= steps; i++ {
		t := float32(i) / steps
		omt := 1 - t
		buf = append(buf, camera.Point3{
			X: omt*omt*p0.X + 2*omt*t*p1.X + t*t*p2.X,
			Y: omt*omt*p0.Y + 2*omt*t*p1.Y + t*t*p2.Y,
			Z: omt*omt*p0.Z + 2*omt*t*p1.Z + t*t*p2.Z,
		})
	}
	return buf
}

// StemSway is the base sinusoidal sway offset for the stem midpoint.
func StemSway(pos components.Position, life float32) float32 {
	return 0.05 * math32.Sin(pos.X*2+pos.Z+life*3)
}

// petalRig holds the per-ring coefficients for the bezier spine.
type petalRig struct {
	visibleThreshold float32
	liftScale        float32 // Fraction of the lift openness used as max lift
	r2, y2           float32 // Apex radius/height factors (P2)
	r3, y3           float32 // Tip radius/height factors (P3)
	widthAngle       float32 // Ribbon half-width as a rotation about the axis
	gravityFactor    float32 // Outer petals succumb to gravity, inner resist
	angleNudge       float32 // Small rotational offset for an organic look
}

var innerRig = petalRig{
	visibleThreshold: 0.15,
	liftScale:        0.50,
	r2:               0.5, y2: 0.9,
	r3: 0.7, y3: 1.2,
	widthAngle:    0.5,
	gravityFactor: 0.3,
	angleNudge:    0.1,
}

var outerRig = petalRig{
	visibleThreshold: 0.30,
	liftScale:        0.40,
	r2:               1.0, y2: 1.1,
	r3: 1.5, y3: 0.85,
	widthAngle:    0.9,
	gravityFactor: 1.0,
	angleNudge:    -0.1,
}

// petalSteps picks the bezier resolution: distant flowers get fewer segments.
func petalSteps(inner bool, depthNorm float32) int {
	if inner {
		if depthNorm < 0.5 {
			return 5
		}
		return 3
	}
	if depthNorm < 0.5 {
		return 6
	}
	return 4
}

// BuildPetals generates the visible petal ribbons for one flower. Petals
// below their ring's bloom threshold are omitted; the rest carry a fade-in
// factor so they never pop. The returned slices alias shapes' internal
// buffers and are valid until the next call with the same scratch.
func BuildPetals(pos components.Position, blossom components.Blossom, clock, life, bloomT float32, open Openness, depthNorm float32, scratch []PetalShape) []PetalShape {
	headY := HeadAnchor(pos, blossom, clock, life, depthNorm)
	baseRadius := 0.22 * (0.3 + 0.7*open.Spread)

	shapes := scratch[:0]
	for i := 0; i < PetalCount; i++ {
		inner := i%2 == 0
		rig := outerRig
		if inner {
			rig = innerRig
		}

		if bloomT < rig.visibleThreshold {
			continue
		}
		fadeIn := clamp01((bloomT - rig.visibleThreshold) / 0.1)

		angle := float32(i)*(2*math32.Pi/PetalCount) + blossom.RoseTwist + rig.angleNudge
		liftMax := rig.liftScale * open.Lift
		droop := GravityDroop(bloomT, depthNorm, rig.gravityFactor)

		// Spine control points: base at the stem tip, a vertical lift, the
		// apex, then the tip.
		p0 := camera.Point3{X: pos.X, Y: headY, Z: pos.Z}
		p1 := camera.Point3{X: pos.X, Y: headY + liftMax*0.4, Z: pos.Z}
		p2 := spineAt(pos, angle, baseRadius*rig.r2*open.Spread, headY+liftMax*rig.y2)
		p3 := spineAt(pos, angle, baseRadius*rig.r3*open.Spread, headY+liftMax*rig.y3)

		steps := petalSteps(inner, depthNorm)
		pts := ribbonOutline(pos, p0, p1, p2, p3, rig.widthAngle, droop, steps)

		shapes = append(shapes, PetalShape{Points: pts, FadeIn: fadeIn, Inner: inner})
	}
	return shapes
}

// spineAt places a spine control point at the given radius and height along
// the petal's radial direction.
func spineAt(pos components.Position, angle, radius, y float32) camera.Point3 {
	return camera.Point3{
		X: pos.X + math32.Cos(angle)*radius,
		Y: y,
		Z: pos.Z + math32.Sin(angle)*radius,
	}
}

// ribbonOutline builds the closed petal outline from the spine: the left and
// right edges are the spine control points rotated about the flower's
// vertical axis, sampled as cubic beziers, with the gravity droop pulling
// the tip down quadratically along each edge.
func ribbonOutline(pos components.Position, p0, p1, p2, p3 camera.Point3, widthAngle, droop float32, steps int) []camera.Point3 {
	l1 := rotateAbout(pos, p1, -widthAngle*0.3)
	l2 := rotateAbout(pos, p2, -widthAngle*0.6)
	l3 := rotateAbout(pos, p3, -widthAngle*0.5)
	r1 := rotateAbout(pos, p1, widthAngle*0.3)
	r2 := rotateAbout(pos, p2, widthAngle*0.6)
	r3 := rotateAbout(pos, p3, widthAngle*0.5)

	pts := make([]camera.Point3, 0, 2*(steps+1)+1)

	// Left edge, base to tip
	for k := 0; k <= steps; k++ {
		t := float32(k) / float32(steps)
		p := cubicBezier(p0, l1, l2, l3, t)
		p.Y -= droop * t * t
		pts = append(pts, p)
	}
	// Right edge, tip back to base
	for k := steps; k >= 0; k-- {
		t := float32(k) / float32(steps)
		p := cubicBezier(p0, r1, r2, r3, t)
		p.Y -= droop * t * t
		pts = append(pts, p)
	}
	// Close the loop
	pts = append(pts, pts[0])
	return pts
}

// rotateAbout rotates a point about the flower's vertical axis through pos.
func rotateAbout(pos components.Position, p camera.Point3, angle float32) camera.Point3 {
	dx := p.X - pos.X
	dz := p.Z - pos.Z
	cos := math32.Cos(angle)
	sin := math32.Sin(angle)
	return camera.Point3{
		X: pos.X + dx*cos - dz*sin,
		Y: p.Y,
		Z: pos.Z + dx*sin + dz*cos,
	}
}

// cubicBezier evaluates a 4-point bezier at t.
func cubicBezier(p0, p1, p2, p3 camera.Point3, t float32) camera.Point3 {
	omt := 1 - t
	a := omt * omt * omt
	b := 3 * omt * omt * t
	c := 3 * omt * t * t
	d := t * t * t
	return camera.Point3{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		Z: a*p0.Z + b*p1.Z + c*p2.Z + d*p3.Z,
	}
}
