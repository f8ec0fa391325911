// Package camera provides the off-axis (head-coupled) projection math for the
// virtual room. World space is right-handed: +x right, +y up, +z into the room.
// The viewer's eye sits EyeDepth world units in front of the z=0 screen plane.
package camera

import "github.com/chewxy/math32"

// Point3 is a world-space coordinate.
type Point3 struct {
	X, Y, Z float32
}

// Projection is the screen-space result of projecting a world point.
// Scale is the perspective factor (pixels per world unit at that depth);
// callers use it to size strokes and glow radii with distance.
type Projection struct {
	X, Y  float32
	Scale float32
}

// Camera holds the projection parameters for a session.
// Pitch and Height are fixed; UnitScale and the viewport follow window resize.
type Camera struct {
	Pitch    float32 // Radians, positive = tilted down
	Height   float32 // Eye height in world units
	EyeDepth float32 // Viewer distance to the screen plane
	NearClip float32 // Near plane distance

	UnitScale float32 // Pixels per world unit
	ViewportW float32
	ViewportH float32
}

// New creates a camera for the given viewport.
func New(pitch, height, eyeDepth, nearClip, unitScale float32, viewportW, viewportH float32) *Camera {
	return &Camera{
		Pitch:     pitch,
		Height:    height,
		EyeDepth:  eyeDepth,
		NearClip:  nearClip,
		UnitScale: unitScale,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

// WorldToCamera transforms a world point into camera space: translate by the
// eye height, then rotate about the lateral (x) axis by the pitch. This is a
// rigid-body transform, not a projection.
func (c *Camera) WorldToCamera(p Point3) (xCam, yCam, zCam float32) {
	cos := math32.Cos(c.Pitch)
	sin := math32.Sin(c.Pitch)
	yRel := p.Y - c.Height
	yCam = yRel*cos + p.Z*sin
	zCam = -yRel*sin + p.Z*cos
	xCam = p.X
	return xCam, yCam, zCam
}

// Depth returns the camera-space depth and total depth (eye to point) for a
// world point. Used by the painter's sort.
func (c *Camera) Depth(p Point3) (zCam, totalDepth float32) {
	_, _, zCam = c.WorldToCamera(p)
	return zCam, c.EyeDepth + zCam
}

// Project maps a world point to screen space using off-axis projection biased
// toward the tracked head position (headX, headY in world units). Returns
// ok=false for points behind the near plane; that is a normal, frequent
// outcome and callers simply skip drawing the primitive.
func (c *Camera) Project(p Point3, headX, headY float32) (Projection, bool) {
	xCam, yCam, zCam := c.WorldToCamera(p)

	totalDepth := c.EyeDepth + zCam
	if totalDepth <= c.NearClip {
		return Projection{}, false
	}

	// The off-axis divisor: re-centers the projection around the head
	// rather than the geometric origin, producing window parallax.
	ratio := c.EyeDepth / totalDepth
	virtualX := headX + (xCam-headX)*ratio
	virtualY := headY + (yCam-headY)*ratio

	return Projection{
		X:     c.ViewportW/2 + virtualX*c.UnitScale,
		Y:     c.ViewportH/2 - virtualY*c.UnitScale, // world up = screen up
		Scale: ratio * c.UnitScale,
	}, true
}

// Projector is the projection capability handed to renderers so they never
// reach back into the scene for camera state.
type Projector func(p Point3) (Projection, bool)

// ProjectorFor binds the camera to a head position for one frame.
func (c *Camera) ProjectorFor(headX, headY float32) Projector {
	return func(p Point3) (Projection, bool) {
		return c.Project(p, headX, headY)
	}
}

// Resize updates the viewport dimensions, keeping the unit scale proportional
// to the vertical resolution so world sizes stay consistent across displays.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	if c.ViewportH > 0 {
		c.UnitScale *= viewportH / c.ViewportH
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}
