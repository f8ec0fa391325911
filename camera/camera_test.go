package camera

import (
	"math"
	"testing"
)

func testCamera() *Camera {
	// Zero pitch keeps the camera-space math easy to reason about.
	return New(0, 0, 3.5, 0.05, 220, 1280, 800)
}

func TestProjectCenterPoint(t *testing.T) {
	cam := testCamera()

	// A point at the origin on the screen plane, head centered, must land
	// exactly at the viewport center.
	proj, ok := cam.Project(Point3{0, 0, 0}, 0, 0)
	if !ok {
		t.Fatal("origin point reported not visible")
	}
	if math.Abs(float64(proj.X-640)) > 0.01 || math.Abs(float64(proj.Y-400)) > 0.01 {
		t.Errorf("expected viewport center (640, 400), got (%f, %f)", proj.X, proj.Y)
	}
	// ratio = eye/(eye+0) = 1, so scale equals the unit scale
	if math.Abs(float64(proj.Scale-220)) > 0.01 {
		t.Errorf("expected scale 220 at z=0, got %f", proj.Scale)
	}
}

func TestProjectYAxisFlip(t *testing.T) {
	cam := testCamera()

	// World up must map to a smaller pixel y.
	up, ok := cam.Project(Point3{0, 1, 0}, 0, 0)
	if !ok {
		t.Fatal("point not visible")
	}
	if up.Y >= 400 {
		t.Errorf("world up should be above screen center, got y=%f", up.Y)
	}
}

func TestProjectBehindNearPlane(t *testing.T) {
	cam := testCamera()

	testCases := []struct {
		name string
		z    float32
		want bool
	}{
		{"far behind eye", -10, false},
		{"exactly at near plane", cam.NearClip - cam.EyeDepth, false},
		{"epsilon in front of near plane", cam.NearClip - cam.EyeDepth + 0.001, true},
		{"screen plane", 0, true},
		{"deep in room", 20, true},
	}

	for _, tc := range testCases {
		proj, ok := cam.Project(Point3{0, 0, tc.z}, 0, 0)
		if ok != tc.want {
			t.Errorf("%s: visible=%v, want %v", tc.name, ok, tc.want)
		}
		if ok {
			if math.IsNaN(float64(proj.X)) || math.IsInf(float64(proj.X), 0) ||
				math.IsNaN(float64(proj.Y)) || math.IsInf(float64(proj.Y), 0) {
				t.Errorf("%s: non-finite pixel coordinate (%f, %f)", tc.name, proj.X, proj.Y)
			}
		}
	}
}

func TestProjectParallax(t *testing.T) {
	cam := testCamera()

	// Moving the head right should shift a deep point right on screen: the
	// point keeps a larger fraction of the head offset the deeper it is.
	deep := Point3{0, 0, 8}
	centered, _ := cam.Project(deep, 0, 0)
	shifted, _ := cam.Project(deep, 0.5, 0)

	if shifted.X <= centered.X {
		t.Errorf("head moved right but deep point did not shift right: %f -> %f", centered.X, shifted.X)
	}

	// A point on the screen plane must not move at all with the head.
	near := Point3{0.3, 0, 0}
	a, _ := cam.Project(near, 0, 0)
	b, _ := cam.Project(near, 0.8, 0.4)
	if math.Abs(float64(a.X-b.X)) > 0.01 || math.Abs(float64(a.Y-b.Y)) > 0.01 {
		t.Errorf("screen-plane point moved with head: (%f,%f) vs (%f,%f)", a.X, a.Y, b.X, b.Y)
	}
}

func TestPerspectiveScaleShrinksWithDepth(t *testing.T) {
	cam := testCamera()

	prev := float32(math.Inf(1))
	for _, z := range []float32{0, 2, 5, 10, 20} {
		proj, ok := cam.Project(Point3{0, 0, z}, 0, 0)
		if !ok {
			t.Fatalf("point at z=%f not visible", z)
		}
		if proj.Scale >= prev {
			t.Errorf("scale did not shrink with depth at z=%f: %f >= %f", z, proj.Scale, prev)
		}
		prev = proj.Scale
	}
}

func TestWorldToCameraPitch(t *testing.T) {
	// With 90 degrees of downward pitch the room's depth axis becomes the
	// camera's up axis.
	cam := New(math.Pi/2, 0, 3.5, 0.05, 220, 1280, 800)

	x, y, z := cam.WorldToCamera(Point3{0, 0, 1})
	if math.Abs(float64(x)) > 1e-5 || math.Abs(float64(y-1)) > 1e-5 || math.Abs(float64(z)) > 1e-5 {
		t.Errorf("pitch rotation wrong: got (%f, %f, %f), want (0, 1, 0)", x, y, z)
	}
}

func TestWorldToCameraHeight(t *testing.T) {
	cam := New(0, 0.9, 3.5, 0.05, 220, 1280, 800)

	// A point at eye height projects onto the camera's horizontal axis.
	_, y, _ := cam.WorldToCamera(Point3{0, 0.9, 5})
	if math.Abs(float64(y)) > 1e-5 {
		t.Errorf("point at eye height should have yCam=0, got %f", y)
	}
}

func TestDepthMatchesProjectCulling(t *testing.T) {
	cam := New(0.04, 0.9, 3.5, 0.05, 220, 1280, 800)

	for _, p := range []Point3{{0, 0, -4}, {1, -1.35, 0}, {0, 2, 10}} {
		_, total := cam.Depth(p)
		_, ok := cam.Project(p, 0, 0)
		if (total > cam.NearClip) != ok {
			t.Errorf("Depth and Project disagree for %+v: total=%f visible=%v", p, total, ok)
		}
	}
}

func TestResizeKeepsProportionalScale(t *testing.T) {
	cam := testCamera()
	cam.Resize(2560, 1600)

	if math.Abs(float64(cam.UnitScale-440)) > 0.01 {
		t.Errorf("unit scale should double with viewport height: got %f", cam.UnitScale)
	}

	proj, ok := cam.Project(Point3{0, 0, 0}, 0, 0)
	if !ok || math.Abs(float64(proj.X-1280)) > 0.01 || math.Abs(float64(proj.Y-800)) > 0.01 {
		t.Errorf("center point should follow the new viewport center, got (%f, %f)", proj.X, proj.Y)
	}
}
