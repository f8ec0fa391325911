package systems

import (
	"math"
	"testing"
)

// waveNoRipple isolates the envelope from crest texture.
func waveNoRipple() WaveParams {
	return WaveParams{
		Width:       0.9,
		FieldHalfW:  5.5,
		DepthRepeat: 20,
	}
}

func TestWavefrontDistance(t *testing.T) {
	w := waveNoRipple()
	front := w.Wavefront(0.5)
	if math.Abs(float64(front-12)) > 1e-5 {
		t.Errorf("wavefront at energy 0.5 should be 12, got %f", front)
	}
}

func TestWaveNearVsFarContrast(t *testing.T) {
	// At energy 0.5 the front has traveled 12 units: a center flower at z=0
	// is fully lit while one at z=15 is still ahead of the front and dormant.
	w := waveNoRipple()

	near := w.LifeAt(0, 0, 0.5)
	if math.Abs(float64(near-1)) > 1e-5 {
		t.Errorf("flower at z=0 should be fully lit, got %f", near)
	}

	far := w.LifeAt(0, 15, 0.5)
	if far != 0 {
		t.Errorf("flower at z=15 should be dormant, got %f", far)
	}
}

func TestWaveReachesNearFlowersFirst(t *testing.T) {
	// For two flowers at the same lateral position, the nearer one's life
	// must never lag the farther one's at any energy.
	w := waveNoRipple()

	for e := float32(0); e <= 1.001; e += 0.05 {
		nearLife := w.LifeAt(0, 3, e)
		farLife := w.LifeAt(0, 9, e)
		if nearLife < farLife {
			t.Errorf("energy %.2f: near flower life %f < far flower life %f", e, nearLife, farLife)
		}
	}
}

func TestWaveLifeMonotonicInEnergy(t *testing.T) {
	w := waveNoRipple()

	var prev float32
	for e := float32(0); e <= 1.001; e += 0.02 {
		life := w.LifeAt(1.5, 7, e)
		if life < prev {
			t.Errorf("life decreased with rising energy at e=%.2f: %f < %f", e, life, prev)
		}
		prev = life
	}
}

func TestWaveEchoTrailsPrimary(t *testing.T) {
	w := waveNoRipple()

	// Place the flower so the primary envelope has fully passed: the echo
	// may only raise life, never lower it below the primary.
	withEcho := w.LifeAt(0, 2, 0.4)
	if withEcho < 0 || withEcho > 1 {
		t.Fatalf("life out of range: %f", withEcho)
	}

	// Ahead of the front both primary and echo are zero.
	if life := w.LifeAt(0, 19, 0.1); life != 0 {
		t.Errorf("echo leaked ahead of the wavefront: %f", life)
	}
}

func TestWaveLifeClampedWithRipple(t *testing.T) {
	w := waveNoRipple()
	w.RippleStrength = 0.08
	w.RippleFreq = 1.2

	for e := float32(0); e <= 1.001; e += 0.1 {
		for z := float32(0); z <= 20; z += 0.5 {
			life := w.LifeAt(0.7, z, e)
			if life < 0 || life > 1 {
				t.Fatalf("life out of [0,1] at z=%.1f e=%.1f: %f", z, e, life)
			}
		}
	}
}

func TestWaveSharpening(t *testing.T) {
	// The ^1.4 nonlinearity must soften partial values but leave the
	// endpoints fixed.
	w := waveNoRipple()

	if life := w.LifeAt(0, 0, 1); math.Abs(float64(life-1)) > 1e-5 {
		t.Errorf("full-energy center flower should be exactly 1, got %f", life)
	}

	// A flower halfway up the envelope: raw 0.5 becomes 0.5^1.4.
	// front=12 at e=0.5; distance*20 = 11.55 gives raw=0.5.
	z := float32(11.55)
	life := w.LifeAt(0, z, 0.5)
	want := math.Pow(0.5, 1.4)
	// Allow the echo contribution to raise it, but not below the sharpened primary.
	if float64(life) < want-1e-4 {
		t.Errorf("sharpened life %f below expected primary %f", life, want)
	}
}
