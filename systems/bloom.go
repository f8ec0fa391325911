package systems

import (
	"github.com/chewxy/math32"

	"github.com/pthm-cable/bloomroom/components"
)

// Bloom timing and easing. A flower's life is imposed by the wave; everything
// here derives the visual opening from it.

// bloomDelay returns the life threshold below which a flower stays closed.
// Distant flowers open a little later, capped so deep rows never lock up.
func bloomDelay(depthNorm float32) float32 {
	extra := depthNorm * 0.2
	if extra > 0.15 {
		extra = 0.15
	}
	return 0.25 + extra
}

// BloomProgress maps life to the 0..1 bloom parameter for a flower at the
// given normalized depth, latching against prior progress so a transient dip
// in life never visually un-blooms the flower. The latched value is returned
// and must be stored back as the flower's new BloomMax.
func BloomProgress(life, depthNorm, prevMax float32) float32 {
	delay := bloomDelay(depthNorm)
	if life < delay {
		return prevMax
	}
	t := clamp01((life - delay) / (1 - delay))
	if t < prevMax {
		t = prevMax
	}
	return t
}

// Openness is the eased petal opening derived from bloom progress.
// Lift raises petals vertically; Spread pushes them outward.
type Openness struct {
	Lift   float32
	Spread float32
}

// Ease applies the three-zone bloom curve. The zones are deliberate motion
// design, not a single smoothstep: a fast rise, a "proud pause" where spread
// stalls while lift continues, then a relaxed finish where spread catches up.
func Ease(bloomT float32) Openness {
	switch {
	case bloomT < 0.35:
		// Rise: fast lift, minimal spread
		t := bloomT / 0.35
		return Openness{
			Lift:   0.70 * math32.Sqrt(t),
			Spread: 0.10 * t * t,
		}
	case bloomT < 0.65:
		// Hold: lift continues slowly, spread stalls
		t := (bloomT - 0.35) / 0.30
		return Openness{
			Lift:   0.70 + 0.15*t,
			Spread: 0.10 + 0.10*t,
		}
	default:
		// Relax: lift finishes, spread accelerates
		t := (bloomT - 0.65) / 0.35
		return Openness{
			Lift:   0.85 + 0.15*t,
			Spread: 0.20 + 0.80*math32.Pow(t, 1.5),
		}
	}
}

// StemGlowFactor models the energy transfer from the ground glow into the
// bloom: full glow while closed, a linear decay through mid-bloom, then a
// floor once the flower has opened.
func StemGlowFactor(bloomT float32) float32 {
	switch {
	case bloomT < 0.2:
		return 1.0
	case bloomT < 0.6:
		return 1.0 - 0.6*(bloomT-0.2)/0.4
	default:
		return 0.4
	}
}

// GravityDroop returns the post-bloom sag applied to petal tips. Zero until
// late bloom, then a smoothstep ramp scaled by the petal ring's gravity
// factor and attenuated with depth.
func GravityDroop(bloomT, depthNorm, gravityFactor float32) float32 {
	if bloomT <= 0.65 {
		return 0
	}
	g := Smoothstep((bloomT - 0.65) / 0.35)
	return g * 0.07 * gravityFactor * (1 - depthNorm*0.5)
}

// StemHeight is the current stem length for a given life.
func StemHeight(life float32) float32 {
	return 0.55 + 0.15*life
}

// UpdateFlower advances a flower's internal clock and breathing offset for
// the life imposed by the wave this frame. Near flowers breathe more.
func UpdateFlower(pos *components.Position, bloom *components.Bloom, dt, life float32) {
	bloom.Life = life
	bloom.Clock += dt

	depthFactor := 1 - pos.Z/10
	if depthFactor < 0 {
		depthFactor = 0
	}
	bloom.Breath = math32.Sin(bloom.Clock*1.1+pos.X*2) * 0.02 * depthFactor * life
}
