package systems

import "github.com/chewxy/math32"

// WaveParams tunes the radial awakening wave that maps the global world
// energy into a spatially varying life value per flower.
type WaveParams struct {
	Width          float32 // Envelope width behind the wavefront, world units
	RippleStrength float32 // Crest ripple amplitude
	RippleFreq     float32 // Crest ripple frequency along z

	FieldHalfW  float32 // Lateral distance normalizer
	DepthRepeat float32 // Depth distance normalizer
}

// Wavefront returns the distance the wave has traveled for a given world
// energy. The 1.2 overshoot lets the crest fully clear the deepest flowers.
func (w WaveParams) Wavefront(worldEnergy float32) float32 {
	return worldEnergy * w.DepthRepeat * 1.2
}

// LifeAt computes the wave-imposed life for a flower at (x, z) given the
// current world energy. The wave sweeps from the near center outward: a
// primary clamped envelope behind the front, a weaker echo trailing 1.5
// world units back, a sinusoidal ripple for crest texture, and a ^1.4
// sharpening that steepens the crest and softens the tail.
func (w WaveParams) LifeAt(x, z, worldEnergy float32) float32 {
	front := w.Wavefront(worldEnergy)

	dx := x / w.FieldHalfW
	dz := z / w.DepthRepeat
	distance := math32.Sqrt(dx*dx + dz*dz)

	raw := (front - distance*w.DepthRepeat) / w.Width
	life := clamp01(raw)

	echo := clamp01((front - distance*w.DepthRepeat - 1.5) / 1.2)
	if e := echo * 0.35; e > life {
		life = e
	}

	life += w.RippleStrength * math32.Sin(z*w.RippleFreq-worldEnergy*6)

	return math32.Pow(clamp01(life), 1.4)
}
