package systems

import "github.com/chewxy/math32"

// Clamp and interpolation helpers shared by the animation passes.

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Smoothstep is the standard cubic ease 3t^2 - 2t^3 on clamped input.
func Smoothstep(t float32) float32 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// ExpSmooth advances current toward target with a frame-rate independent
// exponential response (speed in 1/seconds).
func ExpSmooth(current, target, speed, dt float32) float32 {
	return Lerp(current, target, 1-math32.Exp(-speed*dt))
}
