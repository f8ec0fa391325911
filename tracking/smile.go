package tracking

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Smile detection from lip-corner geometry. The detector calibrates a neutral
// baseline per session: the viewer's resting mouth width over the first
// samples, taken as a median so early grins or detector jitter cannot skew it.

const (
	baselineSamples = 60
	metricFloor     = 10  // Implausibly small mouth, detector glitch
	metricCeil      = 500 // Implausibly large, usually a partial face
	smileGain       = 15  // Metric units of widening for a full smile
	smileSmoothing  = 0.12
)

// SmileDetector turns raw mouth-width metrics into a smoothed 0..1 strength.
// Not safe for concurrent use; the capture goroutine owns it.
type SmileDetector struct {
	samples    []float64
	baseline   float64
	calibrated bool
	smoothed   float32
}

// NewSmileDetector creates an uncalibrated detector.
func NewSmileDetector() *SmileDetector {
	return &SmileDetector{samples: make([]float64, 0, baselineSamples)}
}

// Calibrated reports whether the neutral baseline has been frozen.
func (d *SmileDetector) Calibrated() bool {
	return d.calibrated
}

// Strength returns the current smoothed smile strength.
func (d *SmileDetector) Strength() float32 {
	return d.smoothed
}

// Observe feeds one frame's mouth-width metric. Implausible metrics hold the
// previous strength rather than spiking it.
func (d *SmileDetector) Observe(metric float64) float32 {
	if metric < metricFloor || metric > metricCeil {
		return d.smoothed
	}

	if !d.calibrated {
		d.samples = append(d.samples, metric)
		if len(d.samples) == baselineSamples {
			sorted := make([]float64, len(d.samples))
			copy(sorted, d.samples)
			sort.Float64s(sorted)
			d.baseline = stat.Quantile(0.5, stat.Empirical, sorted, nil)
			d.calibrated = true
			d.samples = nil
		}
		return 0
	}

	target := float32((metric - d.baseline) / smileGain)
	if target < 0 {
		target = 0
	} else if target > 1 {
		target = 1
	}
	d.smoothed += (target - d.smoothed) * smileSmoothing
	return d.smoothed
}

// NoFace relaxes the strength toward zero while the viewer is absent, at the
// same rate a fading smile would.
func (d *SmileDetector) NoFace() float32 {
	d.smoothed += (0 - d.smoothed) * smileSmoothing
	if d.smoothed < 1e-4 {
		d.smoothed = 0
	}
	return d.smoothed
}
