package tracking

import (
	"math"
	"testing"
)

func calibrate(d *SmileDetector, metric float64) {
	for i := 0; i < baselineSamples; i++ {
		d.Observe(metric)
	}
}

func TestSmileBaselineCalibration(t *testing.T) {
	d := NewSmileDetector()

	// Nothing reported until the baseline window fills.
	for i := 0; i < baselineSamples-1; i++ {
		if got := d.Observe(100); got != 0 {
			t.Fatalf("sample %d: strength %f before calibration", i, got)
		}
		if d.Calibrated() {
			t.Fatalf("calibrated early at sample %d", i)
		}
	}
	d.Observe(100)
	if !d.Calibrated() {
		t.Fatal("not calibrated after full window")
	}
}

func TestSmileBaselineMedianRejectsOutliers(t *testing.T) {
	// A handful of glitch frames inside the window must not drag the
	// baseline: the median of mostly-100 samples stays near 100, so a neutral
	// mouth afterwards reads as no smile.
	d := NewSmileDetector()
	for i := 0; i < baselineSamples; i++ {
		metric := 100.0
		if i%10 == 0 {
			metric = 400
		}
		d.Observe(metric)
	}
	if !d.Calibrated() {
		t.Fatal("not calibrated")
	}

	for i := 0; i < 50; i++ {
		d.Observe(100)
	}
	if got := d.Strength(); got > 0.05 {
		t.Errorf("neutral mouth reads as smile %f after noisy calibration", got)
	}
}

func TestSmileStrengthRisesWithWidening(t *testing.T) {
	d := NewSmileDetector()
	calibrate(d, 100)

	// A mouth 15 units wider than baseline is a full smile; smoothing means
	// it takes repeated frames to converge.
	var prev float32
	for i := 0; i < 60; i++ {
		got := d.Observe(115)
		if got < prev {
			t.Fatalf("frame %d: strength fell %f -> %f under steady smile", i, prev, got)
		}
		prev = got
	}
	if prev < 0.9 {
		t.Errorf("sustained full smile converged to %f, want near 1", prev)
	}
}

func TestSmileImplausibleMetricHolds(t *testing.T) {
	d := NewSmileDetector()
	calibrate(d, 100)
	for i := 0; i < 60; i++ {
		d.Observe(115)
	}
	before := d.Strength()

	// Glitch frames in either direction leave the strength untouched.
	if got := d.Observe(2); got != before {
		t.Errorf("tiny metric changed strength: %f -> %f", before, got)
	}
	if got := d.Observe(900); got != before {
		t.Errorf("huge metric changed strength: %f -> %f", before, got)
	}
}

func TestSmileDecaysWithoutFace(t *testing.T) {
	d := NewSmileDetector()
	calibrate(d, 100)
	for i := 0; i < 60; i++ {
		d.Observe(115)
	}
	if d.Strength() < 0.5 {
		t.Fatal("setup: expected a strong smile")
	}

	var prev = d.Strength()
	for i := 0; i < 200; i++ {
		got := d.NoFace()
		if got > prev {
			t.Fatalf("strength rose without a face: %f -> %f", prev, got)
		}
		prev = got
	}
	if math.Abs(float64(prev)) > 1e-3 {
		t.Errorf("strength did not decay to zero, got %f", prev)
	}
}

func TestStaticSourceScriptedSmile(t *testing.T) {
	s := NewStaticSource(0)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	face := s.Snapshot()
	if !face.Detected {
		t.Error("static source should always report a face")
	}
	if face.HeadX < -1 || face.HeadX > 1 || face.HeadY < -1 || face.HeadY > 1 {
		t.Errorf("static head out of normalized range: %+v", face)
	}
}
