package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindowFlushTiming(t *testing.T) {
	c := NewCollector(5.0)

	if c.ShouldFlush(4.9) {
		t.Error("flushed before the window elapsed")
	}
	if !c.ShouldFlush(5.0) {
		t.Error("did not flush at the window boundary")
	}

	c.Flush(5.0, "ALIVE", 1, 0, 0)
	if c.ShouldFlush(9.9) {
		t.Error("flushed again before the next window elapsed")
	}
	if !c.ShouldFlush(10.0) {
		t.Error("did not flush the second window")
	}
}

func TestCollectorFrameStats(t *testing.T) {
	c := NewCollector(5.0)

	// Steady 16ms frames with one 50ms spike.
	for i := 0; i < 99; i++ {
		c.Record(16, 0, false, 0)
	}
	c.Record(50, 0, false, 0)

	stats := c.Flush(5.0, "DORMANT", 0, 0, 0)
	if stats.WindowEndFrame != 100 {
		t.Errorf("frame count %d, want 100", stats.WindowEndFrame)
	}
	wantMean := (99*16.0 + 50) / 100
	if math.Abs(stats.FrameMsMean-wantMean) > 1e-9 {
		t.Errorf("mean %f, want %f", stats.FrameMsMean, wantMean)
	}
	if stats.FrameMsStd <= 0 {
		t.Error("spike should produce nonzero std")
	}
	if stats.FPS <= 0 {
		t.Error("fps not derived from mean frame time")
	}
	// The p95 must not be dragged up by the single outlier.
	if stats.FrameMsP95 != 16 {
		t.Errorf("p95 %f, want 16", stats.FrameMsP95)
	}
}

func TestCollectorEngagement(t *testing.T) {
	c := NewCollector(5.0)

	for i := 0; i < 60; i++ {
		detected := i < 45
		smile := 0.0
		if detected {
			smile = 0.8
		}
		c.Record(16, smile, detected, 0)
	}

	stats := c.Flush(5.0, "AWAKENING", 0.4, 0, 0)
	if math.Abs(stats.FacePresence-0.75) > 1e-9 {
		t.Errorf("face presence %f, want 0.75", stats.FacePresence)
	}
	if math.Abs(stats.SmileMax-0.8) > 1e-9 {
		t.Errorf("smile max %f, want 0.8", stats.SmileMax)
	}
	wantMean := 45 * 0.8 / 60
	if math.Abs(stats.SmileMean-wantMean) > 1e-9 {
		t.Errorf("smile mean %f, want %f", stats.SmileMean, wantMean)
	}
}

func TestCollectorBloomedPeakResets(t *testing.T) {
	c := NewCollector(5.0)

	c.Record(16, 0, false, 120)
	c.Record(16, 0, false, 80)
	stats := c.Flush(5.0, "ALIVE", 1, 80, 0)
	if stats.BloomedPeak != 120 {
		t.Errorf("peak %d, want 120", stats.BloomedPeak)
	}
	if stats.Bloomed != 80 {
		t.Errorf("end bloomed %d, want 80", stats.Bloomed)
	}

	c.Record(16, 0, false, 30)
	stats = c.Flush(10.0, "ALIVE", 1, 30, 0)
	if stats.BloomedPeak != 30 {
		t.Errorf("peak did not reset across windows: %d", stats.BloomedPeak)
	}
	// Frame numbering is cumulative across windows.
	if stats.WindowEndFrame != 3 {
		t.Errorf("cumulative frame count %d, want 3", stats.WindowEndFrame)
	}
}

func TestCollectorEmptyWindow(t *testing.T) {
	c := NewCollector(5.0)
	stats := c.Flush(5.0, "DORMANT", 0, 0, 0)
	if stats.FrameMsMean != 0 || stats.FPS != 0 || stats.SmileMean != 0 {
		t.Errorf("empty window should produce zero stats: %+v", stats)
	}
}
