package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Collector accumulates per-frame samples and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	windowStart  float64
	frameMs      []float64
	smiles       []float64
	faceFrames   int
	totalFrames  int64
	windowFrames int
	bloomedPeak  int
}

// NewCollector creates a collector that flushes every windowDurationSec of
// wall time.
func NewCollector(windowDurationSec float64) *Collector {
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record adds one frame's samples.
func (c *Collector) Record(frameMs, smile float64, faceDetected bool, bloomed int) {
	c.frameMs = append(c.frameMs, frameMs)
	c.smiles = append(c.smiles, smile)
	if faceDetected {
		c.faceFrames++
	}
	if bloomed > c.bloomedPeak {
		c.bloomedPeak = bloomed
	}
	c.totalFrames++
	c.windowFrames++
}

// ShouldFlush reports whether the window has elapsed.
func (c *Collector) ShouldFlush(wallTimeSec float64) bool {
	return wallTimeSec-c.windowStart >= c.windowDurationSec
}

// Flush produces a WindowStats from the accumulated samples and resets for
// the next window. The caller provides the end-of-window world state.
func (c *Collector) Flush(wallTimeSec float64, state string, worldEnergy float64, bloomed, pollen int) WindowStats {
	stats := WindowStats{
		WindowEndFrame: c.totalFrames,
		WallTimeSec:    wallTimeSec,
		State:          state,
		WorldEnergy:    worldEnergy,
		Bloomed:        bloomed,
		BloomedPeak:    c.bloomedPeak,
		Pollen:         pollen,
	}

	if len(c.frameMs) > 0 {
		mean, std := stat.MeanStdDev(c.frameMs, nil)
		stats.FrameMsMean = mean
		if len(c.frameMs) > 1 {
			stats.FrameMsStd = std
		}
		if mean > 0 {
			stats.FPS = 1000 / mean
		}

		sorted := make([]float64, len(c.frameMs))
		copy(sorted, c.frameMs)
		sort.Float64s(sorted)
		stats.FrameMsP95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	}

	if len(c.smiles) > 0 {
		stats.SmileMean = stat.Mean(c.smiles, nil)
		for _, s := range c.smiles {
			if s > stats.SmileMax {
				stats.SmileMax = s
			}
		}
		stats.FacePresence = float64(c.faceFrames) / float64(len(c.smiles))
	}

	c.windowStart = wallTimeSec
	c.frameMs = c.frameMs[:0]
	c.smiles = c.smiles[:0]
	c.faceFrames = 0
	c.windowFrames = 0
	c.bloomedPeak = 0

	return stats
}
