// Bloom curve dump tool - samples the bloom easing and wave envelope into CSV
// for plotting while tuning the motion design.
//
// Usage: go run ./cmd/bloomcurve -out curves.csv
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/bloomroom/config"
	"github.com/pthm-cable/bloomroom/systems"
)

// CurveSample is one row of the dump: every derived bloom quantity at one
// point of the bloom parameter, plus the wave life at a matching depth.
type CurveSample struct {
	BloomT     float32 `csv:"bloom_t"`
	Lift       float32 `csv:"lift"`
	Spread     float32 `csv:"spread"`
	StemGlow   float32 `csv:"stem_glow"`
	DroopInner float32 `csv:"droop_inner"`
	DroopOuter float32 `csv:"droop_outer"`

	WaveZ    float32 `csv:"wave_z"`
	WaveLife float32 `csv:"wave_life"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	out := flag.String("out", "curves.csv", "Output CSV path")
	steps := flag.Int("steps", 200, "Number of samples across the curve")
	energy := flag.Float64("energy", 0.5, "World energy for the wave column")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	wave := systems.WaveParams{
		Width:          float32(cfg.Wave.Width),
		RippleStrength: float32(cfg.Wave.RippleStrength),
		RippleFreq:     float32(cfg.Wave.RippleFreq),
		FieldHalfW:     cfg.Derived.FieldHalfW,
		DepthRepeat:    cfg.Derived.DepthRepeat,
	}

	samples := make([]CurveSample, 0, *steps+1)
	for i := 0; i <= *steps; i++ {
		t := float32(i) / float32(*steps)
		open := systems.Ease(t)
		z := t * wave.DepthRepeat

		samples = append(samples, CurveSample{
			BloomT:     t,
			Lift:       open.Lift,
			Spread:     open.Spread,
			StemGlow:   systems.StemGlowFactor(t),
			DroopInner: systems.GravityDroop(t, 0, 0.3),
			DroopOuter: systems.GravityDroop(t, 0, 1.0),
			WaveZ:      z,
			WaveLife:   wave.LifeAt(0, z, float32(*energy)),
		})
	}

	f, err := os.Create(*out)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := gocsv.Marshal(samples, f); err != nil {
		slog.Error("failed to write curves", "error", err)
		os.Exit(1)
	}
	slog.Info("curves written", "path", *out, "rows", len(samples))
}
