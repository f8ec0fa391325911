package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bloomroom/config"
	"github.com/pthm-cable/bloomroom/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	windowed := flag.Bool("windowed", false, "Run in a window instead of fullscreen")
	noCamera := flag.Bool("no-camera", false, "Run without a webcam (scripted head and smile)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if cfg.Screen.Fullscreen && !*windowed {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Bloom Room")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.HideCursor()

	scene, err := game.NewScene(game.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		NoCamera:  *noCamera,
	})
	if err != nil {
		slog.Error("failed to build scene", "error", err)
		os.Exit(1)
	}
	defer scene.Unload()

	for !rl.WindowShouldClose() {
		scene.Update()
		scene.Draw()

		if *maxFrames > 0 && scene.Frame() >= *maxFrames {
			slog.Info("max frames reached", "frame", scene.Frame())
			break
		}
	}
}
