package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bloomroom/audio"
	"github.com/pthm-cable/bloomroom/camera"
	"github.com/pthm-cable/bloomroom/config"
	"github.com/pthm-cable/bloomroom/renderer"
	"github.com/pthm-cable/bloomroom/systems"
	"github.com/pthm-cable/bloomroom/telemetry"
	"github.com/pthm-cable/bloomroom/tracking"
	"github.com/pthm-cable/bloomroom/ui"
)

// maxFrameDt caps the simulation step so a stall (window drag, camera hiccup)
// cannot teleport the animation.
const maxFrameDt = 0.05

// Options configures a scene at startup.
type Options struct {
	Seed      int64
	OutputDir string
	NoCamera  bool
}

// Scene owns the whole installation: tracking source, world state, flower
// field, renderers and telemetry. The render thread calls Update and Draw
// once per frame; the tracking source runs on its own goroutine.
type Scene struct {
	cfg *config.Config
	rng *rand.Rand

	cam      *camera.Camera
	wind     *systems.Wind
	field    *systems.FlowerField
	pollen   *systems.PollenSystem
	director *Director
	source   tracking.Source

	room     *renderer.RoomRenderer
	flowers  *renderer.FlowerRenderer
	pollenR  *renderer.PollenRenderer
	text     *renderer.SmileText
	captions *renderer.Sequencer
	glow     *renderer.GlowCompositor
	queue    renderer.DepthQueue

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	fader     *audio.Crossfader

	overlay     *ui.Overlay
	showOverlay bool

	// Smoothed head position in world units
	headX, headY float32

	face           tracking.Face
	prevDetected   bool
	prevCalibrated bool
	prevState      State

	clock float64
	frame int64
}

// NewScene builds the scene. Must be called after the raylib window exists;
// the glow compositor allocates a render target.
func NewScene(opts Options) (*Scene, error) {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(opts.Seed))

	floorY := float32(cfg.Field.LaneY)
	roomTop := floorY + float32(cfg.Room.Height)

	s := &Scene{
		cfg: cfg,
		rng: rng,
		cam: camera.New(
			cfg.Derived.PitchRad,
			float32(cfg.Camera.Height),
			float32(cfg.Camera.EyeDepth),
			float32(cfg.Camera.NearClip),
			float32(cfg.Camera.UnitScale),
			cfg.Derived.ScreenW32,
			cfg.Derived.ScreenH32,
		),
		wind:     systems.NewWind(opts.Seed),
		director: NewDirector(cfg.Director),
		overlay:  ui.NewOverlay(),
	}

	wave := systems.WaveParams{
		Width:          float32(cfg.Wave.Width),
		RippleStrength: float32(cfg.Wave.RippleStrength),
		RippleFreq:     float32(cfg.Wave.RippleFreq),
		FieldHalfW:     cfg.Derived.FieldHalfW,
		DepthRepeat:    cfg.Derived.DepthRepeat,
	}
	layout := systems.FieldLayout{
		Lanes:       cfg.Field.Lanes,
		LaneY:       floorY,
		Spacing:     float32(cfg.Field.Spacing),
		DepthRepeat: cfg.Derived.DepthRepeat,
		DepthLayers: cfg.Field.DepthLayers,
		MaxFlowers:  cfg.Field.MaxFlowers,
	}
	s.field = systems.NewFlowerField(layout, wave, rng, s.wind)

	s.pollen = systems.NewPollenSystem(systems.PollenParams{
		SpawnInterval:    float32(cfg.Pollen.SpawnInterval),
		MinSpawnInterval: float32(cfg.Pollen.MinSpawnInterval),
		MaxAge:           float32(cfg.Pollen.MaxAge),
	}, roomTop, rng, s.wind)

	s.room = renderer.NewRoomRenderer(
		float32(cfg.Room.Width), float32(cfg.Room.Height), float32(cfg.Room.Depth),
		floorY, float32(cfg.Room.FloorSpacing), float32(cfg.Room.WallSpacing),
	)
	s.flowers = renderer.NewFlowerRenderer(s.cam, cfg.Derived.DepthRepeat)
	s.pollenR = renderer.NewPollenRenderer(s.cam)
	s.text = renderer.NewSmileText(float32(cfg.Room.Depth)*0.85, floorY+float32(cfg.Room.Height)*0.65)
	s.captions = renderer.NewSequencer([]renderer.Message{
		{Text: "it felt that", At: 1, Dur: 4},
		{Text: "stay as long as you like", At: 8, Dur: 5},
	})
	s.glow = renderer.NewGlowCompositor(int32(cfg.Screen.Width), int32(cfg.Screen.Height))

	s.source = newSource(opts, cfg)
	if err := s.source.Start(); err != nil {
		s.glow.Unload()
		return nil, fmt.Errorf("tracking source: %w", err)
	}

	s.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow)
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		s.source.Stop()
		return nil, err
	}
	s.output = output
	if err := s.output.WriteConfig(cfg); err != nil {
		slog.Warn("could not snapshot config", "error", err)
	}

	fader, err := audio.NewCrossfader(cfg.Audio.DormantTrack, cfg.Audio.AliveTrack, cfg.Audio.CrossfadeSeconds, slog.Default())
	if err != nil {
		slog.Warn("audio disabled", "error", err)
	}
	s.fader = fader

	slog.Info("scene ready",
		"flowers", s.field.Count(),
		"seed", opts.Seed,
		"camera", !opts.NoCamera,
	)
	return s, nil
}

func newSource(opts Options, cfg *config.Config) tracking.Source {
	if opts.NoCamera {
		return tracking.NewStaticSource(15 * time.Second)
	}
	return tracking.NewTracker(tracking.Config{
		Device:        cfg.Tracking.Device,
		ModelPath:     cfg.Tracking.ModelPath,
		MinConfidence: float32(cfg.Tracking.MinConfidence),
	}, slog.Default())
}

// Update advances the whole installation one frame.
func (s *Scene) Update() {
	dt := rl.GetFrameTime()
	if dt > maxFrameDt {
		dt = maxFrameDt
	}

	s.handleInput()

	s.face = s.source.Snapshot()
	if s.showOverlay && s.overlay.SmileOverride > 0 {
		s.face.Detected = true
		s.face.Smile = s.overlay.SmileOverride
	}

	s.smoothHead(dt)
	s.runDirector(dt)

	energy := s.director.Energy()
	s.field.Update(dt, energy)
	s.pollen.Update(dt, s.field)
	s.room.Update(dt, energy)
	s.text.Update(dt)
	s.captions.Update(dt)
	s.fader.Update(dt)

	s.recordTelemetry(dt, energy)
	s.frame++
}

// smoothHead eases the camera offset toward the tracked head. The heavy
// smoothing is the point: raw detections jitter by pixels and the projection
// amplifies every wobble across the whole room. Losing the face eases the
// view back to center rather than snapping.
func (s *Scene) smoothHead(dt float32) {
	var targetX, targetY float32
	if s.face.Detected {
		targetX = s.face.HeadX * float32(s.cfg.Tracking.HeadScaleX)
		targetY = -s.face.HeadY * float32(s.cfg.Tracking.HeadScaleY)
	}
	speed := float32(s.cfg.Tracking.HeadSmoothing) * 60
	s.headX = systems.ExpSmooth(s.headX, targetX, speed, dt)
	s.headY = systems.ExpSmooth(s.headY, targetY, speed, dt)
}

func (s *Scene) runDirector(dt float32) {
	s.director.Update(dt, s.face.Detected, s.face.Smile, s.text.Visible())

	if s.director.ShouldRevealText() {
		s.text.Reveal()
	}

	if s.face.Calibrated && !s.prevCalibrated {
		if err := s.output.WriteEvent(telemetry.Event{WallTimeSec: s.clock, Kind: telemetry.EventCalibrated}); err != nil {
			slog.Warn("event write failed", "error", err)
		}
		s.prevCalibrated = true
	}

	if s.face.Detected != s.prevDetected {
		kind := telemetry.EventFaceLost
		if s.face.Detected {
			kind = telemetry.EventFaceFound
		}
		if err := s.output.WriteEvent(telemetry.Event{WallTimeSec: s.clock, Kind: kind}); err != nil {
			slog.Warn("event write failed", "error", err)
		}
		s.prevDetected = s.face.Detected
	}

	state := s.director.State()
	if state == s.prevState {
		return
	}
	slog.Info("state change", "from", s.prevState.String(), "to", state.String())
	if err := s.output.WriteEvent(telemetry.Event{
		WallTimeSec: s.clock,
		Kind:        telemetry.EventStateChange,
		Detail:      state.String(),
	}); err != nil {
		slog.Warn("event write failed", "error", err)
	}

	switch state {
	case StateAwakening:
		if err := s.output.WriteEvent(telemetry.Event{
			WallTimeSec: s.clock,
			Kind:        telemetry.EventSmileGate,
			Detail:      fmt.Sprintf("%.2f", s.face.Smile),
		}); err != nil {
			slog.Warn("event write failed", "error", err)
		}
		s.text.Dismiss()
		s.captions.Start()
		s.fader.FadeToAlive()
	case StateAlive:
		s.pollen.Activate()
	}
	s.prevState = state
}

func (s *Scene) recordTelemetry(dt float32, energy float32) {
	s.clock += float64(dt)
	bloomed := s.field.BloomedCount()
	s.collector.Record(float64(dt)*1000, float64(s.face.Smile), s.face.Detected, bloomed)

	if !s.collector.ShouldFlush(s.clock) {
		return
	}
	stats := s.collector.Flush(s.clock, s.director.State().String(), float64(energy), bloomed, len(s.pollen.Particles))
	stats.LogStats()
	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
}

// Draw renders the frame: a glow pass into the low-res target, the main
// painter pass, then the additive composite and 2D overlays.
func (s *Scene) Draw() {
	project := s.cam.ProjectorFor(s.headX, s.headY)
	energy := s.director.Energy()

	s.glow.Begin()
	ps := s.glow.PixelScale()
	s.room.DrawGlow(project, ps, energy)
	s.flowers.Draw(s.field, project, &s.queue, ps, true)
	s.queue.Flush()
	s.text.Draw(project, ps)
	s.pollenR.Draw(s.pollen.Particles, project, ps)
	s.glow.End()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 6, G: 4, B: 10, A: 255})

	s.room.Draw(project, 1, energy)
	s.flowers.Draw(s.field, project, &s.queue, 1, false)
	s.queue.Flush()
	s.pollenR.Draw(s.pollen.Particles, project, 1)
	s.text.Draw(project, 1)

	s.glow.Composite()

	s.captions.Draw(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	if s.showOverlay {
		s.overlay.Draw(ui.OverlayData{
			State:        s.director.State().String(),
			WorldEnergy:  energy,
			FaceDetected: s.face.Detected,
			HeadX:        s.headX,
			HeadY:        s.headY,
			Smile:        s.face.Smile,
			SmileGate:    float32(s.cfg.Director.SmileThreshold),
			FlowerCount:  s.field.Count(),
			Bloomed:      s.field.BloomedCount(),
			Pollen:       len(s.pollen.Particles),
			FPS:          rl.GetFPS(),
			ScreenWidth:  int32(rl.GetScreenWidth()),
			ScreenHeight: int32(rl.GetScreenHeight()),
		})
	}
	rl.EndDrawing()
}

// Frame returns the number of frames simulated so far.
func (s *Scene) Frame() int64 {
	return s.frame
}

// Unload stops the tracking goroutine and releases GPU and file resources.
func (s *Scene) Unload() {
	s.source.Stop()
	s.fader.Close()
	s.glow.Unload()
	if err := s.output.Close(); err != nil {
		slog.Warn("output close failed", "error", err)
	}
}
