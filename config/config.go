// Package config provides configuration loading and access for the installation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all installation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Room      RoomConfig      `yaml:"room"`
	Field     FieldConfig     `yaml:"field"`
	Wave      WaveConfig      `yaml:"wave"`
	Director  DirectorConfig  `yaml:"director"`
	Tracking  TrackingConfig  `yaml:"tracking"`
	Pollen    PollenConfig    `yaml:"pollen"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	TargetFPS  int  `yaml:"target_fps"`
	Fullscreen bool `yaml:"fullscreen"`
}

// CameraConfig holds the off-axis camera parameters.
// These are fixed per session except unit_scale, which follows window resize.
type CameraConfig struct {
	PitchDeg  float64 `yaml:"pitch_deg"`  // Downward pitch in degrees
	Height    float64 `yaml:"height"`     // Eye height in world units
	EyeDepth  float64 `yaml:"eye_depth"`  // Viewer distance to the screen plane
	NearClip  float64 `yaml:"near_clip"`  // Near plane distance
	UnitScale float64 `yaml:"unit_scale"` // Pixels per world unit
}

// RoomConfig holds the wireframe room dimensions.
type RoomConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Depth        float64 `yaml:"depth"`
	FloorSpacing float64 `yaml:"floor_spacing"`
	WallSpacing  float64 `yaml:"wall_spacing"`
}

// FieldConfig holds the flower field layout.
type FieldConfig struct {
	Lanes       int     `yaml:"lanes"`
	LaneY       float64 `yaml:"lane_y"`
	Spacing     float64 `yaml:"spacing"`
	DepthRepeat float64 `yaml:"depth_repeat"`
	DepthLayers int     `yaml:"depth_layers"`
	MaxFlowers  int     `yaml:"max_flowers"`
}

// WaveConfig holds the awakening wave tuning constants.
type WaveConfig struct {
	Width          float64 `yaml:"width"`           // Wave envelope width in world units
	RippleStrength float64 `yaml:"ripple_strength"` // Crest ripple amplitude
	RippleFreq     float64 `yaml:"ripple_freq"`     // Crest ripple frequency along z
}

// DirectorConfig holds the world state machine timing.
type DirectorConfig struct {
	RevealDelay    float64 `yaml:"reveal_delay"`    // Seconds before the smile text fades in
	AwakenDuration float64 `yaml:"awaken_duration"` // Seconds from AWAKENING to ALIVE
	SmileThreshold float64 `yaml:"smile_threshold"` // Smoothed smile strength gate
	SmileSustain   float64 `yaml:"smile_sustain"`   // Seconds the gate must hold continuously
}

// TrackingConfig holds webcam and head mapping parameters.
type TrackingConfig struct {
	Device        int     `yaml:"device"`
	ModelPath     string  `yaml:"model_path"` // YuNet ONNX model
	MinConfidence float64 `yaml:"min_confidence"`
	HeadScaleX    float64 `yaml:"head_scale_x"` // Normalized webcam x -> world units
	HeadScaleY    float64 `yaml:"head_scale_y"`
	HeadSmoothing float64 `yaml:"head_smoothing"`
}

// PollenConfig holds pollen particle tuning.
type PollenConfig struct {
	SpawnInterval    float64 `yaml:"spawn_interval"`
	MinSpawnInterval float64 `yaml:"min_spawn_interval"`
	MaxAge           float64 `yaml:"max_age"`
}

// AudioConfig holds the crossfade track paths. Empty paths disable audio.
type AudioConfig struct {
	DormantTrack     string  `yaml:"dormant_track"`
	AliveTrack       string  `yaml:"alive_track"`
	CrossfadeSeconds float64 `yaml:"crossfade_seconds"`
}

// TelemetryConfig holds frame stats parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PitchRad    float32 // Camera pitch in radians
	ScreenW32   float32
	ScreenH32   float32
	FieldHalfW  float32 // (lanes-1) * spacing / 2, wave distance normalizer
	DepthRepeat float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.PitchRad = float32(c.Camera.PitchDeg) * math32.Pi / 180
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	halfW := float32(c.Field.Lanes-1) * float32(c.Field.Spacing) * 0.5
	if halfW < 0.001 {
		halfW = 0.001
	}
	c.Derived.FieldHalfW = halfW
	c.Derived.DepthRepeat = float32(c.Field.DepthRepeat)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
