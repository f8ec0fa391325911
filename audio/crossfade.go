package audio

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Crossfader plays two looping beds, a dormant drone and an alive texture,
// and fades between them when the world wakes. Both loops run continuously so
// the fade is a pure volume move with no restart click.
//
// A nil Crossfader is valid and silent; audio is an optional layer of the
// installation.
type Crossfader struct {
	log *slog.Logger

	dormant *effects.Volume
	alive   *effects.Volume

	files []*os.File

	fadeDur float32
	fade    float32 // 0 = dormant bed, 1 = alive bed
	fading  bool
}

// NewCrossfader loads both beds and starts them with the dormant bed audible.
// Empty paths disable audio: the returned nil Crossfader is safe to use.
func NewCrossfader(dormantPath, alivePath string, fadeSec float64, log *slog.Logger) (*Crossfader, error) {
	if dormantPath == "" || alivePath == "" {
		return nil, nil
	}

	c := &Crossfader{log: log, fadeDur: float32(fadeSec)}

	dormantStream, format, err := c.open(dormantPath)
	if err != nil {
		return nil, err
	}
	aliveStream, aliveFormat, err := c.open(alivePath)
	if err != nil {
		c.closeFiles()
		return nil, err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(100*time.Millisecond)); err != nil {
		c.closeFiles()
		return nil, fmt.Errorf("speaker init: %w", err)
	}

	var aliveLoop beep.Streamer = beep.Loop(-1, aliveStream)
	if aliveFormat.SampleRate != format.SampleRate {
		aliveLoop = beep.Resample(4, aliveFormat.SampleRate, format.SampleRate, aliveLoop)
	}

	c.dormant = &effects.Volume{Streamer: beep.Loop(-1, dormantStream), Base: 2}
	c.alive = &effects.Volume{Streamer: aliveLoop, Base: 2, Silent: true}

	speaker.Play(c.dormant, c.alive)
	log.Info("audio beds playing", "dormant", dormantPath, "alive", alivePath)
	return c, nil
}

func (c *Crossfader) open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("audio bed: %w", err)
	}
	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	c.files = append(c.files, f)
	return stream, format, nil
}

// FadeToAlive starts the crossfade. Idempotent.
func (c *Crossfader) FadeToAlive() {
	if c == nil || c.fading || c.fade >= 1 {
		return
	}
	c.fading = true
}

// Update advances an in-progress fade.
func (c *Crossfader) Update(dt float32) {
	if c == nil || !c.fading {
		return
	}

	c.fade += dt / c.fadeDur
	if c.fade >= 1 {
		c.fade = 1
		c.fading = false
	}

	speaker.Lock()
	c.alive.Silent = c.fade <= 0
	c.alive.Volume = float64(-6 * (1 - c.fade)) // dB-ish in Base-2 units
	c.dormant.Silent = c.fade >= 1
	c.dormant.Volume = float64(-6 * c.fade)
	speaker.Unlock()
}

// Close stops playback and releases the bed files.
func (c *Crossfader) Close() {
	if c == nil {
		return
	}
	speaker.Clear()
	c.closeFiles()
}

func (c *Crossfader) closeFiles() {
	for _, f := range c.files {
		f.Close()
	}
	c.files = nil
}
