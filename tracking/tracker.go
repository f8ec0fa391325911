package tracking

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Face is one snapshot of the capture thread's latest reading. HeadX/HeadY
// are normalized to roughly -1..1 around the frame center, mirrored so the
// viewer's rightward lean moves the head right. Smile is the smoothed 0..1
// strength from the calibrated detector.
type Face struct {
	Detected   bool
	HeadX      float32
	HeadY      float32
	Smile      float32
	Score      float32
	Calibrated bool
}

// Source is anything the scene can poll for the current face state.
type Source interface {
	Start() error
	Snapshot() Face
	Stop()
}

// Config for the webcam tracker.
type Config struct {
	Device        int
	ModelPath     string
	MinConfidence float32
}

// Tracker runs face detection on its own goroutine so a slow camera or model
// can never stall the render loop. The render thread only ever reads the
// mutex-guarded snapshot.
type Tracker struct {
	cfg Config
	log *slog.Logger

	cap      *gocv.VideoCapture
	detector gocv.FaceDetectorYN
	smile    *SmileDetector

	mu   sync.Mutex
	face Face

	stop chan struct{}
	done chan struct{}
}

// NewTracker creates an unstarted tracker.
func NewTracker(cfg Config, log *slog.Logger) *Tracker {
	return &Tracker{
		cfg:   cfg,
		log:   log,
		smile: NewSmileDetector(),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start opens the webcam and the YuNet model and launches the capture loop.
func (t *Tracker) Start() error {
	if _, err := os.Stat(t.cfg.ModelPath); err != nil {
		return fmt.Errorf("face model: %w", err)
	}

	cap, err := gocv.OpenVideoCapture(t.cfg.Device)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", t.cfg.Device, err)
	}
	t.cap = cap

	t.detector = gocv.NewFaceDetectorYNWithParams(
		t.cfg.ModelPath,
		"",
		image.Pt(320, 240),
		t.cfg.MinConfidence,
		0.3,
		5000,
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	go t.loop()
	return nil
}

// Snapshot returns the latest face state.
func (t *Tracker) Snapshot() Face {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.face
}

// Stop signals the capture loop and waits briefly for it to exit before
// releasing the camera. A wedged camera read must not hang shutdown forever.
func (t *Tracker) Stop() {
	close(t.stop)
	select {
	case <-t.done:
	case <-time.After(2 * time.Second):
		t.log.Warn("capture loop did not stop in time")
	}
	if t.cap != nil {
		t.cap.Close()
	}
	t.detector.Close()
}

func (t *Tracker) loop() {
	defer close(t.done)

	frame := gocv.NewMat()
	defer frame.Close()
	faces := gocv.NewMat()
	defer faces.Close()

	calibrationLogged := false

	for {
		select {
		case <-t.stop:
			return
		default:
		}

		if ok := t.cap.Read(&frame); !ok || frame.Empty() {
			t.publish(Face{})
			time.Sleep(100 * time.Millisecond)
			continue
		}

		w := float32(frame.Cols())
		h := float32(frame.Rows())
		t.detector.SetInputSize(image.Pt(frame.Cols(), frame.Rows()))
		t.detector.Detect(frame, &faces)

		best := bestFace(faces, t.cfg.MinConfidence)
		if best < 0 {
			smile := t.smile.NoFace()
			t.publish(Face{Smile: smile, Calibrated: t.smile.Calibrated()})
			time.Sleep(16 * time.Millisecond)
			continue
		}

		// YuNet row layout: 0-3 bbox, 4-13 five landmark pairs of which the
		// mouth corners are the last two, 14 score.
		bx := faces.GetFloatAt(best, 0)
		by := faces.GetFloatAt(best, 1)
		bw := faces.GetFloatAt(best, 2)
		bh := faces.GetFloatAt(best, 3)
		score := faces.GetFloatAt(best, 14)

		mlx := faces.GetFloatAt(best, 10)
		mly := faces.GetFloatAt(best, 11)
		mrx := faces.GetFloatAt(best, 12)
		mry := faces.GetFloatAt(best, 13)

		// Lip-corner distance, normalized by frame width so the metric is
		// resolution independent, scaled up into a comfortable integer range.
		dx := float64((mrx - mlx) / w)
		dy := float64((mry - mly) / w)
		metric := math.Sqrt(dx*dx+dy*dy) * 1000
		smile := t.smile.Observe(metric)

		if !calibrationLogged && t.smile.Calibrated() {
			calibrationLogged = true
			t.log.Info("smile baseline calibrated")
		}

		// Mirror x so the projection parallax follows the viewer naturally.
		cx := bx + bw/2
		cy := by + bh/2
		t.publish(Face{
			Detected:   true,
			HeadX:      -(cx/w*2 - 1),
			HeadY:      cy/h*2 - 1,
			Smile:      smile,
			Score:      score,
			Calibrated: t.smile.Calibrated(),
		})

		time.Sleep(16 * time.Millisecond)
	}
}

func (t *Tracker) publish(f Face) {
	t.mu.Lock()
	t.face = f
	t.mu.Unlock()
}

// bestFace returns the row index of the highest-scoring detection above the
// confidence floor, or -1.
func bestFace(faces gocv.Mat, minScore float32) int {
	best := -1
	var bestScore float32
	for r := 0; r < faces.Rows(); r++ {
		score := faces.GetFloatAt(r, 14)
		if score < minScore {
			continue
		}
		if best < 0 || score > bestScore {
			best = r
			bestScore = score
		}
	}
	return best
}
