package telemetry

import "log/slog"

// WindowStats holds aggregated frame statistics for one telemetry window.
// An installation runs unattended for hours; the CSV trail is how we find out
// afterwards whether it held frame rate and whether anyone actually smiled.
type WindowStats struct {
	WindowEndFrame int64   `csv:"window_end"`
	WallTimeSec    float64 `csv:"wall_time"`

	// Frame timing over the window
	FrameMsMean float64 `csv:"frame_ms_mean"`
	FrameMsStd  float64 `csv:"frame_ms_std"`
	FrameMsP95  float64 `csv:"frame_ms_p95"`
	FPS         float64 `csv:"fps"`

	// World state at window end
	State       string  `csv:"state"`
	WorldEnergy float64 `csv:"world_energy"`
	Bloomed     int     `csv:"bloomed"`
	BloomedPeak int     `csv:"bloomed_peak"`
	Pollen      int     `csv:"pollen"`

	// Viewer engagement during the window
	FacePresence float64 `csv:"face_presence"` // Fraction of frames with a face
	SmileMean    float64 `csv:"smile_mean"`
	SmileMax     float64 `csv:"smile_max"`
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"wall_time", s.WallTimeSec,
		"frame_ms_mean", s.FrameMsMean,
		"frame_ms_std", s.FrameMsStd,
		"frame_ms_p95", s.FrameMsP95,
		"fps", s.FPS,
		"state", s.State,
		"world_energy", s.WorldEnergy,
		"bloomed", s.Bloomed,
		"bloomed_peak", s.BloomedPeak,
		"pollen", s.Pollen,
		"face_presence", s.FacePresence,
		"smile_mean", s.SmileMean,
		"smile_max", s.SmileMax,
	)
}
