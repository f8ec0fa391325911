package telemetry

// Event is one timestamped occurrence worth keeping in the run log: a state
// transition, a smile trigger, a calibration milestone.
type Event struct {
	WallTimeSec float64 `csv:"wall_time"`
	Kind        string  `csv:"event"`
	Detail      string  `csv:"detail"`
}

// Event kinds written to events.csv.
const (
	EventStateChange = "state_change"
	EventSmileGate   = "smile_gate"
	EventCalibrated  = "calibrated"
	EventFaceLost    = "face_lost"
	EventFaceFound   = "face_found"
)
