package systems

import opensimplex "github.com/ojrac/opensimplex-go"

// Wind is a shared 1D-over-time noise field that modulates stem sway and
// pollen drift so the whole field moves coherently instead of per-flower
// randomness.
type Wind struct {
	noise opensimplex.Noise
	t     float64
}

// NewWind creates a wind field from a seed.
func NewWind(seed int64) *Wind {
	return &Wind{noise: opensimplex.NewNormalized(seed)}
}

// Advance moves the wind field forward in time.
func (w *Wind) Advance(dt float32) {
	w.t += float64(dt)
}

// Gust samples the wind at a per-flower coordinate, returning -1..1.
func (w *Wind) Gust(seed float32) float32 {
	return float32(w.noise.Eval2(float64(seed), w.t*0.2))*2 - 1
}
