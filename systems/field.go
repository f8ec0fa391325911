package systems

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bloomroom/components"
)

// FieldLayout describes the flower field arrangement.
type FieldLayout struct {
	Lanes       int
	LaneY       float32
	Spacing     float32
	DepthRepeat float32
	DepthLayers int
	MaxFlowers  int // Hard cap on the pool size
}

// FlowerField owns the fixed pool of flowers and the wave simulation that
// drives their bloom life. The pool is created once at construction and never
// grows or shrinks during a run.
type FlowerField struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Bloom, components.Blossom]
	filter *ecs.Filter3[components.Position, components.Bloom, components.Blossom]

	layout FieldLayout
	wave   WaveParams
	wind   *Wind
	count  int
}

// NewFlowerField creates the flower pool: lanes across x, depth layers packed
// toward the viewer (z = t^1.7 * depthRepeat), with small positional jitter
// and lane-keyed hues for a natural look.
func NewFlowerField(layout FieldLayout, wave WaveParams, rng *rand.Rand, wind *Wind) *FlowerField {
	world := ecs.NewWorld()

	f := &FlowerField{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Bloom, components.Blossom](world),
		filter: ecs.NewFilter3[components.Position, components.Bloom, components.Blossom](world),
		layout: layout,
		wave:   wave,
		wind:   wind,
	}

	layers := layout.DepthLayers
	if max := int(layout.DepthRepeat / layout.Spacing); layers > max {
		layers = max
	}
	if layers < 1 {
		layers = 1
	}

	xStart := -float32(layout.Lanes-1) / 2 * layout.Spacing
	for i := 0; i < layout.Lanes && f.count < layout.MaxFlowers; i++ {
		x := xStart + float32(i)*layout.Spacing
		for k := 0; k < layers && f.count < layout.MaxFlowers; k++ {
			t := float32(k) / float32(maxInt(1, layers-1))
			z := math32.Pow(t, 1.7) * layout.DepthRepeat

			yJitter := randRange(rng, -0.03, 0.03)
			pos := components.Position{
				X: x + randRange(rng, -0.06, 0.06),
				Y: layout.LaneY + yJitter,
				Z: z,
			}
			bloom := components.Bloom{
				Clock: rng.Float32() * 10, // de-sync flowers
			}
			hue := float32(i%12)/12 + randRange(rng, -0.03, 0.03)
			blossom := components.Blossom{
				Size:       0.25 + randRange(rng, -0.05, 0.05),
				Hue:        math32.Mod(hue+1, 1),
				RoseTwist:  rng.Float32() * 2 * math32.Pi,
				StemPhase:  rng.Float32() * 2 * math32.Pi,
				SwaySeed:   rng.Float32() * 100,
				LaneJitter: yJitter,
			}
			f.mapper.NewEntity(&pos, &bloom, &blossom)
			f.count++
		}
	}

	return f
}

// Count returns the fixed pool size.
func (f *FlowerField) Count() int {
	return f.count
}

// Update runs the O(N) wave pass: impose life on every flower from the
// world energy, advance its animation state, and recompute its lane height.
// This runs every frame for every flower, so it stays flat and branch-light.
func (f *FlowerField) Update(dt, worldEnergy float32) {
	f.wind.Advance(dt)

	query := f.filter.Query()
	for query.Next() {
		pos, bloom, blossom := query.Get()

		life := f.wave.LifeAt(pos.X, pos.Z, worldEnergy)
		UpdateFlower(pos, bloom, dt, life)

		bloom.Sway = StemSway(*pos, life) + f.wind.Gust(blossom.SwaySeed)*0.03*life

		depthNorm := pos.Z / f.layout.DepthRepeat
		if depthNorm > 1 {
			depthNorm = 1
		}
		bloom.BloomMax = BloomProgress(life, depthNorm, bloom.BloomMax)
		pos.Y = f.layout.LaneY*(1-0.35*depthNorm) + blossom.LaneJitter + bloom.Breath
	}
}

// Each visits every flower in the pool. The component pointers are only
// valid during the callback.
func (f *FlowerField) Each(fn func(pos *components.Position, bloom *components.Bloom, blossom *components.Blossom)) {
	query := f.filter.Query()
	for query.Next() {
		pos, bloom, blossom := query.Get()
		fn(pos, bloom, blossom)
	}
}

// DepthRepeat exposes the depth normalizer for renderers.
func (f *FlowerField) DepthRepeat() float32 {
	return f.layout.DepthRepeat
}

// BloomedCount returns how many flowers are currently at full life, used by
// telemetry and the pollen spawner.
func (f *FlowerField) BloomedCount() int {
	n := 0
	query := f.filter.Query()
	for query.Next() {
		_, bloom, _ := query.Get()
		if bloom.Life >= 1 {
			n++
		}
	}
	return n
}

// RandomBloomed picks a random fully-bloomed flower's head position as a
// pollen spawn point. Returns ok=false when nothing has bloomed yet.
func (f *FlowerField) RandomBloomed(rng *rand.Rand) (components.Position, bool) {
	// Reservoir sample over the flat pass; the pool is small enough that a
	// single scan per spawn is cheaper than maintaining an index.
	var pick components.Position
	seen := 0
	query := f.filter.Query()
	for query.Next() {
		pos, bloom, _ := query.Get()
		if bloom.Life < 1 {
			continue
		}
		seen++
		if rng.Intn(seen) == 0 {
			pick = *pos
			pick.Y += StemHeight(bloom.Life)
		}
	}
	return pick, seen > 0
}

func randRange(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
