package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/bloomroom/components"
)

func testLayout() FieldLayout {
	return FieldLayout{
		Lanes:       12,
		LaneY:       -1.35,
		Spacing:     1.0,
		DepthRepeat: 20,
		DepthLayers: 14,
		MaxFlowers:  400,
	}
}

func testField(t *testing.T) *FlowerField {
	t.Helper()
	layout := testLayout()
	wave := WaveParams{
		Width:          0.9,
		RippleStrength: 0.08,
		RippleFreq:     1.2,
		FieldHalfW:     float32(layout.Lanes-1) * layout.Spacing / 2,
		DepthRepeat:    layout.DepthRepeat,
	}
	rng := rand.New(rand.NewSource(42))
	return NewFlowerField(layout, wave, rng, NewWind(42))
}

func TestFieldFixedPoolSize(t *testing.T) {
	field := testField(t)

	want := testLayout().Lanes * testLayout().DepthLayers
	if field.Count() != want {
		t.Fatalf("pool size %d, want %d", field.Count(), want)
	}

	// The pool never grows or shrinks across updates.
	for i := 0; i < 200; i++ {
		field.Update(0.016, float32(i)/200)
	}
	n := 0
	field.Each(func(_ *components.Position, _ *components.Bloom, _ *components.Blossom) {
		n++
	})
	if n != want {
		t.Errorf("pool size drifted to %d after updates", n)
	}
}

func TestFieldRespectsMaxFlowers(t *testing.T) {
	layout := testLayout()
	layout.MaxFlowers = 50
	wave := WaveParams{Width: 0.9, FieldHalfW: 5.5, DepthRepeat: 20}
	field := NewFlowerField(layout, wave, rand.New(rand.NewSource(1)), NewWind(1))
	if field.Count() != 50 {
		t.Errorf("cap ignored: %d flowers", field.Count())
	}
}

func TestFieldFlowersWithinBounds(t *testing.T) {
	field := testField(t)
	layout := testLayout()

	halfW := float32(layout.Lanes-1) * layout.Spacing / 2
	field.Each(func(pos *components.Position, _ *components.Bloom, blossom *components.Blossom) {
		if pos.X < -halfW-0.06 || pos.X > halfW+0.06 {
			t.Errorf("flower x out of lanes: %f", pos.X)
		}
		if pos.Z < 0 || pos.Z > layout.DepthRepeat {
			t.Errorf("flower z out of field: %f", pos.Z)
		}
		if blossom.Hue < 0 || blossom.Hue >= 1 {
			t.Errorf("hue out of [0,1): %f", blossom.Hue)
		}
		if blossom.Size < 0.2 || blossom.Size > 0.3 {
			t.Errorf("size out of range: %f", blossom.Size)
		}
	})
}

func TestFieldDormantAtZeroEnergy(t *testing.T) {
	field := testField(t)
	field.Update(0.016, 0)

	// The crest ripple can leave a trace of life even at zero energy, but
	// every flower must stay well below the bloom delay threshold.
	field.Each(func(_ *components.Position, bloom *components.Bloom, _ *components.Blossom) {
		if bloom.Life >= 0.25 {
			t.Errorf("flower has life %f at zero energy", bloom.Life)
		}
	})
	if n := field.BloomedCount(); n != 0 {
		t.Errorf("bloomed count %d at zero energy", n)
	}
}

func TestFieldFullEnergyBloomsNearRows(t *testing.T) {
	field := testField(t)
	field.Update(0.016, 1)

	if field.BloomedCount() == 0 {
		t.Error("no flowers at full life under full energy")
	}
}

func TestFieldLaneHeightRisesWithDepth(t *testing.T) {
	// Lane height is recomputed every update: deep rows sit visually higher
	// (less negative) so perspective reads as a receding meadow.
	field := testField(t)
	field.Update(0.016, 0)

	var nearY, farY float32
	var nearZ, farZ float32 = 1e9, -1
	field.Each(func(pos *components.Position, _ *components.Bloom, _ *components.Blossom) {
		if pos.Z < nearZ {
			nearZ, nearY = pos.Z, pos.Y
		}
		if pos.Z > farZ {
			farZ, farY = pos.Z, pos.Y
		}
	})
	if farY <= nearY {
		t.Errorf("deep row y %f should be above near row y %f", farY, nearY)
	}
}

func TestFieldLaneJitterSurvivesUpdate(t *testing.T) {
	// The per-flower vertical jitter is part of the layout, not just the
	// initial state: the per-frame lane height recompute must keep it.
	field := testField(t)
	field.Update(0.016, 0)

	laneY := testLayout().LaneY
	heights := map[float32]bool{}
	field.Each(func(pos *components.Position, _ *components.Bloom, _ *components.Blossom) {
		if pos.Z != 0 {
			return
		}
		if pos.Y < laneY-0.03-1e-5 || pos.Y > laneY+0.03+1e-5 {
			t.Errorf("front-row flower y %f outside the jitter band around %f", pos.Y, laneY)
		}
		heights[pos.Y] = true
	})
	if len(heights) < 2 {
		t.Errorf("front-row flowers collapsed to %d height(s), jitter lost", len(heights))
	}
}

func TestRandomBloomedNeedsBloom(t *testing.T) {
	field := testField(t)
	rng := rand.New(rand.NewSource(7))

	field.Update(0.016, 0)
	if _, ok := field.RandomBloomed(rng); ok {
		t.Error("dormant field returned a spawn point")
	}

	field.Update(0.016, 1)
	head, ok := field.RandomBloomed(rng)
	if !ok {
		t.Fatal("fully energized field returned no spawn point")
	}
	// The spawn point is the head, a stem's length above the lane.
	if head.Y < testLayout().LaneY {
		t.Errorf("spawn point below the lane: %f", head.Y)
	}
}
