package game

import (
	"testing"

	"github.com/pthm-cable/bloomroom/config"
)

func testDirector() *Director {
	return NewDirector(config.DirectorConfig{
		RevealDelay:    5.0,
		AwakenDuration: 12.0,
		SmileThreshold: 0.6,
		SmileSustain:   0.3,
	})
}

// step runs n frames at 60fps.
func step(d *Director, n int, face bool, smile float32, textVisible bool) {
	for i := 0; i < n; i++ {
		d.Update(1.0/60, face, smile, textVisible)
	}
}

func TestDirectorRevealNeedsSustainedPresence(t *testing.T) {
	d := testDirector()

	step(d, 120, true, 0, false) // 2s of presence
	if d.ShouldRevealText() {
		t.Fatal("revealed before the delay")
	}

	// A detection gap resets the presence clock.
	step(d, 10, false, 0, false)
	step(d, 240, true, 0, false) // 4s
	if d.ShouldRevealText() {
		t.Fatal("revealed despite the presence reset")
	}

	step(d, 70, true, 0, false) // past 5s total
	if !d.ShouldRevealText() {
		t.Fatal("not revealed after sustained presence")
	}
}

func TestDirectorSmileGateNeedsConjunction(t *testing.T) {
	d := testDirector()

	// A strong smile before the text is visible never triggers.
	step(d, 600, true, 1.0, false)
	if d.State() != StateDormant {
		t.Fatal("triggered without the invitation on screen")
	}

	// Nor does a strong smile without a face (detector decay artifacts).
	step(d, 600, false, 1.0, true)
	if d.State() != StateDormant {
		t.Fatal("triggered without a detected face")
	}

	// A smile at the threshold is not above it.
	step(d, 600, true, 0.6, true)
	if d.State() != StateDormant {
		t.Fatal("triggered at the threshold boundary")
	}

	step(d, 60, true, 0.9, true)
	if d.State() != StateAwakening {
		t.Fatalf("full conjunction did not trigger, state %v", d.State())
	}
}

func TestDirectorSustainResetsOnDip(t *testing.T) {
	d := testDirector()

	// 0.25s of smiling, a dip, then 0.25s more: never triggers because the
	// sustain clock restarts at the dip.
	step(d, 15, true, 0.9, true)
	step(d, 1, true, 0.2, true)
	step(d, 15, true, 0.9, true)
	if d.State() != StateDormant {
		t.Fatal("sustain survived a dip below threshold")
	}

	// A detection gap also resets it.
	step(d, 15, true, 0.9, true)
	step(d, 1, false, 0.9, true)
	step(d, 15, true, 0.9, true)
	if d.State() != StateDormant {
		t.Fatal("sustain survived a detection gap")
	}

	// Unbroken sustain triggers.
	step(d, 19, true, 0.9, true)
	if d.State() != StateAwakening {
		t.Fatal("unbroken sustain did not trigger")
	}
}

func TestDirectorAwakeningIsOneWay(t *testing.T) {
	d := testDirector()
	step(d, 20, true, 0.9, true)
	if d.State() != StateAwakening {
		t.Fatal("setup: expected AWAKENING")
	}

	// The viewer walks away mid-awakening; the world keeps waking.
	step(d, 12*60, false, 0, false)
	if d.State() != StateAlive {
		t.Fatalf("awakening did not complete, state %v", d.State())
	}

	step(d, 600, false, 0, false)
	if d.State() != StateAlive || d.Energy() != 1 {
		t.Error("ALIVE is not terminal")
	}
}

func TestDirectorEnergyCurve(t *testing.T) {
	d := testDirector()
	if d.Energy() != 0 {
		t.Errorf("dormant energy %f, want 0", d.Energy())
	}

	step(d, 20, true, 0.9, true)
	var prev float32
	for i := 0; i < 12*60; i++ {
		d.Update(1.0/60, false, 0, false)
		e := d.Energy()
		if e < prev {
			t.Fatalf("energy decreased: %f -> %f", prev, e)
		}
		if e < 0 || e > 1 {
			t.Fatalf("energy out of range: %f", e)
		}
		prev = e
	}
	if d.Energy() != 1 {
		t.Errorf("energy %f after full awakening, want 1", d.Energy())
	}
}

func TestDirectorStateNames(t *testing.T) {
	for state, want := range map[State]string{
		StateDormant:   "DORMANT",
		StateAwakening: "AWAKENING",
		StateAlive:     "ALIVE",
	} {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
