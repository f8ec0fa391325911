package systems

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/pthm-cable/bloomroom/camera"
	"github.com/pthm-cable/bloomroom/components"
)

// Pollen particles drift up from fully-bloomed flowers once the world is
// alive. This is a plain slice system, not ECS: particles are cheap,
// short-lived and only ever iterated in order.

// PollenParams tunes the spawner.
type PollenParams struct {
	SpawnInterval    float32 // Initial seconds between spawn bursts
	MinSpawnInterval float32 // Interval converges here over ~30s of activity
	MaxAge           float32 // Particle lifetime in seconds
}

// PollenParticle is a single drifting mote.
type PollenParticle struct {
	Pos      camera.Point3
	Vel      camera.Point3
	Age      float32
	MaxAge   float32
	Size     float32 // Base pixel size at unit perspective
	GlowMul  float32
	Hue      float32 // Warm hues, 0..60 degrees mapped to 0..1/6
	spiralPh float32
	spiralR  float32
	spiralW  float32
}

// Alpha fades the particle in over its first half second and out over its
// final two seconds.
func (p *PollenParticle) Alpha() float32 {
	switch {
	case p.Age < 0.5:
		return p.Age / 0.5
	case p.Age > p.MaxAge-2:
		return clamp01((p.MaxAge - p.Age) / 2)
	default:
		return 1
	}
}

// PollenSystem owns the particle pool and spawn clock.
type PollenSystem struct {
	Particles []PollenParticle

	params     PollenParams
	rng        *rand.Rand
	wind       *Wind
	spawnTimer float32
	interval   float32
	active     bool
	activeTime float32
	ceiling    float32
}

// NewPollenSystem creates an inactive pollen system. Activate it when the
// world reaches ALIVE.
func NewPollenSystem(params PollenParams, ceiling float32, rng *rand.Rand, wind *Wind) *PollenSystem {
	return &PollenSystem{
		params:   params,
		rng:      rng,
		wind:     wind,
		interval: params.SpawnInterval,
		ceiling:  ceiling,
	}
}

// Activate starts spawning particles.
func (s *PollenSystem) Activate() {
	if s.active {
		return
	}
	s.active = true
	s.activeTime = 0
}

// Active reports whether the system is spawning.
func (s *PollenSystem) Active() bool {
	return s.active
}

// Update advances particles and spawns new ones from bloomed flowers.
func (s *PollenSystem) Update(dt float32, field *FlowerField) {
	if !s.active {
		return
	}
	s.activeTime += dt

	// Spawn rate slowly converges toward the minimum interval.
	progress := clamp01(s.activeTime / 30)
	s.interval -= (s.interval - s.params.MinSpawnInterval) * progress * 0.01

	// Advance and compact in place
	alive := s.Particles[:0]
	for i := range s.Particles {
		p := &s.Particles[i]
		p.Age += dt

		spiralX := math32.Cos(p.spiralPh) * p.spiralR
		spiralZ := math32.Sin(p.spiralPh) * p.spiralR
		p.spiralPh += p.spiralW * dt

		gust := s.wind.Gust(p.spiralPh) * 0.004 * dt
		p.Pos.X += p.Vel.X + spiralX*dt + gust
		p.Pos.Y += p.Vel.Y
		p.Pos.Z += p.Vel.Z + spiralZ*dt

		if p.Pos.Y <= s.ceiling && p.Age <= p.MaxAge {
			alive = append(alive, *p)
		}
	}
	s.Particles = alive

	s.spawnTimer += dt
	if s.spawnTimer < s.interval {
		return
	}
	s.spawnTimer = 0

	for n := 1 + s.rng.Intn(3); n > 0; n-- {
		head, ok := field.RandomBloomed(s.rng)
		if !ok {
			return
		}
		s.Particles = append(s.Particles, s.newParticle(head))
	}
}

func (s *PollenSystem) newParticle(head components.Position) PollenParticle {
	return PollenParticle{
		Pos: camera.Point3{
			X: head.X + randRange(s.rng, -0.05, 0.05),
			Y: head.Y + randRange(s.rng, -0.05, 0.05),
			Z: head.Z + randRange(s.rng, -0.05, 0.05),
		},
		Vel: camera.Point3{
			X: randRange(s.rng, -0.002, 0.002),
			Y: randRange(s.rng, 0.008, 0.015), // upward drift is the main motion
			Z: randRange(s.rng, -0.002, 0.002),
		},
		MaxAge:   s.params.MaxAge,
		Size:     randRange(s.rng, 1.5, 3.5),
		GlowMul:  randRange(s.rng, 0.6, 1.0),
		Hue:      randRange(s.rng, 0, 60) / 360,
		spiralPh: s.rng.Float32() * 2 * math32.Pi,
		spiralR:  randRange(s.rng, 0.01, 0.03),
		spiralW:  randRange(s.rng, 0.02, 0.05),
	}
}
