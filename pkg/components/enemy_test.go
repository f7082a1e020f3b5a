package components

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/shooterboi/pkg/render"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestGunmanConvergesAndLeavesIdle(t *testing.T) {
	configs := map[string]GunmanConfig{
		"standing": {IdleDuration: 0.3, FocusDuration: 0.5, WalkSpeed: 0, ShootForwardDuration: 0.05, ShootBackwardDuration: 0.25},
		"walking":  {IdleDuration: 0.5, FocusDuration: 0.5, WalkSpeed: 5, ShootForwardDuration: 0.05, ShootBackwardDuration: 0.25},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			rng := newTestRand()
			gunman := NewGunman(rng, cfg)
			pos := mgl32.Vec3{2, 2.5, -2}
			// 玩家在枪手身后，需要整整转半圈
			player := mgl32.Vec3{2, 1, 10}

			const dt = 0.016
			for i := 0; i < 3000; i++ {
				gunman.Update(rng, dt, &pos, player)
				if gunman.State() != GunmanIdle {
					if !gunman.IsAimedAt(pos, player) {
						t.Errorf("left Idle without being aimed, dir=%v", gunman.RawDirection())
					}
					return
				}
			}
			t.Fatalf("gunman never left Idle, dir=%v", gunman.RawDirection())
		})
	}
}

func TestGunmanShootCycle(t *testing.T) {
	rng := newTestRand()
	cfg := DefaultGunmanConfig()
	cfg.WalkSpeed = 0
	gunman := NewGunman(rng, cfg)
	pos := mgl32.Vec3{0, 2.5, 0}
	player := mgl32.Vec3{0, 1, -10}

	const dt = 0.016
	shots := 0
	var shot GunmanOp
	sawShootState := false
	for i := 0; i < 200; i++ {
		op := gunman.Update(rng, dt, &pos, player)
		if op.Shoot {
			shots++
			shot = op
		}
		if gunman.State() == GunmanShoot {
			sawShootState = true
			if gunman.ShootAnim() > 0 {
				t.Fatalf("ShootAnim() = %f, want <= 0", gunman.ShootAnim())
			}
		}
	}

	if shots < 2 {
		t.Fatalf("expected repeated shots over 3.2s, got %d", shots)
	}
	if !sawShootState {
		t.Error("gunman never entered Shoot")
	}
	if !shot.Dir.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 0.02) {
		t.Errorf("shoot direction = %v, want towards the player", shot.Dir)
	}
	if shot.Pos != pos {
		t.Errorf("shoot position = %v, want %v", shot.Pos, pos)
	}
}

func TestGunmanWandersOnlyWhileIdle(t *testing.T) {
	rng := newTestRand()
	cfg := DefaultGunmanConfig()
	cfg.IdleDuration = 0.1
	gunman := NewGunman(rng, cfg)
	pos := mgl32.Vec3{0, 2.5, 0}
	// 玩家在身后，计时结束后仍需转身
	player := mgl32.Vec3{0, 1, 10}

	const dt = 0.016
	for i := 0; i < 10; i++ {
		gunman.Update(rng, dt, &pos, player)
	}
	if gunman.State() != GunmanIdle {
		t.Fatalf("state = %v, want Idle while still turning", gunman.State())
	}
	// 计时已结束但仍在转身，应继续游走
	before := pos
	gunman.Update(rng, dt, &pos, player)
	if gunman.State() == GunmanIdle && pos == before {
		t.Errorf("gunman stopped wandering while turning after the idle timer: %v", pos)
	}

	for gunman.State() == GunmanIdle {
		gunman.Update(rng, dt, &pos, player)
	}
	start := pos
	for gunman.State() != GunmanIdle {
		gunman.Update(rng, dt, &pos, player)
	}
	if pos != start {
		t.Errorf("gunman moved outside Idle: %v -> %v", start, pos)
	}
}

func TestGunmanHitFlash(t *testing.T) {
	rng := newTestRand()
	gunman := NewGunman(rng, DefaultGunmanConfig())
	pos := mgl32.Vec3{}

	gunman.Hit()
	if gunman.Material() != render.MaterialRed {
		t.Errorf("Material() = %v, want red while flashing", gunman.Material())
	}
	gunman.Update(rng, HitFlashDuration+0.01, &pos, mgl32.Vec3{0, 0, -5})
	if gunman.IsHitFlashing() || gunman.Material() != render.MaterialWhite {
		t.Error("hit flash should clear after its duration")
	}
}

func TestSwordmanChasesPlayer(t *testing.T) {
	s := NewSwordman()
	pos := mgl32.Vec3{0, 2.5, 0}
	player := mgl32.Vec3{0, 1, -10}

	s.Update(1, &pos, player)
	if s.State() != SwordmanChase {
		t.Fatalf("state = %v, want Chase", s.State())
	}
	if d := pos.Z(); d > -SwordmanSpeed+1e-4 || d < -SwordmanSpeed-1e-4 {
		t.Errorf("moved to z=%f, want %f", d, -SwordmanSpeed)
	}
	if pos.Y() != 2.5 {
		t.Errorf("chasing must not change height, y=%f", pos.Y())
	}
}

func TestSwordmanStrikesOncePerAttack(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"small steps", 0.016},
		{"single large step", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSwordman()
			pos := mgl32.Vec3{0, 2.5, 0}
			player := mgl32.Vec3{0, 1, -0.3}

			s.Update(0.016, &pos, player)
			if s.State() != SwordmanAttack {
				t.Fatalf("state = %v, want Attack when in range", s.State())
			}

			strikes := 0
			for i := 0; i < 100 && s.State() == SwordmanAttack; i++ {
				if op := s.Update(tt.dt, &pos, player); op.Strike {
					strikes++
					if op.Origin != pos {
						t.Errorf("strike origin = %v, want %v", op.Origin, pos)
					}
				}
			}
			if strikes != 1 {
				t.Errorf("strikes = %d, want exactly 1", strikes)
			}
			if s.State() != SwordmanChase {
				t.Errorf("state = %v, want Chase after the attack", s.State())
			}
		})
	}
}

func TestSteerTowardDeadzone(t *testing.T) {
	f := newFacing(mgl32.Vec3{0, 0, -1})
	desired := mgl32.Vec3{0.005, 0, -1}

	if f.steerToward(desired, 0.016) {
		t.Error("difference inside the deadzone should not rotate")
	}
	if !f.isAligned(desired) {
		t.Error("facing should count as aligned inside the deadzone")
	}
}
