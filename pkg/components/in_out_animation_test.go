package components

import "testing"

func TestInOutAnimationFullCycle(t *testing.T) {
	anim := NewInOutAnimation(0.05, 0.25)
	if anim.State() != AnimationStopped || anim.Value() != 0 {
		t.Fatalf("new animation should be stopped at 0, got %v %f", anim.State(), anim.Value())
	}

	anim.Trigger()
	if anim.State() != AnimationForward || anim.Value() != 0 {
		t.Fatalf("after Trigger: %v %f, want Forward 0", anim.State(), anim.Value())
	}

	anim.Update(0.025)
	if anim.State() != AnimationForward || !almostEqual(anim.Value(), 0.5) {
		t.Errorf("halfway forward: %v %f, want Forward 0.5", anim.State(), anim.Value())
	}

	anim.Update(0.025)
	if anim.State() != AnimationBackward || !almostEqual(anim.Value(), 1) {
		t.Errorf("end of forward: %v %f, want Backward 1", anim.State(), anim.Value())
	}

	anim.Update(0.125)
	if anim.State() != AnimationBackward || !almostEqual(anim.Value(), 0.5) {
		t.Errorf("halfway backward: %v %f, want Backward 0.5", anim.State(), anim.Value())
	}

	anim.Update(0.125)
	if anim.State() != AnimationStopped || anim.Value() != 0 {
		t.Errorf("end: %v %f, want Stopped 0", anim.State(), anim.Value())
	}
}

func TestInOutAnimationOvershootCarry(t *testing.T) {
	anim := NewStartedInOutAnimation(0.1, 0.4)

	// 正向剩余 0.1，溢出 0.1 计入回退阶段
	anim.Update(0.2)
	if anim.State() != AnimationBackward {
		t.Fatalf("state = %v, want Backward", anim.State())
	}
	if !almostEqual(anim.Remaining(), 0.3) {
		t.Errorf("backward remaining = %f, want 0.3", anim.Remaining())
	}

	// 溢出超过整个回退阶段时直接停止
	anim.Trigger()
	anim.Update(10)
	if anim.State() != AnimationStopped {
		t.Errorf("state = %v, want Stopped", anim.State())
	}
}

func TestInOutAnimationValueStaysInRange(t *testing.T) {
	anim := NewStartedInOutAnimation(0.05, 0.25)
	for i := 0; i < 40; i++ {
		v := anim.Value()
		if v < 0 || v > 1 {
			t.Fatalf("step %d: Value() = %f out of [0,1]", i, v)
		}
		anim.Update(0.016)
	}
	if anim.State() != AnimationStopped {
		t.Errorf("animation should stop eventually, got %v", anim.State())
	}
}

func TestAnimationStateString(t *testing.T) {
	if AnimationForward.String() != "Forward" || AnimationBackward.String() != "Backward" || AnimationStopped.String() != "Stopped" {
		t.Error("unexpected AnimationState names")
	}
}
