package components

// AnimationState 往返动画的阶段
type AnimationState int

const (
	// AnimationStopped 静止
	AnimationStopped AnimationState = iota
	// AnimationForward 正向阶段（值从 0 升到 1）
	AnimationForward
	// AnimationBackward 回退阶段（值从 1 降到 0）
	AnimationBackward
)

// String 返回阶段名称
func (s AnimationState) String() string {
	switch s {
	case AnimationForward:
		return "Forward"
	case AnimationBackward:
		return "Backward"
	default:
		return "Stopped"
	}
}

// InOutAnimation 先正向后回退的缓动动画
// 用于后坐力、敌人挥砍等反馈
//
// 正向阶段的 dt 溢出量会直接计入回退阶段，大帧间隔下也不会丢帧
type InOutAnimation struct {
	forwardDuration  float64
	backwardDuration float64
	state            AnimationState
	timer            Timer
}

// NewInOutAnimation 创建处于静止状态的动画
func NewInOutAnimation(forward, backward float64) InOutAnimation {
	return InOutAnimation{
		forwardDuration:  forward,
		backwardDuration: backward,
		state:            AnimationStopped,
	}
}

// NewStartedInOutAnimation 创建已进入正向阶段的动画
func NewStartedInOutAnimation(forward, backward float64) InOutAnimation {
	a := NewInOutAnimation(forward, backward)
	a.Trigger()
	return a
}

// Trigger 重新从正向阶段开始
func (a *InOutAnimation) Trigger() {
	a.state = AnimationForward
	a.timer = NewTimer(a.forwardDuration)
}

// Update 推进 dt 秒
func (a *InOutAnimation) Update(dt float64) {
	switch a.state {
	case AnimationForward:
		remaining := a.timer.Remaining()
		if dt < remaining {
			a.timer.Update(dt)
			return
		}
		a.enterBackward(dt - remaining)
	case AnimationBackward:
		a.timer.Update(dt)
		if a.timer.IsFinished() {
			a.state = AnimationStopped
		}
	}
}

func (a *InOutAnimation) enterBackward(overshoot float64) {
	left := a.backwardDuration - overshoot
	if left <= 0 {
		a.state = AnimationStopped
		a.timer = NewFinishedTimer()
		return
	}
	a.state = AnimationBackward
	a.timer = NewTimer(left)
}

// Value 返回 [0,1] 的归一化进度
func (a *InOutAnimation) Value() float64 {
	switch a.state {
	case AnimationForward:
		if a.forwardDuration <= 0 {
			return 1
		}
		return clamp01(1 - a.timer.Remaining()/a.forwardDuration)
	case AnimationBackward:
		if a.backwardDuration <= 0 {
			return 0
		}
		return clamp01(a.timer.Remaining() / a.backwardDuration)
	default:
		return 0
	}
}

// State 返回当前阶段（只比较阶段，不含计时器）
func (a *InOutAnimation) State() AnimationState {
	return a.state
}

// Remaining 返回当前阶段剩余秒数
func (a *InOutAnimation) Remaining() float64 {
	return a.timer.Remaining()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
