package components

// Timer 倒计时器
// 每帧通过 Update(dt) 扣减剩余时间，剩余时间不会低于 0
type Timer struct {
	remaining float64
}

// NewTimer 创建一个剩余 duration 秒的计时器
func NewTimer(duration float64) Timer {
	if duration < 0 {
		duration = 0
	}
	return Timer{remaining: duration}
}

// NewFinishedTimer 创建一个已结束的计时器（用于冷却类计时，首次即可触发）
func NewFinishedTimer() Timer {
	return Timer{}
}

// Update 扣减 dt 秒，下限为 0
func (t *Timer) Update(dt float64) {
	if dt <= 0 {
		return
	}
	t.remaining -= dt
	if t.remaining < 0 {
		t.remaining = 0
	}
}

// IsFinished 剩余时间为 0 时返回 true
func (t *Timer) IsFinished() bool {
	return t.remaining <= 0
}

// Reset 以新的时长重新开始计时
func (t *Timer) Reset(duration float64) {
	if duration < 0 {
		duration = 0
	}
	t.remaining = duration
}

// Remaining 返回剩余秒数
func (t *Timer) Remaining() float64 {
	return t.remaining
}

// Stopwatch 正向累计的秒表
// 用于统计“距上次命中的时间”等
type Stopwatch struct {
	elapsed float64
}

// Update 累加 dt 秒
func (s *Stopwatch) Update(dt float64) {
	if dt > 0 {
		s.elapsed += dt
	}
}

// Reset 归零
func (s *Stopwatch) Reset() {
	s.elapsed = 0
}

// Elapsed 返回累计秒数
func (s *Stopwatch) Elapsed() float64 {
	return s.elapsed
}
