package scenes

import (
	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/config"
)

// roundPhase 对局内的阶段
type roundPhase int

const (
	// phasePreround 等待玩家按下任意鼠标键
	phasePreround roundPhase = iota
	// phasePrepare 开局倒计时
	phasePrepare
	// phaseRound 正式对局
	phaseRound
	// phaseFinishing 对局结束后的停留
	phaseFinishing
)

func (p roundPhase) String() string {
	switch p {
	case phasePrepare:
		return "Prepare"
	case phaseRound:
		return "Round"
	case phaseFinishing:
		return "Finishing"
	default:
		return "Preround"
	}
}

// roundState Preround → Prepare → Round → Finishing 状态机
//
// freeze 为 true 时暂停物理和玩家移动（从暂停菜单返回后的倒计时）；
// spawned 保证本局对象只生成一次，暂停后重新倒计时不会重复生成
type roundState struct {
	phase   roundPhase
	timer   components.Timer
	freeze  bool
	spawned bool
	cfg     config.RoundConfig
}

func newRoundState(cfg config.RoundConfig) roundState {
	return roundState{phase: phasePreround, cfg: cfg}
}

// resume 从暂停菜单返回：冻结并重新倒计时
func (r *roundState) resume() {
	r.freeze = true
	r.phase = phasePrepare
	r.timer = components.NewTimer(r.cfg.PrepareDuration)
}

// update 推进阶段
//
// 参数:
//   - dt: 帧间隔（秒）
//   - start: 本帧是否按下了鼠标键（Preround 用）
//
// 返回:
//   - spawn: 首次进入 Round，调用方应生成本局对象
//   - done: Finishing 结束，调用方应切换到成绩界面
func (r *roundState) update(dt float64, start bool) (spawn, done bool) {
	switch r.phase {
	case phasePreround:
		if start {
			r.phase = phasePrepare
			r.timer = components.NewTimer(r.cfg.PrepareDuration)
		}
	case phasePrepare:
		r.timer.Update(dt)
		if r.timer.IsFinished() {
			spawn = !r.spawned
			r.spawned = true
			r.freeze = false
			r.phase = phaseRound
		}
	case phaseFinishing:
		r.timer.Update(dt)
		done = r.timer.IsFinished()
	}
	return spawn, done
}

// finish Round → Finishing，其他阶段调用无效
func (r *roundState) finish() {
	if r.phase != phaseRound {
		return
	}
	r.phase = phaseFinishing
	r.timer = components.NewTimer(r.cfg.FinishingDuration)
}

func (r *roundState) isLive() bool {
	return r.phase == phaseRound
}
