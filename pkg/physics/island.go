package physics

import "github.com/go-gl/mathgl/mgl32"

const (
	// SleepLinearThreshold 低于该速度的动态刚体开始计时休眠
	SleepLinearThreshold = 0.05
	// SleepDelay 持续静止多久后进入休眠（秒）
	SleepDelay = 2.0
)

// islandManager 管理动态刚体的休眠
//
// 只有与其他物体保持接触且几乎静止的刚体才会休眠；
// 被外部移动或被运动中的刚体碰到时醒来
type islandManager struct {
	restTime map[RigidBodyHandle]float32
}

func newIslandManager() islandManager {
	return islandManager{restTime: make(map[RigidBodyHandle]float32)}
}

func (im *islandManager) forget(h RigidBodyHandle) {
	delete(im.restTime, h)
}

// update 在一次 Step 的接触处理之后调用
// touching 为本帧与任何物体有接触的刚体
func (im *islandManager) update(w *World, dt float32, touching map[RigidBodyHandle]bool) {
	w.bodies.each(func(index, generation uint32, b *RigidBody) {
		h := RigidBodyHandle{index: index, generation: generation}
		if !b.IsDynamic() {
			return
		}
		if !b.sleeping {
			if touching[h] && b.linvel.Len() < SleepLinearThreshold {
				im.restTime[h] += dt
				if im.restTime[h] >= SleepDelay {
					b.sleeping = true
					b.linvel = mgl32.Vec3{}
				}
			} else {
				im.restTime[h] = 0
			}
		} else {
			delete(im.restTime, h)
		}
	})
}
