package game

import (
	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/logger"
)

// SceneStack 场景栈，只有栈顶场景是活动场景
//
// 所有切换都通过 Apply 完成：
//   - Push: 初始化新场景并压栈，旧场景不 Deinit
//   - Pop(n): 自顶向下依次 Deinit 并弹出 n 个场景，再用消息重新 Init 露出的栈顶
//   - Replace: Deinit 栈顶，初始化新场景替换之
//
// 栈为空表示程序应退出
type SceneStack struct {
	ctx    *Context
	scenes []Scene
	log    *zap.Logger
}

// NewSceneStack 创建空场景栈
func NewSceneStack(ctx *Context) *SceneStack {
	return &SceneStack{
		ctx: ctx,
		log: logger.Named("scene"),
	}
}

// Context 返回传给场景的协作者集合
func (s *SceneStack) Context() *Context {
	return s.ctx
}

// Len 返回栈中场景数
func (s *SceneStack) Len() int {
	return len(s.scenes)
}

// IsEmpty 栈是否为空
func (s *SceneStack) IsEmpty() bool {
	return len(s.scenes) == 0
}

// Top 返回栈顶场景，栈空时返回 nil
func (s *SceneStack) Top() Scene {
	if len(s.scenes) == 0 {
		return nil
	}
	return s.scenes[len(s.scenes)-1]
}

// Update 更新栈顶场景并应用它返回的切换指令
//
// 参数:
//   - dt: 帧间隔（秒）
//
// 返回:
//   - bool: 栈为空（程序应退出）时返回 false
func (s *SceneStack) Update(dt float64) bool {
	top := s.Top()
	if top == nil {
		return false
	}
	s.Apply(top.Update(s.ctx, dt))
	return !s.IsEmpty()
}

// Prerender 让栈顶场景写入本帧的渲染对象
func (s *SceneStack) Prerender(dt float64) {
	if p, ok := s.Top().(Prerenderer); ok {
		p.Prerender(s.ctx, dt)
	}
}

// Apply 应用切换指令
func (s *SceneStack) Apply(op SceneOp) {
	switch op.Kind {
	case OpNone:
	case OpPush:
		s.push(op.Scene, op.Message)
	case OpPop:
		s.pop(op.Count, op.Message)
	case OpReplace:
		if top := s.Top(); top != nil {
			top.Deinit(s.ctx)
			s.scenes = s.scenes[:len(s.scenes)-1]
		}
		s.push(op.Scene, op.Message)
	default:
		s.log.Warn("unknown scene op", zap.Stringer("kind", op.Kind))
	}
}

func (s *SceneStack) push(scene Scene, msg Message) {
	if scene == nil {
		panic("game: push nil scene")
	}
	scene.Init(s.ctx, msg)
	s.scenes = append(s.scenes, scene)
	s.log.Debug("scene pushed", zap.Int("depth", len(s.scenes)))
}

func (s *SceneStack) pop(n int, msg Message) {
	if n < 0 || n > len(s.scenes) {
		n = len(s.scenes)
	}
	for i := 0; i < n; i++ {
		last := len(s.scenes) - 1
		s.scenes[last].Deinit(s.ctx)
		s.scenes[last] = nil
		s.scenes = s.scenes[:last]
	}
	s.log.Debug("scenes popped", zap.Int("count", n), zap.Int("depth", len(s.scenes)))

	if top := s.Top(); top != nil {
		top.Init(s.ctx, msg)
	}
}

// Clear 依次 Deinit 并移除所有场景（程序退出时调用）
func (s *SceneStack) Clear() {
	for len(s.scenes) > 0 {
		last := len(s.scenes) - 1
		s.scenes[last].Deinit(s.ctx)
		s.scenes = s.scenes[:last]
	}
}
