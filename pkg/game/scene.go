package game

// Scene 场景（主菜单、对局、暂停菜单等）
//
// 场景由 SceneStack 持有，只有栈顶场景会收到 Update。
// Init 在场景成为栈顶时调用（包括被 Pop 重新露出时），Deinit 在场景离开栈时调用。
type Scene interface {
	// Init 场景成为栈顶时调用
	// msg 可能为 nil，场景不能假设任何键存在
	Init(ctx *Context, msg Message)

	// Update 推进一帧并返回场景切换指令
	// dt 为距上一帧的时间（秒）
	Update(ctx *Context, dt float64) SceneOp

	// Deinit 场景出栈时调用
	Deinit(ctx *Context)
}

// Prerenderer 可选接口，需要向渲染队列写入对象的场景实现
//
// 在 SceneOp 应用之后、渲染之前调用，只对栈顶场景调用
type Prerenderer interface {
	Prerender(ctx *Context, dt float64)
}

// SceneOpKind 场景切换类型
type SceneOpKind int

const (
	// OpNone 不切换
	OpNone SceneOpKind = iota
	// OpPush 压入新场景，旧场景留在栈中且不调用 Deinit
	OpPush
	// OpPop 弹出栈顶 n 个场景
	OpPop
	// OpReplace 用新场景替换栈顶
	OpReplace
)

// String 返回切换类型名称
func (k SceneOpKind) String() string {
	switch k {
	case OpPush:
		return "Push"
	case OpPop:
		return "Pop"
	case OpReplace:
		return "Replace"
	default:
		return "None"
	}
}

// SceneOp Update 返回的场景切换指令
type SceneOp struct {
	Kind    SceneOpKind
	Scene   Scene
	Count   int
	Message Message
}

// None 不切换
func None() SceneOp {
	return SceneOp{Kind: OpNone}
}

// Push 压入新场景，msg 传给新场景的 Init
func Push(scene Scene, msg Message) SceneOp {
	return SceneOp{Kind: OpPush, Scene: scene, Message: msg}
}

// Pop 弹出 n 个场景，msg 传给重新露出的栈顶场景的 Init
func Pop(n int, msg Message) SceneOp {
	return SceneOp{Kind: OpPop, Count: n, Message: msg}
}

// PopAll 弹出所有场景，栈空后程序退出
func PopAll() SceneOp {
	return SceneOp{Kind: OpPop, Count: -1}
}

// Replace 用新场景替换栈顶
func Replace(scene Scene, msg Message) SceneOp {
	return SceneOp{Kind: OpReplace, Scene: scene, Message: msg}
}
