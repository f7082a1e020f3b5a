package game

// ValueKind 消息值类型
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
)

// Value 场景间消息中的一个带类型的值
type Value struct {
	Kind ValueKind
	s    string
	i    int64
	f    float64
	b    bool
}

// StringValue 字符串值
func StringValue(s string) Value { return Value{Kind: ValueString, s: s} }

// IntValue 整数值
func IntValue(i int64) Value { return Value{Kind: ValueInt, i: i} }

// FloatValue 浮点值
func FloatValue(f float64) Value { return Value{Kind: ValueFloat, f: f} }

// BoolValue 布尔值
func BoolValue(b bool) Value { return Value{Kind: ValueBool, b: b} }

// Message 场景间消息
//
// 随 Push/Pop/Replace 传递给下一个活动场景。nil 消息合法，
// 缺失的键表示使用默认值。
type Message map[string]Value

// NewMessage 创建空消息
func NewMessage() Message {
	return make(Message)
}

// With 写入一个值并返回消息本身，便于链式构造
func (m Message) With(key string, v Value) Message {
	m[key] = v
	return m
}

// String 读取字符串值，键不存在或类型不符时返回 false
func (m Message) String(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v.Kind != ValueString {
		return "", false
	}
	return v.s, true
}

// Int 读取整数值
func (m Message) Int(key string) (int64, bool) {
	v, ok := m[key]
	if !ok || v.Kind != ValueInt {
		return 0, false
	}
	return v.i, true
}

// Float 读取浮点值，整数值会被转换
func (m Message) Float(key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case ValueFloat:
		return v.f, true
	case ValueInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Bool 读取布尔值
func (m Message) Bool(key string) (bool, bool) {
	v, ok := m[key]
	if !ok || v.Kind != ValueBool {
		return false, false
	}
	return v.b, true
}

// BoolOr 读取布尔值，缺失时返回 def
func (m Message) BoolOr(key string, def bool) bool {
	if b, ok := m.Bool(key); ok {
		return b
	}
	return def
}

// 场景间约定的消息键
const (
	// KeyStartBGM 为 false 时主菜单不重新播放背景音乐
	KeyStartBGM = "start_bgm"
	// KeyFromPause 对局从暂停菜单返回
	KeyFromPause = "from_pause"
	// KeyMode 游戏模式（Int）
	KeyMode = "mode"
	// KeyDifficulty 难度（Int）
	KeyDifficulty = "difficulty"
)
