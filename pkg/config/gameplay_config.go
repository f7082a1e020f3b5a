package config

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/embedded"
)

// GameplayConfigPath 内置玩法配置路径
const GameplayConfigPath = "data/gameplay.yaml"

// GameplayConfig 玩法参数
type GameplayConfig struct {
	Window      WindowConfig      `yaml:"window"`
	Shoot       ShootConfig       `yaml:"shoot"`
	Round       RoundConfig       `yaml:"round"`
	Player      PlayerConfig      `yaml:"player"`
	Classic     ClassicConfig     `yaml:"classic"`
	Elimination EliminationConfig `yaml:"elimination"`
	HitAndDodge HitAndDodgeConfig `yaml:"hitAndDodge"`
	Gunman      GunmanTable       `yaml:"gunman"`
}

// WindowConfig 窗口参数
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ShootConfig 玩家开火参数
type ShootConfig struct {
	Cooldown       float64 `yaml:"cooldown"`       // 两次开火的最小间隔（秒）
	AnimForward    float64 `yaml:"animForward"`    // 后坐动画上升时长
	AnimBackward   float64 `yaml:"animBackward"`   // 后坐动画回落时长
	FovKickDegrees float32 `yaml:"fovKickDegrees"` // 后坐最大视角偏移（度）
	RayOffset      float32 `yaml:"rayOffset"`      // 射线起点沿视线前移的距离
	MaxRayDistance float32 `yaml:"maxRayDistance"` // 射线最大距离
}

// RoundConfig 对局阶段时长
type RoundConfig struct {
	PrepareDuration   float64 `yaml:"prepareDuration"`
	FinishingDuration float64 `yaml:"finishingDuration"`
}

// PlayerConfig 玩家参数
type PlayerConfig struct {
	Speed float32 `yaml:"speed"` // 移动速度（单位/秒）
}

// HitScore 击中得分规则：max(Min, int(Base * (Window - t)))
// t 为距上次击中的时间
type HitScore struct {
	Base   float64 `yaml:"base"`
	Window float64 `yaml:"window"`
	Min    int     `yaml:"min"`
}

// Points 计算反应时间为 t 秒时的得分
func (h HitScore) Points(t float64) int {
	return max(h.Min, int(h.Base*(h.Window-t)))
}

// Point 配置文件中的坐标
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Vec 转为 mgl32.Vec3
func (p Point) Vec() mgl32.Vec3 {
	return mgl32.Vec3{p.X, p.Y, p.Z}
}

// ClassicConfig 经典模式：同一时间只有一个靶子
type ClassicConfig struct {
	RoundDuration   float64  `yaml:"roundDuration"`
	TargetLifetime  float64  `yaml:"targetLifetime"`
	Hit             HitScore `yaml:"hit"`
	MissPenalty     int      `yaml:"missPenalty"`     // 未命中扣分
	ValidDuration   float64  `yaml:"validDuration"`   // 困难难度真靶持续时间
	InvalidDuration float64  `yaml:"invalidDuration"` // 困难难度假靶持续时间
	SpawnDistance   float32  `yaml:"spawnDistance"`   // 靶子到玩家的水平距离
	SpawnHalfWidth  float32  `yaml:"spawnHalfWidth"`  // 水平随机范围（半宽）
	MinHeight       float32  `yaml:"minHeight"`
	MaxHeight       float32  `yaml:"maxHeight"`
	PatrolArc       float32  `yaml:"patrolArc"`    // 中等难度圆弧巡逻的角度范围（弧度）
	PatrolLength    float32  `yaml:"patrolLength"` // 困难难度直线巡逻长度
}

// EliminationConfig 歼灭模式：一次性生成全部靶子
type EliminationConfig struct {
	RoundDuration float64  `yaml:"roundDuration"`
	Rows          int      `yaml:"rows"`
	Columns       int      `yaml:"columns"`
	MinRadius     float32  `yaml:"minRadius"`
	MaxRadius     float32  `yaml:"maxRadius"`
	BaseHeight    float32  `yaml:"baseHeight"` // 第 0 行的高度，每行 +1
	Hit           HitScore `yaml:"hit"`
	MissPenalty   int      `yaml:"missPenalty"`
}

// HitAndDodgeConfig 攻防模式：敌人会反击
type HitAndDodgeConfig struct {
	RoundDuration     float64  `yaml:"roundDuration"`
	Hit               HitScore `yaml:"hit"`
	MissPenalty       int      `yaml:"missPenalty"` // 未命中或打中剑士时扣分
	GunmanSpawn       Point    `yaml:"gunmanSpawn"`
	SwordmanSpawn     Point    `yaml:"swordmanSpawn"`
	SwordmanMinLevel  int      `yaml:"swordmanMinLevel"` // 从该难度起加入剑士
	BulletMaxDistance float32  `yaml:"bulletMaxDistance"`
}

// GunmanTable 各难度的枪手参数
type GunmanTable struct {
	Easy   components.GunmanConfig `yaml:"easy"`
	Medium components.GunmanConfig `yaml:"medium"`
	Hard   components.GunmanConfig `yaml:"hard"`
}

// For 按难度等级（0 简单、1 中等、2 困难）取参数，越界时取最近的一档
func (t GunmanTable) For(level int) components.GunmanConfig {
	switch {
	case level <= 0:
		return t.Easy
	case level == 1:
		return t.Medium
	default:
		return t.Hard
	}
}

// DefaultGameplayConfig 返回内置默认值，与 data/gameplay.yaml 一致
func DefaultGameplayConfig() *GameplayConfig {
	gunman := func(focus float64, walk float32) components.GunmanConfig {
		c := components.DefaultGunmanConfig()
		c.FocusDuration = focus
		c.WalkSpeed = walk
		return c
	}
	return &GameplayConfig{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Shooterboi"},
		Shoot: ShootConfig{
			Cooldown:       0.4,
			AnimForward:    0.05,
			AnimBackward:   0.25,
			FovKickDegrees: 20,
			RayOffset:      1,
			MaxRayDistance: 1000,
		},
		Round:  RoundConfig{PrepareDuration: 3, FinishingDuration: 3},
		Player: PlayerConfig{Speed: 5},
		Classic: ClassicConfig{
			RoundDuration:   60,
			TargetLifetime:  3,
			Hit:             HitScore{Base: 100, Window: 3, Min: 0},
			MissPenalty:     0,
			ValidDuration:   1.5,
			InvalidDuration: 0.75,
			SpawnDistance:   10,
			SpawnHalfWidth:  6,
			MinHeight:       1.5,
			MaxHeight:       5,
			PatrolArc:       0.6,
			PatrolLength:    4,
		},
		Elimination: EliminationConfig{
			RoundDuration: 100,
			Rows:          10,
			Columns:       15,
			MinRadius:     8,
			MaxRadius:     20,
			BaseHeight:    71,
			Hit:           HitScore{Base: 300, Window: 3, Min: 0},
			MissPenalty:   100,
		},
		HitAndDodge: HitAndDodgeConfig{
			RoundDuration:     90,
			Hit:               HitScore{Base: 100, Window: 7, Min: 100},
			MissPenalty:       0,
			GunmanSpawn:       Point{X: 2, Y: 2.5, Z: -2},
			SwordmanSpawn:     Point{X: -2, Y: 2.5, Z: -2},
			SwordmanMinLevel:  1,
			BulletMaxDistance: 100,
		},
		Gunman: GunmanTable{
			Easy:   gunman(0.8, 0),
			Medium: gunman(0.5, 3),
			Hard:   gunman(0.3, 5),
		},
	}
}

// LoadGameplayConfig 从嵌入资源加载玩法配置
// 文件中缺少的字段保留默认值
//
// 参数：
//   - filepath: 资源路径（以 "data/" 开头）
//
// 返回：
//   - *GameplayConfig: 解析并校验后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameplayConfig(filepath string) (*GameplayConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config %s: %w", filepath, err)
	}
	cfg, err := ParseGameplayConfig(data)
	if err != nil {
		return nil, fmt.Errorf("gameplay config %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseGameplayConfig 解析 YAML 并校验
func ParseGameplayConfig(data []byte) (*GameplayConfig, error) {
	cfg := DefaultGameplayConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate 检查取值范围，返回所有问题合并后的错误
func (c *GameplayConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)

	check(c.Shoot.Cooldown >= 0, "shoot.cooldown cannot be negative, got %v", c.Shoot.Cooldown)
	check(c.Shoot.AnimForward > 0 && c.Shoot.AnimBackward > 0, "shoot: animation durations must be positive")
	check(c.Shoot.MaxRayDistance > 0, "shoot.maxRayDistance must be positive, got %v", c.Shoot.MaxRayDistance)

	check(c.Round.PrepareDuration > 0, "round.prepareDuration must be positive, got %v", c.Round.PrepareDuration)
	check(c.Round.FinishingDuration >= 0, "round.finishingDuration cannot be negative, got %v", c.Round.FinishingDuration)
	check(c.Player.Speed > 0, "player.speed must be positive, got %v", c.Player.Speed)

	cl := c.Classic
	check(cl.RoundDuration > 0, "classic.roundDuration must be positive, got %v", cl.RoundDuration)
	check(cl.TargetLifetime > 0, "classic.targetLifetime must be positive, got %v", cl.TargetLifetime)
	check(cl.ValidDuration > 0 && cl.InvalidDuration > 0, "classic: validity durations must be positive")
	check(cl.MinHeight <= cl.MaxHeight, "classic: minHeight %v > maxHeight %v", cl.MinHeight, cl.MaxHeight)
	check(cl.SpawnDistance > 0, "classic.spawnDistance must be positive, got %v", cl.SpawnDistance)
	check(cl.MissPenalty >= 0, "classic.missPenalty cannot be negative, got %d", cl.MissPenalty)

	el := c.Elimination
	check(el.RoundDuration > 0, "elimination.roundDuration must be positive, got %v", el.RoundDuration)
	check(el.Rows > 0 && el.Columns > 0, "elimination: grid must be positive, got %dx%d", el.Rows, el.Columns)
	check(el.MinRadius > 0 && el.MinRadius <= el.MaxRadius, "elimination: invalid radius range [%v, %v]", el.MinRadius, el.MaxRadius)
	check(el.MissPenalty >= 0, "elimination.missPenalty cannot be negative, got %d", el.MissPenalty)

	hd := c.HitAndDodge
	check(hd.RoundDuration > 0, "hitAndDodge.roundDuration must be positive, got %v", hd.RoundDuration)
	check(hd.BulletMaxDistance > 0, "hitAndDodge.bulletMaxDistance must be positive, got %v", hd.BulletMaxDistance)
	check(hd.MissPenalty >= 0, "hitAndDodge.missPenalty cannot be negative, got %d", hd.MissPenalty)

	for name, g := range map[string]components.GunmanConfig{
		"easy": c.Gunman.Easy, "medium": c.Gunman.Medium, "hard": c.Gunman.Hard,
	} {
		check(g.IdleDuration >= 0 && g.FocusDuration >= 0, "gunman.%s: durations cannot be negative", name)
		check(g.ShootForwardDuration > 0 && g.ShootBackwardDuration > 0, "gunman.%s: shoot animation durations must be positive", name)
		check(g.WalkSpeed >= 0, "gunman.%s.walkSpeed cannot be negative, got %v", name, g.WalkSpeed)
	}

	return errors.Join(errs...)
}
