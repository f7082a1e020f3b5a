package game

import (
	"fmt"
	"strings"
)

// GameMode 游戏模式
type GameMode int

const (
	// ModeClassic 限时打靶，同一时间只有一个靶子
	ModeClassic GameMode = iota
	// ModeElimination 一次性生成大量靶子，打完或超时结束
	ModeElimination
	// ModeHitAndDodge 射击枪手和剑士，同时躲避攻击
	ModeHitAndDodge
)

// GameModes 所有模式，按选择界面顺序排列
var GameModes = []GameMode{ModeClassic, ModeElimination, ModeHitAndDodge}

// String 返回模式名称
func (m GameMode) String() string {
	switch m {
	case ModeElimination:
		return "Elimination"
	case ModeHitAndDodge:
		return "Hit and Dodge"
	default:
		return "Classic"
	}
}

// Key 返回存储用的键名
func (m GameMode) Key() string {
	switch m {
	case ModeElimination:
		return "elimination"
	case ModeHitAndDodge:
		return "hit_and_dodge"
	default:
		return "classic"
	}
}

// ParseGameMode 解析命令行中的模式名
func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic":
		return ModeClassic, nil
	case "elimination":
		return ModeElimination, nil
	case "hit_and_dodge", "hitanddodge", "hit-and-dodge":
		return ModeHitAndDodge, nil
	default:
		return ModeClassic, fmt.Errorf("unknown game mode %q", s)
	}
}

// Difficulty 难度
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// Difficulties 所有难度
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// String 返回难度名称
func (d Difficulty) String() string {
	switch d {
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "Easy"
	}
}

// ParseDifficulty 解析命令行中的难度名
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyEasy, fmt.Errorf("unknown difficulty %q", s)
	}
}

// DifficultyFrom 从消息读取难度，缺失或越界时返回 Easy
func DifficultyFrom(msg Message) Difficulty {
	v, ok := msg.Int(KeyDifficulty)
	if !ok || v < int64(DifficultyEasy) || v > int64(DifficultyHard) {
		return DifficultyEasy
	}
	return Difficulty(v)
}

// GameModeFrom 从消息读取模式，缺失或越界时返回 def
func GameModeFrom(msg Message, def GameMode) GameMode {
	v, ok := msg.Int(KeyMode)
	if !ok || v < int64(ModeClassic) || v > int64(ModeHitAndDodge) {
		return def
	}
	return GameMode(v)
}

// Score 一局的成绩，只由所属对局场景修改
type Score struct {
	Hit            int
	Miss           int
	Score          int
	HitTaken       int
	HitFakeTarget  int
	TotalShootTime float64
}

// Accuracy 命中率（百分比）
func (s Score) Accuracy() float64 {
	return float64(s.Hit) / float64(max(s.Hit+s.Miss, 1)) * 100
}

// AvgHitTime 平均每次命中所用时间（秒）
func (s Score) AvgHitTime() float64 {
	return s.TotalShootTime / float64(max(s.Hit, 1))
}

// 成绩消息键
const (
	keyHit            = "hit"
	keyMiss           = "miss"
	keyScore          = "score"
	keyHitTaken       = "hit_taken"
	keyHitFakeTarget  = "hit_fake_target"
	keyTotalShootTime = "total_shoot_time"
)

// WriteMessage 把成绩写入消息
func (s Score) WriteMessage(m Message) {
	m[keyHit] = IntValue(int64(s.Hit))
	m[keyMiss] = IntValue(int64(s.Miss))
	m[keyScore] = IntValue(int64(s.Score))
	m[keyHitTaken] = IntValue(int64(s.HitTaken))
	m[keyHitFakeTarget] = IntValue(int64(s.HitFakeTarget))
	m[keyTotalShootTime] = FloatValue(s.TotalShootTime)
}

// ScoreFromMessage 从消息读取成绩，缺失的字段为 0
func ScoreFromMessage(m Message) Score {
	get := func(key string) int {
		v, _ := m.Int(key)
		return int(v)
	}
	total, _ := m.Float(keyTotalShootTime)
	return Score{
		Hit:            get(keyHit),
		Miss:           get(keyMiss),
		Score:          get(keyScore),
		HitTaken:       get(keyHitTaken),
		HitFakeTarget:  get(keyHitFakeTarget),
		TotalShootTime: total,
	}
}
