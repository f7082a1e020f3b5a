package game

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/decker502/shooterboi/pkg/logger"
)

// ScoreRecord 一条历史成绩
type ScoreRecord struct {
	ID            string     `yaml:"id"`
	Mode          GameMode   `yaml:"mode"`
	Difficulty    Difficulty `yaml:"difficulty"`
	Accuracy      float64    `yaml:"accuracy"`
	Hit           int        `yaml:"hit"`
	Miss          int        `yaml:"miss"`
	Score         int        `yaml:"score"`
	AvgHitTime    float64    `yaml:"avgHitTime"`
	HitFakeTarget int        `yaml:"hitFakeTarget,omitempty"`
	HitTaken      int        `yaml:"hitTaken,omitempty"`
	CreatedAt     time.Time  `yaml:"createdAt"`
}

// NewScoreRecord 根据一局成绩创建记录，ID 与时间由 Insert 补齐
func NewScoreRecord(mode GameMode, difficulty Difficulty, s Score) ScoreRecord {
	return ScoreRecord{
		Mode:          mode,
		Difficulty:    difficulty,
		Accuracy:      s.Accuracy(),
		Hit:           s.Hit,
		Miss:          s.Miss,
		Score:         s.Score,
		AvgHitTime:    s.AvgHitTime(),
		HitFakeTarget: s.HitFakeTarget,
		HitTaken:      s.HitTaken,
	}
}

// scoreFile 每个模式一份的存储格式
type scoreFile struct {
	Records []ScoreRecord `yaml:"records"`
}

const scoresObject = "scores"

// ScoreDatabase 历史成绩存储
//
// 每个模式的记录存为一个 gdata 属性（YAML），只追加不修改。
// gdataManager 为 nil 时退化为内存存储。
type ScoreDatabase struct {
	gdataManager *gdata.Manager
	memory       map[GameMode][]ScoreRecord
	now          func() time.Time
	log          *zap.Logger
}

// NewScoreDatabase 创建成绩存储
//
// 参数:
//   - gdataManager: gdata 存储管理器，可为 nil（仅内存）
func NewScoreDatabase(gdataManager *gdata.Manager) *ScoreDatabase {
	return &ScoreDatabase{
		gdataManager: gdataManager,
		memory:       make(map[GameMode][]ScoreRecord),
		now:          time.Now,
		log:          logger.Named("scores"),
	}
}

// Insert 追加一条记录
//
// 记录没有 ID 时生成 uuid，没有时间时使用当前时间
//
// 返回:
//   - error: 读取、序列化或保存失败时返回错误
func (db *ScoreDatabase) Insert(rec ScoreRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = db.now().UTC()
	}

	records, err := db.load(rec.Mode)
	if err != nil {
		return err
	}
	records = append(records, rec)
	if err := db.save(rec.Mode, records); err != nil {
		return err
	}

	db.log.Debug("score inserted",
		zap.String("id", rec.ID),
		zap.Stringer("mode", rec.Mode),
		zap.Stringer("difficulty", rec.Difficulty),
		zap.Int("score", rec.Score))
	return nil
}

// List 返回指定模式和难度的记录，最新的在前
func (db *ScoreDatabase) List(mode GameMode, difficulty Difficulty) ([]ScoreRecord, error) {
	records, err := db.load(mode)
	if err != nil {
		return nil, err
	}

	out := make([]ScoreRecord, 0, len(records))
	for _, r := range records {
		if r.Difficulty == difficulty {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (db *ScoreDatabase) load(mode GameMode) ([]ScoreRecord, error) {
	if db.gdataManager == nil {
		return append([]ScoreRecord(nil), db.memory[mode]...), nil
	}
	if !db.gdataManager.ObjectPropExists(scoresObject, mode.Key()) {
		return nil, nil
	}

	data, err := db.gdataManager.LoadObjectProp(scoresObject, mode.Key())
	if err != nil {
		return nil, fmt.Errorf("load %s scores: %w", mode.Key(), err)
	}
	var file scoreFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal %s scores: %w", mode.Key(), err)
	}
	return file.Records, nil
}

func (db *ScoreDatabase) save(mode GameMode, records []ScoreRecord) error {
	if db.gdataManager == nil {
		db.memory[mode] = records
		return nil
	}

	data, err := yaml.Marshal(scoreFile{Records: records})
	if err != nil {
		return fmt.Errorf("marshal %s scores: %w", mode.Key(), err)
	}
	if err := db.gdataManager.SaveObjectProp(scoresObject, mode.Key(), data); err != nil {
		return fmt.Errorf("save %s scores: %w", mode.Key(), err)
	}
	return nil
}
