package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"hunter-system/models"
	"hunter-system/utils"
)

// GormStore is the relational Store, backed by postgres or embedded sqlite.
type GormStore struct {
	db *gorm.DB
}

// OpenSQLite opens (and creates) an embedded database file. The pool is
// limited to one connection so transactions serialize.
func OpenSQLite(path string) (*GormStore, error) {
	if err := utils.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return NewGormStore(db)
}

// OpenPostgres connects to a postgres server.
func OpenPostgres(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewGormStore(db)
}

// NewGormStore migrates the schema on db and wraps it.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(
		&models.Character{},
		&models.Quest{},
		&models.Item{},
		&models.SystemConfig{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Printf("✅ [Store] %s schema ready", db.Dialector.Name())
	return &GormStore{db: db}, nil
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *GormStore) GetCharacter(ctx context.Context, id uint) (models.Character, error) {
	var c models.Character
	if err := s.conn(ctx).First(&c, id).Error; err != nil {
		return models.Character{}, notFound(err)
	}
	return c, nil
}

func (s *GormStore) SaveCharacter(ctx context.Context, character *models.Character) error {
	if err := s.conn(ctx).Save(character).Error; err != nil {
		return fmt.Errorf("save character: %w", err)
	}
	return nil
}

func (s *GormStore) ListQuests(ctx context.Context, filter QuestFilter) ([]models.Quest, error) {
	q := s.questScope(s.conn(ctx), filter)
	if filter.ForUpdate && s.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var quests []models.Quest
	if err := q.Order("created_at DESC").Order("id").Find(&quests).Error; err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}
	return quests, nil
}

func (s *GormStore) GetQuest(ctx context.Context, id string) (models.Quest, error) {
	var quest models.Quest
	if err := s.conn(ctx).Where("id = ?", id).First(&quest).Error; err != nil {
		return models.Quest{}, notFound(err)
	}
	return quest, nil
}

func (s *GormStore) SaveQuest(ctx context.Context, quest *models.Quest) error {
	if err := s.conn(ctx).Save(quest).Error; err != nil {
		return fmt.Errorf("save quest: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteQuests(ctx context.Context, filter QuestFilter) (int64, error) {
	q := s.questScope(s.conn(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}), filter)
	res := q.Delete(&models.Quest{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete quests: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) CountQuests(ctx context.Context, filter QuestFilter) (int64, error) {
	var count int64
	if err := s.questScope(s.conn(ctx), filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count quests: %w", err)
	}
	return count, nil
}

func (s *GormStore) TransitionQuestStatus(ctx context.Context, id string, from, to models.QuestStatus, at time.Time) (bool, error) {
	res := s.conn(ctx).Model(&models.Quest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":       to,
			"completed_at": at,
			"updated_at":   at,
		})
	if res.Error != nil {
		return false, fmt.Errorf("transition quest %s: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) questScope(db *gorm.DB, f QuestFilter) *gorm.DB {
	q := db.Model(&models.Quest{})
	if f.ID != "" {
		q = q.Where("id = ?", f.ID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.CompletedSince != nil {
		q = q.Where("completed_at >= ?", *f.CompletedSince)
	}
	return q
}

func (s *GormStore) CreateItem(ctx context.Context, item *models.Item) error {
	if err := s.conn(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (s *GormStore) GetItem(ctx context.Context, id string) (models.Item, error) {
	var item models.Item
	if err := s.conn(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return models.Item{}, notFound(err)
	}
	return item, nil
}

func (s *GormStore) ListItems(ctx context.Context, filter ItemFilter) ([]models.Item, error) {
	var items []models.Item
	err := s.itemScope(s.conn(ctx), filter).
		Order("obtained_at DESC").Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *GormStore) DeleteItems(ctx context.Context, filter ItemFilter) (int64, error) {
	q := s.itemScope(s.conn(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}), filter)
	res := q.Delete(&models.Item{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete items: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) itemScope(db *gorm.DB, f ItemFilter) *gorm.DB {
	q := db.Model(&models.Item{})
	if f.ID != "" {
		q = q.Where("id = ?", f.ID)
	}
	if len(f.Rarities) > 0 {
		q = q.Where("rarity IN ?", f.Rarities)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	return q
}

// "key" is quoted through clause.Eq since it is reserved in some dialects.
func keyEq(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

func (s *GormStore) GetConfig(ctx context.Context, key string) (string, bool, error) {
	var cfg models.SystemConfig
	err := s.conn(ctx).Where(keyEq(key)).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %s: %w", key, err)
	}
	return cfg.Value, true, nil
}

func (s *GormStore) SetConfig(ctx context.Context, key, value string) error {
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.SystemConfig{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("set config %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) DeleteConfig(ctx context.Context, key string) error {
	if err := s.conn(ctx).Where(keyEq(key)).Delete(&models.SystemConfig{}).Error; err != nil {
		return fmt.Errorf("delete config %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) CompareAndSetConfig(ctx context.Context, key, prev string, prevExists bool, next string) (bool, error) {
	var res *gorm.DB
	if prevExists {
		res = s.conn(ctx).Model(&models.SystemConfig{}).
			Where(keyEq(key)).
			Where(clause.Eq{Column: clause.Column{Name: "value"}, Value: prev}).
			Update("value", next)
	} else {
		res = s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.SystemConfig{Key: key, Value: next})
	}
	if res.Error != nil {
		return false, fmt.Errorf("compare-and-set config %s: %w", key, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) WithTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
