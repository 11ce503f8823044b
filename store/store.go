package store

import (
	"context"
	"errors"
	"time"

	"hunter-system/models"
)

// ErrNotFound is returned by single-record lookups that match nothing.
var ErrNotFound = errors.New("store: record not found")

// QuestFilter narrows quest queries. Zero fields match everything.
type QuestFilter struct {
	ID             string
	Status         models.QuestStatus
	Difficulty     models.Difficulty
	Kind           models.QuestKind
	CompletedSince *time.Time

	// ForUpdate locks the matched rows until the surrounding transaction
	// ends, on engines that support row locks.
	ForUpdate bool
}

// ItemFilter narrows item queries. Zero fields match everything.
type ItemFilter struct {
	ID       string
	Rarities []models.Rarity
	Type     models.ItemType
}

// Store is the record store the services are built on.
type Store interface {
	GetCharacter(ctx context.Context, id uint) (models.Character, error)
	SaveCharacter(ctx context.Context, character *models.Character) error

	ListQuests(ctx context.Context, filter QuestFilter) ([]models.Quest, error)
	GetQuest(ctx context.Context, id string) (models.Quest, error)
	SaveQuest(ctx context.Context, quest *models.Quest) error
	DeleteQuests(ctx context.Context, filter QuestFilter) (int64, error)
	CountQuests(ctx context.Context, filter QuestFilter) (int64, error)
	// TransitionQuestStatus moves a quest from one status to another and
	// stamps CompletedAt. It reports false when the quest was not in
	// status from, so concurrent transitions have exactly one winner.
	TransitionQuestStatus(ctx context.Context, id string, from, to models.QuestStatus, at time.Time) (bool, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id string) (models.Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]models.Item, error)
	DeleteItems(ctx context.Context, filter ItemFilter) (int64, error)

	GetConfig(ctx context.Context, key string) (value string, ok bool, err error)
	SetConfig(ctx context.Context, key, value string) error
	DeleteConfig(ctx context.Context, key string) error
	// CompareAndSetConfig writes next only if the key still holds prev
	// (or is still absent when prevExists is false).
	CompareAndSetConfig(ctx context.Context, key, prev string, prevExists bool, next string) (bool, error)

	// WithTransaction runs fn against a transactional view of the store.
	// Any error returned by fn rolls back every write made through tx.
	WithTransaction(ctx context.Context, fn func(tx Store) error) error

	Close() error
}
