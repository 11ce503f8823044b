package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"hunter-system/models"
	"hunter-system/store"
)

// scriptedRoller replays fixed values; once a queue runs dry it returns 0.
type scriptedRoller struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
}

func (r *scriptedRoller) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRoller) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// neverDrop fails every Bernoulli draw below 1.0 and picks the first pool entry.
func neverDrop() Roller {
	return constRoller{f: 0.99999}
}

// constRoller returns the same float for every draw and 0 for every pick.
type constRoller struct {
	f float64
}

func (r constRoller) Float64() float64 { return r.f }
func (r constRoller) Intn(int) int     { return 0 }

type testEnv struct {
	store  *store.FileStore
	clock  *clockwork.FakeClock
	quests *QuestService
	chars  *CharacterService
	items  *ItemService
	daily  *DailyQuestService
}

var testStart = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T, roller Roller) *testEnv {
	t.Helper()
	st := store.NewMemoryStore()
	clock := clockwork.NewFakeClockAt(testStart)
	gen := NewRewardGenerator(roller, clock)
	return &testEnv{
		store:  st,
		clock:  clock,
		quests: NewQuestService(st, gen, NewTemplateFlavor(roller), clock),
		chars:  NewCharacterService(st, clock),
		items:  NewItemService(st),
		daily:  NewDailyQuestService(st, clock, time.UTC),
	}
}

func (e *testEnv) createQuest(t *testing.T, difficulty models.Difficulty, attr models.Attribute) models.Quest {
	t.Helper()
	q, err := e.quests.CreateQuest(context.Background(), QuestInput{
		Title:      "Quest " + string(difficulty),
		Difficulty: string(difficulty),
		Attribute:  string(attr),
	})
	require.NoError(t, err)
	return q
}

func (e *testEnv) character(t *testing.T) models.Character {
	t.Helper()
	c, err := e.chars.GetCharacter(context.Background())
	require.NoError(t, err)
	return c
}

// failingStore fails one operation inside transactions.
type failingStore struct {
	store.Store
	failSaveQuest  bool
	failCreateItem bool
}

func (f *failingStore) WithTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return f.Store.WithTransaction(ctx, func(tx store.Store) error {
		return fn(&failingStore{Store: tx, failSaveQuest: f.failSaveQuest, failCreateItem: f.failCreateItem})
	})
}

func (f *failingStore) SaveQuest(ctx context.Context, q *models.Quest) error {
	if f.failSaveQuest {
		return errors.New("disk full")
	}
	return f.Store.SaveQuest(ctx, q)
}

func (f *failingStore) CreateItem(ctx context.Context, item *models.Item) error {
	if f.failCreateItem {
		return errors.New("disk full")
	}
	return f.Store.CreateItem(ctx, item)
}
