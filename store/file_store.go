package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"hunter-system/models"
	"hunter-system/utils"
)

type fileState struct {
	Character *models.Character       `json:"character,omitempty"`
	Quests    map[string]models.Quest `json:"quests"`
	Items     map[string]models.Item  `json:"items"`
	Config    map[string]string       `json:"config"`
}

func newFileState() fileState {
	return fileState{
		Quests: make(map[string]models.Quest),
		Items:  make(map[string]models.Item),
		Config: make(map[string]string),
	}
}

func (st fileState) clone() fileState {
	out := newFileState()
	if st.Character != nil {
		c := *st.Character
		out.Character = &c
	}
	for k, v := range st.Quests {
		out.Quests[k] = v
	}
	for k, v := range st.Items {
		out.Items[k] = v
	}
	for k, v := range st.Config {
		out.Config[k] = v
	}
	return out
}

// FileStore keeps every record in one JSON document. Writes go through a
// copy of the state that replaces the live state only once persisted, and
// a single mutex serializes them. An empty path keeps the state in memory.
type FileStore struct {
	filePath string
	mu       sync.RWMutex
	state    fileState
}

func NewFileStore(filePath string) (*FileStore, error) {
	s := &FileStore{filePath: filePath, state: newFileState()}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMemoryStore returns a FileStore that never touches disk.
func NewMemoryStore() *FileStore {
	return &FileStore{state: newFileState()}
}

func (s *FileStore) read(fn func(tx *fileTx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&fileTx{state: &s.state})
}

func (s *FileStore) WithTransaction(_ context.Context, fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.state.clone()
	if err := fn(&fileTx{state: &draft}); err != nil {
		return err
	}
	if err := s.persist(draft); err != nil {
		return err
	}
	s.state = draft
	return nil
}

func (s *FileStore) write(ctx context.Context, fn func(tx *fileTx) error) error {
	return s.WithTransaction(ctx, func(tx Store) error {
		return fn(tx.(*fileTx))
	})
}

func (s *FileStore) GetCharacter(ctx context.Context, id uint) (c models.Character, err error) {
	err = s.read(func(tx *fileTx) error {
		c, err = tx.GetCharacter(ctx, id)
		return err
	})
	return c, err
}

func (s *FileStore) SaveCharacter(ctx context.Context, character *models.Character) error {
	return s.write(ctx, func(tx *fileTx) error { return tx.SaveCharacter(ctx, character) })
}

func (s *FileStore) ListQuests(ctx context.Context, filter QuestFilter) (quests []models.Quest, err error) {
	err = s.read(func(tx *fileTx) error {
		quests, err = tx.ListQuests(ctx, filter)
		return err
	})
	return quests, err
}

func (s *FileStore) GetQuest(ctx context.Context, id string) (quest models.Quest, err error) {
	err = s.read(func(tx *fileTx) error {
		quest, err = tx.GetQuest(ctx, id)
		return err
	})
	return quest, err
}

func (s *FileStore) SaveQuest(ctx context.Context, quest *models.Quest) error {
	return s.write(ctx, func(tx *fileTx) error { return tx.SaveQuest(ctx, quest) })
}

func (s *FileStore) DeleteQuests(ctx context.Context, filter QuestFilter) (n int64, err error) {
	err = s.write(ctx, func(tx *fileTx) error {
		n, err = tx.DeleteQuests(ctx, filter)
		return err
	})
	return n, err
}

func (s *FileStore) CountQuests(ctx context.Context, filter QuestFilter) (n int64, err error) {
	err = s.read(func(tx *fileTx) error {
		n, err = tx.CountQuests(ctx, filter)
		return err
	})
	return n, err
}

func (s *FileStore) TransitionQuestStatus(ctx context.Context, id string, from, to models.QuestStatus, at time.Time) (ok bool, err error) {
	err = s.write(ctx, func(tx *fileTx) error {
		ok, err = tx.TransitionQuestStatus(ctx, id, from, to, at)
		return err
	})
	return ok, err
}

func (s *FileStore) CreateItem(ctx context.Context, item *models.Item) error {
	return s.write(ctx, func(tx *fileTx) error { return tx.CreateItem(ctx, item) })
}

func (s *FileStore) GetItem(ctx context.Context, id string) (item models.Item, err error) {
	err = s.read(func(tx *fileTx) error {
		item, err = tx.GetItem(ctx, id)
		return err
	})
	return item, err
}

func (s *FileStore) ListItems(ctx context.Context, filter ItemFilter) (items []models.Item, err error) {
	err = s.read(func(tx *fileTx) error {
		items, err = tx.ListItems(ctx, filter)
		return err
	})
	return items, err
}

func (s *FileStore) DeleteItems(ctx context.Context, filter ItemFilter) (n int64, err error) {
	err = s.write(ctx, func(tx *fileTx) error {
		n, err = tx.DeleteItems(ctx, filter)
		return err
	})
	return n, err
}

func (s *FileStore) GetConfig(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.read(func(tx *fileTx) error {
		value, ok, err = tx.GetConfig(ctx, key)
		return err
	})
	return value, ok, err
}

func (s *FileStore) SetConfig(ctx context.Context, key, value string) error {
	return s.write(ctx, func(tx *fileTx) error { return tx.SetConfig(ctx, key, value) })
}

func (s *FileStore) DeleteConfig(ctx context.Context, key string) error {
	return s.write(ctx, func(tx *fileTx) error { return tx.DeleteConfig(ctx, key) })
}

func (s *FileStore) CompareAndSetConfig(ctx context.Context, key, prev string, prevExists bool, next string) (ok bool, err error) {
	err = s.write(ctx, func(tx *fileTx) error {
		ok, err = tx.CompareAndSetConfig(ctx, key, prev, prevExists, next)
		return err
	})
	return ok, err
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() error {
	if s.filePath == "" {
		return nil
	}
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	state := newFileState()
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decode %s: %w", s.filePath, err)
	}
	if state.Quests == nil {
		state.Quests = make(map[string]models.Quest)
	}
	if state.Items == nil {
		state.Items = make(map[string]models.Item)
	}
	if state.Config == nil {
		state.Config = make(map[string]string)
	}
	s.state = state
	return nil
}

func (s *FileStore) persist(state fileState) error {
	if s.filePath == "" {
		return nil
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(s.filePath, data)
}

// fileTx operates on a state the caller already holds the lock for.
type fileTx struct {
	state *fileState
}

func (tx *fileTx) GetCharacter(_ context.Context, id uint) (models.Character, error) {
	if tx.state.Character == nil || tx.state.Character.ID != id {
		return models.Character{}, ErrNotFound
	}
	return *tx.state.Character, nil
}

func (tx *fileTx) SaveCharacter(_ context.Context, character *models.Character) error {
	now := time.Now()
	if character.CreatedAt.IsZero() {
		character.CreatedAt = now
	}
	character.UpdatedAt = now
	c := *character
	tx.state.Character = &c
	return nil
}

func (tx *fileTx) ListQuests(_ context.Context, filter QuestFilter) ([]models.Quest, error) {
	quests := make([]models.Quest, 0)
	for _, q := range tx.state.Quests {
		if matchQuest(q, filter) {
			quests = append(quests, q)
		}
	}
	sort.Slice(quests, func(i, j int) bool {
		if !quests[i].CreatedAt.Equal(quests[j].CreatedAt) {
			return quests[i].CreatedAt.After(quests[j].CreatedAt)
		}
		return quests[i].ID < quests[j].ID
	})
	return quests, nil
}

func (tx *fileTx) GetQuest(_ context.Context, id string) (models.Quest, error) {
	q, ok := tx.state.Quests[id]
	if !ok {
		return models.Quest{}, ErrNotFound
	}
	return q, nil
}

func (tx *fileTx) SaveQuest(_ context.Context, quest *models.Quest) error {
	if quest.ID == "" {
		return errors.New("save quest: missing id")
	}
	now := time.Now()
	if quest.CreatedAt.IsZero() {
		quest.CreatedAt = now
	}
	quest.UpdatedAt = now
	tx.state.Quests[quest.ID] = *quest
	return nil
}

func (tx *fileTx) DeleteQuests(_ context.Context, filter QuestFilter) (int64, error) {
	var n int64
	for id, q := range tx.state.Quests {
		if matchQuest(q, filter) {
			delete(tx.state.Quests, id)
			n++
		}
	}
	return n, nil
}

func (tx *fileTx) CountQuests(_ context.Context, filter QuestFilter) (int64, error) {
	var n int64
	for _, q := range tx.state.Quests {
		if matchQuest(q, filter) {
			n++
		}
	}
	return n, nil
}

func (tx *fileTx) TransitionQuestStatus(_ context.Context, id string, from, to models.QuestStatus, at time.Time) (bool, error) {
	q, ok := tx.state.Quests[id]
	if !ok || q.Status != from {
		return false, nil
	}
	stamp := at
	q.Status = to
	q.CompletedAt = &stamp
	q.UpdatedAt = at
	tx.state.Quests[id] = q
	return true, nil
}

func matchQuest(q models.Quest, f QuestFilter) bool {
	if f.ID != "" && q.ID != f.ID {
		return false
	}
	if f.Status != "" && q.Status != f.Status {
		return false
	}
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	if f.Kind != "" && q.Kind != f.Kind {
		return false
	}
	if f.CompletedSince != nil && (q.CompletedAt == nil || q.CompletedAt.Before(*f.CompletedSince)) {
		return false
	}
	return true
}

func (tx *fileTx) CreateItem(_ context.Context, item *models.Item) error {
	if item.ID == "" {
		return errors.New("create item: missing id")
	}
	if _, exists := tx.state.Items[item.ID]; exists {
		return fmt.Errorf("create item: duplicate id %s", item.ID)
	}
	tx.state.Items[item.ID] = *item
	return nil
}

func (tx *fileTx) GetItem(_ context.Context, id string) (models.Item, error) {
	item, ok := tx.state.Items[id]
	if !ok {
		return models.Item{}, ErrNotFound
	}
	return item, nil
}

func (tx *fileTx) ListItems(_ context.Context, filter ItemFilter) ([]models.Item, error) {
	items := make([]models.Item, 0)
	for _, item := range tx.state.Items {
		if matchItem(item, filter) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ObtainedAt.Equal(items[j].ObtainedAt) {
			return items[i].ObtainedAt.After(items[j].ObtainedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (tx *fileTx) DeleteItems(_ context.Context, filter ItemFilter) (int64, error) {
	var n int64
	for id, item := range tx.state.Items {
		if matchItem(item, filter) {
			delete(tx.state.Items, id)
			n++
		}
	}
	return n, nil
}

func matchItem(item models.Item, f ItemFilter) bool {
	if f.ID != "" && item.ID != f.ID {
		return false
	}
	if f.Type != "" && item.Type != f.Type {
		return false
	}
	if len(f.Rarities) > 0 {
		for _, r := range f.Rarities {
			if item.Rarity == r {
				return true
			}
		}
		return false
	}
	return true
}

func (tx *fileTx) GetConfig(_ context.Context, key string) (string, bool, error) {
	v, ok := tx.state.Config[key]
	return v, ok, nil
}

func (tx *fileTx) SetConfig(_ context.Context, key, value string) error {
	tx.state.Config[key] = value
	return nil
}

func (tx *fileTx) DeleteConfig(_ context.Context, key string) error {
	delete(tx.state.Config, key)
	return nil
}

func (tx *fileTx) CompareAndSetConfig(_ context.Context, key, prev string, prevExists bool, next string) (bool, error) {
	cur, ok := tx.state.Config[key]
	if ok != prevExists || (ok && cur != prev) {
		return false, nil
	}
	tx.state.Config[key] = next
	return true, nil
}

// Nested transactions join the enclosing one.
func (tx *fileTx) WithTransaction(_ context.Context, fn func(tx Store) error) error {
	return fn(tx)
}

func (tx *fileTx) Close() error { return nil }
