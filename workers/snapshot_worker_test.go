package workers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hunter-system/models"
	"hunter-system/store"
)

type memoryUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	keys    []string
	err     error
}

func (u *memoryUploader) Upload(_ context.Context, key, _ string, body []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return u.err
	}
	if u.objects == nil {
		u.objects = make(map[string][]byte)
	}
	u.objects[key] = body
	u.keys = append(u.keys, key)
	return nil
}

func (u *memoryUploader) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.keys)
}

var snapshotTime = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

func seededStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()

	c := models.NewCharacter()
	c.Level = 12
	require.NoError(t, st.SaveCharacter(ctx, &c))
	require.NoError(t, st.SaveQuest(ctx, &models.Quest{
		ID: "q1", Title: "Run", Difficulty: models.DifficultyE, XPReward: 50,
		Attribute: models.AttributeVitality, Status: models.QuestStatusActive, Kind: models.QuestKindNormal,
	}))
	require.NoError(t, st.CreateItem(ctx, &models.Item{
		ID: "i1", Name: "Iron Dagger", Rarity: models.RarityCommon, Type: models.ItemTypeWeapon, ObtainedAt: snapshotTime,
	}))
	require.NoError(t, st.SetConfig(ctx, models.ConfigKeyLastDailyReset, "2026-03-01"))
	return st
}

func TestSnapshotWorker_RunOnce(t *testing.T) {
	uploader := &memoryUploader{}
	w := NewSnapshotWorker(seededStore(t), uploader, clockwork.NewFakeClockAt(snapshotTime))

	key, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "snapshots/2026-03-01/20260301T103000Z-c-rank-hunter-lvl-12.json", key)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(uploader.objects[key], &snap))
	assert.Equal(t, "C-Rank Hunter", snap.Rank)
	assert.Equal(t, 12, snap.Character.Level)
	assert.Len(t, snap.Quests, 1)
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, "2026-03-01", snap.LastDailyReset)
}

func TestSnapshotWorker_EmptyStore(t *testing.T) {
	w := NewSnapshotWorker(store.NewMemoryStore(), &memoryUploader{}, clockwork.NewFakeClockAt(snapshotTime))

	snap, err := w.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Character.Level)
	assert.Equal(t, "E-Rank Hunter", snap.Rank)
	assert.Empty(t, snap.Quests)
}

func TestSnapshotWorker_UploadError(t *testing.T) {
	w := NewSnapshotWorker(seededStore(t), &memoryUploader{err: errors.New("bucket gone")}, clockwork.NewFakeClockAt(snapshotTime))
	_, err := w.RunOnce(context.Background())
	assert.ErrorContains(t, err, "bucket gone")
}

func TestPollSnapshots(t *testing.T) {
	clock := clockwork.NewFakeClockAt(snapshotTime)
	uploader := &memoryUploader{}
	w := NewSnapshotWorker(seededStore(t), uploader, clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		PollSnapshots(ctx, w, time.Hour)
		close(done)
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Hour)
	require.Eventually(t, func() bool { return uploader.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop")
	}
}
