package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"

	"hunter-system/models"
	"hunter-system/services"
	"hunter-system/store"
)

// Uploader stores a finished snapshot somewhere off-box (R2 in production).
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
}

// Snapshot is a point-in-time export of the whole hunter state.
type Snapshot struct {
	TakenAt        time.Time        `json:"taken_at"`
	Rank           string           `json:"rank"`
	LastDailyReset string           `json:"last_daily_reset,omitempty"`
	Character      models.Character `json:"character"`
	Quests         []models.Quest   `json:"quests"`
	Items          []models.Item    `json:"items"`
}

type SnapshotWorker struct {
	store    store.Store
	uploader Uploader
	clock    clockwork.Clock
}

func NewSnapshotWorker(st store.Store, uploader Uploader, clock clockwork.Clock) *SnapshotWorker {
	return &SnapshotWorker{store: st, uploader: uploader, clock: clock}
}

// Build reads character, quests, items and the daily marker in one
// transaction so the export is consistent.
func (w *SnapshotWorker) Build(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{TakenAt: w.clock.Now().UTC()}
	err := w.store.WithTransaction(ctx, func(tx store.Store) error {
		c, err := tx.GetCharacter(ctx, models.MainCharacterID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c = models.NewCharacter()
		case err != nil:
			return err
		}
		snap.Character = c
		snap.Rank = services.RankName(c.Level)

		if snap.Quests, err = tx.ListQuests(ctx, store.QuestFilter{}); err != nil {
			return err
		}
		if snap.Items, err = tx.ListItems(ctx, store.ItemFilter{}); err != nil {
			return err
		}
		snap.LastDailyReset, _, err = tx.GetConfig(ctx, models.ConfigKeyLastDailyReset)
		return err
	})
	return snap, err
}

// SnapshotKey names the object: snapshots/<date>/<timestamp>-<rank>-lvl-<level>.json
func SnapshotKey(s Snapshot) string {
	name := fmt.Sprintf("%s-%s-lvl-%d.json",
		s.TakenAt.Format("20060102T150405Z"), slug.Make(s.Rank), s.Character.Level)
	return path.Join("snapshots", s.TakenAt.Format("2006-01-02"), name)
}

// RunOnce builds and uploads one snapshot and returns its key.
func (w *SnapshotWorker) RunOnce(ctx context.Context) (string, error) {
	snap, err := w.Build(ctx)
	if err != nil {
		return "", fmt.Errorf("build snapshot: %w", err)
	}
	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	key := SnapshotKey(snap)
	if err := w.uploader.Upload(ctx, key, "application/json", body); err != nil {
		return "", err
	}
	return key, nil
}

// PollSnapshots uploads a snapshot every interval until ctx is cancelled.
func PollSnapshots(ctx context.Context, w *SnapshotWorker, interval time.Duration) {
	log.Printf("Starting snapshot uploads (every %s)...", interval)

	ticker := w.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot uploads stopped.")
			return
		case <-ticker.Chan():
			key, err := w.RunOnce(ctx)
			if err != nil {
				// Nothing to roll back; the next tick tries again.
				log.Printf("❌ [Snapshot] Upload failed: %v", err)
				continue
			}
			log.Printf("✅ [Snapshot] Uploaded %s", key)
		}
	}
}
