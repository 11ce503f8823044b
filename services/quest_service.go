package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	apperrors "hunter-system/errors"
	"hunter-system/models"
	"hunter-system/store"
)

// antiGrindWindow is how far back E-rank completions count toward decay.
const antiGrindWindow = 24 * time.Hour

// QuestInput is the payload for creating a quest.
type QuestInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  string     `json:"difficulty"`
	Attribute   string     `json:"attribute"`
	DueDate     *time.Time `json:"due_date"`
}

// QuestUpdate holds the fields a player may change on an active quest.
// Nil fields are left as they are.
type QuestUpdate struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Difficulty   *string    `json:"difficulty"`
	Attribute    *string    `json:"attribute"`
	DueDate      *time.Time `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
}

// QuestListFilter is the raw query of a quest listing.
type QuestListFilter struct {
	Status     string
	Difficulty string
	Kind       string
}

// LevelUpSummary is present on a completion that crossed a level boundary.
type LevelUpSummary struct {
	OldLevel         int                      `json:"old_level"`
	NewLevel         int                      `json:"new_level"`
	LevelsGained     int                      `json:"levels_gained"`
	StatPointChanges map[models.Attribute]int `json:"stat_point_changes"`
}

// CompletionResult is everything a quest completion produced.
type CompletionResult struct {
	Quest            models.Quest             `json:"quest"`
	XPGained         int                      `json:"xp_gained"`
	LeveledUp        bool                     `json:"leveled_up"`
	LevelsGained     int                      `json:"levels_gained"`
	StatPointChanges map[models.Attribute]int `json:"stat_point_changes"`
	LevelUp          *LevelUpSummary          `json:"level_up"`
	Rewards          QuestRewards             `json:"rewards"`
	Character        models.Character         `json:"character"`
}

type QuestService struct {
	store   store.Store
	rewards *RewardGenerator
	flavor  FlavorProvider
	clock   clockwork.Clock
}

func NewQuestService(st store.Store, rewards *RewardGenerator, flavor FlavorProvider, clock clockwork.Clock) *QuestService {
	return &QuestService{store: st, rewards: rewards, flavor: flavor, clock: clock}
}

func (s *QuestService) CreateQuest(ctx context.Context, in QuestInput) (models.Quest, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Quest{}, apperrors.ErrValidation("title", "required")
	}
	difficulty, ok := models.ParseDifficulty(in.Difficulty)
	if !ok {
		return models.Quest{}, apperrors.ErrInvalidDifficulty(in.Difficulty)
	}
	attr := models.AttributeStrength
	if strings.TrimSpace(in.Attribute) != "" {
		if attr, ok = models.ParseAttribute(in.Attribute); !ok {
			return models.Quest{}, apperrors.ErrInvalidAttribute(in.Attribute)
		}
	}

	description := strings.TrimSpace(in.Description)
	if description == "" && s.flavor != nil {
		description = s.flavor.QuestFlavor(ctx, title, difficulty)
	}

	now := s.clock.Now().UTC()
	q := models.Quest{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Difficulty:  difficulty,
		XPReward:    difficulty.BaseXP(),
		Attribute:   attr,
		Status:      models.QuestStatusActive,
		Kind:        models.QuestKindNormal,
		DueDate:     utcPtr(in.DueDate),
		Timestamps:  models.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.store.SaveQuest(ctx, &q); err != nil {
		return models.Quest{}, apperrors.ErrStoreFailure("create quest", err)
	}
	log.Printf("📜 [Quest] Created %s-rank quest %q (%d XP)", q.Difficulty, q.Title, q.XPReward)
	return q, nil
}

func (s *QuestService) GetQuest(ctx context.Context, id string) (models.Quest, error) {
	return getQuest(ctx, s.store, id)
}

func getQuest(ctx context.Context, st store.Store, id string) (models.Quest, error) {
	q, err := st.GetQuest(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Quest{}, apperrors.ErrQuestNotFound(id)
	}
	if err != nil {
		return models.Quest{}, apperrors.ErrStoreFailure("get quest", err)
	}
	return q, nil
}

func (s *QuestService) ListQuests(ctx context.Context, f QuestListFilter) ([]models.Quest, error) {
	filter := store.QuestFilter{}
	if f.Status != "" {
		filter.Status = models.QuestStatus(strings.ToLower(f.Status))
		if !filter.Status.IsValid() {
			return nil, apperrors.ErrValidation("status", "unknown status "+f.Status)
		}
	}
	if f.Difficulty != "" {
		d, ok := models.ParseDifficulty(f.Difficulty)
		if !ok {
			return nil, apperrors.ErrInvalidDifficulty(f.Difficulty)
		}
		filter.Difficulty = d
	}
	if f.Kind != "" {
		filter.Kind = models.QuestKind(strings.ToLower(f.Kind))
		if !filter.Kind.IsValid() {
			return nil, apperrors.ErrValidation("kind", "unknown kind "+f.Kind)
		}
	}
	quests, err := s.store.ListQuests(ctx, filter)
	if err != nil {
		return nil, apperrors.ErrStoreFailure("list quests", err)
	}
	return quests, nil
}

// UpdateQuest edits an active player quest. Changing the difficulty
// re-derives the XP reward.
func (s *QuestService) UpdateQuest(ctx context.Context, id string, in QuestUpdate) (models.Quest, error) {
	var q models.Quest
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		var err error
		q, err = getQuest(ctx, tx, id)
		if err != nil {
			return err
		}
		if q.Kind == models.QuestKindDaily {
			return apperrors.ErrDailyQuestLocked(id)
		}
		if q.Status != models.QuestStatusActive {
			return apperrors.ErrQuestNotActive(id, string(q.Status))
		}

		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return apperrors.ErrValidation("title", "required")
			}
			q.Title = title
		}
		if in.Description != nil {
			q.Description = strings.TrimSpace(*in.Description)
		}
		if in.Difficulty != nil {
			d, ok := models.ParseDifficulty(*in.Difficulty)
			if !ok {
				return apperrors.ErrInvalidDifficulty(*in.Difficulty)
			}
			q.Difficulty = d
			q.XPReward = d.BaseXP()
		}
		if in.Attribute != nil {
			attr, ok := models.ParseAttribute(*in.Attribute)
			if !ok {
				return apperrors.ErrInvalidAttribute(*in.Attribute)
			}
			q.Attribute = attr
		}
		if in.ClearDueDate {
			q.DueDate = nil
		} else if in.DueDate != nil {
			q.DueDate = utcPtr(in.DueDate)
		}
		q.UpdatedAt = s.clock.Now().UTC()
		return tx.SaveQuest(ctx, &q)
	})
	if err != nil {
		return models.Quest{}, apperrors.AsStoreFailure("update quest", err)
	}
	return q, nil
}

// DeleteQuest removes a player quest. Daily quests belong to the cycle.
func (s *QuestService) DeleteQuest(ctx context.Context, id string) error {
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		q, err := getQuest(ctx, tx, id)
		if err != nil {
			return err
		}
		if q.Kind == models.QuestKindDaily {
			return apperrors.ErrDailyQuestLocked(id)
		}
		_, err = tx.DeleteQuests(ctx, store.QuestFilter{ID: id})
		return err
	})
	return apperrors.AsStoreFailure("delete quest", err)
}

// FailQuest gives up on an active quest.
func (s *QuestService) FailQuest(ctx context.Context, id string) (models.Quest, error) {
	var q models.Quest
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		var err error
		q, err = getQuest(ctx, tx, id)
		if err != nil {
			return err
		}
		if q.Status != models.QuestStatusActive {
			return apperrors.ErrQuestNotActive(id, string(q.Status))
		}
		now := s.clock.Now().UTC()
		ok, err := tx.TransitionQuestStatus(ctx, id, models.QuestStatusActive, models.QuestStatusFailed, now)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrQuestNotActive(id, "no longer active")
		}
		q.Status = models.QuestStatusFailed
		q.CompletedAt = &now
		q.UpdatedAt = now
		return nil
	})
	if err != nil {
		return models.Quest{}, apperrors.AsStoreFailure("fail quest", err)
	}
	log.Printf("💀 [Quest] Failed quest %q", q.Title)
	return q, nil
}

// CompleteQuest finishes an active quest: it awards XP through the ledger,
// applies the stat points, rolls loot and records everything in one
// transaction. A second completion of the same quest is rejected with
// INVALID_STATE and awards nothing.
func (s *QuestService) CompleteQuest(ctx context.Context, id string) (*CompletionResult, error) {
	var out CompletionResult
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		q, err := getQuest(ctx, tx, id)
		if err != nil {
			return err
		}
		if q.Status != models.QuestStatusActive {
			return apperrors.ErrQuestNotActive(id, string(q.Status))
		}
		if !q.Attribute.IsValid() {
			return apperrors.ErrInvalidAttribute(string(q.Attribute))
		}

		now := s.clock.Now().UTC()
		since := now.Add(-antiGrindWindow)
		recent, err := tx.CountQuests(ctx, store.QuestFilter{
			Difficulty:     models.DifficultyE,
			Status:         models.QuestStatusCompleted,
			CompletedSince: &since,
		})
		if err != nil {
			return err
		}
		xp := CalculateQuestXP(q, QuestXPContext{
			CompletedOnTime:       q.DueDate != nil && !now.After(*q.DueDate),
			RecentEasyCompletions: int(recent),
		})

		ok, err := tx.TransitionQuestStatus(ctx, id, models.QuestStatusActive, models.QuestStatusCompleted, now)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrQuestNotActive(id, "no longer active")
		}
		q.Status = models.QuestStatusCompleted
		q.CompletedAt = &now
		q.UpdatedAt = now

		c, err := ensureCharacter(ctx, tx)
		if err != nil {
			return err
		}
		oldLevel := c.Level
		res, err := AddXP(LedgerState{Level: c.Level, CurrentXP: c.CurrentXP, AttributeXP: c.AttributeXP}, xp, q.Attribute)
		if err != nil {
			return err
		}
		applyLedger(&c, res)
		c.TotalXPEarned += int64(xp)
		if res.LeveledUp {
			c.LastLevelUpAt = &now
		}

		rewards := s.rewards.GenerateQuestRewards(q.Difficulty, MilestoneEvents(oldLevel, res.LevelsGained))
		for i := range rewards.Items {
			if err := tx.CreateItem(ctx, &rewards.Items[i]); err != nil {
				return err
			}
		}
		if err := tx.SaveCharacter(ctx, &c); err != nil {
			return err
		}

		out = CompletionResult{
			Quest:            q,
			XPGained:         xp,
			LeveledUp:        res.LeveledUp,
			LevelsGained:     res.LevelsGained,
			StatPointChanges: res.StatPointChanges,
			Rewards:          rewards,
			Character:        c,
		}
		if res.LeveledUp {
			out.LevelUp = &LevelUpSummary{
				OldLevel:         oldLevel,
				NewLevel:         res.NewLevel,
				LevelsGained:     res.LevelsGained,
				StatPointChanges: res.StatPointChanges,
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.AsStoreFailure("complete quest", err)
	}

	log.Printf("✅ [Quest] Completed %q: +%d XP (%s), level %d, %d item(s)",
		out.Quest.Title, out.XPGained, AttributeTitle(out.Quest.Attribute), out.Character.Level, len(out.Rewards.Items))
	return &out, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
