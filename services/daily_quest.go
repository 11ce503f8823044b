package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	apperrors "hunter-system/errors"
	"hunter-system/models"
	"hunter-system/store"
)

const (
	dayLayout = "2006-01-02"

	// DailyCompletionQuota is the number of daily quests that must be
	// completed to avoid the attribute penalty.
	DailyCompletionQuota = 3
	dailyPenalty         = 1
	attributeFloor       = 1
)

// DailyQuestTemplate is one entry of the daily slate.
type DailyQuestTemplate struct {
	Title       string
	Description string
	Attribute   models.Attribute
}

// DailyQuestTemplates: one E-rank quest per attribute, regenerated every day.
var DailyQuestTemplates = []DailyQuestTemplate{
	{Title: "Brush routine", Description: "Finish your full morning and evening brushing routine.", Attribute: models.AttributeVitality},
	{Title: "Study 1 hour", Description: "Put in at least one focused hour of study.", Attribute: models.AttributeIntelligence},
	{Title: "5 pushups or 30s plank", Description: "Knock out 5 pushups or hold a plank for 30 seconds.", Attribute: models.AttributeStrength},
	{Title: "Handshake with acquaintance", Description: "Greet someone you know with a handshake.", Attribute: models.AttributeNetwork},
	{Title: "Spend 10 minutes thinking about a project", Description: "Give one of your projects 10 minutes of undistracted thought.", Attribute: models.AttributeCreation},
}

// DailyResetResult describes what a cycle check did.
type DailyResetResult struct {
	Date             string `json:"date"`
	PreviousDate     string `json:"previous_date,omitempty"`
	Ran              bool   `json:"ran"`
	CompletedDailies int    `json:"completed_dailies"`
	PenaltyApplied   bool   `json:"penalty_applied"`
	QuestsCreated    int    `json:"quests_created"`
	Message          string `json:"message,omitempty"`
}

var errCycleClaimed = errors.New("daily cycle already claimed")

// DailyQuestService runs the day-boundary transition of the daily slate.
type DailyQuestService struct {
	store store.Store
	clock clockwork.Clock
	loc   *time.Location
}

func NewDailyQuestService(st store.Store, clock clockwork.Clock, loc *time.Location) *DailyQuestService {
	if loc == nil {
		loc = time.Local
	}
	return &DailyQuestService{store: st, clock: clock, loc: loc}
}

// Today is the current calendar date in the configured zone.
func (s *DailyQuestService) Today() string {
	return s.clock.Now().In(s.loc).Format(dayLayout)
}

// CheckAndReset performs the daily transition once per calendar day: it
// judges yesterday's slate, applies the penalty when fewer than
// DailyCompletionQuota were completed, and replaces the slate. Everything
// happens in one transaction; a failure leaves the previous day intact.
func (s *DailyQuestService) CheckAndReset(ctx context.Context) (*DailyResetResult, error) {
	today := s.Today()
	result := &DailyResetResult{Date: today}

	last, hadReset, err := s.store.GetConfig(ctx, models.ConfigKeyLastDailyReset)
	if err != nil {
		return nil, apperrors.ErrStoreFailure("read last daily reset", err)
	}
	if hadReset && last == today {
		return result, nil
	}
	result.PreviousDate = last

	log.Printf("[DailyQuest] Processing daily reset for %s (last reset: %q)", today, last)

	err = s.store.WithTransaction(ctx, func(tx store.Store) error {
		claimed, err := tx.CompareAndSetConfig(ctx, models.ConfigKeyLastDailyReset, last, hadReset, today)
		if err != nil {
			return err
		}
		if !claimed {
			return errCycleClaimed
		}

		if hadReset {
			dailies, err := tx.ListQuests(ctx, store.QuestFilter{Kind: models.QuestKindDaily, ForUpdate: true})
			if err != nil {
				return err
			}
			for _, q := range dailies {
				if q.Status == models.QuestStatusCompleted {
					result.CompletedDailies++
				}
			}

			if result.CompletedDailies < DailyCompletionQuota {
				if err := applyDailyPenalty(ctx, tx, s.clock); err != nil {
					return err
				}
				result.PenaltyApplied = true
				result.Message = fmt.Sprintf("Penalty applied: -%d to %s for completing %d/%d daily quests",
					dailyPenalty, joinAttributeTitles(models.Attributes), result.CompletedDailies, len(DailyQuestTemplates))
			} else {
				result.Message = fmt.Sprintf("Penalty avoided: %d/%d daily quests completed",
					result.CompletedDailies, len(DailyQuestTemplates))
			}
		}

		if _, err := tx.DeleteQuests(ctx, store.QuestFilter{Kind: models.QuestKindDaily}); err != nil {
			return err
		}

		now := s.clock.Now().UTC()
		for _, tpl := range DailyQuestTemplates {
			q := models.Quest{
				ID:          uuid.NewString(),
				Title:       tpl.Title,
				Description: tpl.Description,
				Difficulty:  models.DifficultyE,
				XPReward:    models.DifficultyE.BaseXP(),
				Attribute:   tpl.Attribute,
				Status:      models.QuestStatusActive,
				Kind:        models.QuestKindDaily,
				Timestamps:  models.Timestamps{CreatedAt: now, UpdatedAt: now},
			}
			if err := tx.SaveQuest(ctx, &q); err != nil {
				return err
			}
			result.QuestsCreated++
		}
		return nil
	})
	if errors.Is(err, errCycleClaimed) {
		log.Printf("[DailyQuest] Reset for %s already handled elsewhere", today)
		return &DailyResetResult{Date: today, PreviousDate: last}, nil
	}
	if err != nil {
		log.Printf("❌ [DailyQuest] Failed to reset daily quests: %v", err)
		return nil, apperrors.AsStoreFailure("daily reset", err)
	}

	result.Ran = true
	if result.Message != "" {
		log.Printf("[DailyQuest] %s", result.Message)
	}
	log.Printf("✅ [DailyQuest] Daily reset for %s completed (%d quests created)", today, result.QuestsCreated)
	return result, nil
}

func applyDailyPenalty(ctx context.Context, tx store.Store, clock clockwork.Clock) error {
	character, err := ensureCharacter(ctx, tx)
	if err != nil {
		return err
	}
	for _, attr := range models.Attributes {
		v := character.Attributes.Get(attr) - dailyPenalty
		if v < attributeFloor {
			v = attributeFloor
		}
		character.Attributes.Set(attr, v)
	}
	character.UpdatedAt = clock.Now().UTC()
	return tx.SaveCharacter(ctx, &character)
}

// ListToday returns the current daily slate in template order.
func (s *DailyQuestService) ListToday(ctx context.Context) ([]models.Quest, error) {
	quests, err := s.store.ListQuests(ctx, store.QuestFilter{Kind: models.QuestKindDaily})
	if err != nil {
		return nil, apperrors.ErrStoreFailure("list daily quests", err)
	}
	order := make(map[models.Attribute]int, len(DailyQuestTemplates))
	for i, tpl := range DailyQuestTemplates {
		order[tpl.Attribute] = i
	}
	sort.SliceStable(quests, func(i, j int) bool {
		return order[quests[i].Attribute] < order[quests[j].Attribute]
	})
	return quests, nil
}
