package services

import (
	"context"
	"errors"
	"log"

	"github.com/jonboulle/clockwork"

	apperrors "hunter-system/errors"
	"hunter-system/models"
	"hunter-system/store"
)

// ensureCharacter loads the main character, creating the seed record on
// first access (idempotent).
func ensureCharacter(ctx context.Context, st store.Store) (models.Character, error) {
	c, err := st.GetCharacter(ctx, models.MainCharacterID)
	if errors.Is(err, store.ErrNotFound) {
		c = models.NewCharacter()
		if err := st.SaveCharacter(ctx, &c); err != nil {
			return models.Character{}, err
		}
		log.Printf("✅ [Character] Seeded new hunter (level %d)", c.Level)
		return c, nil
	}
	if err != nil {
		return models.Character{}, err
	}
	return c, nil
}

// applyLedger copies a ledger result onto the character.
func applyLedger(c *models.Character, res LedgerResult) {
	c.Level = res.NewLevel
	c.CurrentXP = res.NewCurrentXP
	c.AttributeXP = res.NewAttributeXP
	ApplyStatPoints(&c.Attributes, res.StatPointChanges)
}

// QuestStats summarizes the quest log.
type QuestStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}

// CharacterProfile is the dashboard view of the hunter.
type CharacterProfile struct {
	models.Character
	Rank               string     `json:"rank"`
	XPToNextLevel      int        `json:"xp_to_next_level"`
	XPRequired         int        `json:"xp_required"`
	ProgressPercentage int        `json:"progress_percentage"`
	Quests             QuestStats `json:"quests"`
	Items              ItemStats  `json:"items"`
}

// ExperienceResult is returned by direct XP grants.
type ExperienceResult struct {
	LedgerResult
	Milestones []MilestoneEvent `json:"milestones"`
	Character  models.Character `json:"character"`
}

type CharacterService struct {
	store store.Store
	clock clockwork.Clock
}

func NewCharacterService(st store.Store, clock clockwork.Clock) *CharacterService {
	return &CharacterService{store: st, clock: clock}
}

// GetCharacter returns the hunter, seeding it on first run.
func (s *CharacterService) GetCharacter(ctx context.Context) (models.Character, error) {
	var c models.Character
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		var err error
		c, err = ensureCharacter(ctx, tx)
		return err
	})
	if err != nil {
		return models.Character{}, apperrors.ErrStoreFailure("load character", err)
	}
	return c, nil
}

// Profile returns the character with derived progress and statistics.
func (s *CharacterService) Profile(ctx context.Context) (*CharacterProfile, error) {
	c, err := s.GetCharacter(ctx)
	if err != nil {
		return nil, err
	}
	quests, err := questStats(ctx, s.store)
	if err != nil {
		return nil, apperrors.ErrStoreFailure("quest stats", err)
	}
	items, err := itemStats(ctx, s.store)
	if err != nil {
		return nil, apperrors.ErrStoreFailure("item stats", err)
	}

	required := XPRequiredForLevel(c.Level)
	return &CharacterProfile{
		Character:          c,
		Rank:               RankName(c.Level),
		XPToNextLevel:      required - c.CurrentXP,
		XPRequired:         required,
		ProgressPercentage: ProgressPercentage(c.CurrentXP, c.Level),
		Quests:             quests,
		Items:              items,
	}, nil
}

func questStats(ctx context.Context, st store.Store) (QuestStats, error) {
	var stats QuestStats
	counts := []struct {
		status models.QuestStatus
		dst    *int64
	}{
		{"", &stats.Total},
		{models.QuestStatusActive, &stats.Active},
		{models.QuestStatusCompleted, &stats.Completed},
		{models.QuestStatusFailed, &stats.Failed},
	}
	for _, c := range counts {
		n, err := st.CountQuests(ctx, store.QuestFilter{Status: c.status})
		if err != nil {
			return QuestStats{}, err
		}
		*c.dst = n
	}
	return stats, nil
}

// AddExperience credits amount XP to one attribute of the character,
// outside of any quest. Stat points earned are applied to the attributes.
func (s *CharacterService) AddExperience(ctx context.Context, characterID uint, amount int, attribute string) (*ExperienceResult, error) {
	if characterID != models.MainCharacterID {
		return nil, apperrors.ErrCharacterNotFound(characterID)
	}
	attr, ok := models.ParseAttribute(attribute)
	if !ok {
		return nil, apperrors.ErrInvalidAttribute(attribute)
	}
	if amount <= 0 {
		return nil, apperrors.ErrValidation("amount", "must be positive")
	}

	var out ExperienceResult
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		c, err := ensureCharacter(ctx, tx)
		if err != nil {
			return err
		}
		oldLevel := c.Level

		res, err := AddXP(LedgerState{Level: c.Level, CurrentXP: c.CurrentXP, AttributeXP: c.AttributeXP}, amount, attr)
		if err != nil {
			return err
		}
		applyLedger(&c, res)
		c.TotalXPEarned += int64(amount)
		if res.LeveledUp {
			now := s.clock.Now().UTC()
			c.LastLevelUpAt = &now
		}
		if err := tx.SaveCharacter(ctx, &c); err != nil {
			return err
		}

		out = ExperienceResult{
			LedgerResult: res,
			Milestones:   MilestoneEvents(oldLevel, res.LevelsGained),
			Character:    c,
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.AsStoreFailure("add experience", err)
	}

	log.Printf("🎮 [Character] +%d XP to %s → level %d (%d/%d)",
		amount, AttributeTitle(attr), out.Character.Level, out.Character.CurrentXP, XPRequiredForLevel(out.Character.Level))
	return &out, nil
}

// AllocateStats spends unspent stat points. points maps attribute names to
// the number of points to add.
func (s *CharacterService) AllocateStats(ctx context.Context, points map[string]int) (models.Character, error) {
	parsed := make(map[models.Attribute]int, len(points))
	total := 0
	for name, n := range points {
		attr, ok := models.ParseAttribute(name)
		if !ok {
			return models.Character{}, apperrors.ErrInvalidAttribute(name)
		}
		if n < 0 {
			return models.Character{}, apperrors.ErrValidation(name, "points must not be negative")
		}
		parsed[attr] += n
		total += n
	}
	if total <= 0 {
		return models.Character{}, apperrors.ErrValidation("points", "allocate at least one point")
	}

	var c models.Character
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		var err error
		c, err = ensureCharacter(ctx, tx)
		if err != nil {
			return err
		}
		if total > c.UnspentStatPoints {
			return apperrors.ErrInsufficientStatPoints(c.UnspentStatPoints, total)
		}
		ApplyStatPoints(&c.Attributes, parsed)
		c.UnspentStatPoints -= total
		return tx.SaveCharacter(ctx, &c)
	})
	if err != nil {
		return models.Character{}, apperrors.AsStoreFailure("allocate stats", err)
	}
	return c, nil
}

// Reset wipes the hunter back to the seed character and clears the quest
// log, inventory and daily cycle marker.
func (s *CharacterService) Reset(ctx context.Context) (models.Character, error) {
	c := models.NewCharacter()
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		if existing, err := tx.GetCharacter(ctx, models.MainCharacterID); err == nil {
			c.CreatedAt = existing.CreatedAt
		}
		if err := tx.SaveCharacter(ctx, &c); err != nil {
			return err
		}
		if _, err := tx.DeleteQuests(ctx, store.QuestFilter{}); err != nil {
			return err
		}
		if _, err := tx.DeleteItems(ctx, store.ItemFilter{}); err != nil {
			return err
		}
		return tx.DeleteConfig(ctx, models.ConfigKeyLastDailyReset)
	})
	if err != nil {
		return models.Character{}, apperrors.AsStoreFailure("reset progress", err)
	}
	log.Println("⚠️ [Character] Progress reset to seed values")
	return c, nil
}

// SetTotalXP rewrites lifetime XP and derives level and current XP from it.
// The banked XP is attributed to one attribute so the per-attribute counters
// still add up. Attributes and stat points are left untouched.
func (s *CharacterService) SetTotalXP(ctx context.Context, total int64, attribute string) (models.Character, error) {
	if total < 0 {
		return models.Character{}, apperrors.ErrValidation("total_xp", "must not be negative")
	}
	attr := models.AttributeStrength
	if attribute != "" {
		var ok bool
		if attr, ok = models.ParseAttribute(attribute); !ok {
			return models.Character{}, apperrors.ErrInvalidAttribute(attribute)
		}
	}

	var c models.Character
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		var err error
		c, err = ensureCharacter(ctx, tx)
		if err != nil {
			return err
		}
		level, current := LevelForTotalXP(total)
		c.Level = level
		c.CurrentXP = current
		c.TotalXPEarned = total
		c.AttributeXP = models.AttributeValues{}
		c.AttributeXP.Set(attr, current)
		return tx.SaveCharacter(ctx, &c)
	})
	if err != nil {
		return models.Character{}, apperrors.AsStoreFailure("set total xp", err)
	}
	log.Printf("[Character] Total XP set to %d → level %d (%s)", total, c.Level, RankName(c.Level))
	return c, nil
}

// Achievements evaluates the achievement catalogue against live statistics.
func (s *CharacterService) Achievements(ctx context.Context) ([]models.Achievement, error) {
	c, err := s.GetCharacter(ctx)
	if err != nil {
		return nil, err
	}
	metrics, err := achievementMetrics(ctx, s.store, c)
	if err != nil {
		return nil, apperrors.ErrStoreFailure("achievement metrics", err)
	}
	return EvaluateAchievements(metrics), nil
}
