package services

import (
	"math"
	"sort"

	apperrors "hunter-system/errors"
	"hunter-system/models"
)

// Stat point distribution: each full statPointBand of a level's XP share is
// worth one point.
const statPointBand = 17.0

// LedgerState is the slice of a character the ledger reads.
type LedgerState struct {
	Level       int
	CurrentXP   int
	AttributeXP models.AttributeValues
}

// LedgerResult is the outcome of crediting XP to one attribute.
type LedgerResult struct {
	NewLevel         int                      `json:"new_level"`
	NewCurrentXP     int                      `json:"new_current_xp"`
	NewAttributeXP   models.AttributeValues   `json:"new_attribute_xp"`
	LeveledUp        bool                     `json:"leveled_up"`
	LevelsGained     int                      `json:"levels_gained"`
	StatPointChanges map[models.Attribute]int `json:"stat_point_changes"`
}

// AddXP credits amount XP to attribute, completing as many level buckets as
// it fills. Every completed level hands out StatPointsPerLevel points, split
// by each attribute's share of that level's XP.
func AddXP(state LedgerState, amount int, attribute models.Attribute) (LedgerResult, error) {
	if !attribute.IsValid() {
		return LedgerResult{}, apperrors.ErrInvalidAttribute(string(attribute))
	}
	if amount < 0 {
		return LedgerResult{}, apperrors.ErrValidation("amount", "must not be negative")
	}

	level := state.Level
	if level < 1 {
		level = 1
	}
	currentXP := state.CurrentXP
	working := state.AttributeXP
	changes := make(map[models.Attribute]int)
	levelsGained := 0

	remaining := amount
	for remaining > 0 {
		space := XPRequiredForLevel(level) - currentXP
		if space < 0 {
			space = 0
		}
		if remaining < space {
			currentXP += remaining
			working.Add(attribute, remaining)
			break
		}

		// Non-target counters still hold what was earned before this call
		// (or zero after a boundary); the target holds its running tally.
		working.Add(attribute, space)
		for attr, pts := range distributeStatPoints(working) {
			changes[attr] += pts
		}

		remaining -= space
		level++
		currentXP = 0
		working = models.AttributeValues{}
		levelsGained++
	}

	return LedgerResult{
		NewLevel:         level,
		NewCurrentXP:     currentXP,
		NewAttributeXP:   working,
		LeveledUp:        levelsGained > 0,
		LevelsGained:     levelsGained,
		StatPointChanges: changes,
	}, nil
}

// distributeStatPoints splits StatPointsPerLevel across the attributes of one
// completed level. floor(percent/17) each, then the shortfall goes one point
// at a time to the largest percent%17 remainders (ties in enumeration order).
func distributeStatPoints(contrib models.AttributeValues) map[models.Attribute]int {
	total := contrib.Sum()
	points := make(map[models.Attribute]int, len(models.Attributes))

	type share struct {
		attr      models.Attribute
		remainder float64
	}
	shares := make([]share, 0, len(models.Attributes))

	awarded := 0
	for _, attr := range models.Attributes {
		percent := 0.0
		if total > 0 {
			percent = float64(contrib.Get(attr)) / float64(total) * 100
		}
		p := int(math.Floor(percent / statPointBand))
		points[attr] = p
		awarded += p
		shares = append(shares, share{attr: attr, remainder: math.Mod(percent, statPointBand)})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder > shares[j].remainder
	})
	for i := 0; awarded < models.StatPointsPerLevel; i++ {
		points[shares[i%len(shares)].attr]++
		awarded++
	}

	for attr, p := range points {
		if p == 0 {
			delete(points, attr)
		}
	}
	return points
}

// ApplyStatPoints adds ledger stat point changes to a character's attributes.
func ApplyStatPoints(attrs *models.AttributeValues, changes map[models.Attribute]int) {
	for _, attr := range models.Attributes {
		attrs.Add(attr, changes[attr])
	}
}
