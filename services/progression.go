package services

import (
	"math"

	"hunter-system/models"
)

// BaseXPPerLevel scales the level curve: L_n = floor(BaseXPPerLevel * n^1.1)
const BaseXPPerLevel = 100

// XPRequiredForLevel returns the XP needed to go from level to level+1.
func XPRequiredForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(float64(BaseXPPerLevel) * math.Pow(float64(level), 1.1)))
}

// TotalXPForLevel returns the cumulative XP needed to reach level from level 1.
func TotalXPForLevel(level int) int64 {
	var total int64
	for i := 1; i < level; i++ {
		total += int64(XPRequiredForLevel(i))
	}
	return total
}

// LevelForTotalXP walks the level buckets and returns the level reached with
// total lifetime XP, plus the XP already banked toward the next level.
func LevelForTotalXP(total int64) (level int, currentXP int) {
	level = 1
	if total < 0 {
		total = 0
	}
	for {
		need := int64(XPRequiredForLevel(level))
		if total < need {
			return level, int(total)
		}
		total -= need
		level++
	}
}

// RankThreshold: minimum level for a hunter rank title.
type RankThreshold struct {
	Level int
	Name  string
}

// RankThresholds in ascending level order.
var RankThresholds = []RankThreshold{
	{Level: 1, Name: "E-Rank Hunter"},
	{Level: 5, Name: "D-Rank Hunter"},
	{Level: 10, Name: "C-Rank Hunter"},
	{Level: 20, Name: "B-Rank Hunter"},
	{Level: 35, Name: "A-Rank Hunter"},
	{Level: 50, Name: "S-Rank Hunter"},
	{Level: 75, Name: "National Level Hunter"},
	{Level: 100, Name: "Shadow Monarch"},
}

// RankName returns the title for the highest threshold not above level.
func RankName(level int) string {
	name := RankThresholds[0].Name
	for _, t := range RankThresholds {
		if level >= t.Level {
			name = t.Name
		}
	}
	return name
}

// rankAt returns the title unlocked exactly at level, if any.
func rankAt(level int) (string, bool) {
	for _, t := range RankThresholds {
		if t.Level == level {
			return t.Name, true
		}
	}
	return "", false
}

// QuestXPContext carries the completion circumstances that modify XP.
type QuestXPContext struct {
	CompletedOnTime       bool
	RecentEasyCompletions int
}

const (
	onTimeBonus          = 1.2
	antiGrindFreeQuota   = 10
	antiGrindStepPenalty = 0.05
	antiGrindMaxPenalty  = 0.5
)

// CalculateQuestXP applies the on-time bonus and the E-rank anti-grind decay
// to the difficulty's base XP.
func CalculateQuestXP(quest models.Quest, ctx QuestXPContext) int {
	base := float64(quest.Difficulty.BaseXP())
	multiplier := 1.0

	if quest.DueDate != nil && ctx.CompletedOnTime {
		multiplier *= onTimeBonus
	}

	if quest.Difficulty == models.DifficultyE && ctx.RecentEasyCompletions > antiGrindFreeQuota {
		penalty := math.Min(antiGrindMaxPenalty, float64(ctx.RecentEasyCompletions-antiGrindFreeQuota)*antiGrindStepPenalty)
		multiplier *= 1 - penalty
	}

	return int(math.Floor(base * multiplier))
}

// ProgressPercentage is the share of the current level already earned, capped at 100.
func ProgressPercentage(currentXP, level int) int {
	need := XPRequiredForLevel(level)
	if need <= 0 {
		return 0
	}
	pct := int(math.Floor(float64(currentXP) / float64(need) * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
