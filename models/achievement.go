package models

// Achievement: static definition, evaluated against live statistics.
type Achievement struct {
	Code        string           `json:"id"`   // e.g., "first_quest"
	Name        string           `json:"name"` // "First Steps"
	Description string           `json:"description"`
	Threshold   map[string]int64 `json:"-"` // e.g., {"completed_quests": 1}
	Unlocked    bool             `json:"unlocked"`
}

// Threshold keys understood by the achievement evaluator.
const (
	MetricCompletedQuests  = "completed_quests"
	MetricLevel            = "level"
	MetricTotalItems       = "total_items"
	MetricLegendaryOrAbove = "legendary_or_above_items"
)

// AchievementTriggers is the fixed catalogue.
var AchievementTriggers = []Achievement{
	{
		Code:        "first_quest",
		Name:        "First Steps",
		Description: "Complete your first quest",
		Threshold:   map[string]int64{MetricCompletedQuests: 1},
	},
	{
		Code:        "quest_master",
		Name:        "Quest Master",
		Description: "Complete 100 quests",
		Threshold:   map[string]int64{MetricCompletedQuests: 100},
	},
	{
		Code:        "level_10",
		Name:        "Rising Hunter",
		Description: "Reach level 10",
		Threshold:   map[string]int64{MetricLevel: 10},
	},
	{
		Code:        "level_50",
		Name:        "Elite Hunter",
		Description: "Reach level 50",
		Threshold:   map[string]int64{MetricLevel: 50},
	},
	{
		Code:        "collector",
		Name:        "Collector",
		Description: "Collect 50 items",
		Threshold:   map[string]int64{MetricTotalItems: 50},
	},
	{
		Code:        "legendary_hunter",
		Name:        "Legendary Hunter",
		Description: "Obtain 10 legendary or mythic items",
		Threshold:   map[string]int64{MetricLegendaryOrAbove: 10},
	},
}
