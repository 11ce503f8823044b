package services

import (
	"context"

	"hunter-system/models"
	"hunter-system/store"
)

func achievementMetrics(ctx context.Context, st store.Store, c models.Character) (map[string]int64, error) {
	completed, err := st.CountQuests(ctx, store.QuestFilter{Status: models.QuestStatusCompleted})
	if err != nil {
		return nil, err
	}
	items, err := st.ListItems(ctx, store.ItemFilter{})
	if err != nil {
		return nil, err
	}
	var top int64
	for _, item := range items {
		if item.Rarity == models.RarityLegendary || item.Rarity == models.RarityMythic {
			top++
		}
	}
	return map[string]int64{
		models.MetricCompletedQuests:  completed,
		models.MetricLevel:            int64(c.Level),
		models.MetricTotalItems:       int64(len(items)),
		models.MetricLegendaryOrAbove: top,
	}, nil
}

// EvaluateAchievements returns the catalogue with Unlocked filled in.
func EvaluateAchievements(metrics map[string]int64) []models.Achievement {
	out := make([]models.Achievement, 0, len(models.AchievementTriggers))
	for _, trigger := range models.AchievementTriggers {
		a := trigger
		a.Unlocked = meetsThreshold(metrics, trigger.Threshold)
		out = append(out, a)
	}
	return out
}

func meetsThreshold(metrics map[string]int64, req map[string]int64) bool {
	for key, required := range req {
		if metrics[key] < required {
			return false
		}
	}
	return true
}
