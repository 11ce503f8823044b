package services

import (
	"fmt"

	"hunter-system/models"
)

// Milestone event types produced by leveling.
const (
	EventLegendaryChoice = "legendary_choice"
	EventGuaranteedRare  = "guaranteed_rare"
	EventRankUp          = "rank_up"
)

// MilestoneEvent is a special reward or notice triggered by reaching a level.
type MilestoneEvent struct {
	Type    string        `json:"type"`
	Level   int           `json:"level"`
	Message string        `json:"message"`
	Rank    string        `json:"rank,omitempty"`
	Choices []models.Item `json:"choices,omitempty"`
}

// MilestoneEvents lists the events for every level reached when going from
// fromLevel up by levelsGained, in level order.
func MilestoneEvents(fromLevel, levelsGained int) []MilestoneEvent {
	var events []MilestoneEvent
	for level := fromLevel + 1; level <= fromLevel+levelsGained; level++ {
		switch {
		case level%10 == 0:
			events = append(events, MilestoneEvent{
				Type:    EventLegendaryChoice,
				Level:   level,
				Message: fmt.Sprintf("Level %d Milestone! Choose 1 of 3 Legendary Items", level),
			})
		case level%5 == 0:
			events = append(events, MilestoneEvent{
				Type:    EventGuaranteedRare,
				Level:   level,
				Message: fmt.Sprintf("Level %d Milestone! Guaranteed Rare+ Item", level),
			})
		}

		if rank, ok := rankAt(level); ok {
			events = append(events, MilestoneEvent{
				Type:    EventRankUp,
				Level:   level,
				Message: fmt.Sprintf("Rank Up! You are now a %s!", rank),
				Rank:    rank,
			})
		}
	}
	return events
}
