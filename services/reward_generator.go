package services

import (
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"hunter-system/models"
)

const legendaryChoiceCount = 3

// QuestRewards is the loot package of one completion.
type QuestRewards struct {
	Items   []models.Item    `json:"items"`
	Special []MilestoneEvent `json:"special"`
}

// RewardGenerator builds items from the loot tables using an injected
// random source.
type RewardGenerator struct {
	roller Roller
	clock  clockwork.Clock
}

func NewRewardGenerator(roller Roller, clock clockwork.Clock) *RewardGenerator {
	return &RewardGenerator{roller: roller, clock: clock}
}

func (g *RewardGenerator) RollRarity(d models.Difficulty) models.Rarity {
	return RollRarity(g.roller, d)
}

func (g *RewardGenerator) ShouldDropItem(d models.Difficulty) bool {
	return ShouldDropItem(g.roller, d)
}

// GenerateItem creates an item for a quest of difficulty d. A non-empty
// forced rarity skips the rarity roll.
func (g *RewardGenerator) GenerateItem(d models.Difficulty, forced models.Rarity) models.Item {
	rarity := forced
	if rarity == "" {
		rarity = g.RollRarity(d)
	}
	itemType := models.ItemTypes[g.roller.Intn(len(models.ItemTypes))]
	cell := lootTable[itemType][rarity]

	return models.Item{
		ID:          uuid.NewString(),
		Name:        cell.names[g.roller.Intn(len(cell.names))],
		Description: cell.descriptions[g.roller.Intn(len(cell.descriptions))],
		Rarity:      rarity,
		Type:        itemType,
		ObtainedAt:  g.clock.Now().UTC(),
	}
}

// GenerateItemChoices returns count items of one rarity with distinct names.
func (g *RewardGenerator) GenerateItemChoices(count int, rarity models.Rarity) []models.Item {
	items := make([]models.Item, 0, count)
	used := make(map[string]bool, count)
	for attempts := 0; len(items) < count && attempts < count*32; attempts++ {
		item := g.GenerateItem(models.DifficultyS, rarity)
		if used[item.Name] {
			continue
		}
		used[item.Name] = true
		items = append(items, item)
	}
	// Unlucky rolls: fill from the pools in table order.
	for _, itemType := range models.ItemTypes {
		for i, name := range lootTable[itemType][rarity].names {
			if len(items) >= count {
				return items
			}
			if used[name] {
				continue
			}
			used[name] = true
			items = append(items, models.Item{
				ID:          uuid.NewString(),
				Name:        name,
				Description: lootTable[itemType][rarity].descriptions[i],
				Rarity:      rarity,
				Type:        itemType,
				ObtainedAt:  g.clock.Now().UTC(),
			})
		}
	}
	return items
}

// GenerateQuestRewards rolls the standard drop for d and resolves milestone
// events: guaranteed_rare adds one rare-or-better item, legendary_choice
// attaches three legendary candidates, anything else passes through.
func (g *RewardGenerator) GenerateQuestRewards(d models.Difficulty, events []MilestoneEvent) QuestRewards {
	rewards := QuestRewards{
		Items:   make([]models.Item, 0),
		Special: make([]MilestoneEvent, 0),
	}

	if g.ShouldDropItem(d) {
		rewards.Items = append(rewards.Items, g.GenerateItem(d, ""))
	}

	for _, ev := range events {
		switch ev.Type {
		case EventGuaranteedRare:
			rewards.Items = append(rewards.Items, g.GenerateItem(d, RollRareOrBetter(g.roller)))
			rewards.Special = append(rewards.Special, ev)
		case EventLegendaryChoice:
			ev.Choices = g.GenerateItemChoices(legendaryChoiceCount, models.RarityLegendary)
			rewards.Special = append(rewards.Special, ev)
		default:
			rewards.Special = append(rewards.Special, ev)
		}
	}
	return rewards
}
