package services

import "hunter-system/models"

// DropRates: chance of each rarity, in models.Rarities order, per difficulty.
var DropRates = map[models.Difficulty][]float64{
	models.DifficultyE: {0.80, 0.15, 0.04, 0.01, 0},
	models.DifficultyD: {0.60, 0.30, 0.08, 0.02, 0},
	models.DifficultyC: {0.40, 0.40, 0.15, 0.04, 0.01},
	models.DifficultyB: {0.20, 0.40, 0.25, 0.12, 0.03},
	models.DifficultyA: {0.10, 0.30, 0.35, 0.20, 0.05},
	models.DifficultyS: {0, 0.20, 0.40, 0.30, 0.10},
}

// rareOrBetter is the table behind guaranteed_rare milestone drops.
var rareOrBetter = []weightedRarity{
	{models.RarityRare, 0.60},
	{models.RarityEpic, 0.25},
	{models.RarityLegendary, 0.12},
	{models.RarityMythic, 0.03},
}

// DropChance is the probability that a completed quest drops an item.
var DropChance = map[models.Difficulty]float64{
	models.DifficultyE: 0.3,
	models.DifficultyD: 0.5,
	models.DifficultyC: 0.7,
	models.DifficultyB: 0.9,
	models.DifficultyA: 1.0,
	models.DifficultyS: 1.0,
}

type weightedRarity struct {
	rarity models.Rarity
	weight float64
}

func dropTable(d models.Difficulty) []weightedRarity {
	rates, ok := DropRates[d]
	if !ok {
		return nil
	}
	table := make([]weightedRarity, len(models.Rarities))
	for i, r := range models.Rarities {
		table[i] = weightedRarity{rarity: r, weight: rates[i]}
	}
	return table
}

// pickRarity walks the table's cumulative sums and returns the first entry
// whose running total exceeds roll. A zero-weight entry can never win.
func pickRarity(table []weightedRarity, roll float64, fallback models.Rarity) models.Rarity {
	cumulative := 0.0
	for _, entry := range table {
		cumulative += entry.weight
		if roll < cumulative {
			return entry.rarity
		}
	}
	return fallback
}

// RollRarity draws a rarity for an item dropped by a quest of difficulty d.
func RollRarity(roller Roller, d models.Difficulty) models.Rarity {
	return pickRarity(dropTable(d), roller.Float64(), models.RarityCommon)
}

// RollRareOrBetter draws from the guaranteed-rare table.
func RollRareOrBetter(roller Roller) models.Rarity {
	return pickRarity(rareOrBetter, roller.Float64(), models.RarityRare)
}

// ShouldDropItem is a Bernoulli draw against the difficulty's drop chance.
func ShouldDropItem(roller Roller, d models.Difficulty) bool {
	return roller.Float64() < DropChance[d]
}
