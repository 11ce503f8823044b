package models

import (
	"time"
)

const (
	// MainCharacterID is the only character row; the app is single-user.
	MainCharacterID uint = 1

	SeedAttributeValue = 10
	StatPointsPerLevel = 5
)

// Character tracks the player's progression (denormalized, one row).
type Character struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Core progression
	Level         int   `json:"level" gorm:"not null;default:1"`
	CurrentXP     int   `json:"current_xp" gorm:"not null;default:0"` // toward the next level
	TotalXPEarned int64 `json:"total_xp_earned" gorm:"not null;default:0"`

	Attributes        AttributeValues `json:"attributes" gorm:"embedded"`
	AttributeXP       AttributeValues `json:"attribute_xp" gorm:"embedded;embeddedPrefix:xp_"`
	UnspentStatPoints int             `json:"unspent_stat_points" gorm:"not null;default:0"`

	// Milestones
	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// NewCharacter returns the seed character used on first run and on reset.
func NewCharacter() Character {
	return Character{
		ID:         MainCharacterID,
		Level:      1,
		Attributes: UniformAttributes(SeedAttributeValue),
	}
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
