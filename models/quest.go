package models

import (
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyE Difficulty = "E"
	DifficultyD Difficulty = "D"
	DifficultyC Difficulty = "C"
	DifficultyB Difficulty = "B"
	DifficultyA Difficulty = "A"
	DifficultyS Difficulty = "S"
)

// Difficulties in ascending reward order.
var Difficulties = []Difficulty{DifficultyE, DifficultyD, DifficultyC, DifficultyB, DifficultyA, DifficultyS}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyE, DifficultyD, DifficultyC, DifficultyB, DifficultyA, DifficultyS:
		return true
	default:
		return false
	}
}

func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToUpper(strings.TrimSpace(s)))
	return d, d.IsValid()
}

// BaseXP is the reward fixed at quest creation.
func (d Difficulty) BaseXP() int {
	switch d {
	case DifficultyE:
		return 50
	case DifficultyD:
		return 100
	case DifficultyC:
		return 200
	case DifficultyB:
		return 400
	case DifficultyA:
		return 800
	case DifficultyS:
		return 1600
	default:
		return 0
	}
}

type QuestStatus string

const (
	QuestStatusActive    QuestStatus = "active"
	QuestStatusCompleted QuestStatus = "completed"
	QuestStatusFailed    QuestStatus = "failed"
)

func (s QuestStatus) IsValid() bool {
	switch s {
	case QuestStatusActive, QuestStatusCompleted, QuestStatusFailed:
		return true
	default:
		return false
	}
}

type QuestKind string

const (
	QuestKindNormal QuestKind = "normal"
	QuestKindDaily  QuestKind = "daily"
)

func (k QuestKind) IsValid() bool {
	return k == QuestKindNormal || k == QuestKindDaily
}

type Quest struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
	Difficulty  Difficulty  `json:"difficulty" gorm:"type:varchar(1);not null;index"`
	XPReward    int         `json:"xp_reward" gorm:"not null"`
	Attribute   Attribute   `json:"attribute" gorm:"type:varchar(16);not null"`
	Status      QuestStatus `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
	Kind        QuestKind   `json:"kind" gorm:"type:varchar(16);not null;default:'normal';index"`

	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"index"`

	Timestamps
}

// IsTerminal reports whether the quest can no longer change status.
func (q Quest) IsTerminal() bool {
	return q.Status == QuestStatusCompleted || q.Status == QuestStatusFailed
}
