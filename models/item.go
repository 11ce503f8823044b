package models

import (
	"time"
)

// Rarity is the loot tier of an item.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// Rarities in enumeration order; rarity rolls walk this order.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic}

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic:
		return true
	default:
		return false
	}
}

type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeAccessory  ItemType = "accessory"
	ItemTypeConsumable ItemType = "consumable"
)

var ItemTypes = []ItemType{ItemTypeWeapon, ItemTypeArmor, ItemTypeAccessory, ItemTypeConsumable}

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeWeapon, ItemTypeArmor, ItemTypeAccessory, ItemTypeConsumable:
		return true
	default:
		return false
	}
}

// Item is a loot record. Immutable once created; the player may delete it.
type Item struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Rarity      Rarity    `json:"rarity" gorm:"type:varchar(16);not null;index"`
	Type        ItemType  `json:"type" gorm:"type:varchar(16);not null;index"`
	ObtainedAt  time.Time `json:"obtained_at" gorm:"not null"`
}
