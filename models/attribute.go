package models

import "strings"

// Attribute is one of the five character dimensions leveled via XP tagging.
type Attribute string

const (
	AttributeStrength     Attribute = "strength"
	AttributeCreation     Attribute = "creation"
	AttributeNetwork      Attribute = "network"
	AttributeVitality     Attribute = "vitality"
	AttributeIntelligence Attribute = "intelligence"
)

// Attributes lists every attribute in enumeration order. Tie-breaks in stat
// point distribution follow this order.
var Attributes = []Attribute{
	AttributeStrength,
	AttributeCreation,
	AttributeNetwork,
	AttributeVitality,
	AttributeIntelligence,
}

func (a Attribute) IsValid() bool {
	switch a {
	case AttributeStrength, AttributeCreation, AttributeNetwork, AttributeVitality, AttributeIntelligence:
		return true
	default:
		return false
	}
}

// ParseAttribute normalizes user input ("  Strength ") into an Attribute.
func ParseAttribute(s string) (Attribute, bool) {
	a := Attribute(strings.ToLower(strings.TrimSpace(s)))
	return a, a.IsValid()
}

// AttributeValues holds one integer per attribute. It is embedded in
// Character twice: once for the stats, once for per-attribute XP.
type AttributeValues struct {
	Strength     int `json:"strength" gorm:"not null;default:0"`
	Creation     int `json:"creation" gorm:"not null;default:0"`
	Network      int `json:"network" gorm:"not null;default:0"`
	Vitality     int `json:"vitality" gorm:"not null;default:0"`
	Intelligence int `json:"intelligence" gorm:"not null;default:0"`
}

// UniformAttributes returns a set where every attribute equals v.
func UniformAttributes(v int) AttributeValues {
	return AttributeValues{Strength: v, Creation: v, Network: v, Vitality: v, Intelligence: v}
}

func (v AttributeValues) Get(a Attribute) int {
	switch a {
	case AttributeStrength:
		return v.Strength
	case AttributeCreation:
		return v.Creation
	case AttributeNetwork:
		return v.Network
	case AttributeVitality:
		return v.Vitality
	case AttributeIntelligence:
		return v.Intelligence
	default:
		return 0
	}
}

func (v *AttributeValues) Set(a Attribute, n int) {
	switch a {
	case AttributeStrength:
		v.Strength = n
	case AttributeCreation:
		v.Creation = n
	case AttributeNetwork:
		v.Network = n
	case AttributeVitality:
		v.Vitality = n
	case AttributeIntelligence:
		v.Intelligence = n
	}
}

func (v *AttributeValues) Add(a Attribute, delta int) {
	v.Set(a, v.Get(a)+delta)
}

func (v AttributeValues) Sum() int {
	return v.Strength + v.Creation + v.Network + v.Vitality + v.Intelligence
}

// Map returns the values keyed by attribute name.
func (v AttributeValues) Map() map[Attribute]int {
	out := make(map[Attribute]int, len(Attributes))
	for _, a := range Attributes {
		out[a] = v.Get(a)
	}
	return out
}
