package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hunter-system/models"
)

// AttributeTitle renders an attribute for messages ("vitality" -> "Vitality").
func AttributeTitle(a models.Attribute) string {
	// Casers keep state, so each call gets its own.
	return cases.Title(language.English).String(string(a))
}

// joinAttributeTitles renders a list of attributes as "Strength, Network".
func joinAttributeTitles(attrs []models.Attribute) string {
	titles := make([]string, len(attrs))
	for i, a := range attrs {
		titles[i] = AttributeTitle(a)
	}
	return strings.Join(titles, ", ")
}
