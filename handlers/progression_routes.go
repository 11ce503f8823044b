// handlers/progression_routes.go
package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"hunter-system/models"
	"hunter-system/services"
)

func SetupProgressionRoutes(app *fiber.App, characterService *services.CharacterService, dailyService *services.DailyQuestService) {
	user := app.Group("/api/user")

	user.Get("/", func(c *fiber.Ctx) error {
		profile, err := characterService.Profile(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(profile)
	})

	// Spend unspent stat points: {"points": {"strength": 2, "network": 1}}
	user.Post("/stats", func(c *fiber.Ctx) error {
		var req struct {
			Points map[string]int `json:"points"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		character, err := characterService.AllocateStats(c.UserContext(), req.Points)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":   "Stat points allocated",
			"character": character,
		})
	})

	user.Post("/reset", func(c *fiber.Ctx) error {
		character, err := characterService.Reset(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		// Hand the fresh hunter a daily slate right away.
		if _, err := dailyService.CheckAndReset(c.UserContext()); err != nil {
			log.Printf("⚠️ [API] Daily slate not regenerated after reset: %v", err)
		}
		return c.JSON(fiber.Map{
			"message":   "Progress reset",
			"character": character,
		})
	})

	user.Get("/achievements", func(c *fiber.Ctx) error {
		achievements, err := characterService.Achievements(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(achievements)
	})

	// Admin / dev tooling
	admin := app.Group("/api/admin")

	admin.Post("/xp/grant", func(c *fiber.Ctx) error {
		var req struct {
			CharacterID uint   `json:"character_id"`
			XP          int    `json:"xp"`
			Attribute   string `json:"attribute"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		if req.CharacterID == 0 {
			req.CharacterID = models.MainCharacterID
		}
		res, err := characterService.AddExperience(c.UserContext(), req.CharacterID, req.XP, req.Attribute)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	})

	admin.Post("/xp/total", func(c *fiber.Ctx) error {
		var req struct {
			TotalXP   int64  `json:"total_xp"`
			Attribute string `json:"attribute"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		character, err := characterService.SetTotalXP(c.UserContext(), req.TotalXP, req.Attribute)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":   "Total XP updated",
			"character": character,
			"rank":      services.RankName(character.Level),
		})
	})
}
