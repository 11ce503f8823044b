package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hunter-system/services"
)

func SetupQuestRoutes(app *fiber.App, questService *services.QuestService, dailyService *services.DailyQuestService) {
	quests := app.Group("/api/quests")

	quests.Get("/", func(c *fiber.Ctx) error {
		list, err := questService.ListQuests(c.UserContext(), services.QuestListFilter{
			Status:     c.Query("status"),
			Difficulty: c.Query("difficulty"),
			Kind:       c.Query("kind"),
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})

	// Daily routes are registered before /:id so they are not read as ids.
	quests.Get("/daily", func(c *fiber.Ctx) error {
		list, err := dailyService.ListToday(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"date":   dailyService.Today(),
			"quota":  services.DailyCompletionQuota,
			"quests": list,
		})
	})

	quests.Post("/daily/check", func(c *fiber.Ctx) error {
		res, err := dailyService.CheckAndReset(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	})

	quests.Get("/:id", func(c *fiber.Ctx) error {
		q, err := questService.GetQuest(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(q)
	})

	quests.Post("/", func(c *fiber.Ctx) error {
		var in services.QuestInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, err)
		}
		q, err := questService.CreateQuest(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(q)
	})

	quests.Put("/:id", func(c *fiber.Ctx) error {
		var in services.QuestUpdate
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, err)
		}
		q, err := questService.UpdateQuest(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(q)
	})

	quests.Delete("/:id", func(c *fiber.Ctx) error {
		if err := questService.DeleteQuest(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	quests.Post("/:id/complete", func(c *fiber.Ctx) error {
		res, err := questService.CompleteQuest(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	})

	quests.Post("/:id/fail", func(c *fiber.Ctx) error {
		q, err := questService.FailQuest(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(q)
	})
}
