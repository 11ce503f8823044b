package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hunter-system/services"
)

func SetupItemRoutes(app *fiber.App, itemService *services.ItemService) {
	items := app.Group("/api/items")

	items.Get("/", func(c *fiber.Ctx) error {
		list, err := itemService.ListItems(c.UserContext(), services.ItemListFilter{
			Rarity: c.Query("rarity"),
			Type:   c.Query("type"),
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})

	items.Get("/stats", func(c *fiber.Ctx) error {
		stats, err := itemService.Stats(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(stats)
	})

	items.Get("/:id", func(c *fiber.Ctx) error {
		item, err := itemService.GetItem(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(item)
	})

	items.Delete("/:id", func(c *fiber.Ctx) error {
		if err := itemService.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
