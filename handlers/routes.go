package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"hunter-system/middleware"
	"hunter-system/services"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Characters *services.CharacterService
	Quests     *services.QuestService
	Items      *services.ItemService
	Daily      *services.DailyQuestService
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(svc Services, allowedOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "hunter-system",
		ErrorHandler: ErrorHandler,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		MaxAge:       86400, // 24 hours
	}))

	SetupHealthRoutes(app, svc.Daily)
	SetupProgressionRoutes(app, svc.Characters, svc.Daily)
	SetupQuestRoutes(app, svc.Quests, svc.Daily)
	SetupItemRoutes(app, svc.Items)
	return app
}

func SetupHealthRoutes(app *fiber.App, dailyService *services.DailyQuestService) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"date":   dailyService.Today(),
			"time":   time.Now().UTC(),
		})
	})
}
