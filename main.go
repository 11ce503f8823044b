package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"hunter-system/config"
	"hunter-system/handlers"
	"hunter-system/services"
	"hunter-system/store"
	"hunter-system/utils"
	"hunter-system/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration:", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}

	location := cfg.DataFile
	if cfg.StoreEngine == config.EnginePostgres {
		location = cfg.DatabaseURL
	}
	st, err := store.NewByEngine(cfg.StoreEngine, location)
	if err != nil {
		log.Fatal("failed to open store:", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	clock := clockwork.NewRealClock()
	roller, err := services.NewSeededRoller()
	if err != nil {
		log.Fatal("failed to seed random source:", err)
	}

	var flavor services.FlavorProvider = services.NewTemplateFlavor(roller)
	if cfg.AIEnabled {
		flavor = services.NewOllamaFlavor(cfg.OllamaURL, cfg.OllamaModel, cfg.FlavorTimeout, utils.HTTPClient, flavor)
		log.Printf("✅ AI flavor text enabled (%s, model %s)", cfg.OllamaURL, cfg.OllamaModel)
	}

	dailyService := services.NewDailyQuestService(st, clock, loc)
	app := handlers.NewApp(handlers.Services{
		Characters: services.NewCharacterService(st, clock),
		Quests:     services.NewQuestService(st, services.NewRewardGenerator(roller, clock), flavor, clock),
		Items:      services.NewItemService(st),
		Daily:      dailyService,
	}, cfg.AllowedOriginsString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler, err := services.StartDailyScheduler(dailyService, clock, loc)
	if err != nil {
		log.Fatal("failed to start daily scheduler:", err)
	}

	if cfg.R2Enabled() {
		uploader, err := utils.NewR2Uploader(ctx, utils.R2Config{
			AccountID:       cfg.CloudflareAccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			Bucket:          cfg.R2BucketName,
		})
		if err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		go workers.PollSnapshots(ctx, workers.NewSnapshotWorker(st, uploader, clock), cfg.SnapshotInterval)
		log.Printf("✅ Snapshot uploads to R2 bucket %s running (every %s)", cfg.R2BucketName, cfg.SnapshotInterval)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Printf("✅ Store engine: %s", cfg.StoreEngine)
	log.Printf("✅ Daily quests reset at 00:00 %s", loc)
	log.Printf("✅ CORS configured for origins: %s", cfg.AllowedOriginsString())

	<-ctx.Done()
	log.Println("Shutting down server...")

	if err := scheduler.Stop(); err != nil {
		log.Printf("Error stopping scheduler: %v", err)
	}
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
}
