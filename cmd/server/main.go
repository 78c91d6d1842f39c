package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/navreet111/quickpark/internal/config"
	"github.com/navreet111/quickpark/internal/database"
	"github.com/navreet111/quickpark/internal/handler"
	"github.com/navreet111/quickpark/internal/queue"
	"github.com/navreet111/quickpark/internal/repository"
	"github.com/navreet111/quickpark/internal/router"
	queue_publisher "github.com/navreet111/quickpark/internal/service"
)

func main() {
	_ = godotenv.Load() // missing .env is fine; real env vars win either way
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.InitSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if cfg.SeedSlots {
		if err := database.SeedSlots(ctx, db); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	// Redis backs rate limiting and listing caching; nil disables both.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	slots := repository.NewSlotRepo(db)

	auth := handler.NewAuthHandler(cfg, users)
	slotH := handler.NewSlotHandler(slots)
	slotH.PublishBooked = queue_publisher.PublishSlotBooked

	// Background consumer appending slot.booked events to logs/booking.log.
	go queue.StartBookingConsumer()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, auth, slotH, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
