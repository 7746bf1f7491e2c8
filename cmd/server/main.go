package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/goodenergy/platform/internal/config"
	"github.com/goodenergy/platform/internal/database"
	"github.com/goodenergy/platform/internal/handler"
	"github.com/goodenergy/platform/internal/mailer"
	"github.com/goodenergy/platform/internal/queue"
	"github.com/goodenergy/platform/internal/repository"
	"github.com/goodenergy/platform/internal/router"
	"github.com/goodenergy/platform/internal/service"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}

	m := mailer.New(cfg.ResendAPIKey)

	// Background consumer turns reservation events into emails.  It
	// reconnects forever; a dead broker never takes the API down.
	go func() {
		if err := queue.NewConsumer(m, cfg.AdminEmail).Start(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	reservations := service.NewReservationService(
		repository.NewReservationRepo(db),
		queue.NewPublisher(),
	)

	h := router.Handlers{
		Conference: handler.NewConferenceHandler(reservations),
		Contact:    handler.NewContactHandler(m, cfg.ContactFrom, cfg.ContactInbox),
		Simulator:  &handler.SimulatorHandler{},
		Blog:       handler.NewBlogHandler(repository.NewPostRepo(db)),
	}

	e := echo.New()
	router.Register(e, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
