package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"matka/config"
	"matka/controllers/bids"
	"matka/controllers/results"
	"matka/controllers/sale"
	"matka/controllers/users"
	"matka/controllers/winners"
	"matka/database"
	"matka/middlewares"
	"matka/routes"
	bidsvc "matka/services/bids"
	"matka/services/calendar"
	salesvc "matka/services/sale"
	"matka/services/settlement"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	log := config.NewLogger(cfg.LogLevel)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if cfg.SeedFile != "" {
		seed, err := config.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatalf("failed to load seed: %v", err)
		}
		if err := database.Seed(db, seed); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
	}

	// winning amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	clock := calendar.New(cfg.Location)
	engine := settlement.NewEngine(db, settlement.Options{
		Clock:               clock,
		NeutralRateFallback: cfg.RateFallbackNeutral,
		FullSangamLegs:      cfg.FullSangamLegs,
	})

	app := fiber.New(fiber.Config{
		AppName:      "Matka Back Office",
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}))
	app.Use(middlewares.RequestLogger())

	routes.Setup(app, routes.Handlers{
		Bids:    bids.NewHandler(bidsvc.NewService(db, clock)),
		Sale:    sale.NewHandler(salesvc.NewService(db, clock)),
		Winners: winners.NewHandler(engine),
		Results: results.NewHandler(engine),
		Users:   users.NewHandler(db),
	}, middlewares.AdminAuth(cfg.JWTSecret))

	addr := cfg.Addr()
	log.WithField("addr", addr).Info("server starting")

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Panicf("failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info("gracefully shutting down")
	if err := app.Shutdown(); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Info("server exited cleanly")
}
