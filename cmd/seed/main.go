package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/config"
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/database/company"
	"github.com/SergeyKozhin/event-admin-backend/internal/database/events"
	"github.com/SergeyKozhin/event-admin-backend/internal/database/user"
	"github.com/SergeyKozhin/event-admin-backend/internal/pkg/logger"
	"github.com/SergeyKozhin/event-admin-backend/internal/seed"
	"github.com/xlab/closer"
)

func main() {
	defer closer.Close()

	ctx := context.Background()

	logger, err := logger.New(config.Production())
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	loc, err := time.LoadLocation(config.CalendarTimezone())
	if err != nil {
		logger.Fatalw("invalid calendar timezone", "err", err)
	}

	file, err := os.Open(config.SeedFile())
	if err != nil {
		logger.Fatalw("unable to open seed file", "path", config.SeedFile(), "err", err)
	}
	defer file.Close()

	fixture, err := seed.Load(file)
	if err != nil {
		logger.Fatalw("unable to load seed file", "path", config.SeedFile(), "err", err)
	}

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		logger.Fatalw("unable to initializae db", "err", err)
	}

	eventsRepository := events.NewRepository()
	seeder := seed.NewSeeder(db, logger, company.NewRepository(), user.NewRepository(), eventsRepository, loc)

	if err := seeder.Apply(ctx, fixture); err != nil {
		logger.Errorw("seeding failed", "path", config.SeedFile(), "err", err)
		closer.Exit(1)
	}
}
