package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/api"
	events_service "github.com/SergeyKozhin/event-admin-backend/internal/business/events"
	"github.com/SergeyKozhin/event-admin-backend/internal/calendar"
	"github.com/SergeyKozhin/event-admin-backend/internal/config"
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/database/company"
	"github.com/SergeyKozhin/event-admin-backend/internal/database/events"
	"github.com/SergeyKozhin/event-admin-backend/internal/database/user"
	"github.com/SergeyKozhin/event-admin-backend/internal/pkg/ics"
	"github.com/SergeyKozhin/event-admin-backend/internal/pkg/jwt"
	"github.com/SergeyKozhin/event-admin-backend/internal/pkg/logger"
	"github.com/SergeyKozhin/event-admin-backend/internal/redis"
	"github.com/SergeyKozhin/event-admin-backend/internal/sessions"
	"github.com/google/uuid"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, err := logger.New(config.Production())
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	calendarSettings, err := initCalendar()
	if err != nil {
		logger.Fatalw("invalid calendar settings", "err", err)
	}

	jwts := jwt.NewManger(config.Secret(), config.JwtTTL())

	redisPool := redis.NewRedisPool(config.RedisURL(), logger)
	if err := redis.Ping(ctx, redisPool); err != nil {
		logger.Fatalw("unable to reach redis", "err", err)
	}
	refreshTokens := redis.NewRefreshTokenRepository(redisPool, config.SessionTTl())

	cleaner := sessions.NewCleaner(logger, refreshTokens, config.SessionCleanupPeriod())
	cleaner.Start()
	closer.Bind(cleaner.Stop)

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		logger.Fatalw("unable to initializae db", "err", err)
	}
	usersRepository := user.NewRepository()
	companiesRepository := company.NewRepository()
	eventsRepository := events.NewRepository()

	eventsService := events_service.NewService(db, eventsRepository)

	api, err := api.NewApi(
		logger,
		rand.Reader,
		uuid.NewString,
		jwts,
		refreshTokens,
		config.SessionTokenLength(),
		db,
		usersRepository,
		companiesRepository,
		eventsService,
		ics.NewEncoder(),
		calendarSettings,
	)
	if err != nil {
		logger.Fatalw("unable to initializae api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:              ":" + config.Port(),
		Handler:           api,
		ErrorLog:          errLogger,
		ReadHeaderTimeout: 10 * time.Second,
	}

	closer.Bind(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Errorw("server shutdown", "err", err)
		}
	})

	go func() {
		logger.Infow("Started server", "port", config.Port())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("server error", "err", err)
			closer.Close()
		}
	}()

	closer.Hold()
}

func initCalendar() (api.CalendarSettings, error) {
	loc, err := time.LoadLocation(config.CalendarTimezone())
	if err != nil {
		return api.CalendarSettings{}, err
	}

	locale, err := calendar.LocaleByName(config.CalendarLocale())
	if err != nil {
		return api.CalendarSettings{}, err
	}

	timeFormat, err := calendar.ParseTimeFormat(config.CalendarTimeFormat())
	if err != nil {
		return api.CalendarSettings{}, err
	}

	return api.CalendarSettings{
		Location:   loc,
		Locale:     locale,
		TimeFormat: timeFormat,
		Clock:      calendar.SystemClock{},
	}, nil
}
