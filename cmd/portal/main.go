// @title                      Recruitment Portal API
// @version                    1.0
// @description                Back-office and public endpoints of the recruitment portal.
// @BasePath                   /api
// @securityDefinitions.apikey CookieAuth
// @in                         cookie
// @name                       token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/sunshine-recruitment/portal/docs"
	"github.com/sunshine-recruitment/portal/internal/api"
	"github.com/sunshine-recruitment/portal/internal/api/handler"
	"github.com/sunshine-recruitment/portal/internal/core/service"
	"github.com/sunshine-recruitment/portal/internal/infrastructure/config"
	mongodb "github.com/sunshine-recruitment/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/sunshine-recruitment/portal/internal/infrastructure/db/redis"
	"github.com/sunshine-recruitment/portal/internal/infrastructure/http/handlers"
	"github.com/sunshine-recruitment/portal/internal/infrastructure/mail"
	"github.com/sunshine-recruitment/portal/internal/infrastructure/seed"
	"github.com/sunshine-recruitment/portal/internal/infrastructure/storage"
	"github.com/sunshine-recruitment/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
	cfg := config.Load(boot)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "portal",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	store, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close mongodb client")
		}
	}()
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	readiness := []handlers.Dependency{{Name: "mongodb", Pinger: store}}
	var sessionOpts []service.SessionOption

	// --- Redis (optional) ---
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()

		readiness = append(readiness, handlers.Dependency{
			Name:   "redis",
			Pinger: handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		})
		if cfg.Session.Denylist {
			sessionOpts = append(sessionOpts, service.WithDenylist(redisdb.NewDenylist(rdb)))
		}
	}

	// --- Repositories ---
	users := mongodb.NewUserRepository(store)
	jobs := mongodb.NewJobRepository(store)
	activity := mongodb.NewActivityRepository(store)
	tickets := mongodb.NewTicketRepository(store)
	stories := mongodb.NewStoryRepository(store)

	// --- Adapters ---
	mailer := mail.New(mail.Config{
		Host:       cfg.Mail.Host,
		Port:       cfg.Mail.Port,
		Username:   cfg.Mail.Username,
		Password:   cfg.Mail.Password,
		From:       cfg.Mail.From,
		To:         cfg.Mail.To,
		HelpDeskTo: cfg.Mail.HelpDeskTo,
		Timeout:    cfg.Mail.Timeout,
	}, log)
	if cfg.Mail.Host == "" {
		log.Warn().Msg("SMTP_HOST not set, e-mail delivery disabled")
	}
	images := storage.NewLocal(cfg.Upload.Dir, cfg.Upload.URLPrefix)

	// --- Services ---
	sessions := service.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL, log, sessionOpts...)
	auditor := service.NewAuditService(activity, log)
	authService := service.NewAuthService(users, sessions, auditor, log, service.AuthConfig{
		BcryptCost:      cfg.Auth.BcryptCost,
		AdminSignupCode: cfg.Auth.AdminSignupCode,
		Production:      cfg.IsProduction(),
	})
	jobService := service.NewJobService(jobs, auditor, log)
	ticketService := service.NewTicketService(tickets, users, mailer, auditor, log, cfg.Auth.HelpAdminOnly)
	storyService := service.NewStoryService(stories, images, auditor, log, cfg.Upload.MaxBytes)
	contactService := service.NewContactService(mailer, log)

	// --- Seeding ---
	if cfg.Seed.OnStart {
		sample, err := seed.Jobs()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load seed jobs")
		}
		seeder := service.NewSeeder(users, jobs, log, cfg.Auth.BcryptCost)
		if err := seeder.Run(ctx, service.SeedAdmin{
			Name:     cfg.Seed.AdminName,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
		}, sample); err != nil {
			log.Fatal().Err(err).Msg("failed to seed database")
		}
	}

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Auth:     authService,
		Jobs:     jobService,
		Audit:    auditor,
		Tickets:  ticketService,
		Stories:  storyService,
		Contact:  contactService,
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.IsProduction(),
		},
		UploadDir:      cfg.Upload.Dir,
		UploadURL:      cfg.Upload.URLPrefix,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Readiness:      readiness,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}
