package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/stinex/backend/internal/config"
	"github.com/stinex/backend/internal/events"
	"github.com/stinex/backend/internal/handler"
	"github.com/stinex/backend/internal/logging"
	"github.com/stinex/backend/internal/notify"
	"github.com/stinex/backend/internal/repository"
	"github.com/stinex/backend/internal/seed"
	"github.com/stinex/backend/internal/service"
	"github.com/stinex/backend/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, repository.Options{
		Driver:      cfg.StoreDriver,
		MongoURL:    cfg.MongoURL,
		DBName:      cfg.DBName,
		PostgresURL: cfg.DatabaseURL,
	})
	if err != nil {
		logging.Fatal("failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			slog.Warn("failed to close store", "error", err)
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		logging.Fatal("failed to migrate store", "error", err)
	}
	if cfg.SeedOnStart {
		// 初期データ投入の失敗では起動を止めない
		res, err := seed.Run(ctx, store)
		if err != nil {
			slog.Warn("seeding failed", "error", err)
		} else {
			slog.Info("seed finished", "services", res.Services, "testimonials", res.Testimonials)
		}
	}

	bus := newBus(ctx, cfg)
	defer bus.Close()

	mailCfg := notify.MailConfig{
		Host:       cfg.EmailHost,
		Port:       cfg.EmailPort,
		Username:   cfg.EmailUser,
		Password:   cfg.EmailPass,
		From:       cfg.FromEmail,
		AdminEmail: cfg.AdminEmail,
	}
	var sender notify.Sender
	if cfg.SMTPConfigured() {
		s, err := notify.NewSMTPSender(mailCfg)
		if err != nil {
			slog.Warn("smtp disabled", "error", err)
		} else {
			sender = s
		}
	}
	worker := notify.NewWorker(bus, notify.NewMailer(mailCfg, sender))

	contactService := service.NewContactService(store.Contacts, bus)
	catalogService := service.NewCatalogService(store.Services)
	testimonialService := service.NewTestimonialService(store.Testimonials)

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY is empty, admin routes are open")
	}

	router := handler.NewRouter(handler.Routes{
		Handler:      handler.New(store, cfg.FrontendURL),
		Contacts:     handler.NewContactHandler(contactService),
		Services:     handler.NewServiceHandler(catalogService),
		Testimonials: handler.NewTestimonialHandler(testimonialService),
		AdminGate:    auth.AdminGate(cfg.AdminAPIKey),
		RateLimit:    handler.NewRateLimiter(ctx, cfg.RateLimitPerMinute).Middleware,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr, "driver", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped with error", "error", err)
		return
	}
	slog.Info("server stopped")
}

// newBus uses a Redis stream when REDIS_ADDR is set, otherwise an in-process
// channel.
func newBus(ctx context.Context, cfg *config.Config) events.Bus {
	if cfg.RedisAddr == "" {
		return events.NewChannelBus(100)
	}
	rdb, err := events.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Warn("redis unavailable, using in-process bus", "addr", cfg.RedisAddr, "error", err)
		return events.NewChannelBus(100)
	}
	return events.NewRedisBus(rdb, consumerName(cfg))
}

func consumerName(cfg *config.Config) string {
	if cfg.RedisConsumer != "" {
		return cfg.RedisConsumer
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "stinex-api"
}
