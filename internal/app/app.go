package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Freeeeeet/shareit/internal/config"
	"github.com/Freeeeeet/shareit/internal/controller/rest"
	"github.com/Freeeeeet/shareit/internal/controller/telegram"
	"github.com/Freeeeeet/shareit/internal/mq"
	"github.com/Freeeeeet/shareit/internal/repository"
	"github.com/Freeeeeet/shareit/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Run поднимает зависимости, HTTP API и (если задан токен) бота; блокируется до отмены ctx
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	logger.Info("Connected to database")

	if err := migrate(ctx, pool, cfg.MigrationsDir, logger); err != nil {
		return err
	}

	shutdownTracer, err := InitTracer(ctx, cfg.OTLPEndpoint, cfg.Environment, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			logger.Warn("Failed to shutdown tracer", zap.Error(err))
		}
	}()

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			return err
		}
		defer publisher.Close()
		events = publisher
	} else {
		logger.Info("Booking events disabled: AMQP_URL is not set")
	}

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	itemRepo := repository.NewItemRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	// Сервисы
	userService := service.NewUserService(userRepo, logger)
	bookingService := service.NewBookingService(userRepo, itemRepo, bookingRepo, events, logger, time.Now)
	itemService := service.NewItemService(userRepo, itemRepo, requestRepo, bookingRepo, commentRepo, logger, time.Now)
	requestService := service.NewRequestService(userRepo, requestRepo, itemRepo, logger, time.Now)

	handler := rest.NewHandler(bookingService, itemService, requestService, userService, logger)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           rest.NewRouter(handler, logger, cfg.IsProduction()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		return srv.Shutdown(sctx)
	})

	if cfg.BotEnabled() {
		b, err := bot.New(cfg.TelegramToken)
		if err != nil {
			return fmt.Errorf("create bot: %w", err)
		}

		botController := telegram.NewBotController(b, userService, bookingService, logger)
		if err := botController.RegisterHandlers(ctx); err != nil {
			logger.Warn("Bot commands menu not set", zap.Error(err))
		}

		g.Go(func() error {
			botController.Start(gctx)
			return nil
		})
	} else {
		logger.Info("Telegram bot disabled: TELEGRAM_TOKEN is not set")
	}

	return g.Wait()
}

func migrate(ctx context.Context, pool *pgxpool.Pool, dir string, logger *zap.Logger) error {
	migrator, err := NewMigrator(pool, dir, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}
