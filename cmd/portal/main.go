package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"gym-portal/internal/bot"
	"gym-portal/internal/models/config"
	"gym-portal/internal/repository/attendance"
	"gym-portal/internal/repository/client"
	"gym-portal/internal/repository/schedule"
	"gym-portal/internal/repository/subscription"
	"gym-portal/internal/repository/trainer"
	"gym-portal/internal/service"
	attendance_service "gym-portal/internal/service/attendance"
	timeline_service "gym-portal/internal/service/timeline"
	"gym-portal/internal/web"
	"gym-portal/internal/worker"
	database "gym-portal/pkg"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting", zap.String("environment", cfg.Environment))

	fx.New(
		fx.Supply(cfg, logger),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(
			newDB,
			client.NewClientRepository,
			trainer.NewTrainerRepository,
			subscription.NewSubscriptionRepository,
			schedule.NewScheduleRepository,
			attendance.NewAttendanceRepository,
			func() service.Clock { return time.Now },
			timeline_service.NewTimelineService,
			attendance_service.NewAttendanceService,
			web.NewHandler,
			web.NewServer,
		),
		fx.Invoke(func(*http.Server) {}),
		botModule(cfg, logger),
	).Run()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newDB(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*sqlx.DB, error) {
	db, err := database.NewPostgres(context.Background(), cfg.Database, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return db.Close() },
	})
	return db, nil
}

// botModule wires the telegram bot and the missed-day worker that talks
// through it; both are left out when the bot is disabled.
func botModule(cfg *config.Config, logger *zap.Logger) fx.Option {
	if !cfg.Bot.Enabled {
		logger.Info("telegram bot disabled, missed day notifications are off")
		return fx.Options()
	}

	return fx.Options(
		fx.Provide(
			bot.NewBot,
			func(b *bot.Bot) worker.Notifier { return b },
			worker.NewMissedDayNotifier,
		),
		fx.Invoke(registerBot, registerWorker),
	)
}

func registerBot(lc fx.Lifecycle, b *bot.Bot, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := b.Start(); err != nil {
					log.Error("bot stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			b.Stop()
			return nil
		},
	})
}

func registerWorker(lc fx.Lifecycle, w *worker.MissedDayNotifier) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error { return w.Start() },
		OnStop: func(ctx context.Context) error {
			select {
			case <-w.Stop().Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
