package app

import (
	"context"

	"github.com/krenoo/slotwatch/internal/config"
	"github.com/krenoo/slotwatch/internal/infra/db"
	"github.com/krenoo/slotwatch/internal/infra/doinsport"
	"github.com/krenoo/slotwatch/internal/infra/email"
	"github.com/krenoo/slotwatch/internal/infra/expo"
	"github.com/krenoo/slotwatch/internal/infra/identity"
	"github.com/krenoo/slotwatch/internal/infra/log"
	"github.com/krenoo/slotwatch/internal/usecase"
	"go.uber.org/zap"
)

type App struct {
	scheduler *usecase.Scheduler
	logger    *zap.Logger
	cleanupFn func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	alertRepo := db.NewAlertRepository(dbConn)
	clubRepo := db.NewClubRepository(dbConn)
	slotLedger := db.NewSlotLedger(dbConn)
	tokenRepo := db.NewPushTokenRepository(dbConn)

	provider := doinsport.NewClient(cfg.DoinsportBaseURL, cfg.PadelActivityID, cfg.DoinsportTimeout, cfg.ProviderRPS, logger)
	emailClient := email.NewClient(cfg.ResendBaseURL, cfg.ResendAPIKey, cfg.FromEmail, logger)
	pushClient := expo.NewClient(cfg.ExpoPushURL, logger)
	identityClient := identity.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.IdentityTimeout, logger)

	dispatcher := usecase.NewNotificationDispatcher(identityClient, emailClient, pushClient, tokenRepo, slotLedger, logger)
	processor := usecase.NewAlertProcessor(alertRepo, clubRepo, slotLedger, provider, dispatcher, logger)
	reclaimer := usecase.NewReclaimer(alertRepo, slotLedger, cfg.SlotRetentionDays, logger)

	scheduler := usecase.NewScheduler(
		alertRepo,
		processor,
		reclaimer,
		usecase.CadencePolicy{BoostInterval: cfg.BoostCheckInterval},
		usecase.SchedulerConfig{
			TickInterval:      cfg.TickInterval,
			BoostTickInterval: cfg.BoostTickInterval,
			AlertThrottle:     cfg.AlertThrottle,
			Backoff:           cfg.SchedulerBackoff,
			ReclaimEveryTicks: cfg.ReclaimEveryTicks,
		},
		logger,
	)

	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{scheduler: scheduler, logger: logger, cleanupFn: cleanup}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("slotwatch worker starting")
	return a.scheduler.Run(ctx)
}

func (a *App) Shutdown() {
	a.logger.Info("slotwatch worker shutting down")
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
