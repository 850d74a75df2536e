package app

import (
	"github.com/mshevelin/event-lottery/internal/adapters/config"
	postgresStorage "github.com/mshevelin/event-lottery/internal/adapters/database/postgres"
	redisStorage "github.com/mshevelin/event-lottery/internal/adapters/database/redis"
	"github.com/mshevelin/event-lottery/internal/domain/service"
	"github.com/mshevelin/event-lottery/pkg/logger"
	"github.com/mshevelin/event-lottery/pkg/logger/types"
	"github.com/mshevelin/event-lottery/pkg/smtp"
	"gorm.io/gorm"
)

// App aggregates the wired services the lottery core exposes to its
// callers (UI event handlers, schedulers).
type App struct {
	DB     *gorm.DB
	Redis  *redisStorage.Client
	Logger *types.Logger

	Events    *service.EventService
	Roster    *service.RosterService
	Lottery   *service.LotteryService
	Decisions *service.DecisionService
	Notify    *service.NotifyService
}

func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.Named("app")
	if err != nil {
		return nil, err
	}

	eventStorage := postgresStorage.NewEventStorage(cfg.Database)
	entrantStorage := postgresStorage.NewEntrantStorage(cfg.Database)
	locationStorage := postgresStorage.NewWaitingLocationStorage(cfg.Database)
	notificationStorage := postgresStorage.NewNotificationStorage(cfg.Database)
	logStorage := postgresStorage.NewNotificationLogStorage(cfg.Database)
	drawStorage := postgresStorage.NewDrawStorage(cfg.Database)

	notifyLogger, err := logger.Named("notify")
	if err != nil {
		return nil, err
	}
	notifyService := service.NewNotifyService(
		notifyLogger,
		notificationStorage,
		logStorage,
		cfg.Redis.Feed,
		cfg.Redis.Feed,
		cfg.Redis.Seen,
	)

	rosterLogger, err := logger.Named("roster")
	if err != nil {
		return nil, err
	}
	rosterService := service.NewRosterService(rosterLogger, entrantStorage, eventStorage, locationStorage)

	lotteryLogger, err := logger.Named("lottery")
	if err != nil {
		return nil, err
	}
	lotteryService := service.NewLotteryService(
		lotteryLogger,
		entrantStorage,
		eventStorage,
		drawStorage,
		notifyService,
		service.NewCryptoSampler(),
	)

	decisionLogger, err := logger.Named("decision")
	if err != nil {
		return nil, err
	}
	var decisionService *service.DecisionService
	if cfg.SMTPDialer != nil {
		decisionService = service.NewDecisionService(
			decisionLogger, entrantStorage, eventStorage, notificationStorage, notifyService,
			smtp.NewClient(cfg.SMTPDialer),
		)
	} else {
		decisionService = service.NewDecisionService(
			decisionLogger, entrantStorage, eventStorage, notificationStorage, notifyService,
			nil,
		)
	}

	return &App{
		DB:     cfg.Database,
		Redis:  cfg.Redis,
		Logger: appLogger,

		Events:    service.NewEventService(eventStorage),
		Roster:    rosterService,
		Lottery:   lotteryService,
		Decisions: decisionService,
		Notify:    notifyService,
	}, nil
}
