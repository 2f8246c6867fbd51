package bot

import (
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"gym-portal/internal/models/config"
	"gym-portal/internal/service"
)

// botAPI is the part of tgbotapi.BotAPI the bot talks to.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) (tgbotapi.UpdatesChannel, error)
	StopReceivingUpdates()
}

type Bot struct {
	api             botAPI
	timelineService service.TimelineService
	clock           service.Clock
	log             *zap.Logger

	userSessions map[int64]*UserSession // chatID -> session
	mu           sync.RWMutex

	done     chan struct{}
	stopOnce sync.Once
}

func NewBot(
	cfg *config.Config,
	timelineService service.TimelineService,
	clock service.Clock,
	log *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	api.Debug = cfg.Bot.Debug

	log.Info("bot initialized", zap.String("username", api.Self.UserName), zap.Bool("debug", cfg.Bot.Debug))
	return newBot(api, timelineService, clock, log), nil
}

func newBot(api botAPI, timelineService service.TimelineService, clock service.Clock, log *zap.Logger) *Bot {
	return &Bot{
		api:             api,
		timelineService: timelineService,
		clock:           clock,
		log:             log.Named("bot"),
		userSessions:    make(map[int64]*UserSession),
		done:            make(chan struct{}),
	}
}

// Start consumes updates until Stop is called.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		return err
	}

	// StopReceivingUpdates does not close the updates channel
	for {
		select {
		case <-b.done:
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}

			go b.handleMessage(update.Message)
		}
	}
}

func (b *Bot) Stop() {
	b.stopOnce.Do(func() {
		b.api.StopReceivingUpdates()
		close(b.done)
	})
}

// Notify sends a plain text message, used by the missed-day worker.
func (b *Bot) Notify(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
