package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gym-portal/internal/models"
	"gym-portal/internal/models/config"
	"gym-portal/internal/repository"
	"gym-portal/internal/service"
)

// Notifier delivers a text to a telegram chat.
type Notifier interface {
	Notify(chatID int64, text string) error
}

// MissedDayNotifier periodically rebuilds today's timeline of every active
// subscription and tells the client once when the day turned into a miss.
type MissedDayNotifier struct {
	subscriptionRepo repository.SubscriptionRepository
	timelineService  service.TimelineService
	notifier         Notifier
	clock            service.Clock
	interval         time.Duration
	log              *zap.Logger

	cron *cron.Cron

	mu       sync.Mutex
	day      string
	notified map[int64]struct{}
}

func NewMissedDayNotifier(
	cfg *config.Config,
	subscriptionRepo repository.SubscriptionRepository,
	timelineService service.TimelineService,
	notifier Notifier,
	clock service.Clock,
	log *zap.Logger,
) *MissedDayNotifier {
	log = log.Named("missed_day_worker")
	cronLog := cron.PrintfLogger(zap.NewStdLog(log))

	return &MissedDayNotifier{
		subscriptionRepo: subscriptionRepo,
		timelineService:  timelineService,
		notifier:         notifier,
		clock:            clock,
		interval:         cfg.Timeline.RefreshInterval,
		log:              log,
		cron:             cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.SkipIfStillRunning(cronLog))),
		notified:         make(map[int64]struct{}),
	}
}

func (n *MissedDayNotifier) Start() error {
	_, err := n.cron.AddFunc(fmt.Sprintf("@every %s", n.interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.interval)
		defer cancel()
		if err := n.Run(ctx); err != nil {
			n.log.Error("refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule missed day refresh: %w", err)
	}

	n.cron.Start()
	n.log.Info("started", zap.Duration("interval", n.interval))
	return nil
}

// Stop returns a context that is done once a running pass finished.
func (n *MissedDayNotifier) Stop() context.Context {
	return n.cron.Stop()
}

// Run performs one pass over today's active subscriptions.
func (n *MissedDayNotifier) Run(ctx context.Context) error {
	now := n.clock()
	today := now.Format("2006-01-02")
	n.rollOver(today)

	enrollments, err := n.subscriptionRepo.ListActiveWithTelegram(ctx, now)
	if err != nil {
		return fmt.Errorf("list active subscriptions: %w", err)
	}

	for _, e := range enrollments {
		if n.alreadyNotified(e.SubscriptionID) {
			continue
		}

		events, err := n.timelineService.GetDay(ctx, e.SubscriptionID, now)
		if err != nil {
			n.log.Warn("cannot build day", zap.Int64("subscription_id", e.SubscriptionID), zap.Error(err))
			continue
		}

		missed, ok := missedDay(events)
		if !ok {
			continue
		}

		if err := n.notifier.Notify(e.TelegramID, missedDayText(missed)); err != nil {
			n.log.Warn("notify failed", zap.Int64("subscription_id", e.SubscriptionID), zap.Error(err))
			continue
		}
		n.markNotified(e.SubscriptionID)
		n.log.Info("missed day notified", zap.Int64("subscription_id", e.SubscriptionID), zap.String("date", today))
	}
	return nil
}

// rollOver forgets yesterday's notifications once the date changes.
func (n *MissedDayNotifier) rollOver(today string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.day != today {
		n.day = today
		n.notified = make(map[int64]struct{})
	}
}

func (n *MissedDayNotifier) alreadyNotified(subscriptionID int64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.notified[subscriptionID]
	return ok
}

func (n *MissedDayNotifier) markNotified(subscriptionID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified[subscriptionID] = struct{}{}
}

// missedDay reports the collapsed not-attended event of a finished day.
func missedDay(events []models.CalendarEvent) (models.CalendarEvent, bool) {
	for _, e := range events {
		if e.IsFullDayBlock && e.State == models.StateNotAttended {
			return e, true
		}
	}
	return models.CalendarEvent{}, false
}

func missedDayText(e models.CalendarEvent) string {
	text := fmt.Sprintf("❌ %s on %s", e.Title, e.Start.Format("02.01.2006"))
	if e.TrainerLabel != "" {
		text += fmt.Sprintf(" (%s)", e.TrainerLabel)
	}
	return text + ". See you next time!"
}
