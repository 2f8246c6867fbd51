package timeline_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gym-portal/internal/models"
	"gym-portal/internal/repository"
	"gym-portal/internal/service"
	"gym-portal/internal/timeline"
)

type timelineService struct {
	subscriptionRepo repository.SubscriptionRepository
	trainerRepo      repository.TrainerRepository
	scheduleRepo     repository.ScheduleRepository
	attendanceRepo   repository.AttendanceRepository
	clientRepo       repository.ClientRepository
	builder          *timeline.Builder
	clock            service.Clock
	log              *zap.Logger
}

func NewTimelineService(
	subscriptionRepo repository.SubscriptionRepository,
	trainerRepo repository.TrainerRepository,
	scheduleRepo repository.ScheduleRepository,
	attendanceRepo repository.AttendanceRepository,
	clientRepo repository.ClientRepository,
	clock service.Clock,
	log *zap.Logger,
) service.TimelineService {
	return &timelineService{
		subscriptionRepo: subscriptionRepo,
		trainerRepo:      trainerRepo,
		scheduleRepo:     scheduleRepo,
		attendanceRepo:   attendanceRepo,
		clientRepo:       clientRepo,
		builder:          timeline.NewBuilder(log),
		clock:            clock,
		log:              log.Named("timeline_service"),
	}
}

func (s *timelineService) GetWeek(ctx context.Context, subscriptionID int64, date time.Time) (*models.WeekTimeline, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	return s.loadWeek(ctx, sub, date)
}

func (s *timelineService) GetWeekForTelegramUser(ctx context.Context, telegramID int64, date time.Time) (*models.WeekTimeline, error) {
	client, err := s.clientRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	// any plan that still has days inside the requested week counts
	monday, sunday := timeline.WeekBounds(date)
	sub, err := s.subscriptionRepo.GetActiveByClientID(ctx, client.ID, monday, sunday)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, service.ErrNoActiveSubscription
	}
	if err != nil {
		return nil, err
	}
	return s.loadWeek(ctx, sub, date)
}

func (s *timelineService) GetDay(ctx context.Context, subscriptionID int64, date time.Time) ([]models.CalendarEvent, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if err := s.loadSnapshot(ctx, sub, date, date); err != nil {
		return nil, err
	}
	return s.builder.BuildWeekEvents(sub, date, date, s.clock()), nil
}

func (s *timelineService) Preview(sub *models.Subscription, date time.Time) *models.WeekTimeline {
	monday, sunday := timeline.WeekBounds(date)
	return s.week(sub, monday, sunday)
}

func (s *timelineService) loadWeek(ctx context.Context, sub *models.Subscription, date time.Time) (*models.WeekTimeline, error) {
	monday, sunday := timeline.WeekBounds(date)
	if err := s.loadSnapshot(ctx, sub, monday, sunday); err != nil {
		return nil, err
	}
	return s.week(sub, monday, sunday), nil
}

func (s *timelineService) week(sub *models.Subscription, monday, sunday time.Time) *models.WeekTimeline {
	now := s.clock()
	events := s.builder.BuildWeekEvents(sub, monday, sunday, now)

	return &models.WeekTimeline{
		SubscriptionID: sub.ID,
		PlanName:       sub.PlanName,
		PlanKind:       sub.PlanKind,
		WeekStart:      monday.Format("2006-01-02"),
		WeekEnd:        sunday.Format("2006-01-02"),
		Events:         events,
		Stats:          timeline.ComputeAttendanceStats(events, now),
	}
}

// loadSnapshot fills trainers, their blocks and the attendance between from and to.
func (s *timelineService) loadSnapshot(ctx context.Context, sub *models.Subscription, from, to time.Time) error {
	switch sub.PlanKind {
	case models.PlanPremium:
		if err := s.loadPremiumTrainer(ctx, sub); err != nil {
			return err
		}
	case models.PlanStandard:
		if err := s.loadStandardTrainers(ctx, sub); err != nil {
			return err
		}
	default:
		s.log.Warn("subscription with unknown plan kind",
			zap.Int64("subscription_id", sub.ID),
			zap.String("plan_kind", string(sub.PlanKind)),
		)
	}

	records, err := s.attendanceRepo.GetBySubscription(ctx, sub.ID, from, to)
	if err != nil {
		return err
	}
	sub.Attendance = records
	return nil
}

func (s *timelineService) loadPremiumTrainer(ctx context.Context, sub *models.Subscription) error {
	if sub.TrainerID == nil {
		s.log.Warn("premium subscription without trainer", zap.Int64("subscription_id", sub.ID))
		return nil
	}

	trainer, err := s.trainerRepo.GetByID(ctx, *sub.TrainerID)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("premium trainer not found",
			zap.Int64("subscription_id", sub.ID),
			zap.Int64("trainer_id", *sub.TrainerID),
		)
		return nil
	}
	if err != nil {
		return err
	}

	blocks, err := s.scheduleRepo.GetBlocksByTrainerID(ctx, trainer.TrainerID)
	if err != nil {
		return err
	}
	trainer.Blocks = blocks
	sub.Trainer = trainer
	return nil
}

func (s *timelineService) loadStandardTrainers(ctx context.Context, sub *models.Subscription) error {
	trainers, err := s.trainerRepo.GetByPlanID(ctx, sub.PlanID)
	if err != nil {
		return err
	}

	ids := make([]int64, 0, len(trainers))
	for _, t := range trainers {
		ids = append(ids, t.TrainerID)
	}

	blocks, err := s.scheduleRepo.GetBlocksByTrainerIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load standard plan %d schedule: %w", sub.PlanID, err)
	}
	for i := range trainers {
		trainers[i].Blocks = blocks[trainers[i].TrainerID]
	}
	sub.Trainers = trainers
	return nil
}
