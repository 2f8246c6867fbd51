package attendance_service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gym-portal/internal/models"
	"gym-portal/internal/repository"
	"gym-portal/internal/service"
	"gym-portal/internal/timeline"
)

type attendanceService struct {
	attendanceRepo   repository.AttendanceRepository
	subscriptionRepo repository.SubscriptionRepository
	clock            service.Clock
	log              *zap.Logger
}

func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	subscriptionRepo repository.SubscriptionRepository,
	clock service.Clock,
	log *zap.Logger,
) service.AttendanceService {
	return &attendanceService{
		attendanceRepo:   attendanceRepo,
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		log:              log.Named("attendance_service"),
	}
}

func (s *attendanceService) MarkAttendance(ctx context.Context, subscriptionID int64, date time.Time, attended bool, attendanceTime string) (*models.AttendanceRecord, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	day := date.Format("2006-01-02")
	if day < sub.StartDate.Format("2006-01-02") || (!sub.EndDate.IsZero() && day > sub.EndDate.Format("2006-01-02")) {
		return nil, fmt.Errorf("%w: %s is outside the subscription period", service.ErrInvalidAttendance, day)
	}

	record := &models.AttendanceRecord{
		SubscriptionID: subscriptionID,
		Date:           time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		Attended:       attended,
	}

	switch {
	case attendanceTime != "":
		minutes, err := timeline.ParseMinutes(models.StringTime(attendanceTime))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrInvalidAttendance, err)
		}
		formatted := timeline.FormatMinutes(minutes)
		record.AttendanceTime = &formatted
	case attended:
		// a check-in at the desk today is stamped with the current time
		if now := s.clock(); now.Format("2006-01-02") == day {
			stamp := now.Format("15:04")
			record.AttendanceTime = &stamp
		}
	}

	if err := s.attendanceRepo.Mark(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info("attendance marked",
		zap.Int64("subscription_id", subscriptionID),
		zap.String("date", day),
		zap.Bool("attended", attended),
	)
	return record, nil
}
