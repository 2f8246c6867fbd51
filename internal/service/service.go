package service

import (
	"context"
	"errors"
	"time"

	"gym-portal/internal/models"
)

var (
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrInvalidAttendance    = errors.New("invalid attendance")
)

// Clock yields the current wall-clock time; tests pin it.
type Clock func() time.Time

type TimelineService interface {
	// GetWeek loads the subscription snapshot and builds the week containing date.
	GetWeek(ctx context.Context, subscriptionID int64, date time.Time) (*models.WeekTimeline, error)
	GetWeekForTelegramUser(ctx context.Context, telegramID int64, date time.Time) (*models.WeekTimeline, error)
	// GetDay builds only one day, used by the refresh worker.
	GetDay(ctx context.Context, subscriptionID int64, date time.Time) ([]models.CalendarEvent, error)
	// Preview computes a week from a caller-supplied snapshot without touching storage.
	Preview(sub *models.Subscription, date time.Time) *models.WeekTimeline
}

type AttendanceService interface {
	// MarkAttendance records a reception check-in (or an explicit absence).
	MarkAttendance(ctx context.Context, subscriptionID int64, date time.Time, attended bool, attendanceTime string) (*models.AttendanceRecord, error)
}
