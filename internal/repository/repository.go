package repository

import (
	"context"
	"errors"
	"time"

	"gym-portal/internal/models"
)

var ErrNotFound = errors.New("not found")

type ClientRepository interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.Client, error)
}

type TrainerRepository interface {
	GetByID(ctx context.Context, id int64) (*models.TrainerSchedule, error)
	// GetByPlanID returns the trainers of a plan in resolution order.
	GetByPlanID(ctx context.Context, planID int64) ([]models.TrainerSchedule, error)
}

type SubscriptionRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Subscription, error)
	GetActiveByClientID(ctx context.Context, clientID int64, from, to time.Time) (*models.Subscription, error)
	ListActiveWithTelegram(ctx context.Context, on time.Time) ([]models.ActiveEnrollment, error)
}

type ScheduleRepository interface {
	GetBlocksByTrainerID(ctx context.Context, trainerID int64) ([]models.ScheduleBlock, error)
	// GetBlocksByTrainerIDs groups blocks per trainer, keeping id order inside a trainer.
	GetBlocksByTrainerIDs(ctx context.Context, trainerIDs []int64) (map[int64][]models.ScheduleBlock, error)
}

type AttendanceRepository interface {
	GetBySubscription(ctx context.Context, subscriptionID int64, from, to time.Time) ([]models.AttendanceRecord, error)
	// Mark inserts or replaces the record of a subscription for one date.
	Mark(ctx context.Context, record *models.AttendanceRecord) error
}
