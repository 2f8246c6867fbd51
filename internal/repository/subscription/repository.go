package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gym-portal/internal/models"
	"gym-portal/internal/repository"
)

type subscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const selectSubscription = `
	SELECT s.id, s.client_id, s.plan_id, p.name AS plan_name, p.kind AS plan_kind,
	       s.trainer_id, s.start_date, s.end_date
	FROM gym.subscriptions s
	JOIN gym.plans p ON p.id = s.plan_id
`

// subscriptionRow mirrors the table; a NULL end_date is an open-ended plan.
type subscriptionRow struct {
	ID        int64           `db:"id"`
	ClientID  int64           `db:"client_id"`
	PlanID    int64           `db:"plan_id"`
	PlanName  string          `db:"plan_name"`
	PlanKind  models.PlanKind `db:"plan_kind"`
	TrainerID *int64          `db:"trainer_id"`
	StartDate time.Time       `db:"start_date"`
	EndDate   sql.NullTime    `db:"end_date"`
}

func (row subscriptionRow) toModel() *models.Subscription {
	sub := &models.Subscription{
		ID:        row.ID,
		ClientID:  row.ClientID,
		PlanID:    row.PlanID,
		PlanName:  row.PlanName,
		PlanKind:  row.PlanKind,
		TrainerID: row.TrainerID,
		StartDate: row.StartDate,
	}
	if row.EndDate.Valid {
		sub.EndDate = row.EndDate.Time
	}
	return sub
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id int64) (*models.Subscription, error) {
	var row subscriptionRow
	if err := r.db.GetContext(ctx, &row, selectSubscription+`WHERE s.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get subscription %d: %w", id, err)
	}
	return row.toModel(), nil
}

// GetActiveByClientID returns the latest subscription of the client that
// overlaps [from, to].
func (r *subscriptionRepository) GetActiveByClientID(ctx context.Context, clientID int64, from, to time.Time) (*models.Subscription, error) {
	query := selectSubscription + `
		WHERE s.client_id = $1
		  AND s.start_date <= $3
		  AND (s.end_date IS NULL OR s.end_date >= $2)
		ORDER BY s.start_date DESC, s.id DESC
		LIMIT 1
	`

	var row subscriptionRow
	err := r.db.GetContext(ctx, &row, query, clientID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get active subscription of client %d: %w", clientID, err)
	}
	return row.toModel(), nil
}

func (r *subscriptionRepository) ListActiveWithTelegram(ctx context.Context, on time.Time) ([]models.ActiveEnrollment, error) {
	query := `
		SELECT s.id AS subscription_id, c.telegram_id
		FROM gym.subscriptions s
		JOIN gym.clients c ON c.id = s.client_id
		WHERE c.telegram_id IS NOT NULL
		  AND s.start_date <= $1
		  AND (s.end_date IS NULL OR s.end_date >= $1)
		ORDER BY s.id
	`

	var enrollments []models.ActiveEnrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, on.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("list active subscriptions: %w", err)
	}
	return enrollments, nil
}
