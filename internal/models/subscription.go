package models

import "time"

type PlanKind string

const (
	PlanPremium  PlanKind = "PREMIUM"  // one assigned trainer
	PlanStandard PlanKind = "STANDARD" // several trainers, each with own blocks
)

// Subscription is a client's enrollment in a plan together with the schedule
// and attendance snapshot the timeline is computed from.
type Subscription struct {
	ID        int64     `db:"id" json:"id"`
	ClientID  int64     `db:"client_id" json:"client_id,omitempty"`
	PlanID    int64     `db:"plan_id" json:"plan_id,omitempty"`
	PlanName  string    `db:"plan_name" json:"plan_name"`
	PlanKind  PlanKind  `db:"plan_kind" json:"plan_kind"`
	TrainerID *int64    `db:"trainer_id" json:"trainer_id,omitempty"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`

	// Filled by the timeline service, not stored in the subscriptions table.
	Trainer    *TrainerSchedule   `db:"-" json:"trainer,omitempty"`  // PREMIUM
	Trainers   []TrainerSchedule  `db:"-" json:"trainers,omitempty"` // STANDARD
	Attendance []AttendanceRecord `db:"-" json:"attendance"`
}

// ActiveEnrollment links a running subscription to the client's telegram chat.
type ActiveEnrollment struct {
	SubscriptionID int64 `db:"subscription_id"`
	TelegramID     int64 `db:"telegram_id"`
}

type Client struct {
	ID         int64     `db:"id" json:"id"`
	TelegramID *int64    `db:"telegram_id" json:"telegram_id,omitempty"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
