package models

import "time"

// AttendanceRecord is one stored check-in row. Several rows may exist for the
// same date; a row with Attended set always wins over placeholders.
type AttendanceRecord struct {
	ID             int64     `db:"id" json:"id,omitempty"`
	SubscriptionID int64     `db:"subscription_id" json:"subscription_id,omitempty"`
	Date           time.Time `db:"attendance_date" json:"date"`
	Attended       bool      `db:"attended" json:"attended"`
	AttendanceTime *string   `db:"attendance_time" json:"attendance_time,omitempty"` // "HH:mm[:ss]"
}

type EventState string

const (
	StateAttended    EventState = "ATTENDED"
	StateNotAttended EventState = "NOT_ATTENDED"
	StatePending     EventState = "PENDING"
)

// CalendarEvent is a display-ready entry of the weekly agenda.
type CalendarEvent struct {
	Title          string     `json:"title"`
	Start          time.Time  `json:"start"`
	End            time.Time  `json:"end"`
	State          EventState `json:"state"`
	AttendanceTime string     `json:"attendance_time,omitempty"`
	TrainerLabel   string     `json:"trainer_label"`
	PlanKind       PlanKind   `json:"plan_kind"`
	IsFullDayBlock bool       `json:"is_full_day_block"`
}

type AttendanceStats struct {
	DaysCompleted        int `json:"days_completed"`
	DaysPending          int `json:"days_pending"`
	DaysMissed           int `json:"days_missed"`
	AttendancePercentage int `json:"attendance_percentage"`
}

// WeekTimeline is what the API and the bot hand out for one subscription week.
type WeekTimeline struct {
	SubscriptionID int64           `json:"subscription_id"`
	PlanName       string          `json:"plan_name"`
	PlanKind       PlanKind        `json:"plan_kind"`
	WeekStart      string          `json:"week_start"`
	WeekEnd        string          `json:"week_end"`
	Events         []CalendarEvent `json:"events"`
	Stats          AttendanceStats `json:"stats"`
}
