package models

import "encoding/json"

// ScheduleBlock is one weekly slot of a trainer.
type ScheduleBlock struct {
	ID           int64     `db:"id" json:"id,omitempty"`
	TrainerID    int64     `db:"trainer_id" json:"trainer_id,omitempty"`
	DayOfWeek    string    `db:"day_of_week" json:"day_of_week"` // "lunes", "miércoles", "Sábado"...
	StartTime    TimeValue `db:"-" json:"start_time"`
	EndTime      TimeValue `db:"-" json:"end_time"`
	SessionLabel string    `db:"session_label" json:"session_label,omitempty"`
}

type scheduleBlockJSON struct {
	ID           int64           `json:"id,omitempty"`
	TrainerID    int64           `json:"trainer_id,omitempty"`
	DayOfWeek    string          `json:"day_of_week"`
	StartTime    json.RawMessage `json:"start_time"`
	EndTime      json.RawMessage `json:"end_time"`
	SessionLabel string          `json:"session_label,omitempty"`
}

func (b *ScheduleBlock) UnmarshalJSON(data []byte) error {
	var raw scheduleBlockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	start, err := decodeTimeValue(raw.StartTime)
	if err != nil {
		return err
	}
	end, err := decodeTimeValue(raw.EndTime)
	if err != nil {
		return err
	}

	*b = ScheduleBlock{
		ID:           raw.ID,
		TrainerID:    raw.TrainerID,
		DayOfWeek:    raw.DayOfWeek,
		StartTime:    start,
		EndTime:      end,
		SessionLabel: raw.SessionLabel,
	}
	return nil
}

func (b ScheduleBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID           int64  `json:"id,omitempty"`
		TrainerID    int64  `json:"trainer_id,omitempty"`
		DayOfWeek    string `json:"day_of_week"`
		StartTime    any    `json:"start_time"`
		EndTime      any    `json:"end_time"`
		SessionLabel string `json:"session_label,omitempty"`
	}{
		ID:           b.ID,
		TrainerID:    b.TrainerID,
		DayOfWeek:    b.DayOfWeek,
		StartTime:    encodeTimeValue(b.StartTime),
		EndTime:      encodeTimeValue(b.EndTime),
		SessionLabel: b.SessionLabel,
	})
}

// TrainerSchedule groups the weekly blocks of one trainer.
type TrainerSchedule struct {
	TrainerID   int64           `db:"id" json:"trainer_id,omitempty"`
	TrainerName string          `db:"full_name" json:"trainer_name"`
	Blocks      []ScheduleBlock `db:"-" json:"blocks"`
}
