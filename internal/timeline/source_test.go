package timeline_test

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"gym-portal/internal/models"
	"gym-portal/internal/timeline"
)

func trainer(name string, blocks ...models.ScheduleBlock) models.TrainerSchedule {
	return models.TrainerSchedule{TrainerName: name, Blocks: blocks}
}

func block(day, start, end string) models.ScheduleBlock {
	return models.ScheduleBlock{DayOfWeek: day, StartTime: models.StringTime(start), EndTime: models.StringTime(end)}
}

func TestResolveTrainer(t *testing.T) {
	ana := trainer("Ana", block("lunes", "09:00", "10:00"))
	luis := trainer("Luis", block("Lunes", "09:00", "10:00"), block("martes", "18:00", "19:00"))

	tests := []struct {
		name     string
		trainers []models.TrainerSchedule
		weekday  int
		minute   int
		want     string
		wantOK   bool
	}{
		{name: "overlap resolves to first listed", trainers: []models.TrainerSchedule{ana, luis}, weekday: 1, minute: 570, want: "Ana", wantOK: true},
		{name: "order swapped", trainers: []models.TrainerSchedule{luis, ana}, weekday: 1, minute: 570, want: "Luis", wantOK: true},
		{name: "block end is inclusive", trainers: []models.TrainerSchedule{ana, luis}, weekday: 1, minute: 600, want: "Ana", wantOK: true},
		{name: "only one trainer that day", trainers: []models.TrainerSchedule{ana, luis}, weekday: 2, minute: 1110, want: "Luis", wantOK: true},
		{name: "outside every block", trainers: []models.TrainerSchedule{ana, luis}, weekday: 1, minute: 660, wantOK: false},
		{name: "no trainers", weekday: 1, minute: 570, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := timeline.ResolveTrainer(tt.trainers, tt.weekday, tt.minute)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ResolveTrainer() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewScheduleSource(t *testing.T) {
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	premium := &models.Subscription{
		PlanKind: models.PlanPremium,
		Trainer:  &models.TrainerSchedule{TrainerName: "Ana", Blocks: []models.ScheduleBlock{block("lunes", "08:00", "10:00"), block("lunes", "12:00", "14:00")}},
	}
	src, err := timeline.NewScheduleSource(premium, zap.NewNop())
	if err != nil {
		t.Fatalf("premium source: %v", err)
	}
	slots := src.BlocksForDay(1)
	if len(slots) != 2 {
		t.Fatalf("premium slots = %d, want 2", len(slots))
	}
	if got, want := src.MissedCutoff(monday, slots), monday.Add(14*time.Hour); !got.Equal(want) {
		t.Errorf("premium cutoff = %v, want %v", got, want)
	}
	if src.CollapsedLabel() != "Ana" || src.HonorsAbsenceRecords() {
		t.Errorf("premium label/absence = %q/%v", src.CollapsedLabel(), src.HonorsAbsenceRecords())
	}

	standard := &models.Subscription{
		PlanKind: models.PlanStandard,
		Trainers: []models.TrainerSchedule{trainer("Ana", block("lunes", "08:00", "10:00"))},
	}
	src, err = timeline.NewScheduleSource(standard, zap.NewNop())
	if err != nil {
		t.Fatalf("standard source: %v", err)
	}
	if got, want := src.MissedCutoff(monday, src.BlocksForDay(1)), monday.Add(22*time.Hour); !got.Equal(want) {
		t.Errorf("standard cutoff = %v, want %v", got, want)
	}
	if src.CollapsedLabel() != timeline.MultipleTrainers || !src.HonorsAbsenceRecords() {
		t.Errorf("standard label/absence = %q/%v", src.CollapsedLabel(), src.HonorsAbsenceRecords())
	}

	_, err = timeline.NewScheduleSource(&models.Subscription{PlanKind: "GOLD"}, zap.NewNop())
	if !errors.Is(err, timeline.ErrUnknownPlanKind) {
		t.Errorf("unknown kind error = %v, want ErrUnknownPlanKind", err)
	}
}
