package timeline

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gym-portal/internal/models"
)

var ErrUnknownPlanKind = errors.New("unknown plan kind")

// MultipleTrainers labels standard-plan events no single trainer can be credited with.
const MultipleTrainers = "multiple trainers"

// Slot is a schedule block already normalized to minutes since midnight.
type Slot struct {
	Trainer string
	Label   string
	Start   int
	End     int
}

// ScheduleSource hides how a plan's weekly blocks are organized.
type ScheduleSource interface {
	// BlocksForDay returns the day's slots in trainer, then block, input order.
	BlocksForDay(weekday int) []Slot
	// MissedCutoff is the moment after which an unattended day is final.
	MissedCutoff(day time.Time, slots []Slot) time.Time
	// TrainerAt names the trainer whose block contains minute on weekday.
	TrainerAt(weekday, minute int) (string, bool)
	// CollapsedLabel is used on full-day events when TrainerAt has no answer.
	CollapsedLabel() string
	// HonorsAbsenceRecords reports whether an attended=false row settles the day's blocks.
	HonorsAbsenceRecords() bool
}

// NewScheduleSource builds the variant matching the subscription's plan kind.
// Blocks that cannot be normalized are logged and left out.
func NewScheduleSource(sub *models.Subscription, log *zap.Logger) (ScheduleSource, error) {
	switch sub.PlanKind {
	case models.PlanPremium:
		src := &premiumSource{days: map[int][]Slot{}}
		if sub.Trainer != nil {
			src.trainer = sub.Trainer.TrainerName
			addSlots(src.days, *sub.Trainer, sub.ID, log)
		}
		return src, nil
	case models.PlanStandard:
		src := &standardSource{days: map[int][]Slot{}}
		for _, trainer := range sub.Trainers {
			addSlots(src.days, trainer, sub.ID, log)
		}
		return src, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlanKind, sub.PlanKind)
}

func addSlots(days map[int][]Slot, trainer models.TrainerSchedule, subscriptionID int64, log *zap.Logger) {
	for _, block := range trainer.Blocks {
		weekday, slot, err := normalizeBlock(trainer.TrainerName, block)
		if err != nil {
			log.Warn("skipping schedule block",
				zap.Int64("subscription_id", subscriptionID),
				zap.String("trainer", trainer.TrainerName),
				zap.String("day_of_week", block.DayOfWeek),
				zap.Error(err),
			)
			continue
		}
		days[weekday] = append(days[weekday], slot)
	}
}

func normalizeBlock(trainer string, block models.ScheduleBlock) (int, Slot, error) {
	weekday, ok := MapWeekday(block.DayOfWeek)
	if !ok {
		return 0, Slot{}, fmt.Errorf("unrecognized weekday %q", block.DayOfWeek)
	}
	start, err := ParseMinutes(block.StartTime)
	if err != nil {
		return 0, Slot{}, fmt.Errorf("start time: %w", err)
	}
	end, err := ParseMinutes(block.EndTime)
	if err != nil {
		return 0, Slot{}, fmt.Errorf("end time: %w", err)
	}
	if start >= end {
		return 0, Slot{}, fmt.Errorf("start %s is not before end %s", FormatMinutes(start), FormatMinutes(end))
	}
	return weekday, Slot{Trainer: trainer, Label: block.SessionLabel, Start: start, End: end}, nil
}

type premiumSource struct {
	trainer string
	days    map[int][]Slot
}

func (s *premiumSource) BlocksForDay(weekday int) []Slot {
	return s.days[weekday]
}

// A single trainer's day ends with their latest block.
func (s *premiumSource) MissedCutoff(day time.Time, slots []Slot) time.Time {
	latest := 0
	for _, slot := range slots {
		if slot.End > latest {
			latest = slot.End
		}
	}
	return at(day, latest)
}

func (s *premiumSource) TrainerAt(int, int) (string, bool) {
	return s.trainer, s.trainer != ""
}

func (s *premiumSource) CollapsedLabel() string {
	return s.trainer
}

func (s *premiumSource) HonorsAbsenceRecords() bool {
	return false
}

type standardSource struct {
	days map[int][]Slot
}

func (s *standardSource) BlocksForDay(weekday int) []Slot {
	return s.days[weekday]
}

// Independent trainers need not cover the day, so only closing time is final.
func (s *standardSource) MissedCutoff(day time.Time, _ []Slot) time.Time {
	return at(day, dayClosesAt)
}

func (s *standardSource) TrainerAt(weekday, minute int) (string, bool) {
	for _, slot := range s.days[weekday] {
		if slot.Start <= minute && minute <= slot.End {
			return slot.Trainer, true
		}
	}
	return "", false
}

func (s *standardSource) CollapsedLabel() string {
	return MultipleTrainers
}

func (s *standardSource) HonorsAbsenceRecords() bool {
	return true
}

// ResolveTrainer returns the first trainer, in input order, with a block on
// weekday containing minute.
func ResolveTrainer(trainers []models.TrainerSchedule, weekday, minute int) (string, bool) {
	src := &standardSource{days: map[int][]Slot{}}
	for _, trainer := range trainers {
		addSlots(src.days, trainer, 0, zap.NewNop())
	}
	return src.TrainerAt(weekday, minute)
}
