package timeline

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"gym-portal/internal/models"
)

// Builder turns a subscription snapshot into the events of one week.
// It keeps no state between calls; now is always passed in.
type Builder struct {
	log *zap.Logger
}

func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log.Named("timeline")}
}

// BuildWeekEvents synthesizes the calendar events for every day from weekStart
// to weekEnd (inclusive) that falls inside the subscription period. Days come
// out in ascending order; within a day events keep trainer and block order.
func (b *Builder) BuildWeekEvents(sub *models.Subscription, weekStart, weekEnd, now time.Time) []models.CalendarEvent {
	events := []models.CalendarEvent{}
	if sub == nil {
		return events
	}

	src, err := NewScheduleSource(sub, b.log)
	if err != nil {
		b.log.Warn("cannot build timeline", zap.Int64("subscription_id", sub.ID), zap.Error(err))
		return events
	}

	loc := weekStart.Location()
	first, last := dateOf(weekStart, loc), dateOf(weekEnd, loc)
	from, to := dateOf(sub.StartDate, loc), dateOf(sub.EndDate, loc)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if day.Before(from) {
			continue
		}
		// a zero end date means the enrollment is open-ended
		if !sub.EndDate.IsZero() && day.After(to) {
			continue
		}
		events = append(events, b.dayEvents(sub, src, day, now)...)
	}
	return events
}

func (b *Builder) dayEvents(sub *models.Subscription, src ScheduleSource, day, now time.Time) []models.CalendarEvent {
	weekday := isoWeekday(day)
	attended, absenceRecorded := lookupAttendance(sub.Attendance, day)

	if attended != nil {
		return []models.CalendarEvent{b.attendedEvent(sub, src, day, weekday, attended)}
	}

	slots := src.BlocksForDay(weekday)
	if len(slots) > 0 && now.After(src.MissedCutoff(day, slots)) {
		return []models.CalendarEvent{fullDayEvent(sub, day, models.StateNotAttended, src.CollapsedLabel())}
	}

	absent := absenceRecorded && src.HonorsAbsenceRecords()
	events := make([]models.CalendarEvent, 0, len(slots))
	for _, slot := range slots {
		start, end := at(day, slot.Start), at(day, slot.End)
		title := slot.Label
		if title == "" {
			title = sub.PlanName
		}
		events = append(events, models.CalendarEvent{
			Title:        title,
			Start:        start,
			End:          end,
			State:        blockState(now, end, absent),
			TrainerLabel: slot.Trainer,
			PlanKind:     sub.PlanKind,
		})
	}
	return events
}

func (b *Builder) attendedEvent(sub *models.Subscription, src ScheduleSource, day time.Time, weekday int, rec *models.AttendanceRecord) models.CalendarEvent {
	label := src.CollapsedLabel()
	var attendedAt string

	if rec.AttendanceTime != nil {
		attendedAt = strings.TrimSpace(*rec.AttendanceTime)
	}
	if attendedAt != "" {
		minute, err := parseClockString(attendedAt)
		if err != nil {
			b.log.Warn("unreadable attendance time",
				zap.Int64("subscription_id", sub.ID),
				zap.String("attendance_time", attendedAt),
				zap.Error(err),
			)
		} else if name, ok := src.TrainerAt(weekday, minute); ok {
			label = name
		}
	}

	event := fullDayEvent(sub, day, models.StateAttended, label)
	event.AttendanceTime = attendedAt
	return event
}

func fullDayEvent(sub *models.Subscription, day time.Time, state models.EventState, trainerLabel string) models.CalendarEvent {
	verb := "Attended"
	if state == models.StateNotAttended {
		verb = "Not attended"
	}
	return models.CalendarEvent{
		Title:          fmt.Sprintf("%s - %s", verb, sub.PlanName),
		Start:          at(day, dayOpensAt),
		End:            at(day, dayClosesAt),
		State:          state,
		TrainerLabel:   trainerLabel,
		PlanKind:       sub.PlanKind,
		IsFullDayBlock: true,
	}
}

// blockState: an elapsed block is missed, anything else still pending.
func blockState(now, end time.Time, absent bool) models.EventState {
	if absent || now.After(end) {
		return models.StateNotAttended
	}
	return models.StatePending
}

// lookupAttendance finds the authoritative attended row for day, preferring one
// that carries a time, and reports whether an attended=false row exists.
func lookupAttendance(records []models.AttendanceRecord, day time.Time) (*models.AttendanceRecord, bool) {
	var attended *models.AttendanceRecord
	absent := false

	for i := range records {
		rec := &records[i]
		if !sameDate(rec.Date, day) {
			continue
		}
		if !rec.Attended {
			absent = true
			continue
		}
		if attended == nil || (attended.AttendanceTime == nil && rec.AttendanceTime != nil) {
			attended = rec
		}
	}
	return attended, absent
}
