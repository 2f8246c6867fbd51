package timeline_test

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"gym-portal/internal/models"
	"gym-portal/internal/timeline"
)

func fullDay(day int, state models.EventState) models.CalendarEvent {
	return models.CalendarEvent{Start: at(day, 7, 0), End: at(day, 22, 0), State: state, IsFullDayBlock: true}
}

func single(day, from, to int, state models.EventState) models.CalendarEvent {
	return models.CalendarEvent{Start: at(day, from, 0), End: at(day, to, 0), State: state}
}

func TestComputeAttendanceStats(t *testing.T) {
	now := at(14, 20, 0)

	tests := []struct {
		name   string
		events []models.CalendarEvent
		want   models.AttendanceStats
	}{
		{
			name: "no events",
			want: models.AttendanceStats{},
		},
		{
			name: "mixed week",
			events: []models.CalendarEvent{
				fullDay(12, models.StateAttended),
				fullDay(13, models.StateNotAttended),
				single(14, 8, 9, models.StateNotAttended),
				single(14, 18, 19, models.StateNotAttended),
				single(15, 8, 9, models.StatePending),
			},
			want: models.AttendanceStats{DaysCompleted: 1, DaysMissed: 2, DaysPending: 1, AttendancePercentage: 25},
		},
		{
			name: "day with a block still ahead is pending",
			events: []models.CalendarEvent{
				single(14, 8, 9, models.StateNotAttended),
				single(14, 21, 22, models.StatePending),
			},
			want: models.AttendanceStats{DaysPending: 1},
		},
		{
			name: "pending collapsed block is not missed",
			events: []models.CalendarEvent{
				fullDay(13, models.StatePending),
			},
			want: models.AttendanceStats{DaysPending: 1},
		},
		{
			name: "rounds to nearest percent",
			events: []models.CalendarEvent{
				fullDay(12, models.StateAttended),
				fullDay(13, models.StateAttended),
				fullDay(14, models.StateNotAttended),
			},
			want: models.AttendanceStats{DaysCompleted: 2, DaysMissed: 1, AttendancePercentage: 67},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timeline.ComputeAttendanceStats(tt.events, now); got != tt.want {
				t.Errorf("ComputeAttendanceStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeAttendanceStats_FromBuilder(t *testing.T) {
	sub := premiumSub(
		block("lunes", "08:00", "10:00"),
		block("martes", "08:00", "10:00"),
		block("miercoles", "08:00", "10:00"),
		block("jueves", "08:00", "10:00"),
	)
	sub.Attendance = []models.AttendanceRecord{{Date: at(12, 0, 0), Attended: true}}

	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	events := timeline.NewBuilder(zap.NewNop()).BuildWeekEvents(sub, weekStart, weekEnd, now)
	got := timeline.ComputeAttendanceStats(events, now)

	want := models.AttendanceStats{DaysCompleted: 1, DaysMissed: 1, DaysPending: 2, AttendancePercentage: 25}
	if got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
}
