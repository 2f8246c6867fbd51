package timeline

import (
	"math"
	"time"

	"gym-portal/internal/models"
)

// ComputeAttendanceStats classifies every date that has events as completed,
// missed or pending.
func ComputeAttendanceStats(events []models.CalendarEvent, now time.Time) models.AttendanceStats {
	byDate := make(map[string][]models.CalendarEvent)
	for _, e := range events {
		key := e.Start.Format("2006-01-02")
		byDate[key] = append(byDate[key], e)
	}

	var stats models.AttendanceStats
	for _, group := range byDate {
		switch {
		case anyAttended(group):
			stats.DaysCompleted++
		case allElapsed(group, now):
			stats.DaysMissed++
		default:
			stats.DaysPending++
		}
	}

	if total := len(byDate); total > 0 {
		stats.AttendancePercentage = int(math.Round(float64(stats.DaysCompleted) / float64(total) * 100))
	}
	return stats
}

func anyAttended(group []models.CalendarEvent) bool {
	for _, e := range group {
		if e.State == models.StateAttended {
			return true
		}
	}
	return false
}

func allElapsed(group []models.CalendarEvent, now time.Time) bool {
	for _, e := range group {
		if e.IsFullDayBlock {
			if e.State == models.StatePending {
				return false
			}
			continue
		}
		if !now.After(e.End) {
			return false
		}
	}
	return true
}
