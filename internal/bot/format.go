package bot

import (
	"fmt"
	"strings"

	"gym-portal/internal/models"
)

var stateIcons = map[models.EventState]string{
	models.StateAttended:    "✅",
	models.StateNotAttended: "❌",
	models.StatePending:     "⏳",
}

// formatWeek renders a week as one chat message, grouped by day.
func formatWeek(week *models.WeekTimeline) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 %s\n%s – %s\n", week.PlanName, shortDate(week.WeekStart), shortDate(week.WeekEnd))

	if len(week.Events) == 0 {
		sb.WriteString("\nNo sessions this week.")
		return sb.String()
	}

	currentDay := ""
	for _, e := range week.Events {
		if day := e.Start.Format("2006-01-02"); day != currentDay {
			currentDay = day
			fmt.Fprintf(&sb, "\n%s\n", e.Start.Format("Mon 02.01"))
		}

		line := e.Title
		if !e.IsFullDayBlock {
			line = fmt.Sprintf("%s–%s %s", e.Start.Format("15:04"), e.End.Format("15:04"), e.Title)
		}

		var details []string
		if e.TrainerLabel != "" {
			details = append(details, e.TrainerLabel)
		}
		if e.AttendanceTime != "" {
			details = append(details, e.AttendanceTime)
		}
		if len(details) > 0 {
			line += " (" + strings.Join(details, ", ") + ")"
		}
		fmt.Fprintf(&sb, "  %s %s\n", stateIcons[e.State], line)
	}

	sb.WriteString("\n")
	sb.WriteString(formatStats(week))
	return sb.String()
}

func formatStats(week *models.WeekTimeline) string {
	s := week.Stats
	return fmt.Sprintf("📊 Done %d · Missed %d · Pending %d · %d%% attendance",
		s.DaysCompleted, s.DaysMissed, s.DaysPending, s.AttendancePercentage)
}

// shortDate turns YYYY-MM-DD into DD.MM.
func shortDate(day string) string {
	if len(day) != len("2006-01-02") {
		return day
	}
	return day[8:10] + "." + day[5:7]
}
