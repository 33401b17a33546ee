package schedule

import (
	"strings"

	"taskgrid/internal/model"
)

// IsActive reports whether the task should be considered on the given day.
// One-off tasks are active only on their due date; daily tasks on every day
// from the due date on; weekly tasks on the listed weekdays once started.
func IsActive(task *model.MasterTask, day model.Date) bool {
	if day.Before(task.DueDate) {
		return false
	}
	switch task.RecurrenceType {
	case model.RecurrenceNone:
		return day.Equal(task.DueDate)
	case model.RecurrenceDaily:
		return true
	case model.RecurrenceWeekly:
		return onWeekday(task.RecurrenceDays, day)
	}
	return false
}

// DueForReset reports whether a recurring task's items should be cleared
// today. One-off tasks are never reset.
func DueForReset(task *model.MasterTask, today model.Date) bool {
	if !task.RecurrenceType.Recurring() {
		return false
	}
	return IsActive(task, today)
}

// onWeekday checks the Monday=0 digit set. An empty set never matches, so a
// weekly task without configured days stays inactive.
func onWeekday(days string, day model.Date) bool {
	if days == "" {
		return false
	}
	return strings.ContainsRune(days, rune('0'+day.Weekday()))
}

// ValidWeekdays reports whether days is a usable weekday set: non-empty and
// made of digits 0 through 6.
func ValidWeekdays(days string) bool {
	if days == "" {
		return false
	}
	for _, r := range days {
		if r < '0' || r > '6' {
			return false
		}
	}
	return true
}
