package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskgrid/internal/model"
)

func weeklyTask(due model.Date, days string) *model.MasterTask {
	return &model.MasterTask{
		DueDate:        due,
		RecurrenceType: model.RecurrenceWeekly,
		RecurrenceDays: days,
	}
}

func TestIsActiveOneOff(t *testing.T) {
	due := model.NewDate(2024, time.January, 10)
	task := &model.MasterTask{DueDate: due, RecurrenceType: model.RecurrenceNone}

	assert.False(t, IsActive(task, due.AddDays(-1)))
	assert.True(t, IsActive(task, due))
	assert.False(t, IsActive(task, due.AddDays(1)))
}

func TestIsActiveDaily(t *testing.T) {
	due := model.NewDate(2024, time.January, 10)
	task := &model.MasterTask{DueDate: due, RecurrenceType: model.RecurrenceDaily}

	assert.False(t, IsActive(task, due.AddDays(-1)))
	for i := 0; i < 14; i++ {
		assert.True(t, IsActive(task, due.AddDays(i)), "day +%d", i)
	}
}

func TestIsActiveWeeklyFourteenDayWindow(t *testing.T) {
	// Monday 2024-01-01, active on Mon and Wed.
	start := model.NewDate(2024, time.January, 1)
	task := weeklyTask(start, "02")

	for i := 0; i < 14; i++ {
		day := start.AddDays(i)
		want := day.Weekday() == 0 || day.Weekday() == 2
		assert.Equal(t, want, IsActive(task, day), "day %s", day)
	}
	// Before the schedule starts nothing is active, weekday or not.
	assert.False(t, IsActive(task, start.AddDays(-7)))
}

func TestIsActiveWeeklyEmptyDays(t *testing.T) {
	start := model.NewDate(2024, time.January, 1)
	task := weeklyTask(start, "")
	for i := 0; i < 14; i++ {
		assert.False(t, IsActive(task, start.AddDays(i)))
	}
}

func TestDueForReset(t *testing.T) {
	day := model.NewDate(2024, time.January, 1) // Monday
	oneOff := &model.MasterTask{DueDate: day, RecurrenceType: model.RecurrenceNone}
	assert.False(t, DueForReset(oneOff, day))

	daily := &model.MasterTask{DueDate: day, RecurrenceType: model.RecurrenceDaily}
	assert.True(t, DueForReset(daily, day.AddDays(5)))
	assert.False(t, DueForReset(daily, day.AddDays(-1)))

	weekly := weeklyTask(day, "0")
	assert.True(t, DueForReset(weekly, day.AddDays(7)))  // next Monday
	assert.False(t, DueForReset(weekly, day.AddDays(8))) // Tuesday
}

func TestValidWeekdays(t *testing.T) {
	assert.True(t, ValidWeekdays("0"))
	assert.True(t, ValidWeekdays("0246"))
	assert.False(t, ValidWeekdays(""))
	assert.False(t, ValidWeekdays("07"))
	assert.False(t, ValidWeekdays("mon"))
}
