package service

import (
	"context"
	"fmt"
	"time"

	"taskgrid/internal/model"
	"taskgrid/internal/repository"
)

// HabitService feeds the habit calendar: which habit-tagged tasks were
// completed on which days of a month.
type HabitService struct {
	tasks *repository.TaskRepository
}

func NewHabitService(tasks *repository.TaskRepository) *HabitService {
	return &HabitService{tasks: tasks}
}

// MonthCompletions maps each day of the month (ISO date string) to the
// titles of habit tasks completed that day, each title at most once per
// day.
func (s *HabitService) MonthCompletions(ctx context.Context, userID uint, year int, month time.Month) (map[string][]string, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("month %d out of range: %w", month, ErrInvalidInput)
	}
	first := model.NewDate(year, month, 1)
	last := first.FirstOfNextMonth().AddDays(-1)

	marks, err := s.tasks.HabitCompletions(ctx, userID, first, last)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string][]string)
	for _, mark := range marks {
		key := mark.Day.String()
		byDay[key] = append(byDay[key], mark.Title)
	}
	return byDay, nil
}
