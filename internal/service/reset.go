package service

import (
	"context"

	"taskgrid/internal/clock"
	"taskgrid/internal/repository"
	"taskgrid/internal/schedule"
)

// ResetService clears completion state on recurring tasks once per cycle.
// It runs lazily on every day-view load rather than from a background job,
// so it has to stay idempotent within a calendar day: the last reset date
// is advanced in the same transaction as the clear, and only tasks whose
// marker is stale are considered at all.
type ResetService struct {
	tasks *repository.TaskRepository
	clock clock.Clock
}

func NewResetService(tasks *repository.TaskRepository, clk clock.Clock) *ResetService {
	return &ResetService{tasks: tasks, clock: clk}
}

// ResetDueTasks clears items of the user's recurring tasks that are due to
// repeat today and have not been reset yet. Returns the number of items
// cleared. Tasks whose schedule has not started, or whose weekday is not
// today, keep their stale marker and are re-examined on later days.
func (s *ResetService) ResetDueTasks(ctx context.Context, userID uint) (int64, error) {
	today := s.clock.Today()
	stale, err := s.tasks.ListStaleRecurring(ctx, userID, today)
	if err != nil {
		return 0, err
	}

	var due []uint
	for i := range stale {
		task := &stale[i]
		if task.DueDate.After(today) {
			continue
		}
		if schedule.DueForReset(task, today) {
			due = append(due, task.ID)
		}
	}
	return s.tasks.ResetCompletion(ctx, due, today)
}
