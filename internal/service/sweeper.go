package service

import (
	"context"

	"taskgrid/internal/clock"
	"taskgrid/internal/repository"
)

// defaultRetentionDays is the age past which completed one-off items are
// purged. Not the same constant as the 30-day statistics window.
const defaultRetentionDays = 32

// SweeperService purges completed non-recurring work that has aged out of
// the retention horizon. Recurring tasks are never swept. Deletes are
// idempotent, so concurrent invocations at worst repeat a no-op.
type SweeperService struct {
	tasks         *repository.TaskRepository
	clock         clock.Clock
	retentionDays int
}

func NewSweeperService(tasks *repository.TaskRepository, clk clock.Clock) *SweeperService {
	return &SweeperService{tasks: tasks, clock: clk, retentionDays: defaultRetentionDays}
}

// SweepResult reports how many rows one sweep removed.
type SweepResult struct {
	SubTasks    int64
	MasterTasks int64
}

// Sweep deletes the user's completed one-off items older than the retention
// horizon, then any master task left without a still-relevant item (one
// that is open or completed within the horizon).
func (s *SweeperService) Sweep(ctx context.Context, userID uint) (SweepResult, error) {
	cutoff := s.clock.Today().AddDays(-s.retentionDays)
	subs, masters, err := s.tasks.SweepExpired(ctx, userID, cutoff)
	if err != nil {
		return SweepResult{}, err
	}
	return SweepResult{SubTasks: subs, MasterTasks: masters}, nil
}
