package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskgrid/internal/model"
)

func TestStreakBoundaries(t *testing.T) {
	d := day(2024, time.March, 10)

	set := func(days ...model.Date) []model.Date { return days }

	cases := []struct {
		name  string
		dates []model.Date
		want  int
	}{
		{"no completions", nil, 0},
		{"three days ending yesterday", set(d.AddDays(-3), d.AddDays(-2), d.AddDays(-1)), 3},
		{"four days ending today", set(d.AddDays(-3), d.AddDays(-2), d.AddDays(-1), d), 4},
		{"gap at yesterday kills streak", set(d.AddDays(-3), d.AddDays(-2)), 0},
		{"today only", set(d), 1},
		{"gap further back stops the walk", set(d, d.AddDays(-1), d.AddDays(-3)), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, currentStreak(tc.dates, d))
		})
	}
}

func TestRefreshAveragePerActiveDay(t *testing.T) {
	today := day(2024, time.March, 10)
	env := newTestEnv(t, today)
	ctx := context.Background()

	task := env.createTask(t, TaskInput{Title: "Work", Items: items(4, 6, 5)})

	// Ten grids two days ago, five yesterday; nothing today. The empty
	// day must not enter the denominator.
	env.completeOn(t, task.SubTasks[0].ID, today.AddDays(-2))
	env.completeOn(t, task.SubTasks[1].ID, today.AddDays(-2))
	env.completeOn(t, task.SubTasks[2].ID, today.AddDays(-1))

	summary, err := env.statsSvc.Refresh(ctx, env.user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, summary.AverageGrids, 0.001)
	assert.Equal(t, 2, summary.Streak)
	assert.Equal(t, today.String(), summary.SummaryDate.String())
}

func TestRefreshRoundsToTwoDecimals(t *testing.T) {
	today := day(2024, time.March, 10)
	env := newTestEnv(t, today)
	ctx := context.Background()

	task := env.createTask(t, TaskInput{Title: "Thirds", Items: items(1, 1, 8)})
	env.completeOn(t, task.SubTasks[0].ID, today.AddDays(-2))
	env.completeOn(t, task.SubTasks[1].ID, today.AddDays(-1))
	env.completeOn(t, task.SubTasks[2].ID, today)

	// 10 grids over 3 active days.
	summary, err := env.statsSvc.Refresh(ctx, env.user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.33, summary.AverageGrids, 0.0001)
}

func TestRoundAverageHalfToEven(t *testing.T) {
	assert.InDelta(t, 2.12, roundAverage(2.125), 1e-9)
	assert.InDelta(t, 2.38, roundAverage(2.375), 1e-9)
	assert.InDelta(t, 3.33, roundAverage(10.0/3), 1e-9)
	assert.InDelta(t, 7.5, roundAverage(7.5), 1e-9)
	assert.Zero(t, roundAverage(0))
}

func TestRefreshIgnoresCompletionsOutsideWindow(t *testing.T) {
	today := day(2024, time.March, 31)
	env := newTestEnv(t, today)
	ctx := context.Background()

	task := env.createTask(t, TaskInput{Title: "Old and new", Items: items(9, 1)})
	env.completeOn(t, task.SubTasks[0].ID, today.AddDays(-40))
	env.completeOn(t, task.SubTasks[1].ID, today)

	summary, err := env.statsSvc.Refresh(ctx, env.user.ID)
	require.NoError(t, err)
	// Only the in-window grid counts toward the average.
	assert.InDelta(t, 1.0, summary.AverageGrids, 0.001)
	// The streak set is unwindowed, but 40 days ago is not consecutive.
	assert.Equal(t, 1, summary.Streak)
}

func TestRefreshIdempotentOverwrite(t *testing.T) {
	today := day(2024, time.March, 10)
	env := newTestEnv(t, today)
	ctx := context.Background()

	task := env.createTask(t, TaskInput{Title: "Work", Items: items(2, 3)})
	env.completeOn(t, task.SubTasks[0].ID, today)

	first, err := env.statsSvc.Refresh(ctx, env.user.ID)
	require.NoError(t, err)

	env.completeOn(t, task.SubTasks[1].ID, today)
	second, err := env.statsSvc.Refresh(ctx, env.user.ID)
	require.NoError(t, err)

	// Same row, overwritten values, not a second row or an increment.
	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 5.0, second.AverageGrids, 0.001)

	latest, err := env.statsSvc.Latest(ctx, env.user.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
}

func TestLatestWithoutAnySummary(t *testing.T) {
	env := newTestEnv(t, day(2024, time.March, 10))

	latest, err := env.statsSvc.Latest(context.Background(), env.user.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)
}
