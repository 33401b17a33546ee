package service

import (
	"context"
	"math"

	"taskgrid/internal/clock"
	"taskgrid/internal/model"
	"taskgrid/internal/repository"
)

// statsWindowDays is the trailing window for the grid average. Not the same
// constant as the retention horizon in sweeper.go.
const statsWindowDays = 30

// StatsService maintains the per-day summary row: the completion streak and
// the average of completed grid units per active day.
type StatsService struct {
	summaries *repository.SummaryRepository
	clock     clock.Clock
}

func NewStatsService(summaries *repository.SummaryRepository, clk clock.Clock) *StatsService {
	return &StatsService{summaries: summaries, clock: clk}
}

// Refresh recomputes the user's statistics as of today and upserts the
// summary row for (user, today). Safe to call any number of times per day.
func (s *StatsService) Refresh(ctx context.Context, userID uint) (*model.DailySummary, error) {
	today := s.clock.Today()

	windowStart := today.AddDays(-statsWindowDays)
	gridTotal, activeDays, err := s.summaries.CompletedGridStats(ctx, userID, windowStart, today)
	if err != nil {
		return nil, err
	}
	average := 0.0
	if activeDays > 0 {
		// Per day with activity, not per calendar day: days without any
		// completion do not drag the average down.
		average = float64(gridTotal) / float64(activeDays)
	}
	average = roundAverage(average)

	dates, err := s.summaries.CompletionDates(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak := currentStreak(dates, today)

	return s.summaries.Upsert(ctx, userID, today, streak, average)
}

// roundAverage keeps two decimals, rounding halves to even.
func roundAverage(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}

// Latest returns the newest stored summary without recomputing, or nil when
// the user has none yet.
func (s *StatsService) Latest(ctx context.Context, userID uint) (*model.DailySummary, error) {
	return s.summaries.Latest(ctx, userID)
}

// currentStreak counts consecutive days with a completion, walking backward
// from today. A day without completions ends the streak, except that today
// itself may still be open: if only today is missing the walk starts from
// yesterday instead of reporting zero.
func currentStreak(dates []model.Date, today model.Date) int {
	if len(dates) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		seen[d.String()] = struct{}{}
	}

	check := today
	if _, ok := seen[check.String()]; !ok {
		check = today.AddDays(-1)
		if _, ok := seen[check.String()]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := seen[check.String()]; !ok {
			break
		}
		streak++
		check = check.AddDays(-1)
	}
	return streak
}
