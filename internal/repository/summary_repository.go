package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskgrid/internal/model"
)

// SummaryRepository owns the daily summary rows and the aggregate queries
// they are computed from.
type SummaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// CompletedGridStats returns the sum of grid units completed within
// [from, to] and the number of distinct days that had at least one
// completion in that range.
func (r *SummaryRepository) CompletedGridStats(ctx context.Context, userID uint, from, to model.Date) (gridTotal int64, activeDays int64, err error) {
	completedInRange := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.SubTask{}).
			Joins("JOIN master_tasks ON master_tasks.id = sub_tasks.master_id").
			Where("master_tasks.user_id = ?", userID).
			Where("sub_tasks.is_completed = ?", true).
			Where("sub_tasks.completion_date >= ? AND sub_tasks.completion_date <= ?", from, to)
	}

	if err := completedInRange().
		Select("COALESCE(SUM(sub_tasks.grid_count), 0)").
		Scan(&gridTotal).Error; err != nil {
		return 0, 0, fmt.Errorf("sum completed grids: %w", err)
	}
	if err := completedInRange().
		Select("COUNT(DISTINCT sub_tasks.completion_date)").
		Scan(&activeDays).Error; err != nil {
		return 0, 0, fmt.Errorf("count active days: %w", err)
	}
	return gridTotal, activeDays, nil
}

// CompletionDates returns every distinct day on which the user completed at
// least one item, unwindowed. Streaks are computed from this set.
func (r *SummaryRepository) CompletionDates(ctx context.Context, userID uint) ([]model.Date, error) {
	var dates []model.Date
	err := r.db.WithContext(ctx).Model(&model.SubTask{}).
		Distinct("sub_tasks.completion_date").
		Joins("JOIN master_tasks ON master_tasks.id = sub_tasks.master_id").
		Where("master_tasks.user_id = ?", userID).
		Where("sub_tasks.is_completed = ? AND sub_tasks.completion_date IS NOT NULL", true).
		Pluck("sub_tasks.completion_date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("completion dates: %w", err)
	}
	return dates, nil
}

// Upsert writes the summary for one (user, day), overwriting any previous
// values so repeated refreshes on the same day are idempotent.
func (r *SummaryRepository) Upsert(ctx context.Context, userID uint, day model.Date, streak int, averageGrids float64) (*model.DailySummary, error) {
	var summary model.DailySummary
	db := r.db.WithContext(ctx)
	err := db.Where("user_id = ? AND summary_date = ?", userID, day).First(&summary).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"streak":        streak,
			"average_grids": averageGrids,
		}
		if err := db.Model(&summary).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update summary: %w", err)
		}
		summary.Streak = streak
		summary.AverageGrids = averageGrids
		return &summary, nil
	case err == gorm.ErrRecordNotFound:
		summary = model.DailySummary{
			UserID:       userID,
			SummaryDate:  day,
			Streak:       streak,
			AverageGrids: averageGrids,
		}
		if err := db.Create(&summary).Error; err != nil {
			return nil, fmt.Errorf("create summary: %w", err)
		}
		return &summary, nil
	default:
		return nil, fmt.Errorf("find summary: %w", err)
	}
}

// Latest returns the most recent summary for the user, or nil if none has
// been written yet.
func (r *SummaryRepository) Latest(ctx context.Context, userID uint) (*model.DailySummary, error) {
	var summary model.DailySummary
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("summary_date DESC").
		First(&summary).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest summary: %w", err)
	}
	return &summary, nil
}
