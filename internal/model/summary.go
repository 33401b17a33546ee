package model

import "time"

// DailySummary caches the streak and trailing-average statistics for one
// user on one day. It is derived state, recomputable from subtask history.
type DailySummary struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index:idx_user_summary_date,unique"`
	SummaryDate Date `gorm:"index:idx_user_summary_date,unique"`
	// Streak counts consecutive days ending today (or yesterday) with at
	// least one completion.
	Streak int `gorm:"default:0"`
	// AverageGrids is the mean of completed grid units per day with
	// activity, over the trailing statistics window.
	AverageGrids float64 `gorm:"default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
