package model

import "time"

// User owns tasks, templates and summaries. Authentication lives outside
// the engine; only the identity is needed here.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
