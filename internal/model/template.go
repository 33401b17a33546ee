package model

import "time"

// TaskTemplate is a reusable set of items a user can stamp out as a new
// master task. Titles are unique per user.
type TaskTemplate struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index:idx_user_template_title,unique"`
	Title     string `gorm:"index:idx_user_template_title,unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []TemplateItem `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

// TemplateItem mirrors a subtask within a template.
type TemplateItem struct {
	ID         uint `gorm:"primaryKey"`
	TemplateID uint `gorm:"index"`
	Content    string
	GridCount  int `gorm:"default:1"`
}
