package model

import "time"

// RecurrenceType tells how often a master task repeats.
type RecurrenceType string

const (
	RecurrenceNone   RecurrenceType = "none"
	RecurrenceDaily  RecurrenceType = "daily"
	RecurrenceWeekly RecurrenceType = "weekly"
)

// Recurring reports whether the type describes a repeating schedule.
func (r RecurrenceType) Recurring() bool {
	return r == RecurrenceDaily || r == RecurrenceWeekly
}

// MasterTask is a unit of work owning one or more subtask items. For
// non-recurring tasks DueDate is the day the task is due; for recurring
// tasks it is the first day the schedule is active.
type MasterTask struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"index"`
	Title    string
	DueDate  Date
	IsUrgent bool `gorm:"default:false"`
	IsHabit  bool `gorm:"default:false"`
	// RecurrenceDays holds weekday digits (Monday=0 .. Sunday=6), e.g.
	// "024" for Mon/Wed/Fri. Only meaningful for weekly tasks.
	RecurrenceType RecurrenceType
	RecurrenceDays string
	// LastResetDate is the last day the reset pass cleared this task's
	// items. Nil means never reset.
	LastResetDate *Date
	CreatedAt     time.Time
	UpdatedAt     time.Time
	SubTasks      []SubTask `gorm:"foreignKey:MasterID;constraint:OnDelete:CASCADE"`
}

// SubTask is an individually completable item within a master task.
// GridCount is the number of layout units it occupies in the day grid.
type SubTask struct {
	ID          uint `gorm:"primaryKey"`
	MasterID    uint `gorm:"index"`
	Content     string
	GridCount   int  `gorm:"default:1"`
	IsCompleted bool `gorm:"default:false"`
	// CompletionDate is the day the item was last marked complete. For
	// recurring tasks it may stay set after a manual un-complete; the
	// scheduled reset clears it together with IsCompleted.
	CompletionDate *Date
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
