package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskgrid/internal/model"
)

// TaskRepository handles CRUD and the bulk reset/sweep batches for master
// tasks and their subtask items.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.MasterTask) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.MasterTask, error) {
	var task model.MasterTask
	if err := r.db.WithContext(ctx).Preload("SubTasks", subTaskOrder).First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindSubTask(ctx context.Context, subtaskID uint) (*model.SubTask, error) {
	var sub model.SubTask
	if err := r.db.WithContext(ctx).First(&sub, subtaskID).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *TaskRepository) SaveSubTask(ctx context.Context, sub *model.SubTask) error {
	if err := r.db.WithContext(ctx).Save(sub).Error; err != nil {
		return fmt.Errorf("save subtask: %w", err)
	}
	return nil
}

// ListWithSubTasks returns every master task of the user that has at least
// one item, ordered urgent first, then by due date and ID, with items
// preloaded in creation order.
func (r *TaskRepository) ListWithSubTasks(ctx context.Context, userID uint) ([]model.MasterTask, error) {
	var tasks []model.MasterTask
	err := r.db.WithContext(ctx).
		Preload("SubTasks", subTaskOrder).
		Where("user_id = ?", userID).
		Where("EXISTS (SELECT 1 FROM sub_tasks WHERE sub_tasks.master_id = master_tasks.id)").
		Order("is_urgent DESC, due_date ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListStaleRecurring returns the user's recurring tasks whose last reset
// happened before today, or never.
func (r *TaskRepository) ListStaleRecurring(ctx context.Context, userID uint, today model.Date) ([]model.MasterTask, error) {
	var tasks []model.MasterTask
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recurrence_type <> ?", userID, model.RecurrenceNone).
		Where("last_reset_date IS NULL OR last_reset_date < ?", today).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list stale recurring: %w", err)
	}
	return tasks, nil
}

// ResetCompletion clears the completion flag and date on every completed
// item of the given tasks and stamps their last reset date, all in one
// transaction so a failure leaves no half-reset task behind.
func (r *TaskRepository) ResetCompletion(ctx context.Context, taskIDs []uint, today model.Date) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	var cleared int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.SubTask{}).
			Where("master_id IN ? AND is_completed = ?", taskIDs, true).
			Updates(map[string]interface{}{"is_completed": false, "completion_date": nil})
		if res.Error != nil {
			return res.Error
		}
		cleared = res.RowsAffected
		return tx.Model(&model.MasterTask{}).
			Where("id IN ?", taskIDs).
			Update("last_reset_date", today).Error
	})
	if err != nil {
		return 0, fmt.Errorf("reset completion: %w", err)
	}
	return cleared, nil
}

// SweepExpired deletes completed items of non-recurring tasks whose
// completion date fell before cutoff, then removes master tasks left with
// no item that is still open or completed within the horizon.
func (r *TaskRepository) SweepExpired(ctx context.Context, userID uint, cutoff model.Date) (subtasks, masters int64, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var masterIDs []uint
		if err := tx.Model(&model.SubTask{}).
			Distinct("sub_tasks.master_id").
			Joins("JOIN master_tasks ON master_tasks.id = sub_tasks.master_id").
			Where("master_tasks.user_id = ? AND master_tasks.recurrence_type = ?", userID, model.RecurrenceNone).
			Where("sub_tasks.is_completed = ? AND sub_tasks.completion_date < ?", true, cutoff).
			Pluck("sub_tasks.master_id", &masterIDs).Error; err != nil {
			return err
		}
		if len(masterIDs) == 0 {
			return nil
		}

		res := tx.Where("master_id IN ?", masterIDs).
			Where("is_completed = ? AND completion_date < ?", true, cutoff).
			Delete(&model.SubTask{})
		if res.Error != nil {
			return res.Error
		}
		subtasks = res.RowsAffected

		res = tx.Where("id IN ?", masterIDs).
			Where("NOT EXISTS (SELECT 1 FROM sub_tasks WHERE sub_tasks.master_id = master_tasks.id AND (sub_tasks.is_completed = ? OR sub_tasks.completion_date >= ?))", false, cutoff).
			Delete(&model.MasterTask{})
		if res.Error != nil {
			return res.Error
		}
		masters = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("sweep expired: %w", err)
	}
	return subtasks, masters, nil
}

// ReplaceItems updates the master task fields and swaps its item set in one
// transaction.
func (r *TaskRepository) ReplaceItems(ctx context.Context, task *model.MasterTask, items []model.SubTask) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("master_id = ?", task.ID).Delete(&model.SubTask{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].MasterID = task.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		task.SubTasks = nil
		return tx.Save(task).Error
	})
	if err != nil {
		return fmt.Errorf("replace items: %w", err)
	}
	task.SubTasks = items
	return nil
}

func (r *TaskRepository) AddSubTasks(ctx context.Context, masterID uint, items []model.SubTask) error {
	for i := range items {
		items[i].MasterID = masterID
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("add subtasks: %w", err)
	}
	return nil
}

// Delete removes a task together with its items.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("master_id = ?", taskID).Delete(&model.SubTask{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.MasterTask{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// FindOneOff looks up a non-recurring task by exact title and due date.
func (r *TaskRepository) FindOneOff(ctx context.Context, userID uint, title string, due model.Date) (*model.MasterTask, error) {
	var task model.MasterTask
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND title = ? AND due_date = ? AND recurrence_type = ?",
			userID, title, due, model.RecurrenceNone).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DueDateCount pairs a due date with the number of open tasks on it.
type DueDateCount struct {
	DueDate model.Date
	Count   int
}

// CountOpenByDueDate counts non-recurring tasks that still have an
// incomplete item, grouped by due date within [from, to). Feeds the
// calendar day markers.
func (r *TaskRepository) CountOpenByDueDate(ctx context.Context, userID uint, from, to model.Date) ([]DueDateCount, error) {
	var counts []DueDateCount
	err := r.db.WithContext(ctx).Model(&model.MasterTask{}).
		Select("due_date, COUNT(id) AS count").
		Where("user_id = ? AND recurrence_type = ?", userID, model.RecurrenceNone).
		Where("due_date >= ? AND due_date < ?", from, to).
		Where("EXISTS (SELECT 1 FROM sub_tasks WHERE sub_tasks.master_id = master_tasks.id AND sub_tasks.is_completed = ?)", false).
		Group("due_date").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count open by due date: %w", err)
	}
	return counts, nil
}

// HabitCompletion is one habit-tagged task completed on a given day.
type HabitCompletion struct {
	Day   model.Date
	Title string
}

// HabitCompletions returns the distinct (day, title) pairs of completed
// items belonging to habit-tagged tasks within [from, to].
func (r *TaskRepository) HabitCompletions(ctx context.Context, userID uint, from, to model.Date) ([]HabitCompletion, error) {
	var marks []HabitCompletion
	err := r.db.WithContext(ctx).Model(&model.SubTask{}).
		Select("DISTINCT sub_tasks.completion_date AS day, master_tasks.title AS title").
		Joins("JOIN master_tasks ON master_tasks.id = sub_tasks.master_id").
		Where("master_tasks.user_id = ? AND master_tasks.is_habit = ?", userID, true).
		Where("sub_tasks.is_completed = ? AND sub_tasks.completion_date >= ? AND sub_tasks.completion_date <= ?", true, from, to).
		Order("day ASC").
		Scan(&marks).Error
	if err != nil {
		return nil, fmt.Errorf("habit completions: %w", err)
	}
	return marks, nil
}

func subTaskOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sub_tasks.id ASC")
}
