package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"taskgrid/internal/clock"
	"taskgrid/internal/model"
	"taskgrid/internal/repository"
	"taskgrid/internal/schedule"
)

// ItemInput is one subtask line of a task form.
type ItemInput struct {
	Content   string
	GridCount int
}

// TaskInput carries everything needed to create or rewrite a master task.
type TaskInput struct {
	Title          string
	DueDate        *model.Date // nil means today
	IsUrgent       bool
	IsHabit        bool
	Recurrence     model.RecurrenceType
	RecurrenceDays string
	Items          []ItemInput
}

// TaskService wraps task CRUD and the completion toggle.
type TaskService struct {
	tasks *repository.TaskRepository
	stats *StatsService
	clock clock.Clock
}

func NewTaskService(tasks *repository.TaskRepository, stats *StatsService, clk clock.Clock) *TaskService {
	return &TaskService{tasks: tasks, stats: stats, clock: clk}
}

func (s *TaskService) CreateTask(ctx context.Context, userID uint, input TaskInput) (*model.MasterTask, error) {
	task, items, err := s.buildTask(userID, input)
	if err != nil {
		return nil, err
	}
	task.SubTasks = items
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask rewrites the task's fields and replaces its item set. Editing
// a recurring task clears the reset marker so the next view load
// re-evaluates the schedule from scratch.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uint, input TaskInput) (*model.MasterTask, error) {
	existing, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	updated, items, err := s.buildTask(userID, input)
	if err != nil {
		return nil, err
	}
	existing.Title = updated.Title
	existing.DueDate = updated.DueDate
	existing.IsUrgent = updated.IsUrgent
	existing.IsHabit = updated.IsHabit
	existing.RecurrenceType = updated.RecurrenceType
	existing.RecurrenceDays = updated.RecurrenceDays
	if existing.RecurrenceType.Recurring() {
		existing.LastResetDate = nil
	}

	if err := s.tasks.ReplaceItems(ctx, existing, items); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint) error {
	if _, err := s.ownedTask(ctx, userID, taskID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, userID, taskID)
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID uint) (*model.MasterTask, error) {
	return s.ownedTask(ctx, userID, taskID)
}

// ToggleResult is what the caller needs to redraw after a toggle: the new
// item state, the owning task's recomputed view for the requested day, the
// day's grid totals and the refreshed summary.
type ToggleResult struct {
	IsCompleted    bool
	Task           *TaskView
	TotalGrids     int
	CompletedGrids int
	Summary        *model.DailySummary
}

// Toggle flips a subtask's completion flag. Completion is always stamped
// with today's date as the server sees it; the optional target date only
// selects which day's view is recomputed in the result. Un-completing an
// item of a recurring task keeps the stale completion date until the next
// scheduled reset clears flag and date together.
func (s *TaskService) Toggle(ctx context.Context, userID, subtaskID uint, target *model.Date) (*ToggleResult, error) {
	sub, err := s.tasks.FindSubTask(ctx, subtaskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("subtask %d: %w", subtaskID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find subtask: %w", err)
	}
	master, err := s.tasks.FindByID(ctx, sub.MasterID)
	if err != nil {
		return nil, fmt.Errorf("find master task: %w", err)
	}
	if master.UserID != userID {
		return nil, fmt.Errorf("subtask %d: %w", subtaskID, ErrPermissionDenied)
	}

	today := s.clock.Today()
	day := today
	if target != nil {
		day = *target
	}

	sub.IsCompleted = !sub.IsCompleted
	if sub.IsCompleted {
		stamp := today
		sub.CompletionDate = &stamp
	} else if !master.RecurrenceType.Recurring() {
		sub.CompletionDate = nil
	}
	if err := s.tasks.SaveSubTask(ctx, sub); err != nil {
		return nil, err
	}

	// The toggle is committed; a failing statistics refresh must not undo
	// it. Fall back to the last stored summary.
	summary, err := s.stats.Refresh(ctx, userID)
	if err != nil {
		log.Printf("stats refresh after toggle for user %d: %v", userID, err)
		summary, _ = s.stats.Latest(ctx, userID)
	}

	master, err = s.tasks.FindByID(ctx, sub.MasterID)
	if err != nil {
		return nil, fmt.Errorf("reload master task: %w", err)
	}
	view, ok := newTaskView(master, day)
	if !ok {
		// Nothing visible on the requested day; still return the task so
		// the caller can drop its card.
		view = TaskView{Task: *master}
	}

	total, completed, err := s.dayGridTotals(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	return &ToggleResult{
		IsCompleted:    sub.IsCompleted,
		Task:           &view,
		TotalGrids:     total,
		CompletedGrids: completed,
		Summary:        summary,
	}, nil
}

// AppendQuickItems adds free-form lines to today's quick-task master,
// creating it on first use. Blank lines are dropped; each item weighs one
// grid unit.
func (s *TaskService) AppendQuickItems(ctx context.Context, userID uint, contents []string) (*model.MasterTask, error) {
	var items []model.SubTask
	for _, c := range contents {
		if c = strings.TrimSpace(c); c != "" {
			items = append(items, model.SubTask{Content: c, GridCount: 1})
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no usable quick items: %w", ErrInvalidInput)
	}

	today := s.clock.Today()
	title := quickTaskTitle(today)
	master, err := s.tasks.FindOneOff(ctx, userID, title, today)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		master = &model.MasterTask{
			UserID:         userID,
			Title:          title,
			DueDate:        today,
			RecurrenceType: model.RecurrenceNone,
		}
		if err := s.tasks.Create(ctx, master); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("find quick task: %w", err)
	}

	if err := s.tasks.AddSubTasks(ctx, master.ID, items); err != nil {
		return nil, err
	}
	return s.tasks.FindByID(ctx, master.ID)
}

func quickTaskTitle(day model.Date) string {
	return fmt.Sprintf("Quick tasks %s", day)
}

func (s *TaskService) ownedTask(ctx context.Context, userID, taskID uint) (*model.MasterTask, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("task %d: %w", taskID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	if task.UserID != userID {
		return nil, fmt.Errorf("task %d: %w", taskID, ErrPermissionDenied)
	}
	return task, nil
}

// buildTask validates the input and assembles an unsaved task with its
// items.
func (s *TaskService) buildTask(userID uint, input TaskInput) (*model.MasterTask, []model.SubTask, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, nil, fmt.Errorf("title is required: %w", ErrInvalidInput)
	}

	due := s.clock.Today()
	if input.DueDate != nil {
		due = *input.DueDate
	}

	recurrence := input.Recurrence
	if recurrence == "" {
		recurrence = model.RecurrenceNone
	}
	days := ""
	switch recurrence {
	case model.RecurrenceNone, model.RecurrenceDaily:
	case model.RecurrenceWeekly:
		days = input.RecurrenceDays
		if !schedule.ValidWeekdays(days) {
			return nil, nil, fmt.Errorf("weekly schedule needs weekdays 0-6: %w", ErrInvalidInput)
		}
	default:
		return nil, nil, fmt.Errorf("unknown recurrence %q: %w", recurrence, ErrInvalidInput)
	}

	items := validItems(input.Items)
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("at least one item with a positive grid count is required: %w", ErrInvalidInput)
	}

	task := &model.MasterTask{
		UserID:         userID,
		Title:          title,
		DueDate:        due,
		IsUrgent:       input.IsUrgent,
		IsHabit:        input.IsHabit,
		RecurrenceType: recurrence,
		RecurrenceDays: days,
	}
	return task, items, nil
}

// validItems keeps the usable lines, mirroring the form handling: blank
// content or a non-positive grid count drops the line rather than failing
// the whole task.
func validItems(inputs []ItemInput) []model.SubTask {
	var items []model.SubTask
	for _, in := range inputs {
		content := strings.TrimSpace(in.Content)
		if content == "" || in.GridCount <= 0 {
			continue
		}
		items = append(items, model.SubTask{Content: content, GridCount: in.GridCount})
	}
	return items
}
