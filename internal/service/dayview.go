package service

import (
	"context"
	"log"

	"taskgrid/internal/model"
	"taskgrid/internal/repository"
	"taskgrid/internal/schedule"
)

// TaskView is the render-ready shape of one task on one day. It is built
// fresh from persisted state; the stored entities are never mutated to
// carry display fields.
type TaskView struct {
	Task  model.MasterTask
	Items []model.SubTask
	// AllCompleted is true when every visible item is done.
	AllCompleted bool
	// LastCompletionDate is the newest completion among the task's items,
	// set only once every item is complete.
	LastCompletionDate *model.Date
}

// DayView is the full workload of one user on one day.
type DayView struct {
	Date           model.Date
	DailyTasks     []TaskView
	RecurringTasks []TaskView
	TotalGrids     int
	CompletedGrids int
	GridColumns    int
	GridRows       int
	Summary        *model.DailySummary
}

// DayViewService assembles the day view: it runs the lazy reset and the
// retention sweep, selects what is visible, sizes the grid and refreshes
// the summary.
type DayViewService struct {
	tasks   *repository.TaskRepository
	reset   *ResetService
	sweeper *SweeperService
	stats   *StatsService
}

func NewDayViewService(tasks *repository.TaskRepository, reset *ResetService, sweeper *SweeperService, stats *StatsService) *DayViewService {
	return &DayViewService{tasks: tasks, reset: reset, sweeper: sweeper, stats: stats}
}

// BuildDayView computes everything shown for the target day. Reset and
// sweep failures are logged and skipped: state stays as of their last
// successful run and the view is still served. A summary refresh failure
// degrades to the last stored summary.
func (s *DayViewService) BuildDayView(ctx context.Context, userID uint, target model.Date) (*DayView, error) {
	if n, err := s.reset.ResetDueTasks(ctx, userID); err != nil {
		log.Printf("reset recurring tasks for user %d: %v", userID, err)
	} else if n > 0 {
		log.Printf("user %d: reset %d subtasks", userID, n)
	}
	if _, err := s.sweeper.Sweep(ctx, userID); err != nil {
		log.Printf("sweep expired tasks for user %d: %v", userID, err)
	}

	tasks, err := s.tasks.ListWithSubTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &DayView{Date: target}
	for i := range tasks {
		task := &tasks[i]
		if !schedule.IsActive(task, target) {
			continue
		}
		tv, ok := newTaskView(task, target)
		if !ok {
			continue
		}
		if task.RecurrenceType.Recurring() {
			view.RecurringTasks = append(view.RecurringTasks, tv)
		} else {
			view.DailyTasks = append(view.DailyTasks, tv)
		}
		for _, item := range tv.Items {
			view.TotalGrids += item.GridCount
			if item.IsCompleted {
				view.CompletedGrids += item.GridCount
			}
		}
	}
	view.GridColumns, view.GridRows = schedule.Layout(view.TotalGrids)

	summary, err := s.stats.Refresh(ctx, userID)
	if err != nil {
		log.Printf("summary refresh for user %d: %v", userID, err)
		summary, _ = s.stats.Latest(ctx, userID)
	}
	view.Summary = summary

	return view, nil
}

// MonthOpenTaskCounts maps each day of the target's month (ISO date string)
// to the number of one-off tasks due that day that still have open items.
// Drives the calendar day markers.
func (s *DayViewService) MonthOpenTaskCounts(ctx context.Context, userID uint, target model.Date) (map[string]int, error) {
	counts, err := s.tasks.CountOpenByDueDate(ctx, userID, target.FirstOfMonth(), target.FirstOfNextMonth())
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]int, len(counts))
	for _, c := range counts {
		byDay[c.DueDate.String()] = c.Count
	}
	return byDay, nil
}

// newTaskView filters the task's items for the day. ok is false when
// nothing remains visible, which excludes the task from the view entirely.
func newTaskView(task *model.MasterTask, day model.Date) (TaskView, bool) {
	visible := schedule.VisibleSubTasks(task, day)
	if len(visible) == 0 {
		return TaskView{}, false
	}

	tv := TaskView{Task: *task, Items: visible, AllCompleted: true}
	for _, item := range visible {
		if !item.IsCompleted {
			tv.AllCompleted = false
			break
		}
	}

	doneEver := true
	for _, item := range task.SubTasks {
		if !item.IsCompleted {
			doneEver = false
			break
		}
	}
	if doneEver {
		var last *model.Date
		for _, item := range task.SubTasks {
			if item.CompletionDate == nil {
				continue
			}
			if last == nil || item.CompletionDate.After(*last) {
				d := *item.CompletionDate
				last = &d
			}
		}
		tv.LastCompletionDate = last
	}
	return tv, true
}

// dayGridTotals sums visible grid units across every task active on the
// day, for the post-toggle response.
func (s *TaskService) dayGridTotals(ctx context.Context, userID uint, day model.Date) (total, completed int, err error) {
	tasks, err := s.tasks.ListWithSubTasks(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	for i := range tasks {
		task := &tasks[i]
		if !schedule.IsActive(task, day) {
			continue
		}
		for _, item := range schedule.VisibleSubTasks(task, day) {
			total += item.GridCount
			if item.IsCompleted {
				completed += item.GridCount
			}
		}
	}
	return total, completed, nil
}
