package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gorm.io/gorm"

	"taskgrid/internal/model"
	"taskgrid/internal/repository"
)

// stubClock is a settable Clock so tests can walk across days.
type stubClock struct {
	day model.Date
}

func (c *stubClock) Today() model.Date { return c.day }

func (c *stubClock) set(d model.Date) { c.day = d }

type testEnv struct {
	clk       *stubClock
	db        *gorm.DB
	user      *model.User
	tasks     *repository.TaskRepository
	summaries *repository.SummaryRepository
	templates *repository.TemplateRepository

	taskSvc     *TaskService
	statsSvc    *StatsService
	resetSvc    *ResetService
	sweeperSvc  *SweeperService
	dayViewSvc  *DayViewService
	habitSvc    *HabitService
	templateSvc *TemplateService
}

func newTestEnv(t *testing.T, today model.Date) *testEnv {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	clk := &stubClock{day: today}
	env := &testEnv{
		clk:       clk,
		db:        db,
		tasks:     repository.NewTaskRepository(db),
		summaries: repository.NewSummaryRepository(db),
		templates: repository.NewTemplateRepository(db),
	}

	users := repository.NewUserRepository(db)
	env.user, err = users.GetOrCreate(context.Background(), "tester")
	require.NoError(t, err)

	env.statsSvc = NewStatsService(env.summaries, clk)
	env.taskSvc = NewTaskService(env.tasks, env.statsSvc, clk)
	env.resetSvc = NewResetService(env.tasks, clk)
	env.sweeperSvc = NewSweeperService(env.tasks, clk)
	env.dayViewSvc = NewDayViewService(env.tasks, env.resetSvc, env.sweeperSvc, env.statsSvc)
	env.habitSvc = NewHabitService(env.tasks)
	env.templateSvc = NewTemplateService(env.templates)
	return env
}

// createTask is a shorthand for CreateTask with single-unit items.
func (env *testEnv) createTask(t *testing.T, input TaskInput) *model.MasterTask {
	t.Helper()
	task, err := env.taskSvc.CreateTask(context.Background(), env.user.ID, input)
	require.NoError(t, err)
	return task
}

// completeOn toggles a subtask to completed with the clock set to the given
// day, then restores the clock.
func (env *testEnv) completeOn(t *testing.T, subtaskID uint, day model.Date) {
	t.Helper()
	prev := env.clk.day
	env.clk.set(day)
	res, err := env.taskSvc.Toggle(context.Background(), env.user.ID, subtaskID, nil)
	require.NoError(t, err)
	require.True(t, res.IsCompleted)
	env.clk.set(prev)
}

// dropSummaries removes the daily_summaries table so every statistics query
// fails, for tests of the degraded paths.
func (env *testEnv) dropSummaries(t *testing.T) {
	t.Helper()
	require.NoError(t, env.db.Migrator().DropTable(&model.DailySummary{}))
}

func day(y int, m time.Month, d int) model.Date {
	return model.NewDate(y, m, d)
}

func items(counts ...int) []ItemInput {
	out := make([]ItemInput, 0, len(counts))
	for i, grids := range counts {
		out = append(out, ItemInput{Content: fmt.Sprintf("item %d", i+1), GridCount: grids})
	}
	return out
}
