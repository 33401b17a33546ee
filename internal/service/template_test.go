package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateSaveUpsertsByTitle(t *testing.T) {
	env := newTestEnv(t, day(2024, time.May, 1))
	ctx := context.Background()

	first, err := env.templateSvc.Save(ctx, env.user.ID, "Morning", []ItemInput{
		{Content: "stretch", GridCount: 1},
		{Content: "", GridCount: 3}, // dropped
	})
	require.NoError(t, err)
	require.Len(t, first.Items, 1)

	second, err := env.templateSvc.Save(ctx, env.user.ID, "Morning", []ItemInput{
		{Content: "stretch", GridCount: 1},
		{Content: "coffee", GridCount: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, second.Items, 2)

	all, err := env.templateSvc.List(ctx, env.user.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Items, 2)
}

func TestTemplateSaveValidation(t *testing.T) {
	env := newTestEnv(t, day(2024, time.May, 1))
	ctx := context.Background()

	_, err := env.templateSvc.Save(ctx, env.user.ID, "  ", []ItemInput{{Content: "x", GridCount: 1}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.templateSvc.Save(ctx, env.user.ID, "Empty", []ItemInput{{Content: "", GridCount: 1}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTemplateMaterializeAndCreate(t *testing.T) {
	today := day(2024, time.May, 1)
	env := newTestEnv(t, today)
	ctx := context.Background()

	tpl, err := env.templateSvc.Save(ctx, env.user.ID, "Evening", []ItemInput{
		{Content: "dishes", GridCount: 2},
		{Content: "journal", GridCount: 1},
	})
	require.NoError(t, err)

	input, err := env.templateSvc.Materialize(ctx, env.user.ID, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Evening", input.Title)
	require.Len(t, input.Items, 2)

	task, err := env.taskSvc.CreateTask(ctx, env.user.ID, input)
	require.NoError(t, err)
	assert.Len(t, task.SubTasks, 2)
	assert.Equal(t, today.String(), task.DueDate.String())
}

func TestTemplateOwnershipAndDelete(t *testing.T) {
	env := newTestEnv(t, day(2024, time.May, 1))
	ctx := context.Background()

	tpl, err := env.templateSvc.Save(ctx, env.user.ID, "Mine", []ItemInput{{Content: "x", GridCount: 1}})
	require.NoError(t, err)

	_, err = env.templateSvc.Materialize(ctx, env.user.ID+1, tpl.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = env.templateSvc.Delete(ctx, env.user.ID+1, tpl.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = env.templateSvc.Delete(ctx, env.user.ID, tpl.ID)
	require.NoError(t, err)

	err = env.templateSvc.Delete(ctx, env.user.ID, tpl.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
