package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskgrid/internal/model"
)

func TestNewDBEnforcesForeignKeys(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	// An item pointing at a master task that does not exist must be
	// rejected, on whichever pooled connection the insert lands.
	tasks := NewTaskRepository(db)
	err = tasks.AddSubTasks(context.Background(), 9999, []model.SubTask{
		{Content: "orphan", GridCount: 1},
	})
	assert.Error(t, err)
}

func TestEnsureDataDirCreatesParent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "data", "test.db")
	db, err := NewDB(dsn)
	require.NoError(t, err)
	require.NotNil(t, db)
}
