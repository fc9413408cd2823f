package statefile

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/waypoint/internal/domain/checkpoint"
)

func TestRepository_LoadMissingFileIsZeroState(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "waypoint.state"))
	ctx := context.Background()

	st, err := repo.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, st.DoneStep)
	assert.Empty(t, st.Variables)
	assert.False(t, repo.Exists(ctx))
}

func TestRepository_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "waypoint.state")
	repo := NewRepository(path)
	ctx := context.Background()

	st := checkpoint.NewState()
	st.Complete(40)
	st.Set(checkpoint.VarProjectID, "acme-prod")

	require.NoError(t, repo.Save(ctx, st))
	assert.True(t, repo.Exists(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "DONE_STEP=40\nPROJECT_ID_SAVED=\"acme-prod\"\n", string(data))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, st, loaded)
}

func TestRepository_SaveIsFullRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waypoint.state")
	repo := NewRepository(path)
	ctx := context.Background()

	first := checkpoint.NewState()
	first.Complete(10)
	first.Set(checkpoint.VarProjectID, "a-much-longer-project-identifier")
	require.NoError(t, repo.Save(ctx, first))

	second := checkpoint.NewState()
	second.Complete(20)
	require.NoError(t, repo.Save(ctx, second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "DONE_STEP=20\n", string(data))
}

func TestRepository_LoadToleratesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waypoint.state")
	require.NoError(t, os.WriteFile(path, []byte("\x00\x01 not a state file\nDONE_STEP=20\n"), 0o644))

	st, err := NewRepository(path).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 20, st.DoneStep)
}

func TestRepository_LoadUnreadableIsZeroStateWithError(t *testing.T) {
	dir := t.TempDir()
	// A directory at the state path cannot be read as a file.
	path := filepath.Join(dir, "waypoint.state")
	require.NoError(t, os.Mkdir(path, 0o755))

	st, err := NewRepository(path).Load(context.Background())

	require.ErrorIs(t, err, checkpoint.ErrLoadFailed)
	assert.Equal(t, 0, st.DoneStep)
}

func TestRepository_SaveRejectsInvalidState(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "waypoint.state"))
	st := checkpoint.NewState()
	st.Set(checkpoint.VarProjectID, "line\nbreak")

	err := repo.Save(context.Background(), st)

	require.ErrorIs(t, err, checkpoint.ErrSaveFailed)
	require.ErrorIs(t, err, checkpoint.ErrInvalidVariable)
	assert.False(t, repo.Exists(context.Background()))
}

func TestRepository_SaveFailsWhenDirectoryCannotBeCreated(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("path semantics differ on windows")
	}
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	repo := NewRepository(filepath.Join(blocker, "waypoint.state"))
	err := repo.Save(context.Background(), checkpoint.NewState())

	assert.ErrorIs(t, err, checkpoint.ErrSaveFailed)
}

func TestRepository_Path(t *testing.T) {
	assert.Equal(t, "/tmp/x.state", NewRepository("/tmp/x.state").Path())
}
