package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/shared/errors"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

func createTestPlaylist(t *testing.T, sid, name string) *playlist.Playlist {
	t.Helper()
	p, err := playlist.NewPlaylist(name, "http://origin.example.com/list.m3u", 3)
	require.NoError(t, err)
	require.NoError(t, p.SetSID(sid))
	return p
}

func TestPlaylistRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db, logger.NewLogger())
	ctx := context.Background()

	p := createTestPlaylist(t, "aB3dE5fG", "Living Room")
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID())

	found, err := repo.GetBySID(ctx, "aB3dE5fG")
	require.NoError(t, err)
	assert.Equal(t, "Living Room", found.Name())
	assert.Equal(t, "http://origin.example.com/list.m3u", found.OriginURL())
	assert.Equal(t, 3, found.MaxDevices())
}

func TestPlaylistRepository_Create_DuplicateSID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestPlaylist(t, "aB3dE5fG", "First")))

	err := repo.Create(ctx, createTestPlaylist(t, "aB3dE5fG", "Second"))
	require.Error(t, err)
	assert.True(t, errors.IsDuplicateError(err), "a colliding mirror identifier must be detectable as a duplicate")
}

func TestPlaylistRepository_GetBySID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db, logger.NewLogger())

	_, err := repo.GetBySID(context.Background(), "missing1")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestPlaylistRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestPlaylist(t, "sid00001", "One")))
	require.NoError(t, repo.Create(ctx, createTestPlaylist(t, "sid00002", "Two")))
	require.NoError(t, repo.Create(ctx, createTestPlaylist(t, "sid00003", "Three")))

	playlists, total, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, playlists, 2)
}

func TestPlaylistRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db, logger.NewLogger())
	ctx := context.Background()

	p := createTestPlaylist(t, "aB3dE5fG", "Old Name")
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, p.Rename("New Name"))
	require.NoError(t, p.UpdateMaxDevices(5))
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.GetBySID(ctx, "aB3dE5fG")
	require.NoError(t, err)
	assert.Equal(t, "New Name", found.Name())
	assert.Equal(t, 5, found.MaxDevices())
}

func TestPlaylistRepository_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db, logger.NewLogger())

	p := createTestPlaylist(t, "aB3dE5fG", "Unsaved")
	err := repo.Update(context.Background(), p)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestPlaylistRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestPlaylist(t, "aB3dE5fG", "Doomed")))
	require.NoError(t, repo.Delete(ctx, "aB3dE5fG"))

	_, err := repo.GetBySID(ctx, "aB3dE5fG")
	assert.True(t, errors.IsNotFoundError(err))

	err = repo.Delete(ctx, "aB3dE5fG")
	assert.True(t, errors.IsNotFoundError(err))
}
