package usecases

import (
	"context"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
	"github.com/streamgate-io/streamgate/internal/shared/utils"
)

type ListPlaylistsResult struct {
	Playlists []*playlist.Playlist
	Total     int64
}

type ListPlaylistsUseCase struct {
	playlistRepo playlist.Repository
	logger       logger.Interface
}

func NewListPlaylistsUseCase(playlistRepo playlist.Repository, logger logger.Interface) *ListPlaylistsUseCase {
	return &ListPlaylistsUseCase{
		playlistRepo: playlistRepo,
		logger:       logger,
	}
}

func (uc *ListPlaylistsUseCase) Execute(ctx context.Context, pagination utils.Pagination) (*ListPlaylistsResult, error) {
	playlists, total, err := uc.playlistRepo.List(ctx, pagination.Offset(), pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list playlists", "error", err)
		return nil, err
	}
	return &ListPlaylistsResult{
		Playlists: playlists,
		Total:     total,
	}, nil
}
