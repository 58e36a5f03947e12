package usecases

import (
	"context"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

type GetPlaylistUseCase struct {
	playlistRepo playlist.Repository
	logger       logger.Interface
}

func NewGetPlaylistUseCase(playlistRepo playlist.Repository, logger logger.Interface) *GetPlaylistUseCase {
	return &GetPlaylistUseCase{
		playlistRepo: playlistRepo,
		logger:       logger,
	}
}

func (uc *GetPlaylistUseCase) Execute(ctx context.Context, sid string) (*playlist.Playlist, error) {
	p, err := uc.playlistRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	return p, nil
}
