package usecases

import (
	"context"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/domain/session"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

type DeletePlaylistUseCase struct {
	playlistRepo playlist.Repository
	sessionRepo  session.Repository
	cache        CacheInvalidator
	logger       logger.Interface
}

func NewDeletePlaylistUseCase(
	playlistRepo playlist.Repository,
	sessionRepo session.Repository,
	cache CacheInvalidator,
	logger logger.Interface,
) *DeletePlaylistUseCase {
	return &DeletePlaylistUseCase{
		playlistRepo: playlistRepo,
		sessionRepo:  sessionRepo,
		cache:        cache,
		logger:       logger,
	}
}

func (uc *DeletePlaylistUseCase) Execute(ctx context.Context, sid string) error {
	p, err := uc.playlistRepo.GetBySID(ctx, sid)
	if err != nil {
		return err
	}

	if err := uc.sessionRepo.DeleteByPlaylist(ctx, p.ID()); err != nil {
		uc.logger.Errorw("failed to delete playlist sessions", "error", err, "mirror_id", sid)
		return err
	}

	if err := uc.playlistRepo.Delete(ctx, sid); err != nil {
		uc.logger.Errorw("failed to delete playlist", "error", err, "mirror_id", sid)
		return err
	}

	if uc.cache != nil {
		uc.cache.Delete(sid)
	}

	uc.logger.Infow("playlist deleted", "mirror_id", sid, "name", p.Name())
	return nil
}
