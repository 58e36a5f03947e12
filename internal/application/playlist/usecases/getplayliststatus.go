package usecases

import (
	"context"
	"time"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/domain/session"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

// GetPlaylistStatusResult pairs a playlist with its live session figures.
type GetPlaylistStatusResult struct {
	Playlist      *playlist.Playlist
	ActiveDevices int64
	Sessions      []*session.DeviceSession
}

type GetPlaylistStatusUseCase struct {
	playlistRepo playlist.Repository
	sessionRepo  session.Repository
	sessionTTL   time.Duration
	logger       logger.Interface
}

func NewGetPlaylistStatusUseCase(
	playlistRepo playlist.Repository,
	sessionRepo session.Repository,
	sessionTTL time.Duration,
	logger logger.Interface,
) *GetPlaylistStatusUseCase {
	return &GetPlaylistStatusUseCase{
		playlistRepo: playlistRepo,
		sessionRepo:  sessionRepo,
		sessionTTL:   sessionTTL,
		logger:       logger,
	}
}

func (uc *GetPlaylistStatusUseCase) Execute(ctx context.Context, sid string) (*GetPlaylistStatusResult, error) {
	p, err := uc.playlistRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	active, err := uc.sessionRepo.ActiveCount(ctx, p.ID(), uc.sessionTTL)
	if err != nil {
		uc.logger.Errorw("failed to count active sessions", "error", err, "mirror_id", sid)
		return nil, err
	}

	sessions, err := uc.sessionRepo.ListByPlaylist(ctx, p.ID())
	if err != nil {
		uc.logger.Errorw("failed to list sessions", "error", err, "mirror_id", sid)
		return nil, err
	}

	return &GetPlaylistStatusResult{
		Playlist:      p,
		ActiveDevices: active,
		Sessions:      sessions,
	}, nil
}
