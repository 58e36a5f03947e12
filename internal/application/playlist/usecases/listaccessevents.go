package usecases

import (
	"context"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/domain/session"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

type ListAccessEventsUseCase struct {
	playlistRepo playlist.Repository
	eventRepo    session.EventRepository
	logger       logger.Interface
}

func NewListAccessEventsUseCase(
	playlistRepo playlist.Repository,
	eventRepo session.EventRepository,
	logger logger.Interface,
) *ListAccessEventsUseCase {
	return &ListAccessEventsUseCase{
		playlistRepo: playlistRepo,
		eventRepo:    eventRepo,
		logger:       logger,
	}
}

func (uc *ListAccessEventsUseCase) Execute(ctx context.Context, sid string, limit int) ([]*session.AccessEvent, error) {
	p, err := uc.playlistRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	events, err := uc.eventRepo.ListByPlaylist(ctx, p.ID(), limit)
	if err != nil {
		uc.logger.Errorw("failed to list access events", "error", err, "mirror_id", sid)
		return nil, err
	}
	return events, nil
}
