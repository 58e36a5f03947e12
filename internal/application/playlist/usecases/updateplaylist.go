package usecases

import (
	"context"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/shared/errors"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

// CacheInvalidator drops a cached playlist lookup after a write so the proxy
// path observes the change on its next request.
type CacheInvalidator interface {
	Delete(sid string)
}

type UpdatePlaylistCommand struct {
	SID        string
	Name       *string
	OriginURL  *string
	MaxDevices *int
}

type UpdatePlaylistUseCase struct {
	playlistRepo playlist.Repository
	cache        CacheInvalidator
	logger       logger.Interface
}

func NewUpdatePlaylistUseCase(
	playlistRepo playlist.Repository,
	cache CacheInvalidator,
	logger logger.Interface,
) *UpdatePlaylistUseCase {
	return &UpdatePlaylistUseCase{
		playlistRepo: playlistRepo,
		cache:        cache,
		logger:       logger,
	}
}

func (uc *UpdatePlaylistUseCase) Execute(ctx context.Context, cmd UpdatePlaylistCommand) (*playlist.Playlist, error) {
	p, err := uc.playlistRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := p.Rename(*cmd.Name); err != nil {
			return nil, errors.NewValidationError("invalid playlist name", err.Error())
		}
	}
	if cmd.OriginURL != nil {
		if err := p.UpdateOriginURL(*cmd.OriginURL); err != nil {
			return nil, errors.NewValidationError("invalid origin URL", err.Error())
		}
	}
	if cmd.MaxDevices != nil {
		if err := p.UpdateMaxDevices(*cmd.MaxDevices); err != nil {
			return nil, errors.NewValidationError("invalid device cap", err.Error())
		}
	}

	if err := uc.playlistRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update playlist", "error", err, "mirror_id", cmd.SID)
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Delete(cmd.SID)
	}

	uc.logger.Infow("playlist updated",
		"mirror_id", p.SID(),
		"name", p.Name(),
		"max_devices", p.MaxDevices(),
	)
	return p, nil
}
