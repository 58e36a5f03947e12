// Package usecases implements the playlist management operations.
package usecases

import (
	"context"

	"github.com/streamgate-io/streamgate/internal/application/playlist/services"
	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/shared/errors"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

type CreatePlaylistCommand struct {
	Name       string
	OriginURL  string
	MaxDevices int
}

type CreatePlaylistUseCase struct {
	allocator *services.SIDAllocator
	logger    logger.Interface
}

func NewCreatePlaylistUseCase(allocator *services.SIDAllocator, logger logger.Interface) *CreatePlaylistUseCase {
	return &CreatePlaylistUseCase{
		allocator: allocator,
		logger:    logger,
	}
}

func (uc *CreatePlaylistUseCase) Execute(ctx context.Context, cmd CreatePlaylistCommand) (*playlist.Playlist, error) {
	p, err := playlist.NewPlaylist(cmd.Name, cmd.OriginURL, cmd.MaxDevices)
	if err != nil {
		uc.logger.Warnw("invalid playlist parameters", "error", err, "name", cmd.Name)
		return nil, errors.NewValidationError("invalid playlist parameters", err.Error())
	}

	if err := uc.allocator.AllocateAndCreate(ctx, p); err != nil {
		uc.logger.Errorw("failed to create playlist", "error", err, "name", cmd.Name)
		return nil, err
	}

	uc.logger.Infow("playlist created",
		"mirror_id", p.SID(),
		"name", p.Name(),
		"max_devices", p.MaxDevices(),
	)
	return p, nil
}
