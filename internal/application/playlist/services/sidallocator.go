// Package services provides application services for the playlist context.
package services

import (
	"context"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/shared/errors"
	"github.com/streamgate-io/streamgate/internal/shared/id"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

const (
	// maxAllocationAttempts bounds the number of identifier draws at the
	// default length before falling back to a longer one.
	maxAllocationAttempts = 5
	fallbackSIDLength     = 12
)

// SIDAllocator assigns a unique mirror identifier to a new playlist and
// persists it. Uniqueness is enforced by the storage unique constraint, not
// by a pre-check: a collision surfaces as a duplicate-key error and triggers
// a fresh draw.
type SIDAllocator struct {
	repo   playlist.Repository
	logger logger.Interface
}

func NewSIDAllocator(repo playlist.Repository, logger logger.Interface) *SIDAllocator {
	return &SIDAllocator{
		repo:   repo,
		logger: logger,
	}
}

// AllocateAndCreate draws identifiers until the insert succeeds. Up to
// maxAllocationAttempts draws use the default length; one final draw uses
// the longer fallback length. If that also collides the create fails with
// an allocation exhausted error.
func (a *SIDAllocator) AllocateAndCreate(ctx context.Context, p *playlist.Playlist) error {
	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		sid, err := id.Generate(id.DefaultLength)
		if err != nil {
			return errors.NewInternalError("failed to generate mirror identifier", err.Error())
		}

		created, err := a.tryCreate(ctx, p, sid)
		if err != nil {
			return err
		}
		if created {
			return nil
		}

		a.logger.Warnw("mirror identifier collision, retrying",
			"attempt", attempt,
			"length", id.DefaultLength,
		)
	}

	// Collisions at the default length this many times in a row suggest a
	// crowded identifier space; try once with a longer identifier.
	sid, err := id.Generate(fallbackSIDLength)
	if err != nil {
		return errors.NewInternalError("failed to generate mirror identifier", err.Error())
	}

	created, err := a.tryCreate(ctx, p, sid)
	if err != nil {
		return err
	}
	if created {
		a.logger.Infow("mirror identifier allocated at fallback length",
			"length", fallbackSIDLength,
		)
		return nil
	}

	a.logger.Errorw("mirror identifier allocation exhausted",
		"attempts", maxAllocationAttempts+1,
	)
	return errors.NewAllocationExhaustedError("unable to allocate a unique mirror identifier")
}

// tryCreate assigns the candidate identifier and attempts the insert.
// Returns false without error when the identifier collided.
func (a *SIDAllocator) tryCreate(ctx context.Context, p *playlist.Playlist, sid string) (bool, error) {
	candidate := playlist.Reconstitute(0, "", p.Name(), p.OriginURL(), p.MaxDevices(), p.CreatedAt(), p.UpdatedAt())
	if err := candidate.SetSID(sid); err != nil {
		return false, errors.NewInternalError("failed to assign mirror identifier", err.Error())
	}

	if err := a.repo.Create(ctx, candidate); err != nil {
		if errors.IsDuplicateError(err) {
			return false, nil
		}
		return false, err
	}

	if err := p.SetSID(sid); err != nil {
		return false, errors.NewInternalError("failed to assign mirror identifier", err.Error())
	}
	return true, p.SetID(candidate.ID())
}
