// Package usecases implements the mirror proxy request pipeline: resolving a
// mirror identifier, admitting the device against the playlist's concurrent
// cap, fetching the origin and framing the response.
package usecases

import (
	"context"
	"time"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/domain/session"
	"github.com/streamgate-io/streamgate/internal/shared/biztime"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

// AdmitDecision is the outcome of one admission check. A rejection is a
// normal outcome, not an error; errors mean the check itself failed.
type AdmitDecision struct {
	Admitted    bool
	IsNewDevice bool
	ActiveCount int64
}

// AdmitDeviceUseCase enforces the concurrent device cap. An already active
// device is always admitted, so the cap can never lock out a device that is
// mid-session. New devices are admitted only while the active count is below
// the playlist's cap.
type AdmitDeviceUseCase struct {
	sessionRepo session.Repository
	eventRepo   session.EventRepository
	sessionTTL  time.Duration
	logger      logger.Interface
}

func NewAdmitDeviceUseCase(
	sessionRepo session.Repository,
	eventRepo session.EventRepository,
	sessionTTL time.Duration,
	logger logger.Interface,
) *AdmitDeviceUseCase {
	return &AdmitDeviceUseCase{
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

func (uc *AdmitDeviceUseCase) Execute(
	ctx context.Context,
	p *playlist.Playlist,
	identity session.ClientIdentity,
	class session.DeviceClass,
) (*AdmitDecision, error) {
	active, err := uc.sessionRepo.IsCurrentlyActive(ctx, p.ID(), identity, uc.sessionTTL)
	if err != nil {
		return nil, err
	}

	if active {
		// Heartbeat for a device already inside the window. Never counted
		// against the cap.
		if _, err := uc.sessionRepo.Touch(ctx, p.ID(), identity, class); err != nil {
			return nil, err
		}
		uc.recordAccess(ctx, p.ID(), identity, class)
		return &AdmitDecision{Admitted: true}, nil
	}

	count, err := uc.sessionRepo.ActiveCount(ctx, p.ID(), uc.sessionTTL)
	if err != nil {
		return nil, err
	}

	if count >= int64(p.MaxDevices()) {
		uc.logger.Warnw("device rejected: concurrent cap reached",
			"mirror_id", p.SID(),
			"active_devices", count,
			"max_devices", p.MaxDevices(),
			"device_type", class,
		)
		return &AdmitDecision{Admitted: false, ActiveCount: count}, nil
	}

	isNew, err := uc.sessionRepo.Touch(ctx, p.ID(), identity, class)
	if err != nil {
		return nil, err
	}

	uc.recordAccess(ctx, p.ID(), identity, class)
	uc.logger.Infow("device admitted",
		"mirror_id", p.SID(),
		"new_device", isNew,
		"device_type", class,
	)
	return &AdmitDecision{Admitted: true, IsNewDevice: isNew, ActiveCount: count + 1}, nil
}

// recordAccess appends the audit event. Audit failures never fail admission.
func (uc *AdmitDeviceUseCase) recordAccess(ctx context.Context, playlistID uint, identity session.ClientIdentity, class session.DeviceClass) {
	if uc.eventRepo == nil {
		return
	}
	event := &session.AccessEvent{
		PlaylistID:    playlistID,
		IdentityToken: identity.Token(),
		UserAgent:     identity.UserAgent(),
		DeviceType:    class,
		OccurredAt:    biztime.NowUTC(),
	}
	if err := uc.eventRepo.Append(ctx, event); err != nil {
		uc.logger.Warnw("failed to record access event", "error", err, "playlist_id", playlistID)
	}
}
