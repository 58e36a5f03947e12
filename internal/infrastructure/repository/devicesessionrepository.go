package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/streamgate-io/streamgate/internal/domain/session"
	"github.com/streamgate-io/streamgate/internal/infrastructure/persistence/mappers"
	"github.com/streamgate-io/streamgate/internal/infrastructure/persistence/models"
	"github.com/streamgate-io/streamgate/internal/shared/biztime"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

type DeviceSessionRepository struct {
	db     *gorm.DB
	mapper mappers.DeviceSessionMapper
	logger logger.Interface
}

func NewDeviceSessionRepository(db *gorm.DB, log logger.Interface) session.Repository {
	return &DeviceSessionRepository{
		db:     db,
		mapper: mappers.NewDeviceSessionMapper(),
		logger: log,
	}
}

// Touch upserts the session for the (playlist, identity) pair. The insert
// races on the composite unique index via ON CONFLICT DO NOTHING; when the
// row already exists only the heartbeat fields are updated. There is no
// read before the write, so concurrent touches for the same pair cannot
// create two rows.
func (r *DeviceSessionRepository) Touch(ctx context.Context, playlistID uint, identity session.ClientIdentity, class session.DeviceClass) (bool, error) {
	now := biztime.NowUTC()
	model := &models.DeviceSessionModel{
		PlaylistID:    playlistID,
		IdentityToken: identity.Token(),
		UserAgent:     identity.UserAgent(),
		DeviceType:    string(class),
		Active:        true,
		FirstSeenAt:   now,
		LastSeenAt:    now,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "playlist_id"}, {Name: "identity_token"}},
		DoNothing: true,
	}).Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to upsert device session",
			"error", result.Error, "playlist_id", playlistID, "identity", identity.Token())
		return false, fmt.Errorf("failed to upsert device session: %w", result.Error)
	}

	// RowsAffected is 1 when the insert won, 0 when the pair already had a
	// session; in that case refresh the heartbeat.
	if result.RowsAffected > 0 {
		return true, nil
	}

	err := r.db.WithContext(ctx).Model(&models.DeviceSessionModel{}).
		Where("playlist_id = ? AND identity_token = ?", playlistID, identity.Token()).
		Updates(map[string]interface{}{
			"last_seen_at": now,
			"active":       true,
			"user_agent":   identity.UserAgent(),
			"device_type":  string(class),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to refresh device session heartbeat",
			"error", err, "playlist_id", playlistID, "identity", identity.Token())
		return false, fmt.Errorf("failed to refresh device session heartbeat: %w", err)
	}

	return false, nil
}

// ActiveCount counts sessions whose heartbeat falls within the trailing
// window. The stored active flag is deliberately ignored: a session is
// logically inactive once its heartbeat ages out, whether or not a sweep
// has flipped the flag yet.
func (r *DeviceSessionRepository) ActiveCount(ctx context.Context, playlistID uint, ttl time.Duration) (int64, error) {
	cutoff := biztime.NowUTC().Add(-ttl)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.DeviceSessionModel{}).
		Where("playlist_id = ? AND last_seen_at >= ?", playlistID, cutoff).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}
	return count, nil
}

func (r *DeviceSessionRepository) IsCurrentlyActive(ctx context.Context, playlistID uint, identity session.ClientIdentity, ttl time.Duration) (bool, error) {
	cutoff := biztime.NowUTC().Add(-ttl)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.DeviceSessionModel{}).
		Where("playlist_id = ? AND identity_token = ? AND last_seen_at >= ?", playlistID, identity.Token(), cutoff).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check session activity: %w", err)
	}
	return count > 0, nil
}

func (r *DeviceSessionRepository) ListByPlaylist(ctx context.Context, playlistID uint) ([]*session.DeviceSession, error) {
	var sessionModels []models.DeviceSessionModel
	err := r.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID).
		Order("last_seen_at DESC").
		Find(&sessionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions by playlist: %w", err)
	}

	sessions := make([]*session.DeviceSession, len(sessionModels))
	for i := range sessionModels {
		sessions[i] = r.mapper.ToDomain(&sessionModels[i])
	}
	return sessions, nil
}

// DeactivateStale flips the advisory active flag on aged-out sessions.
// Reporting hygiene only; admission never trusts the flag.
func (r *DeviceSessionRepository) DeactivateStale(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := biztime.NowUTC().Add(-ttl)

	result := r.db.WithContext(ctx).Model(&models.DeviceSessionModel{}).
		Where("active = ? AND last_seen_at < ?", true, cutoff).
		Update("active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to deactivate stale sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *DeviceSessionRepository) DeleteByPlaylist(ctx context.Context, playlistID uint) error {
	if err := r.db.WithContext(ctx).Where("playlist_id = ?", playlistID).Delete(&models.DeviceSessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete sessions by playlist: %w", err)
	}
	return nil
}
