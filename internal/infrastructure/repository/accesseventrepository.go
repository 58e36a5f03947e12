package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/streamgate-io/streamgate/internal/domain/session"
	"github.com/streamgate-io/streamgate/internal/infrastructure/persistence/models"
)

type AccessEventRepository struct {
	db *gorm.DB
}

func NewAccessEventRepository(db *gorm.DB) session.EventRepository {
	return &AccessEventRepository{db: db}
}

// Append writes one audit row. Rows are immutable once written.
func (r *AccessEventRepository) Append(ctx context.Context, event *session.AccessEvent) error {
	model := &models.AccessEventModel{
		PlaylistID:    event.PlaylistID,
		IdentityToken: event.IdentityToken,
		UserAgent:     event.UserAgent,
		DeviceType:    string(event.DeviceType),
		OccurredAt:    event.OccurredAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append access event: %w", err)
	}
	event.ID = model.ID
	return nil
}

func (r *AccessEventRepository) ListByPlaylist(ctx context.Context, playlistID uint, limit int) ([]*session.AccessEvent, error) {
	var eventModels []models.AccessEventModel
	err := r.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&eventModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list access events: %w", err)
	}

	events := make([]*session.AccessEvent, len(eventModels))
	for i, m := range eventModels {
		events[i] = &session.AccessEvent{
			ID:            m.ID,
			PlaylistID:    m.PlaylistID,
			IdentityToken: m.IdentityToken,
			UserAgent:     m.UserAgent,
			DeviceType:    session.DeviceClass(m.DeviceType),
			OccurredAt:    m.OccurredAt,
		}
	}
	return events, nil
}
