package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/infrastructure/persistence/mappers"
	"github.com/streamgate-io/streamgate/internal/infrastructure/persistence/models"
	"github.com/streamgate-io/streamgate/internal/shared/errors"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

type PlaylistRepository struct {
	db     *gorm.DB
	mapper mappers.PlaylistMapper
	logger logger.Interface
}

func NewPlaylistRepository(db *gorm.DB, log logger.Interface) playlist.Repository {
	return &PlaylistRepository{
		db:     db,
		mapper: mappers.NewPlaylistMapper(),
		logger: log,
	}
}

// Create inserts the playlist. The unique index on sid is the allocator's
// uniqueness gate: a colliding mirror identifier surfaces as a duplicate-key
// error, which callers detect with errors.IsDuplicateError and treat as a
// retry trigger.
func (r *PlaylistRepository) Create(ctx context.Context, p *playlist.Playlist) error {
	model := r.mapper.ToModel(p)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return fmt.Errorf("mirror identifier collision: %w", err)
		}
		r.logger.Errorw("failed to create playlist", "error", err, "name", p.Name())
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	if p.ID() == 0 && model.ID > 0 {
		if err := p.SetID(model.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PlaylistRepository) GetBySID(ctx context.Context, sid string) (*playlist.Playlist, error) {
	var model models.PlaylistModel
	err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("playlist not found")
		}
		return nil, fmt.Errorf("failed to get playlist by SID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *PlaylistRepository) List(ctx context.Context, offset, limit int) ([]*playlist.Playlist, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PlaylistModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count playlists: %w", err)
	}

	var playlistModels []models.PlaylistModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&playlistModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list playlists: %w", err)
	}

	playlists := make([]*playlist.Playlist, len(playlistModels))
	for i := range playlistModels {
		playlists[i] = r.mapper.ToDomain(&playlistModels[i])
	}
	return playlists, total, nil
}

func (r *PlaylistRepository) Update(ctx context.Context, p *playlist.Playlist) error {
	model := r.mapper.ToModel(p)
	result := r.db.WithContext(ctx).Model(&models.PlaylistModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"origin_url":  model.OriginURL,
			"max_devices": model.MaxDevices,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update playlist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("playlist not found")
	}
	return nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, sid string) error {
	result := r.db.WithContext(ctx).Where("sid = ?", sid).Delete(&models.PlaylistModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete playlist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("playlist not found")
	}
	return nil
}
