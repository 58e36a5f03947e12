package mappers

import (
	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/infrastructure/persistence/models"
)

// PlaylistMapper handles the conversion between Playlist domain entities and
// persistence models.
type PlaylistMapper interface {
	ToModel(entity *playlist.Playlist) *models.PlaylistModel
	ToDomain(model *models.PlaylistModel) *playlist.Playlist
}

type playlistMapper struct{}

// NewPlaylistMapper creates a new PlaylistMapper.
func NewPlaylistMapper() PlaylistMapper {
	return &playlistMapper{}
}

func (m *playlistMapper) ToModel(entity *playlist.Playlist) *models.PlaylistModel {
	if entity == nil {
		return nil
	}
	return &models.PlaylistModel{
		ID:         entity.ID(),
		SID:        entity.SID(),
		Name:       entity.Name(),
		OriginURL:  entity.OriginURL(),
		MaxDevices: entity.MaxDevices(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}
}

func (m *playlistMapper) ToDomain(model *models.PlaylistModel) *playlist.Playlist {
	if model == nil {
		return nil
	}
	return playlist.Reconstitute(
		model.ID,
		model.SID,
		model.Name,
		model.OriginURL,
		model.MaxDevices,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
