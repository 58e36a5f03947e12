package mappers

import (
	"github.com/streamgate-io/streamgate/internal/domain/session"
	"github.com/streamgate-io/streamgate/internal/infrastructure/persistence/models"
)

// DeviceSessionMapper handles the conversion between DeviceSession domain
// entities and persistence models.
type DeviceSessionMapper interface {
	ToModel(entity *session.DeviceSession) *models.DeviceSessionModel
	ToDomain(model *models.DeviceSessionModel) *session.DeviceSession
}

type deviceSessionMapper struct{}

// NewDeviceSessionMapper creates a new DeviceSessionMapper.
func NewDeviceSessionMapper() DeviceSessionMapper {
	return &deviceSessionMapper{}
}

func (m *deviceSessionMapper) ToModel(entity *session.DeviceSession) *models.DeviceSessionModel {
	if entity == nil {
		return nil
	}
	return &models.DeviceSessionModel{
		ID:            entity.ID,
		PlaylistID:    entity.PlaylistID,
		IdentityToken: entity.IdentityToken,
		UserAgent:     entity.UserAgent,
		DeviceType:    string(entity.DeviceType),
		Active:        entity.Active,
		FirstSeenAt:   entity.FirstSeenAt,
		LastSeenAt:    entity.LastSeenAt,
	}
}

func (m *deviceSessionMapper) ToDomain(model *models.DeviceSessionModel) *session.DeviceSession {
	if model == nil {
		return nil
	}
	return &session.DeviceSession{
		ID:            model.ID,
		PlaylistID:    model.PlaylistID,
		IdentityToken: model.IdentityToken,
		UserAgent:     model.UserAgent,
		DeviceType:    session.DeviceClass(model.DeviceType),
		Active:        model.Active,
		FirstSeenAt:   model.FirstSeenAt,
		LastSeenAt:    model.LastSeenAt,
	}
}
