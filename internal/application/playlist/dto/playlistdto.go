// Package dto defines API-facing data transfer objects for playlist
// management.
package dto

import (
	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/domain/session"
	"github.com/streamgate-io/streamgate/internal/shared/biztime"
)

// PlaylistDTO is the external representation of a mirrored playlist. The
// mirror identifier is the only handle clients ever see; internal IDs stay
// internal.
type PlaylistDTO struct {
	MirrorID   string `json:"mirror_id"`
	Name       string `json:"name"`
	OriginURL  string `json:"origin_url"`
	MaxDevices int    `json:"max_devices"`
	MirrorPath string `json:"mirror_path"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// PlaylistStatusDTO extends the playlist view with live session figures.
type PlaylistStatusDTO struct {
	PlaylistDTO
	ActiveDevices int64              `json:"active_devices"`
	Sessions      []DeviceSessionDTO `json:"sessions"`
}

// DeviceSessionDTO is the external representation of one device session.
type DeviceSessionDTO struct {
	IdentityToken string `json:"identity_token"`
	UserAgent     string `json:"user_agent"`
	DeviceType    string `json:"device_type"`
	Active        bool   `json:"active"`
	FirstSeenAt   string `json:"first_seen_at"`
	LastSeenAt    string `json:"last_seen_at"`
}

// AccessEventDTO is the external representation of one admitted access.
type AccessEventDTO struct {
	IdentityToken string `json:"identity_token"`
	UserAgent     string `json:"user_agent"`
	DeviceType    string `json:"device_type"`
	OccurredAt    string `json:"occurred_at"`
}

// ToPlaylistDTO converts a playlist aggregate to its DTO.
func ToPlaylistDTO(p *playlist.Playlist) PlaylistDTO {
	return PlaylistDTO{
		MirrorID:   p.SID(),
		Name:       p.Name(),
		OriginURL:  p.OriginURL(),
		MaxDevices: p.MaxDevices(),
		MirrorPath: "/p/" + p.SID() + ".m3u",
		CreatedAt:  biztime.FormatRFC3339(p.CreatedAt()),
		UpdatedAt:  biztime.FormatRFC3339(p.UpdatedAt()),
	}
}

// ToPlaylistDTOs converts a slice of playlist aggregates.
func ToPlaylistDTOs(playlists []*playlist.Playlist) []PlaylistDTO {
	dtos := make([]PlaylistDTO, 0, len(playlists))
	for _, p := range playlists {
		dtos = append(dtos, ToPlaylistDTO(p))
	}
	return dtos
}

// ToDeviceSessionDTO converts a device session to its DTO.
func ToDeviceSessionDTO(s *session.DeviceSession) DeviceSessionDTO {
	return DeviceSessionDTO{
		IdentityToken: s.IdentityToken,
		UserAgent:     s.UserAgent,
		DeviceType:    string(s.DeviceType),
		Active:        s.Active,
		FirstSeenAt:   biztime.FormatRFC3339(s.FirstSeenAt),
		LastSeenAt:    biztime.FormatRFC3339(s.LastSeenAt),
	}
}

// ToDeviceSessionDTOs converts a slice of device sessions.
func ToDeviceSessionDTOs(sessions []*session.DeviceSession) []DeviceSessionDTO {
	dtos := make([]DeviceSessionDTO, 0, len(sessions))
	for _, s := range sessions {
		dtos = append(dtos, ToDeviceSessionDTO(s))
	}
	return dtos
}

// ToAccessEventDTO converts an access event to its DTO.
func ToAccessEventDTO(e *session.AccessEvent) AccessEventDTO {
	return AccessEventDTO{
		IdentityToken: e.IdentityToken,
		UserAgent:     e.UserAgent,
		DeviceType:    string(e.DeviceType),
		OccurredAt:    biztime.FormatRFC3339(e.OccurredAt),
	}
}

// ToAccessEventDTOs converts a slice of access events.
func ToAccessEventDTOs(events []*session.AccessEvent) []AccessEventDTO {
	dtos := make([]AccessEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, ToAccessEventDTO(e))
	}
	return dtos
}
