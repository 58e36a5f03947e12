// Package playlist provides the domain model for mirrored playlists: a
// registered origin URL exposed through a stable public mirror identifier,
// with a bounded concurrent-device cap enforced by the proxy.
package playlist

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/streamgate-io/streamgate/internal/shared/biztime"
	"github.com/streamgate-io/streamgate/internal/shared/constants"
)

// Playlist is the playlist endpoint aggregate root. The SID is the public
// mirror identifier: opaque, unique and immutable once issued.
type Playlist struct {
	id         uint
	sid        string
	name       string
	originURL  string
	maxDevices int
	createdAt  time.Time
	updatedAt  time.Time
}

// NewPlaylist creates a new playlist aggregate. The mirror identifier is
// assigned at persistence time by the allocator, not here.
func NewPlaylist(name, originURL string, maxDevices int) (*Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("playlist name is required")
	}
	if err := validateOriginURL(originURL); err != nil {
		return nil, err
	}
	if maxDevices < constants.MinDevices || maxDevices > constants.MaxDevices {
		return nil, fmt.Errorf("max devices must be between %d and %d, got %d",
			constants.MinDevices, constants.MaxDevices, maxDevices)
	}

	now := biztime.NowUTC()
	return &Playlist{
		name:       strings.TrimSpace(name),
		originURL:  originURL,
		maxDevices: maxDevices,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstitute rebuilds a playlist aggregate from persistence.
func Reconstitute(id uint, sid, name, originURL string, maxDevices int, createdAt, updatedAt time.Time) *Playlist {
	return &Playlist{
		id:         id,
		sid:        sid,
		name:       name,
		originURL:  originURL,
		maxDevices: maxDevices,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func validateOriginURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("origin URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid origin URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("origin URL host is required")
	}
	return nil
}

func (p *Playlist) ID() uint          { return p.id }
func (p *Playlist) SID() string       { return p.sid }
func (p *Playlist) Name() string      { return p.name }
func (p *Playlist) OriginURL() string { return p.originURL }
func (p *Playlist) MaxDevices() int   { return p.maxDevices }

func (p *Playlist) CreatedAt() time.Time { return p.createdAt }
func (p *Playlist) UpdatedAt() time.Time { return p.updatedAt }

// SetID records the persistence identifier after the initial insert.
func (p *Playlist) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("playlist ID already set")
	}
	p.id = id
	return nil
}

// SetSID assigns the public mirror identifier. It is immutable once issued.
func (p *Playlist) SetSID(sid string) error {
	if p.sid != "" {
		return fmt.Errorf("mirror identifier already issued")
	}
	if sid == "" {
		return fmt.Errorf("mirror identifier is required")
	}
	p.sid = sid
	return nil
}

// Rename updates the display name.
func (p *Playlist) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("playlist name is required")
	}
	p.name = strings.TrimSpace(name)
	p.touch()
	return nil
}

// UpdateOriginURL points the mirror at a different origin.
func (p *Playlist) UpdateOriginURL(originURL string) error {
	if err := validateOriginURL(originURL); err != nil {
		return err
	}
	p.originURL = originURL
	p.touch()
	return nil
}

// UpdateMaxDevices changes the concurrent device cap.
func (p *Playlist) UpdateMaxDevices(maxDevices int) error {
	if maxDevices < constants.MinDevices || maxDevices > constants.MaxDevices {
		return fmt.Errorf("max devices must be between %d and %d, got %d",
			constants.MinDevices, constants.MaxDevices, maxDevices)
	}
	p.maxDevices = maxDevices
	p.touch()
	return nil
}

func (p *Playlist) touch() {
	p.updatedAt = biztime.NowUTC()
}
