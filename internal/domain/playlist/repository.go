package playlist

import "context"

// Repository defines the persistence contract for playlists.
//
// Create must rely on the storage layer's unique constraint on the mirror
// identifier: a duplicate identifier surfaces as a duplicate-key error, it
// is never screened with a prior existence check.
type Repository interface {
	Create(ctx context.Context, p *Playlist) error
	GetBySID(ctx context.Context, sid string) (*Playlist, error)
	List(ctx context.Context, offset, limit int) ([]*Playlist, int64, error)
	Update(ctx context.Context, p *Playlist) error
	Delete(ctx context.Context, sid string) error
}
