package usecases

import (
	"context"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/domain/session"
	"github.com/streamgate-io/streamgate/internal/infrastructure/origin"
	"github.com/streamgate-io/streamgate/internal/shared/errors"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
	"github.com/streamgate-io/streamgate/internal/shared/m3u"
)

// PlaylistCache is the read side of the hot-path lookup cache.
type PlaylistCache interface {
	Get(sid string) (*playlist.Playlist, bool)
	Set(sid string, p *playlist.Playlist)
}

// RelayOutcome labels how a relay request resolved. Every outcome still
// yields a playlist body.
type RelayOutcome string

const (
	OutcomeServed        RelayOutcome = "served"
	OutcomeNotFound      RelayOutcome = "not_found"
	OutcomeLimitExceeded RelayOutcome = "limit_exceeded"
	OutcomeFetchFailed   RelayOutcome = "fetch_failed"
)

type RelayPlaylistCommand struct {
	MirrorID   string
	RemoteAddr string
	UserAgent  string
}

// RelayPlaylistResult always carries a valid playlist body. Players receive
// playlist text for every outcome; the outcome label is for logging and the
// handler's access log only.
type RelayPlaylistResult struct {
	Body    string
	Outcome RelayOutcome
}

// RelayPlaylistUseCase runs the whole proxy pipeline for one request:
// resolve the mirror identifier, classify and identify the device, run
// admission, fetch the origin and annotate the body.
type RelayPlaylistUseCase struct {
	playlistRepo playlist.Repository
	cache        PlaylistCache
	admit        *AdmitDeviceUseCase
	fetcher      origin.Fetcher
	logger       logger.Interface
}

func NewRelayPlaylistUseCase(
	playlistRepo playlist.Repository,
	cache PlaylistCache,
	admit *AdmitDeviceUseCase,
	fetcher origin.Fetcher,
	logger logger.Interface,
) *RelayPlaylistUseCase {
	return &RelayPlaylistUseCase{
		playlistRepo: playlistRepo,
		cache:        cache,
		admit:        admit,
		fetcher:      fetcher,
		logger:       logger,
	}
}

func (uc *RelayPlaylistUseCase) Execute(ctx context.Context, cmd RelayPlaylistCommand) (*RelayPlaylistResult, error) {
	p, err := uc.resolve(ctx, cmd.MirrorID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return &RelayPlaylistResult{
				Body:    m3u.NotFoundBody(cmd.MirrorID),
				Outcome: OutcomeNotFound,
			}, nil
		}
		return nil, err
	}

	identity := session.NewClientIdentity(cmd.RemoteAddr, cmd.UserAgent)
	class := session.ClassifyUserAgent(cmd.UserAgent)

	decision, err := uc.admit.Execute(ctx, p, identity, class)
	if err != nil {
		return nil, err
	}
	if !decision.Admitted {
		// The origin is never contacted for a rejected device.
		return &RelayPlaylistResult{
			Body:    m3u.LimitExceededBody(p.Name(), p.MaxDevices()),
			Outcome: OutcomeLimitExceeded,
		}, nil
	}

	fetched, err := uc.fetcher.Fetch(ctx, p.OriginURL())
	if err != nil {
		if errors.IsFetchFailureError(err) {
			uc.logger.Warnw("origin fetch failed",
				"mirror_id", p.SID(),
				"error", err,
			)
			return &RelayPlaylistResult{
				Body:    m3u.FetchFailureBody(p.Name()),
				Outcome: OutcomeFetchFailed,
			}, nil
		}
		return nil, err
	}

	return &RelayPlaylistResult{
		Body:    m3u.WithMonitorHeader(fetched.Body, p.Name(), p.SID()),
		Outcome: OutcomeServed,
	}, nil
}

// resolve looks the playlist up through the short-lived cache. Not-found
// results are not cached; a freshly created playlist must be reachable on
// its first request.
func (uc *RelayPlaylistUseCase) resolve(ctx context.Context, sid string) (*playlist.Playlist, error) {
	if uc.cache != nil {
		if p, ok := uc.cache.Get(sid); ok {
			return p, nil
		}
	}

	p, err := uc.playlistRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Set(sid, p)
	}
	return p, nil
}
