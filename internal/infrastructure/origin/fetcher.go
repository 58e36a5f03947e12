// Package origin fetches playlist content from upstream sources on behalf
// of mirror viewers.
package origin

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/streamgate-io/streamgate/internal/shared/constants"
	"github.com/streamgate-io/streamgate/internal/shared/errors"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

// maxBodyBytes caps how much playlist text is read from an origin.
const maxBodyBytes = 16 << 20

// Result holds a successfully fetched origin body.
type Result struct {
	Body        string
	ContentType string
}

// Fetcher retrieves origin playlist content. Implementations return a
// fetch-failure application error on any transport or content problem,
// never a raw transport error.
type Fetcher interface {
	Fetch(ctx context.Context, originURL string) (*Result, error)
}

// HTTPFetcher issues a single bounded outbound request per call. No
// automatic retry: a failing origin degrades to a diagnostic playlist at
// the boundary instead.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	logger    logger.Interface
}

func NewHTTPFetcher(timeout time.Duration, userAgent string, log logger.Interface) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		logger:    log,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, originURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, originURL, nil)
	if err != nil {
		return nil, errors.NewFetchFailureError("invalid origin URL", err.Error())
	}
	req.Header.Set(constants.HeaderUserAgent, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warnw("origin fetch failed", "error", err, "origin_url", originURL)
		return nil, errors.NewFetchFailureError("origin unreachable", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warnw("origin returned non-success status",
			"status", resp.StatusCode, "origin_url", originURL)
		return nil, errors.NewFetchFailureError("origin returned error status",
			fmt.Sprintf("status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get(constants.HeaderContentType)
	if !isPlaylistContentType(contentType) {
		f.logger.Warnw("origin returned non-text content type",
			"content_type", contentType, "origin_url", originURL)
		return nil, errors.NewFetchFailureError("origin returned non-text content", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		f.logger.Warnw("failed to read origin body", "error", err, "origin_url", originURL)
		return nil, errors.NewFetchFailureError("failed to read origin body", err.Error())
	}

	if strings.TrimSpace(string(body)) == "" {
		return nil, errors.NewFetchFailureError("origin returned empty body")
	}

	return &Result{
		Body:        string(body),
		ContentType: contentType,
	}, nil
}

// isPlaylistContentType accepts text-like media types. Origins are sloppy
// about playlist content types, so octet-stream and a missing header pass;
// unambiguously binary types do not.
func isPlaylistContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/x-mpegurl",
		mediaType == "application/vnd.apple.mpegurl",
		mediaType == "audio/x-mpegurl",
		mediaType == "audio/mpegurl",
		mediaType == "application/octet-stream":
		return true
	}
	return false
}
