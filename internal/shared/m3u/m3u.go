// Package m3u builds and annotates M3U playlist bodies for the mirror
// proxy. Every response leaving the proxy boundary is valid playlist text,
// including error responses, which carry diagnostics in comment lines so
// players fail gracefully instead of choking on JSON.
package m3u

import (
	"fmt"
	"strings"
)

const (
	// Marker is the playlist-format header marker.
	Marker = "#EXTM3U"

	// ContentType is the response content type for every proxy response.
	ContentType = "application/vnd.apple.mpegurl"
)

// monitorHeader renders the comment block identifying the mirror that
// served the content.
func monitorHeader(name, mirrorID string) string {
	return fmt.Sprintf("# mirror: %s\n# mirror-id: %s", name, mirrorID)
}

// WithMonitorHeader returns the origin body annotated with the monitoring
// header block. If the body already begins with the format marker, the block
// is injected directly after the marker line so the result stays
// syntactically valid and contains exactly one marker. Otherwise the marker
// and the block are prepended.
func WithMonitorHeader(body, name, mirrorID string) string {
	header := monitorHeader(name, mirrorID)
	trimmed := strings.TrimLeft(body, "\uFEFF \t\r\n")

	if !strings.HasPrefix(trimmed, Marker) {
		return Marker + "\n" + header + "\n" + body
	}

	// Keep the original marker line intact; it may carry attributes
	// (e.g. url-tvg) that players depend on.
	markerLine := trimmed
	rest := ""
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		markerLine = strings.TrimRight(trimmed[:idx], "\r")
		rest = trimmed[idx+1:]
	}

	if rest == "" {
		return markerLine + "\n" + header + "\n"
	}
	return markerLine + "\n" + header + "\n" + rest
}

func errorBody(lines ...string) string {
	var b strings.Builder
	b.WriteString(Marker)
	b.WriteString("\n# streamgate error\n")
	for _, line := range lines {
		b.WriteString("# ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// NotFoundBody is returned when no playlist is registered for the mirror id.
func NotFoundBody(mirrorID string) string {
	return errorBody(
		"playlist not found",
		fmt.Sprintf("no playlist is registered for mirror id %q", mirrorID),
	)
}

// LimitExceededBody is returned when the playlist's concurrent device cap
// is reached. It states the configured maximum.
func LimitExceededBody(name string, maxDevices int) string {
	return errorBody(
		fmt.Sprintf("device limit reached for %s", name),
		fmt.Sprintf("maximum concurrent devices: %d", maxDevices),
		"stop playback on another device and try again",
	)
}

// FetchFailureBody is returned when the origin could not be fetched or
// returned unusable content.
func FetchFailureBody(name string) string {
	return errorBody(
		fmt.Sprintf("origin fetch failed for %s", name),
		"the upstream playlist source is unreachable or returned invalid content",
	)
}
