package m3u

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithMonitorHeader_BodyWithMarker(t *testing.T) {
	body := "#EXTM3U\n#EXTINF:-1,Channel One\nhttp://origin.example/1.ts\n"

	got := WithMonitorHeader(body, "Sports Pack", "aB3dE5fG")

	assert.Equal(t, 1, strings.Count(got, Marker), "exactly one marker expected")
	assert.True(t, strings.HasPrefix(got, "#EXTM3U\n# mirror: Sports Pack\n# mirror-id: aB3dE5fG\n"))
	assert.Contains(t, got, "#EXTINF:-1,Channel One\nhttp://origin.example/1.ts\n")
}

func TestWithMonitorHeader_MarkerLineAttributesPreserved(t *testing.T) {
	body := "#EXTM3U url-tvg=\"http://epg.example/guide.xml\"\n#EXTINF:-1,One\nhttp://o/1.ts\n"

	got := WithMonitorHeader(body, "TV", "id123456")

	assert.True(t, strings.HasPrefix(got, "#EXTM3U url-tvg=\"http://epg.example/guide.xml\"\n# mirror: TV\n"))
	assert.Equal(t, 1, strings.Count(got, Marker))
}

func TestWithMonitorHeader_BodyWithoutMarker(t *testing.T) {
	body := "http://origin.example/stream.ts\n"

	got := WithMonitorHeader(body, "One Channel", "zZ9yY8xX")

	assert.True(t, strings.HasPrefix(got, "#EXTM3U\n# mirror: One Channel\n# mirror-id: zZ9yY8xX\n"))
	assert.Contains(t, got, body)
	assert.Equal(t, 1, strings.Count(got, Marker))
}

func TestWithMonitorHeader_LeadingWhitespaceAndBOM(t *testing.T) {
	body := "\uFEFF\n  #EXTM3U\n#EXTINF:-1,One\nhttp://o/1.ts\n"

	got := WithMonitorHeader(body, "BOM", "bom12345")

	assert.Equal(t, 1, strings.Count(got, Marker))
	assert.True(t, strings.HasPrefix(got, "#EXTM3U\n"))
}

func TestWithMonitorHeader_MarkerOnly(t *testing.T) {
	got := WithMonitorHeader("#EXTM3U", "Empty", "empty123")

	assert.Equal(t, 1, strings.Count(got, Marker))
	assert.Contains(t, got, "# mirror: Empty")
}

func TestErrorBodies(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains []string
	}{
		{
			name:     "not found",
			body:     NotFoundBody("missing1"),
			contains: []string{"playlist not found", `"missing1"`},
		},
		{
			name:     "limit exceeded states the maximum",
			body:     LimitExceededBody("Family", 3),
			contains: []string{"device limit reached for Family", "maximum concurrent devices: 3"},
		},
		{
			name:     "fetch failure",
			body:     FetchFailureBody("Family"),
			contains: []string{"origin fetch failed for Family"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(tt.body, Marker+"\n"))
			for _, want := range tt.contains {
				assert.Contains(t, tt.body, want)
			}
			// Every non-marker line must be a comment
			for _, line := range strings.Split(strings.TrimSpace(tt.body), "\n") {
				assert.True(t, strings.HasPrefix(line, "#"), "line %q is not a comment", line)
			}
		})
	}
}
