package video

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	ytdl "github.com/kkdai/youtube/v2"
)

// MaxTranscriptChars caps how much spoken text goes into a prompt.
const MaxTranscriptChars = 5000

// TranscriptClient fetches caption tracks through YouTube's innertube API.
type TranscriptClient struct {
	httpClient *http.Client
	lang       string
}

func NewTranscriptClient(httpClient *http.Client, lang string) *TranscriptClient {
	if lang == "" {
		lang = "en"
	}
	return &TranscriptClient{
		httpClient: httpClient,
		lang:       lang,
	}
}

// Transcript returns the concatenated caption text, truncated to
// MaxTranscriptChars characters.
func (c *TranscriptClient) Transcript(ctx context.Context, id string) (string, error) {
	// ytdl.Client lazily mutates itself on first use, so each call gets its own.
	client := ytdl.Client{HTTPClient: c.httpClient}
	segments, err := client.GetTranscriptCtx(ctx, &ytdl.Video{ID: id}, c.lang)
	if err != nil {
		return "", fmt.Errorf("failed to fetch transcript for %s: %w", id, err)
	}
	return JoinTranscript(segments, MaxTranscriptChars), nil
}

// JoinTranscript joins segment texts with single spaces and keeps at most
// max characters.
func JoinTranscript(segments ytdl.VideoTranscript, max int) string {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}
	return Truncate(strings.Join(texts, " "), max)
}

// Truncate keeps the first max runes of s.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
