package video

import (
	"errors"
	"regexp"
)

var (
	// ErrNotConfigured is returned by collaborators created without credentials.
	ErrNotConfigured = errors.New("video collaborator not configured")
	// ErrVideoNotFound is returned when the metadata API knows no such video.
	ErrVideoNotFound = errors.New("video not found")
)

// An 11-character id after "v=" or a path slash, e.g. watch?v=<id>,
// youtu.be/<id>, /shorts/<id>, /embed/<id>.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractID pulls a YouTube video id out of a URL or free text.
func ExtractID(s string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ThumbnailURL is the maximum-resolution thumbnail for a video id.
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}
