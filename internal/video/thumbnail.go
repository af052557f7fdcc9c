package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
)

// maxThumbnailBytes bounds how much of a thumbnail response is read.
const maxThumbnailBytes = 10 << 20

// Image is a fetched, decodable picture ready to hand to the model.
type Image struct {
	Format string // MIME subtype: "jpeg", "png" or "gif"
	Width  int
	Height int
	Data   []byte
}

// ThumbnailFetcher downloads thumbnails by video id.
type ThumbnailFetcher struct {
	httpClient *http.Client
	urlFor     func(id string) string
}

func NewThumbnailFetcher(httpClient *http.Client) *ThumbnailFetcher {
	return &ThumbnailFetcher{httpClient: httpClient, urlFor: ThumbnailURL}
}

// Thumbnail fetches and decodes the thumbnail for id. The response status
// is not checked: YouTube serves a placeholder image for missing sizes and
// whatever comes back is judged only by whether it decodes.
func (f *ThumbnailFetcher) Thumbnail(ctx context.Context, id string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.urlFor(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build thumbnail request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thumbnail: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxThumbnailBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read thumbnail: %w", err)
	}
	return DecodeImage(data)
}

// DecodeImage validates that data is an image in a supported format.
func DecodeImage(data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Image{Format: format, Width: cfg.Width, Height: cfg.Height, Data: data}, nil
}
