package video

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Metadata is what the audit prompt needs to know about a video.
type Metadata struct {
	Title   string   `json:"title"`
	Channel string   `json:"channel"`
	Tags    []string `json:"tags"`
	Views   uint64   `json:"views"`
	Likes   uint64   `json:"likes"`
}

// MetadataClient reads snippet and statistics from the YouTube Data API.
type MetadataClient struct {
	service *youtube.Service
}

// NewMetadataClient returns a client keyed with apiKey. An empty key yields
// a client whose lookups always fail with ErrNotConfigured.
func NewMetadataClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*MetadataClient, error) {
	if apiKey == "" {
		return &MetadataClient{}, nil
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &MetadataClient{service: service}, nil
}

func (c *MetadataClient) VideoMetadata(ctx context.Context, id string) (*Metadata, error) {
	if c.service == nil {
		return nil, ErrNotConfigured
	}

	res, err := c.service.Videos.List([]string{"snippet", "statistics"}).Id(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list video %s: %w", id, err)
	}
	if len(res.Items) == 0 || res.Items[0].Snippet == nil {
		return nil, ErrVideoNotFound
	}

	item := res.Items[0]
	meta := &Metadata{
		Title:   item.Snippet.Title,
		Channel: item.Snippet.ChannelTitle,
		Tags:    item.Snippet.Tags,
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	if item.Statistics != nil {
		meta.Views = item.Statistics.ViewCount
		meta.Likes = item.Statistics.LikeCount
	}
	return meta, nil
}
