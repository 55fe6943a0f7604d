package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubewatch/tubewatch/internal/infrastructure/cache"
	"github.com/tubewatch/tubewatch/internal/youtube"
)

func newTestNormalizer(upstream UpstreamClient) *normalizer {
	return &normalizer{
		upstream:   upstream,
		store:      cache.NewMemoryStore(),
		channelTTL: DefaultVideoServiceConfig().ChannelTTL,
	}
}

func TestNormalize_MissingStatisticsDefaultsToZeroCounters(t *testing.T) {
	n := newTestNormalizer(&mockUpstream{})

	raw := rawVideo("v1", "Video", "PT5M0S")
	raw.Statistics = nil

	video, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "0", video.Statistics.ViewCount)
	assert.Equal(t, "0", video.Statistics.LikeCount)
	assert.Equal(t, "0", video.Statistics.DislikeCount)
	assert.Equal(t, "0", video.Statistics.FavoriteCount)
	assert.Equal(t, "0", video.Statistics.CommentCount)
}

func TestNormalize_MissingContentDetailsDefaults(t *testing.T) {
	n := newTestNormalizer(&mockUpstream{})

	raw := rawVideo("v1", "Video", "PT5M0S")
	raw.ContentDetails = nil

	video, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "PT0S", video.ContentDetails.Duration)
	assert.Equal(t, "2d", video.ContentDetails.Dimension)
	assert.Equal(t, "hd", video.ContentDetails.Definition)
	assert.Equal(t, "false", video.ContentDetails.Caption)
	assert.False(t, video.ContentDetails.LicensedContent)
	assert.Equal(t, "rectangular", video.ContentDetails.Projection)
}

func TestNormalize_MissingSnippetDefaults(t *testing.T) {
	n := newTestNormalizer(&mockUpstream{})

	raw := rawVideo("v1", "Video", "PT5M0S")
	raw.Snippet = nil

	video, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "v1", video.ID)
	assert.NotNil(t, video.Tags)
	assert.Empty(t, video.Tags)
	assert.EqualValues(t, "none", video.LiveBroadcastContent)
	assert.Empty(t, video.Channel.ID)
}

func TestNormalize_ResolvesChannel(t *testing.T) {
	upstream := &mockUpstream{
		channelFn: func(ctx context.Context, channelID string) (*youtube.ChannelInfo, error) {
			return &youtube.ChannelInfo{Title: "The Channel", Thumbnail: "https://example.com/t.jpg"}, nil
		},
	}
	n := newTestNormalizer(upstream)

	video, err := n.Normalize(context.Background(), rawVideo("v1", "Video", "PT5M0S"))
	require.NoError(t, err)

	assert.Equal(t, "ch-1", video.Channel.ID)
	assert.Equal(t, "The Channel", video.Channel.Title)
	assert.Equal(t, "https://example.com/t.jpg", video.Channel.Thumbnail)
}

func TestNormalize_ThumbnailVariants(t *testing.T) {
	n := newTestNormalizer(&mockUpstream{})

	raw := rawVideo("v1", "Video", "PT5M0S")
	raw.Snippet.Thumbnails = youtube.Thumbnails{
		Default: &youtube.Thumbnail{URL: "d", Width: 120, Height: 90},
		Maxres:  &youtube.Thumbnail{URL: "m", Width: 1280, Height: 720},
	}

	video, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "d", video.Thumbnails.Default.URL)
	// Missing required variants fill with zero values, optional ones
	// stay absent unless provided.
	assert.Empty(t, video.Thumbnails.Medium.URL)
	assert.Nil(t, video.Thumbnails.Standard)
	require.NotNil(t, video.Thumbnails.Maxres)
	assert.Equal(t, "m", video.Thumbnails.Maxres.URL)
}
