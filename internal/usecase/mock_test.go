package usecase

import (
	"context"
	"sync/atomic"

	"github.com/tubewatch/tubewatch/internal/youtube"
)

// mockUpstream provides a configurable mock for UpstreamClient.
type mockUpstream struct {
	trendingFn   func(ctx context.Context, regionCode, pageToken string) (*youtube.Page, error)
	searchFn     func(ctx context.Context, query youtube.SearchQuery) (*youtube.Page, error)
	videosFn     func(ctx context.Context, ids []string) ([]youtube.RawVideo, error)
	channelFn    func(ctx context.Context, channelID string) (*youtube.ChannelInfo, error)
	categoriesFn func(ctx context.Context, regionCode string) ([]youtube.Category, error)

	trendingCalls   atomic.Int32
	searchCalls     atomic.Int32
	videosCalls     atomic.Int32
	channelCalls    atomic.Int32
	categoriesCalls atomic.Int32
}

func (m *mockUpstream) Trending(ctx context.Context, regionCode, pageToken string) (*youtube.Page, error) {
	m.trendingCalls.Add(1)
	if m.trendingFn != nil {
		return m.trendingFn(ctx, regionCode, pageToken)
	}
	return &youtube.Page{}, nil
}

func (m *mockUpstream) Search(ctx context.Context, query youtube.SearchQuery) (*youtube.Page, error) {
	m.searchCalls.Add(1)
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return &youtube.Page{}, nil
}

func (m *mockUpstream) Videos(ctx context.Context, ids []string) ([]youtube.RawVideo, error) {
	m.videosCalls.Add(1)
	if m.videosFn != nil {
		return m.videosFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockUpstream) Channel(ctx context.Context, channelID string) (*youtube.ChannelInfo, error) {
	m.channelCalls.Add(1)
	if m.channelFn != nil {
		return m.channelFn(ctx, channelID)
	}
	return &youtube.ChannelInfo{Title: "Channel " + channelID}, nil
}

func (m *mockUpstream) Categories(ctx context.Context, regionCode string) ([]youtube.Category, error) {
	m.categoriesCalls.Add(1)
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx, regionCode)
	}
	return []youtube.Category{}, nil
}

// rawVideo builds a trending-shaped item with a plain id and full parts.
func rawVideo(id, title, duration string) youtube.RawVideo {
	var vid youtube.VideoID
	_ = vid.UnmarshalJSON([]byte(`"` + id + `"`))
	return youtube.RawVideo{
		ID: vid,
		Snippet: &youtube.Snippet{
			Title:     title,
			ChannelID: "ch-1",
		},
		ContentDetails: &youtube.ContentDetails{Duration: duration},
		Statistics:     &youtube.Statistics{ViewCount: "100"},
	}
}
