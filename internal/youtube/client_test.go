package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientOptions{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
}

func TestClient_MissingAPIKeySkipsNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c := NewClient(ClientOptions{BaseURL: server.URL, HTTPClient: server.Client()})

	_, err := c.Trending(context.Background(), "SK", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, requests, "no request may leave the client without a key")
}

func TestClient_TrendingQuery(t *testing.T) {
	var got url.Values
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		got = r.URL.Query()
		w.Write([]byte(`{"items":[{"id":"v1","snippet":{"title":"First"}}],"nextPageToken":"t2"}`))
	})

	page, err := c.Trending(context.Background(), "SK", "t1")
	require.NoError(t, err)

	assert.Equal(t, "/videos", path)
	assert.Equal(t, "mostPopular", got.Get("chart"))
	assert.Equal(t, "snippet,contentDetails,statistics", got.Get("part"))
	assert.Equal(t, "SK", got.Get("regionCode"))
	assert.Equal(t, "50", got.Get("maxResults"))
	assert.Equal(t, "t1", got.Get("pageToken"))
	assert.Equal(t, "test-key", got.Get("key"))

	require.Len(t, page.Items, 1)
	assert.Equal(t, "v1", page.Items[0].ID.String())
	assert.Equal(t, "t2", page.NextPageToken)
}

func TestClient_SearchQuery(t *testing.T) {
	var got url.Values
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		got = r.URL.Query()
		w.Write([]byte(`{"items":[]}`))
	})

	_, err := c.Search(context.Background(), SearchQuery{
		RegionCode: "SK",
		Query:      "cats|kittens",
		Order:      "mostPopular",
		CategoryID: "10",
		MaxResults: 15,
	})
	require.NoError(t, err)

	assert.Equal(t, "/search", path)
	assert.Equal(t, "snippet", got.Get("part"))
	assert.Equal(t, "video", got.Get("type"))
	assert.Equal(t, "cats|kittens", got.Get("q"))
	assert.Equal(t, "viewCount", got.Get("order"), "internal ordering name maps to the upstream one")
	assert.Equal(t, "10", got.Get("videoCategoryId"))
	assert.Equal(t, "15", got.Get("maxResults"))
	assert.False(t, got.Has("pageToken"))
	assert.False(t, got.Has("safeSearch"))
}

func TestClient_SearchPassesOtherOrdersVerbatim(t *testing.T) {
	var got url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"items":[]}`))
	})

	_, err := c.Search(context.Background(), SearchQuery{Query: "cats", Order: "date"})
	require.NoError(t, err)

	assert.Equal(t, "date", got.Get("order"))
	assert.Equal(t, "50", got.Get("maxResults"))
}

func TestClient_PageSizeClamped(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	c := NewClient(ClientOptions{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		PageSize:   500,
		HTTPClient: server.Client(),
	})

	_, err := c.Trending(context.Background(), "SK", "")
	require.NoError(t, err)
	assert.Equal(t, "50", got.Get("maxResults"))
}

func TestClient_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"quotaExceeded"}}`))
	})

	_, err := c.Trending(context.Background(), "SK", "")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "quotaExceeded")
}

func TestClient_VideosBatchesIDs(t *testing.T) {
	var got url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"items":[{"id":"a"},{"id":"b"}]}`))
	})

	items, err := c.Videos(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, "a,b,c", got.Get("id"))
	assert.Equal(t, "snippet,contentDetails,statistics", got.Get("part"))
	assert.Len(t, items, 2)
}

func TestClient_VideosEmptyInput(t *testing.T) {
	requests := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	items, err := c.Videos(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Zero(t, requests)
}

func TestClient_Channel(t *testing.T) {
	var got url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"items":[{"snippet":{"title":"The Channel","thumbnails":{"default":{"url":"https://example.com/ch.jpg"}}}}]}`))
	})

	info, err := c.Channel(context.Background(), "ch-1")
	require.NoError(t, err)

	assert.Equal(t, "ch-1", got.Get("id"))
	assert.Equal(t, "snippet", got.Get("part"))
	assert.Equal(t, "The Channel", info.Title)
	assert.Equal(t, "https://example.com/ch.jpg", info.Thumbnail)
}

func TestClient_Categories(t *testing.T) {
	var got url.Values
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		got = r.URL.Query()
		w.Write([]byte(`{"items":[
			{"id":"10","snippet":{"title":"Music","assignable":true}},
			{"id":"18","snippet":{"title":"Short Movies","assignable":false}},
			{"id":"99"}
		]}`))
	})

	categories, err := c.Categories(context.Background(), "SK")
	require.NoError(t, err)

	assert.Equal(t, "/videoCategories", path)
	assert.Equal(t, "snippet", got.Get("part"))
	assert.Equal(t, "SK", got.Get("regionCode"))

	require.Len(t, categories, 3)
	assert.Equal(t, Category{ID: "10", Title: "Music", Assignable: true}, categories[0])
	assert.False(t, categories[1].Assignable)
	assert.Empty(t, categories[2].Title, "item without snippet keeps zero fields")
}

func TestClient_ChannelUnknownYieldsEmptyInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})

	info, err := c.Channel(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, info.Title)
	assert.Empty(t, info.Thumbnail)
}
