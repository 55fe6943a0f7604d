// Package youtube is a thin client for the YouTube Data API v3. It covers
// the three read operations this service needs: trending listings, search,
// and batch video/channel detail lookups.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tubewatch/tubewatch/internal/infrastructure/metrics"
)

const (
	// maxPageSize is the hard per-call item cap enforced by the upstream API.
	maxPageSize = 50

	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	defaultTimeout = 15 * time.Second
)

// ErrMissingAPIKey is returned before any network call when the client was
// constructed without an API key credential.
var ErrMissingAPIKey = errors.New("youtube: API key is not configured")

// StatusError is a non-success response from the upstream API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("youtube: upstream responded with status %d", e.StatusCode)
}

// SearchQuery holds the parameters of a search call. Zero-valued fields
// are omitted from the request. MaxResults lowers the page size below the
// client default for callers that want fewer items.
type SearchQuery struct {
	RegionCode      string
	Query           string
	Order           string
	SafeSearch      string
	PublishedAfter  string
	PublishedBefore string
	CategoryID      string
	PageToken       string
	MaxResults      int
}

// ClientOptions configures a Client. Zero values fall back to defaults;
// PageSize is clamped to the upstream maximum of 50.
type ClientOptions struct {
	APIKey     string
	BaseURL    string
	PageSize   int
	HTTPClient *http.Client
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
}

func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     opts.APIKey,
		pageSize:   pageSize,
	}
}

// Trending lists the most popular videos for a region, one page per call.
func (c *Client) Trending(ctx context.Context, regionCode, pageToken string) (*Page, error) {
	q := url.Values{}
	q.Set("part", "snippet,contentDetails,statistics")
	q.Set("chart", "mostPopular")
	q.Set("regionCode", regionCode)
	q.Set("maxResults", strconv.Itoa(c.pageSize))
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	var page Page
	if err := c.get(ctx, "videos", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search runs a video search. The internal "mostPopular" ordering maps to
// the upstream "viewCount" order; everything else passes through verbatim.
func (c *Client) Search(ctx context.Context, query SearchQuery) (*Page, error) {
	size := c.pageSize
	if query.MaxResults > 0 && query.MaxResults < size {
		size = query.MaxResults
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("maxResults", strconv.Itoa(size))
	if query.RegionCode != "" {
		q.Set("regionCode", query.RegionCode)
	}
	if query.Query != "" {
		q.Set("q", query.Query)
	}
	if query.Order != "" {
		order := query.Order
		if order == "mostPopular" {
			order = "viewCount"
		}
		q.Set("order", order)
	}
	if query.SafeSearch != "" {
		q.Set("safeSearch", query.SafeSearch)
	}
	if query.PublishedAfter != "" {
		q.Set("publishedAfter", query.PublishedAfter)
	}
	if query.PublishedBefore != "" {
		q.Set("publishedBefore", query.PublishedBefore)
	}
	if query.CategoryID != "" {
		q.Set("videoCategoryId", query.CategoryID)
	}
	if query.PageToken != "" {
		q.Set("pageToken", query.PageToken)
	}

	var page Page
	if err := c.get(ctx, "search", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Videos fetches full details for a batch of video ids in one request.
// The upstream accepts comma-joined id lists.
func (c *Client) Videos(ctx context.Context, ids []string) ([]RawVideo, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("part", "snippet,contentDetails,statistics")
	q.Set("id", strings.Join(ids, ","))

	var page Page
	if err := c.get(ctx, "videos", q, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Channel looks up the display metadata of a single channel. A channel the
// upstream does not know yields empty fields, not an error.
func (c *Client) Channel(ctx context.Context, channelID string) (*ChannelInfo, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", channelID)

	var resp struct {
		Items []struct {
			Snippet *Snippet `json:"snippet"`
		} `json:"items"`
	}
	if err := c.get(ctx, "channels", q, &resp); err != nil {
		return nil, err
	}

	info := &ChannelInfo{}
	if len(resp.Items) > 0 && resp.Items[0].Snippet != nil {
		sn := resp.Items[0].Snippet
		info.Title = sn.Title
		if sn.Thumbnails.Default != nil {
			info.Thumbnail = sn.Thumbnails.Default.URL
		}
	}
	return info, nil
}

// Categories lists the video categories defined for a region. The listing
// is small and changes rarely; callers are expected to cache it.
func (c *Client) Categories(ctx context.Context, regionCode string) ([]Category, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("regionCode", regionCode)

	var resp struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet *struct {
				Title      string `json:"title"`
				Assignable bool   `json:"assignable"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := c.get(ctx, "videoCategories", q, &resp); err != nil {
		return nil, err
	}

	categories := make([]Category, 0, len(resp.Items))
	for _, item := range resp.Items {
		cat := Category{ID: item.ID}
		if item.Snippet != nil {
			cat.Title = item.Snippet.Title
			cat.Assignable = item.Snippet.Assignable
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	q.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, metrics.UpstreamStatusTransportError).Inc()
		return fmt.Errorf("youtube: request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
