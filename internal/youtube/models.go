package youtube

import (
	"encoding/json"
	"fmt"
)

// VideoID absorbs the two id shapes the upstream API serves: the videos
// endpoint returns a plain string, the search endpoint wraps it in an
// object with a videoId field. The union is resolved here once so the
// rest of the system only ever sees a scalar id.
type VideoID struct {
	value     string
	composite bool
}

func (id *VideoID) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		id.value = plain
		id.composite = false
		return nil
	}

	var wrapped struct {
		VideoID string `json:"videoId"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return fmt.Errorf("decode video id: %w", err)
	}
	id.value = wrapped.VideoID
	id.composite = true
	return nil
}

func (id VideoID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// String returns the scalar video id regardless of the wire shape.
func (id VideoID) String() string { return id.value }

// Composite reports whether the id arrived in the search-result wrapper.
func (id VideoID) Composite() bool { return id.composite }

// Thumbnail is a thumbnail variant as served on the wire.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Thumbnails carries whichever variants the upstream included. All
// variants are optional on the wire.
type Thumbnails struct {
	Default  *Thumbnail `json:"default"`
	Medium   *Thumbnail `json:"medium"`
	High     *Thumbnail `json:"high"`
	Standard *Thumbnail `json:"standard"`
	Maxres   *Thumbnail `json:"maxres"`
}

type Snippet struct {
	PublishedAt          string     `json:"publishedAt"`
	ChannelID            string     `json:"channelId"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Thumbnails           Thumbnails `json:"thumbnails"`
	ChannelTitle         string     `json:"channelTitle"`
	Tags                 []string   `json:"tags"`
	CategoryID           string     `json:"categoryId"`
	LiveBroadcastContent string     `json:"liveBroadcastContent"`
	DefaultLanguage      string     `json:"defaultLanguage"`
	DefaultAudioLanguage string     `json:"defaultAudioLanguage"`
}

type RegionRestriction struct {
	Allowed []string `json:"allowed"`
	Blocked []string `json:"blocked"`
}

type ContentDetails struct {
	Duration          string             `json:"duration"`
	Dimension         string             `json:"dimension"`
	Definition        string             `json:"definition"`
	Caption           string             `json:"caption"`
	LicensedContent   bool               `json:"licensedContent"`
	RegionRestriction *RegionRestriction `json:"regionRestriction"`
	Projection        string             `json:"projection"`
}

type Statistics struct {
	ViewCount     string `json:"viewCount"`
	LikeCount     string `json:"likeCount"`
	DislikeCount  string `json:"dislikeCount"`
	FavoriteCount string `json:"favoriteCount"`
	CommentCount  string `json:"commentCount"`
}

// RawVideo is one item from a videos or search listing. ContentDetails and
// Statistics are only present when the requested parts include them.
type RawVideo struct {
	ID             VideoID         `json:"id"`
	Snippet        *Snippet        `json:"snippet"`
	ContentDetails *ContentDetails `json:"contentDetails"`
	Statistics     *Statistics     `json:"statistics"`
}

type PageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// Page is one page of a paginated listing. An empty NextPageToken means
// the upstream is exhausted.
type Page struct {
	Items         []RawVideo `json:"items"`
	NextPageToken string     `json:"nextPageToken"`
	PageInfo      PageInfo   `json:"pageInfo"`
}

// ChannelInfo is the subset of channel metadata the normalizer embeds
// into video records.
type ChannelInfo struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// Category is one entry of the region-scoped video category listing.
type Category struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Assignable bool   `json:"assignable"`
}
