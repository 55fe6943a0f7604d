package model

import "time"

// LiveBroadcastContent is the live state reported by the upstream API.
type LiveBroadcastContent string

const (
	LiveBroadcastNone     LiveBroadcastContent = "none"
	LiveBroadcastLive     LiveBroadcastContent = "live"
	LiveBroadcastUpcoming LiveBroadcastContent = "upcoming"
)

// Thumbnail is a single thumbnail variant.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Thumbnails holds the thumbnail variants keyed by resolution name.
// Standard and Maxres are not present for every video.
type Thumbnails struct {
	Default  Thumbnail  `json:"default"`
	Medium   Thumbnail  `json:"medium"`
	High     Thumbnail  `json:"high"`
	Standard *Thumbnail `json:"standard,omitempty"`
	Maxres   *Thumbnail `json:"maxres,omitempty"`
}

// Channel is the owning channel of a video, resolved and cached
// independently of the video itself.
type Channel struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// RegionRestriction lists regions where a video is allowed or blocked.
type RegionRestriction struct {
	Allowed []string `json:"allowed,omitempty"`
	Blocked []string `json:"blocked,omitempty"`
}

// ContentDetails carries the playback metadata of a video.
// Duration stays in ISO-8601 form as received upstream.
type ContentDetails struct {
	Duration          string             `json:"duration"`
	Dimension         string             `json:"dimension"`
	Definition        string             `json:"definition"`
	Caption           string             `json:"caption"`
	LicensedContent   bool               `json:"licensedContent"`
	RegionRestriction *RegionRestriction `json:"regionRestriction,omitempty"`
	Projection        string             `json:"projection"`
}

// Statistics holds the view/like/comment counters. Counters are kept as
// decimal strings exactly as the upstream API serves them; parsing them
// into integers would risk precision loss on very large counts.
type Statistics struct {
	ViewCount     string `json:"viewCount"`
	LikeCount     string `json:"likeCount"`
	DislikeCount  string `json:"dislikeCount"`
	FavoriteCount string `json:"favoriteCount"`
	CommentCount  string `json:"commentCount"`
}

// Video is the canonical video record used everywhere downstream of the
// normalizer. Every optional upstream field is filled with a documented
// zero value, so consumers never need to null-check.
type Video struct {
	ID                   string               `json:"id"`
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	PublishedAt          string               `json:"publishedAt"`
	Thumbnails           Thumbnails           `json:"thumbnails"`
	Tags                 []string             `json:"tags"`
	CategoryID           string               `json:"categoryId"`
	LiveBroadcastContent LiveBroadcastContent `json:"liveBroadcastContent"`
	DefaultLanguage      string               `json:"defaultLanguage,omitempty"`
	DefaultAudioLanguage string               `json:"defaultAudioLanguage,omitempty"`
	Channel              Channel              `json:"channel"`
	ContentDetails       ContentDetails       `json:"contentDetails"`
	Statistics           Statistics           `json:"statistics"`
}

// Category is a video category as defined for a region. Assignable
// reports whether new uploads may still be assigned to it.
type Category struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Assignable bool   `json:"assignable"`
}

// HistoryEntry is one watched video in the history list.
type HistoryEntry struct {
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	WatchedAt    time.Time `json:"watchedAt"`
	PublishedAt  string    `json:"publishedAt"`
}
