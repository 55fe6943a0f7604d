package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/tubewatch/tubewatch/internal/domain/model"
	"github.com/tubewatch/tubewatch/internal/infrastructure/cache"
	"github.com/tubewatch/tubewatch/internal/youtube"
)

const channelKeyPrefix = "channel_details:"

// normalizer maps the heterogeneous upstream item shapes into the
// canonical video record, filling every optional field with a documented
// zero value and resolving the embedded channel through its own cache.
type normalizer struct {
	upstream   UpstreamClient
	store      cache.Store
	channelTTL time.Duration
}

// Normalize converts one raw upstream item. The only error it can return
// is an upstream failure while resolving the channel; missing fields on
// the item itself are defaulted, never fatal.
func (n *normalizer) Normalize(ctx context.Context, raw youtube.RawVideo) (model.Video, error) {
	snippet := raw.Snippet
	if snippet == nil {
		snippet = &youtube.Snippet{}
	}

	channel := model.Channel{ID: snippet.ChannelID}
	if snippet.ChannelID != "" {
		info, err := n.resolveChannel(ctx, snippet.ChannelID)
		if err != nil {
			return model.Video{}, err
		}
		channel.Title = info.Title
		channel.Thumbnail = info.Thumbnail
	}

	video := model.Video{
		ID:                   raw.ID.String(),
		Title:                snippet.Title,
		Description:          snippet.Description,
		PublishedAt:          snippet.PublishedAt,
		Thumbnails:           normalizeThumbnails(snippet.Thumbnails),
		Tags:                 snippet.Tags,
		CategoryID:           snippet.CategoryID,
		LiveBroadcastContent: model.LiveBroadcastContent(snippet.LiveBroadcastContent),
		DefaultLanguage:      snippet.DefaultLanguage,
		DefaultAudioLanguage: snippet.DefaultAudioLanguage,
		Channel:              channel,
		ContentDetails:       normalizeContentDetails(raw.ContentDetails),
		Statistics:           normalizeStatistics(raw.Statistics),
	}
	if video.Tags == nil {
		video.Tags = []string{}
	}
	if video.LiveBroadcastContent == "" {
		video.LiveBroadcastContent = model.LiveBroadcastNone
	}
	return video, nil
}

// resolveChannel looks up channel display metadata through the cache.
// Channel metadata changes rarely, so it lives under a longer TTL than
// video details.
func (n *normalizer) resolveChannel(ctx context.Context, channelID string) (youtube.ChannelInfo, error) {
	key := channelKeyPrefix + channelID

	if cached, err := n.store.Get(ctx, key); err == nil {
		var info youtube.ChannelInfo
		if err := json.Unmarshal([]byte(cached), &info); err == nil {
			return info, nil
		}
		slog.Warn("discarding undecodable cached channel", "channel_id", channelID)
	}

	info, err := n.upstream.Channel(ctx, channelID)
	if err != nil {
		return youtube.ChannelInfo{}, err
	}

	if data, err := json.Marshal(info); err == nil {
		if err := n.store.Set(ctx, key, string(data), n.channelTTL); err != nil {
			slog.Warn("failed to cache channel details", "channel_id", channelID, "error", err)
		}
	}
	return *info, nil
}

func normalizeThumbnails(t youtube.Thumbnails) model.Thumbnails {
	out := model.Thumbnails{
		Default: thumbnailOrZero(t.Default),
		Medium:  thumbnailOrZero(t.Medium),
		High:    thumbnailOrZero(t.High),
	}
	if t.Standard != nil {
		s := model.Thumbnail(*t.Standard)
		out.Standard = &s
	}
	if t.Maxres != nil {
		m := model.Thumbnail(*t.Maxres)
		out.Maxres = &m
	}
	return out
}

func thumbnailOrZero(t *youtube.Thumbnail) model.Thumbnail {
	if t == nil {
		return model.Thumbnail{}
	}
	return model.Thumbnail(*t)
}

func normalizeContentDetails(cd *youtube.ContentDetails) model.ContentDetails {
	out := model.ContentDetails{
		Duration:   "PT0S",
		Dimension:  "2d",
		Definition: "hd",
		Caption:    "false",
		Projection: "rectangular",
	}
	if cd == nil {
		return out
	}
	if cd.Duration != "" {
		out.Duration = cd.Duration
	}
	if cd.Dimension != "" {
		out.Dimension = cd.Dimension
	}
	if cd.Definition != "" {
		out.Definition = cd.Definition
	}
	if cd.Caption != "" {
		out.Caption = cd.Caption
	}
	out.LicensedContent = cd.LicensedContent
	if cd.Projection != "" {
		out.Projection = cd.Projection
	}
	if cd.RegionRestriction != nil {
		out.RegionRestriction = &model.RegionRestriction{
			Allowed: cd.RegionRestriction.Allowed,
			Blocked: cd.RegionRestriction.Blocked,
		}
	}
	return out
}

func normalizeStatistics(st *youtube.Statistics) model.Statistics {
	out := model.Statistics{
		ViewCount:     "0",
		LikeCount:     "0",
		DislikeCount:  "0",
		FavoriteCount: "0",
		CommentCount:  "0",
	}
	if st == nil {
		return out
	}
	if st.ViewCount != "" {
		out.ViewCount = st.ViewCount
	}
	if st.LikeCount != "" {
		out.LikeCount = st.LikeCount
	}
	if st.DislikeCount != "" {
		out.DislikeCount = st.DislikeCount
	}
	if st.FavoriteCount != "" {
		out.FavoriteCount = st.FavoriteCount
	}
	if st.CommentCount != "" {
		out.CommentCount = st.CommentCount
	}
	return out
}
