package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tubewatch/tubewatch/internal/domain/model"
	"github.com/tubewatch/tubewatch/internal/youtube"
)

// RelatedVideos finds videos similar to the given one by searching for
// terms derived from its tags, title and description, scoped to the same
// category when known.
func (s *videoService) RelatedVideos(ctx context.Context, videoID string) ([]model.Video, error) {
	key := relatedKeyPrefix + videoID

	if cached, err := s.store.Get(ctx, key); err == nil {
		var videos []model.Video
		if err := json.Unmarshal([]byte(cached), &videos); err == nil {
			return videos, nil
		}
		slog.Warn("discarding undecodable cached related list", "video_id", videoID)
	}

	result, err, _ := s.sfGroup.Do(key, func() (any, error) {
		return s.fetchRelated(ctx, videoID, key)
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.Video), nil
}

func (s *videoService) fetchRelated(ctx context.Context, videoID, key string) ([]model.Video, error) {
	sources, err := s.upstream.Videos(ctx, []string{videoID})
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 || sources[0].Snippet == nil {
		return nil, ErrVideoNotFound
	}
	snippet := sources[0].Snippet

	page, err := s.upstream.Search(ctx, youtube.SearchQuery{
		Query:      buildSearchTerms(snippet),
		CategoryID: snippet.CategoryID,
		MaxResults: s.cfg.RelatedMaxResults,
	})
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return []model.Video{}, nil
	}

	ids := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		if id := item.ID.String(); id != videoID {
			ids = append(ids, id)
		}
	}

	items, err := s.upstream.Videos(ctx, ids)
	if err != nil {
		return nil, err
	}

	videos := make([]model.Video, 0, len(items))
	for _, raw := range items {
		video, err := s.norm.Normalize(ctx, raw)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	// An empty result is not cached: a momentarily thin search must not
	// pin an empty answer for the whole TTL.
	if len(videos) > 0 {
		s.writeCache(ctx, key, videos, s.cfg.RelatedTTL)
	}
	return videos, nil
}

var nonWordPattern = regexp.MustCompile(`[^\w\sÀ-ž]`)

// buildSearchTerms distills a snippet into up to four search terms joined
// by "|": the first three usable tags, two title words, and one word from
// the description's first sentence. Everything is lowercased and words of
// up to two characters are discarded.
func buildSearchTerms(snippet *youtube.Snippet) string {
	terms := make([]string, 0, 6)
	seen := make(map[string]bool)
	add := func(words []string, limit int) {
		for _, w := range words {
			if limit == 0 {
				return
			}
			if seen[w] {
				continue
			}
			seen[w] = true
			terms = append(terms, w)
			limit--
		}
	}

	tags := make([]string, 0, len(snippet.Tags))
	for _, tag := range snippet.Tags {
		tag = strings.ToLower(tag)
		if utf8.RuneCountInString(tag) > 2 {
			tags = append(tags, tag)
		}
	}
	add(tags, 3)
	add(cleanWords(snippet.Title), 2)
	if snippet.Description != "" {
		firstSentence, _, _ := strings.Cut(snippet.Description, ".")
		add(cleanWords(firstSentence), 1)
	}

	if len(terms) > 4 {
		terms = terms[:4]
	}
	return strings.Join(terms, "|")
}

func cleanWords(text string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")
	words := make([]string, 0, 8)
	for _, w := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}
