package usecase

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// OrderMostPopular is the internal ordering mode that carries trending
// semantics. Everything else is passed to the upstream search verbatim.
const OrderMostPopular = "mostPopular"

// QueryParams are the user-facing filter parameters of one feed request.
// They are never persisted.
type QueryParams struct {
	RegionCode      string
	MaxResults      int
	IncludeShorts   bool
	SearchQuery     string
	Order           string
	SafeSearch      string
	PublishedAfter  string
	PublishedBefore string
	PageToken       string
}

// cacheFields renders the defined parameters as a name/value mapping for
// cache key derivation. Absent optional parameters are left out entirely
// so they never influence the key.
func (p QueryParams) cacheFields() map[string]string {
	fields := map[string]string{
		"regionCode":    p.RegionCode,
		"maxResults":    strconv.Itoa(p.MaxResults),
		"includeShorts": strconv.FormatBool(p.IncludeShorts),
		"order":         p.Order,
	}
	if p.SearchQuery != "" {
		fields["searchQuery"] = p.SearchQuery
	}
	if p.SafeSearch != "" {
		fields["safeSearch"] = p.SafeSearch
	}
	if p.PublishedAfter != "" {
		fields["publishedAfter"] = p.PublishedAfter
	}
	if p.PublishedBefore != "" {
		fields["publishedBefore"] = p.PublishedBefore
	}
	if p.PageToken != "" {
		fields["pageToken"] = p.PageToken
	}
	return fields
}

// BuildCacheKey derives a deterministic cache key from a parameter
// mapping. Pairs with empty values are dropped and the remaining names
// are sorted, so two mappings with the same defined pairs always produce
// the same key regardless of insertion order, process, or machine.
func BuildCacheKey(prefix string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name, value := range params {
		if value == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(prefix)
	for _, name := range names {
		b.WriteByte(':')
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(params[name])
	}
	return b.String()
}

// TTLPolicy assigns an expiry class by query shape. Free-text search
// results churn less than algorithmic trending lists, so the classes must
// keep Search >= Popular >= Trending.
type TTLPolicy struct {
	Search   time.Duration
	Popular  time.Duration
	Trending time.Duration
}

func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Search:   30 * time.Minute,
		Popular:  20 * time.Minute,
		Trending: 15 * time.Minute,
	}
}

// For picks the TTL class for a query: search when a free-text term is
// present, popular for trending semantics, trending otherwise.
func (p TTLPolicy) For(params QueryParams) time.Duration {
	if params.SearchQuery != "" {
		return p.Search
	}
	if params.Order == OrderMostPopular {
		return p.Popular
	}
	return p.Trending
}
