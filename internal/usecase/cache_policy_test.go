package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildCacheKey_Deterministic(t *testing.T) {
	// Two mappings with identical defined pairs, assembled in different
	// orders, must produce identical keys.
	a := map[string]string{}
	a["regionCode"] = "SK"
	a["maxResults"] = "12"
	a["order"] = "mostPopular"

	b := map[string]string{}
	b["order"] = "mostPopular"
	b["maxResults"] = "12"
	b["regionCode"] = "SK"

	assert.Equal(t, BuildCacheKey("youtube", a), BuildCacheKey("youtube", b))
}

func TestBuildCacheKey_CanonicalForm(t *testing.T) {
	key := BuildCacheKey("youtube", map[string]string{
		"regionCode": "SK",
		"maxResults": "12",
	})

	// Names sorted, name:value pairs joined by the delimiter, namespace
	// prefix first. The exact form must be stable across processes.
	assert.Equal(t, "youtube:maxResults:12:regionCode:SK", key)
}

func TestBuildCacheKey_DropsEmptyValues(t *testing.T) {
	withEmpty := BuildCacheKey("youtube", map[string]string{
		"regionCode":  "SK",
		"searchQuery": "",
	})
	without := BuildCacheKey("youtube", map[string]string{
		"regionCode": "SK",
	})

	assert.Equal(t, without, withEmpty)
}

func TestBuildCacheKey_Discrimination(t *testing.T) {
	base := map[string]string{
		"regionCode":    "SK",
		"maxResults":    "12",
		"includeShorts": "false",
		"order":         "mostPopular",
	}

	baseKey := BuildCacheKey("youtube", base)

	for name := range base {
		changed := make(map[string]string, len(base))
		for k, v := range base {
			changed[k] = v
		}
		changed[name] = changed[name] + "x"

		assert.NotEqual(t, baseKey, BuildCacheKey("youtube", changed),
			"changing %q must change the key", name)
	}
}

func TestQueryParams_CacheFields_OmitsAbsentOptionals(t *testing.T) {
	params := QueryParams{
		RegionCode: "SK",
		MaxResults: 12,
		Order:      OrderMostPopular,
	}

	fields := params.cacheFields()

	assert.NotContains(t, fields, "searchQuery")
	assert.NotContains(t, fields, "pageToken")
	assert.Equal(t, "false", fields["includeShorts"])
}

func TestTTLPolicy_Ordering(t *testing.T) {
	policy := DefaultTTLPolicy()

	search := policy.For(QueryParams{SearchQuery: "cats", Order: OrderMostPopular})
	popular := policy.For(QueryParams{Order: OrderMostPopular})
	trending := policy.For(QueryParams{Order: "date"})

	assert.GreaterOrEqual(t, search, popular)
	assert.GreaterOrEqual(t, popular, trending)
}

func TestTTLPolicy_Classes(t *testing.T) {
	policy := TTLPolicy{
		Search:   30 * time.Minute,
		Popular:  20 * time.Minute,
		Trending: 15 * time.Minute,
	}

	assert.Equal(t, 30*time.Minute, policy.For(QueryParams{SearchQuery: "go"}))
	assert.Equal(t, 20*time.Minute, policy.For(QueryParams{Order: OrderMostPopular}))
	assert.Equal(t, 15*time.Minute, policy.For(QueryParams{Order: "date"}))
}
