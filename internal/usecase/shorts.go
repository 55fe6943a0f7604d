package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultShortsThreshold is the duration (seconds) at or below which a
// video counts as short-form. Deliberately above YouTube's actual 60s
// Shorts cutoff: the detection is a heuristic, not authoritative.
const DefaultShortsThreshold = 79

const shortsTag = "#shorts"

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ShortsDetector classifies videos as short-form content using the
// ISO-8601 duration plus text-metadata heuristics.
type ShortsDetector struct {
	threshold int
}

func NewShortsDetector(thresholdSeconds int) ShortsDetector {
	if thresholdSeconds <= 0 {
		thresholdSeconds = DefaultShortsThreshold
	}
	return ShortsDetector{threshold: thresholdSeconds}
}

// IsShortForm reports whether a video is short-form: either its title or
// description carries the "#shorts" tag, or its total duration is at or
// below the threshold. An unparseable duration never classifies as
// short-form, so malformed data cannot silently hide a video.
func (d ShortsDetector) IsShortForm(durationISO8601, title, description string) bool {
	if strings.Contains(strings.ToLower(title), shortsTag) ||
		strings.Contains(strings.ToLower(description), shortsTag) {
		return true
	}

	totalSeconds, ok := parseDurationSeconds(durationISO8601)
	if !ok {
		return false
	}
	return totalSeconds <= d.threshold
}

// parseDurationSeconds parses an ISO-8601 duration of the PT(hH)(mM)(sS)
// form. Absent components default to zero. Returns false when the value
// does not match the pattern at all.
func parseDurationSeconds(duration string) (int, bool) {
	match := durationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0, false
	}

	hours := atoiOrZero(match[1])
	minutes := atoiOrZero(match[2])
	seconds := atoiOrZero(match[3])
	return hours*3600 + minutes*60 + seconds, true
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
