package settings

import (
	"regexp"
	"strings"
)

var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)youtu\.be/([\w-]+)`),
	regexp.MustCompile(`(?i)[?&]v=([\w-]+)`),
	regexp.MustCompile(`(?i)embed/([\w-]+)`),
}

// NormalizeYouTubeURL rewrites common YouTube URL forms (watch, short link,
// embed) to the canonical embed URL. Unrecognized non-empty input passes
// through unchanged so self-hosted video links keep working.
func NormalizeYouTubeURL(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	for _, re := range youtubeIDPatterns {
		if m := re.FindStringSubmatch(v); m != nil {
			return "https://www.youtube.com/embed/" + m[1]
		}
	}
	return v
}
