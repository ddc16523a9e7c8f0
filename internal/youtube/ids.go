// Package youtube provides YouTube ID extraction, channel resolution and
// public feed/statistics access for the church website.
package youtube

import "regexp"

// videoIDPatterns are tried in order; the first match wins. The URL pattern
// covers watch, shorts, youtu.be and embed forms; the second pattern accepts
// a bare 11-character video ID.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|shorts/)|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// channelIDRegex matches a canonical 24-character UC channel ID.
var channelIDRegex = regexp.MustCompile(`^UC[a-zA-Z0-9_-]{22}$`)

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL, or
// returns "" if none of the known URL shapes match. Pure, no I/O.
func ExtractVideoID(url string) string {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// IsValidURL reports whether url contains an extractable video ID.
func IsValidURL(url string) bool {
	return ExtractVideoID(url) != ""
}

// IsChannelID reports whether input is already a canonical UC channel ID.
func IsChannelID(input string) bool {
	return channelIDRegex.MatchString(input)
}

// ThumbnailURL returns the maxres thumbnail for a video URL, or "" when the
// URL carries no recognizable video ID.
func ThumbnailURL(url string) string {
	if id := ExtractVideoID(url); id != "" {
		return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
	}
	return ""
}

// EmbedURL returns the embed player URL for a video URL, or "" when the URL
// carries no recognizable video ID.
func EmbedURL(url string) string {
	if id := ExtractVideoID(url); id != "" {
		return "https://www.youtube.com/embed/" + id
	}
	return ""
}

// VideoURL returns the canonical watch URL for a video ID.
func VideoURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
