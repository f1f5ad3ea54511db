package youtube

import "strings"

// ExtractVideoID pulls the video ID out of a watch URL ("...?v=ID&...") or a
// short link ("youtu.be/ID?..."). ok is false when neither shape is present.
//
// No length or charset check is done on the result: anything after "v=" up to
// the next "&" is returned as-is, including an empty string.
func ExtractVideoID(url string) (string, bool) {
	if _, after, found := strings.Cut(url, "v="); found {
		id, _, _ := strings.Cut(after, "&")
		return id, true
	}

	if strings.Contains(url, "youtu.be") {
		_, after, found := strings.Cut(url, ".be/")
		if !found {
			return "", false
		}
		id, _, _ := strings.Cut(after, "?")
		return id, true
	}

	return "", false
}

// WatchURL builds the canonical watch page URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// EmbedURL builds the player URL used by the page's iframe.
func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}
