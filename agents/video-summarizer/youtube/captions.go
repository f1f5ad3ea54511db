package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"yt-summarizer/internal/models"
	"yt-summarizer/shared/config"
)

var (
	ErrVideoUnavailable    = errors.New("video is unavailable")
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscriptFound   = errors.New("no transcript found for the requested languages")
)

const (
	playerResponseMarker = "ytInitialPlayerResponse = "
	watchPageLimit       = 6 * 1024 * 1024
	timedTextLimit       = 2 * 1024 * 1024
	browserUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
)

var formattingTagRE = regexp.MustCompile(`<[^>]*>`)

// CaptionClient reads caption tracks straight from the YouTube watch page.
type CaptionClient struct {
	client  *http.Client
	baseURL string
}

type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

func (t captionTrack) generated() bool {
	return t.Kind == "asr"
}

type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Lines   []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
}

func NewCaptionClient(cfg *config.TranscriptConfig) *CaptionClient {
	return &CaptionClient{
		baseURL: strings.TrimRight(cfg.WatchURL, "/"),
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Fetch returns the caption entries of the first language in languages that the
// video has a track for. Manually created tracks win over auto-generated ones.
func (c *CaptionClient) Fetch(ctx context.Context, videoID string, languages []string) ([]models.TranscriptEntry, error) {
	player, err := c.fetchPlayerResponse(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Status != "" && player.PlayabilityStatus.Status != "OK" {
			return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, playabilityReason(player))
		}
		return nil, ErrTranscriptsDisabled
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, ErrTranscriptsDisabled
	}

	track, ok := pickTrack(tracks, languages)
	if !ok {
		return nil, fmt.Errorf("%w %v (available: %s)", ErrNoTranscriptFound, languages, strings.Join(trackLanguages(tracks), ", "))
	}

	return c.fetchTimedText(ctx, track.BaseURL)
}

func (c *CaptionClient) fetchPlayerResponse(ctx context.Context, videoID string) (*playerResponse, error) {
	watchURL := c.baseURL + "/watch?" + url.Values{"v": {videoID}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create watch page request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	// Skips the EU consent interstitial.
	req.Header.Set("Cookie", "CONSENT=YES+cb")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, watchPageLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to read watch page: %w", err)
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return nil, fmt.Errorf("%w: player response not found in watch page", ErrVideoUnavailable)
	}

	raw := extractJSONObject(body[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, errors.New("failed to extract player response JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, fmt.Errorf("failed to decode player response: %w", err)
	}
	return &player, nil
}

func (c *CaptionClient) fetchTimedText(ctx context.Context, baseURL string) ([]models.TranscriptEntry, error) {
	// srv3 is a richer format; the plain timedtext XML is what we parse.
	trackURL := strings.Replace(baseURL, "&fmt=srv3", "", 1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create caption request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("caption track returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, timedTextLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to read captions: %w", err)
	}

	return parseTimedText(body)
}

func parseTimedText(data []byte) ([]models.TranscriptEntry, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("failed to parse caption XML: %w", err)
	}

	entries := make([]models.TranscriptEntry, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if line.Text == "" {
			continue
		}
		text := html.UnescapeString(line.Text)
		text = formattingTagRE.ReplaceAllString(text, "")

		start, _ := strconv.ParseFloat(line.Start, 64)
		dur, _ := strconv.ParseFloat(line.Dur, 64)

		entries = append(entries, models.TranscriptEntry{
			Text:     text,
			Start:    start,
			Duration: dur,
		})
	}
	return entries, nil
}

func pickTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	for _, lang := range languages {
		for _, t := range tracks {
			if t.LanguageCode == lang && !t.generated() {
				return t, true
			}
		}
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	return captionTrack{}, false
}

func trackLanguages(tracks []captionTrack) []string {
	langs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		lang := t.LanguageCode
		if t.generated() {
			lang += " (auto)"
		}
		langs = append(langs, lang)
	}
	return langs
}

func playabilityReason(p *playerResponse) string {
	if p.PlayabilityStatus.Reason != "" {
		return p.PlayabilityStatus.Reason
	}
	return p.PlayabilityStatus.Status
}

// extractJSONObject returns the balanced {...} object at the start of data,
// or nil when data does not start with one.
func extractJSONObject(data []byte) []byte {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	depth := 0
	inString := false
	escaped := false
	for i, b := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return data[:i+1]
			}
		}
	}
	return nil
}
