package models

import (
	"strings"
	"time"
)

type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ChannelTitle    string    `json:"channel_title"`
	PublishedAt     time.Time `json:"published_at"`
	Duration        string    `json:"duration"`
	DurationSeconds int       `json:"duration_seconds"`
	ViewCount       int64     `json:"view_count"`
	URL             string    `json:"url"`
}

// TranscriptEntry is one timed caption segment. Only Text feeds the prompt.
type TranscriptEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type Transcript struct {
	VideoID  string            `json:"video_id"`
	Language string            `json:"language"`
	Entries  []TranscriptEntry `json:"entries"`
}

// Text joins the entry texts with single spaces, preserving order.
func (t *Transcript) Text() string {
	if t == nil {
		return ""
	}
	parts := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		parts[i] = e.Text
	}
	return strings.Join(parts, " ")
}

// VideoSession is what the page holds for the currently entered URL.
type VideoSession struct {
	URL        string      `json:"url"`
	VideoID    string      `json:"video_id"`
	Video      *Video      `json:"video,omitempty"`
	Transcript *Transcript `json:"transcript"`
}

type Answer struct {
	VideoID string `json:"video_id"`
	Action  string `json:"action"`
	Prompt  string `json:"-"`
	Content string `json:"content"`
}

type AgentResponse struct {
	Content   string `json:"content"`
	Model     string `json:"model"`
	ToolCalls int    `json:"tool_calls"`
}

type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
