package videosummarizer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"yt-summarizer/agents/video-summarizer/youtube"
	"yt-summarizer/internal/models"
	"yt-summarizer/shared/ai"
	"yt-summarizer/shared/config"
	"yt-summarizer/shared/monitoring"
	"yt-summarizer/shared/search"
)

const (
	ActionSummarize = "summarize"
	ActionInsights  = "insights"
)

var (
	// ErrInvalidURL means no video ID could be extracted. It is informational, not a failure.
	ErrInvalidURL = errors.New("enter a valid YouTube URL to begin analysis")
	ErrEmptyQuery = errors.New("a question is required to get insights")
)

// AgentError wraps a failed LLM call with the action that made it.
type AgentError struct {
	Action string
	Err    error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *AgentError) Unwrap() error {
	return e.Err
}

// ActionRequest is one button press. Transcript carries the text already
// fetched for this URL; when empty it is resolved again.
type ActionRequest struct {
	URL        string `json:"url"`
	Query      string `json:"query"`
	Transcript string `json:"transcript,omitempty"`
}

type metadataLookup interface {
	Lookup(ctx context.Context, videoID string) (*models.Video, error)
}

type VideoSummarizer struct {
	config    *config.Config
	fetcher   youtube.TranscriptFetcher
	runner    ai.Runner
	metadata  metadataLookup
	languages youtube.LanguagePriority
	monitor   *monitoring.Monitor
}

func NewVideoSummarizer(cfg *config.Config) *VideoSummarizer {
	return &VideoSummarizer{
		config:    cfg,
		languages: youtube.LanguagePriority(cfg.Transcript.Languages),
		monitor:   monitoring.NewMonitor(),
	}
}

func (v *VideoSummarizer) Name() string {
	return "Video Summarizer"
}

func (v *VideoSummarizer) Monitor() *monitoring.Monitor {
	return v.monitor
}

// Initialize wires the collaborators that were not injected. The agent is
// built lazily, so a missing Gemini key only surfaces on the first action.
func (v *VideoSummarizer) Initialize(ctx context.Context) error {
	log.Printf("Initializing %s...", v.Name())

	if len(v.languages) == 0 {
		v.languages = youtube.DefaultLanguages
	}

	if v.fetcher == nil {
		v.fetcher = youtube.NewCaptionClient(&v.config.Transcript)
		log.Printf("Transcript client initialized (languages: %s)", strings.Join(v.languages, ", "))
	}

	if v.runner == nil {
		v.runner = ai.NewLazyAgent(agentConfig(&v.config.AI, &v.config.Search))
		log.Printf("AI agent configured (model %s, tool %s)", v.config.AI.Model, v.config.AI.Tool)
	}

	if v.metadata == nil {
		client, err := youtube.NewMetadataClient(ctx, &v.config.YouTube)
		switch {
		case errors.Is(err, youtube.ErrMetadataDisabled):
			log.Println("YouTube Data API not configured, video details disabled")
		case err != nil:
			log.Printf("Warning: Failed to create YouTube metadata client: %v", err)
		default:
			v.metadata = client
			log.Println("YouTube metadata client initialized")
		}
	}

	return nil
}

func agentConfig(aiCfg *config.AIConfig, searchCfg *config.SearchConfig) ai.AgentConfig {
	cfg := ai.AgentConfig{
		APIKey:       aiCfg.GeminiAPIKey,
		Model:        aiCfg.Model,
		Name:         aiCfg.AgentName,
		Markdown:     aiCfg.MarkdownEnabled(),
		MaxToolCalls: aiCfg.MaxToolCalls,
	}

	switch aiCfg.Tool {
	case "duckduckgo":
		cfg.Tools = []ai.Tool{ai.NewWebSearchTool(search.NewDuckDuckGo(searchCfg))}
	case "google":
		cfg.GoogleSearch = true
	}
	return cfg
}

func (v *VideoSummarizer) parseURL(url string) (string, error) {
	id, ok := youtube.ExtractVideoID(url)
	if !ok || id == "" {
		v.monitor.RecordPartialFailure(fmt.Errorf("%w: %q", ErrInvalidURL, url), 0)
		return "", ErrInvalidURL
	}
	return id, nil
}

// LoadVideo parses url and fetches its transcript. Video details are added
// when the Data API is configured; a failed lookup is only logged.
func (v *VideoSummarizer) LoadVideo(ctx context.Context, url string) (*models.VideoSession, error) {
	start := time.Now()

	videoID, err := v.parseURL(url)
	if err != nil {
		return nil, err
	}

	transcript, err := youtube.ResolveTranscript(ctx, v.fetcher, videoID, v.languages)
	if err != nil {
		v.monitor.RecordPartialFailure(err, time.Since(start))
		return nil, err
	}

	session := &models.VideoSession{
		URL:        url,
		VideoID:    videoID,
		Transcript: transcript,
	}

	if v.metadata != nil {
		video, err := v.metadata.Lookup(ctx, videoID)
		if err != nil {
			log.Printf("Warning: Failed to look up video %s: %v", videoID, err)
		} else {
			session.Video = video
		}
	}

	log.Printf("Loaded video %s (%d transcript entries, language %s)", videoID, len(transcript.Entries), transcript.Language)
	return session, nil
}

func (v *VideoSummarizer) Summarize(ctx context.Context, req ActionRequest) (*models.Answer, error) {
	return v.answer(ctx, ActionSummarize, req, buildSummaryPrompt)
}

func (v *VideoSummarizer) Insights(ctx context.Context, req ActionRequest) (*models.Answer, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}
	return v.answer(ctx, ActionInsights, req, buildInsightPrompt)
}

func (v *VideoSummarizer) answer(ctx context.Context, action string, req ActionRequest, prompt func(transcript, query string) string) (*models.Answer, error) {
	start := time.Now()

	videoID, err := v.parseURL(req.URL)
	if err != nil {
		return nil, err
	}

	text := req.Transcript
	if strings.TrimSpace(text) == "" {
		transcript, err := youtube.ResolveTranscript(ctx, v.fetcher, videoID, v.languages)
		if err != nil {
			v.monitor.RecordPartialFailure(err, time.Since(start))
			return nil, err
		}
		text = transcript.Text()
	}

	p := prompt(text, req.Query)

	log.Printf("Running %s for video %s (%d transcript chars)", action, videoID, len(text))
	resp, err := v.runner.Run(ctx, p)
	if err != nil {
		agentErr := &AgentError{Action: action, Err: err}
		v.monitor.RecordCriticalFailure(agentErr, time.Since(start))
		return nil, agentErr
	}

	v.monitor.RecordSuccess(fmt.Sprintf("%s for %s (%d tool calls)", action, videoID, resp.ToolCalls), time.Since(start))

	return &models.Answer{
		VideoID: videoID,
		Action:  action,
		Prompt:  p,
		Content: resp.Content,
	}, nil
}
