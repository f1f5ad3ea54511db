package web

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"

	videosummarizer "yt-summarizer/agents/video-summarizer"
	"yt-summarizer/agents/video-summarizer/youtube"
	"yt-summarizer/internal/models"
	"yt-summarizer/shared/config"
	"yt-summarizer/shared/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	defaultVideoURL = "https://www.youtube.com/watch?v=example"
	invalidURLInfo  = "Enter a valid YouTube URL to begin analysis"
)

// Summarizer is the workflow behind the page's actions.
type Summarizer interface {
	LoadVideo(ctx context.Context, url string) (*models.VideoSession, error)
	Summarize(ctx context.Context, req videosummarizer.ActionRequest) (*models.Answer, error)
	Insights(ctx context.Context, req videosummarizer.ActionRequest) (*models.Answer, error)
}

type API struct {
	cfg        *config.Config
	summarizer Summarizer
	markdown   goldmark.Markdown
}

func NewAPI(cfg *config.Config, summarizer Summarizer) *API {
	return &API{
		cfg:        cfg,
		summarizer: summarizer,
		markdown:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func registerRoutes(r *gin.Engine, api *API, monitor *monitoring.Monitor) {
	r.SetHTMLTemplate(pageTemplate)
	r.GET("/", api.handleIndex)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/video", api.handleLoadVideo)
		apiGroup.POST("/summarize", api.handleSummarize)
		apiGroup.POST("/insights", api.handleInsights)
	}

	monitoring.RegisterRoutes(r, monitor)
}

func (a *API) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"DefaultURL": defaultVideoURL,
		"AgentName":  a.cfg.AI.AgentName,
		"Model":      a.cfg.AI.Model,
	})
}

func (a *API) handleLoadVideo(c *gin.Context) {
	var payload struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := a.summarizer.LoadVideo(c.Request.Context(), payload.URL)
	if err != nil {
		a.respondActionError(c, "", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"video_id":   session.VideoID,
		"embed_url":  youtube.EmbedURL(session.VideoID),
		"watch_url":  youtube.WatchURL(session.VideoID),
		"language":   session.Transcript.Language,
		"entries":    len(session.Transcript.Entries),
		"transcript": session.Transcript.Text(),
		"video":      session.Video,
	})
}

func (a *API) handleSummarize(c *gin.Context) {
	a.handleAction(c, videosummarizer.ActionSummarize, a.summarizer.Summarize)
}

func (a *API) handleInsights(c *gin.Context) {
	a.handleAction(c, videosummarizer.ActionInsights, a.summarizer.Insights)
}

func (a *API) handleAction(c *gin.Context, action string, run func(context.Context, videosummarizer.ActionRequest) (*models.Answer, error)) {
	var req videosummarizer.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	answer, err := run(c.Request.Context(), req)
	if err != nil {
		a.respondActionError(c, action, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"video_id": answer.VideoID,
		"action":   answer.Action,
		"content":  answer.Content,
		"html":     a.renderMarkdown(answer.Content),
	})
}

// respondActionError turns a workflow error into the message shown on the page.
// An unparseable URL is informational and answered with 200.
func (a *API) respondActionError(c *gin.Context, action string, err error) {
	var transcriptErr *youtube.TranscriptError
	var agentErr *videosummarizer.AgentError

	switch {
	case errors.Is(err, videosummarizer.ErrInvalidURL):
		c.JSON(http.StatusOK, gin.H{"info": invalidURLInfo})
	case errors.Is(err, videosummarizer.ErrEmptyQuery):
		respondMessage(c, http.StatusBadRequest, "Enter a question to get insights")
	case errors.As(err, &transcriptErr):
		respondMessage(c, http.StatusBadGateway, "Error fetching transcript: "+transcriptErr.Error())
	case errors.As(err, &agentErr):
		respondMessage(c, http.StatusBadGateway, agentFailurePrefix(action)+agentErr.Err.Error())
	default:
		log.Printf("Unexpected %s error: %v", action, err)
		respondError(c, http.StatusInternalServerError, err)
	}
}

func agentFailurePrefix(action string) string {
	if action == videosummarizer.ActionInsights {
		return "Error analyzing insights: "
	}
	return "Error summarizing video: "
}

// renderMarkdown converts model output to HTML. Raw HTML in the input is dropped.
func (a *API) renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := a.markdown.Convert([]byte(content), &buf); err != nil {
		log.Printf("Warning: Failed to render markdown: %v", err)
		return ""
	}
	return buf.String()
}

func respondError(c *gin.Context, status int, err error) {
	respondMessage(c, status, err.Error())
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
