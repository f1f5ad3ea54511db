package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"yt-summarizer/internal/models"

	"google.golang.org/genai"
)

var (
	// ErrMissingAPIKey means no Gemini key was configured; only agent calls are affected.
	ErrMissingAPIKey = errors.New("gemini API key is not configured (set GOOGLE_API_KEY or ai.gemini_api_key)")
	ErrEmptyResponse = errors.New("empty response from model")
)

// Tool is a capability the model may call through function calling.
type Tool interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, args map[string]any) (map[string]any, error)
}

// AgentConfig lists everything an Agent is built from.
type AgentConfig struct {
	APIKey       string
	Model        string
	Name         string
	Instructions []string
	Markdown     bool
	Tools        []Tool
	GoogleSearch bool
	MaxToolCalls int
}

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Agent struct {
	models       generator
	name         string
	model        string
	tools        map[string]Tool
	maxToolCalls int
	config       *genai.GenerateContentConfig
	// finalConfig is used once the tool budget is spent.
	finalConfig *genai.GenerateContentConfig
}

func NewAgent(ctx context.Context, cfg AgentConfig) (*Agent, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return newAgent(client.Models, cfg), nil
}

func newAgent(models generator, cfg AgentConfig) *Agent {
	a := &Agent{
		models:       models,
		name:         cfg.Name,
		model:        cfg.Model,
		tools:        make(map[string]Tool),
		maxToolCalls: cfg.MaxToolCalls,
	}

	instructions := genai.NewContentFromText(buildInstructions(cfg), genai.RoleUser)

	var decls []*genai.FunctionDeclaration
	for _, tool := range cfg.Tools {
		decl := tool.Declaration()
		a.tools[decl.Name] = tool
		decls = append(decls, decl)
	}

	var tools []*genai.Tool
	if len(decls) > 0 {
		tools = append(tools, &genai.Tool{FunctionDeclarations: decls})
	}
	if cfg.GoogleSearch {
		tools = append(tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}

	a.config = &genai.GenerateContentConfig{SystemInstruction: instructions, Tools: tools}
	a.finalConfig = &genai.GenerateContentConfig{SystemInstruction: instructions}
	return a
}

func buildInstructions(cfg AgentConfig) string {
	lines := []string{fmt.Sprintf("You are %s, an assistant that answers questions about YouTube videos from their transcripts.", cfg.Name)}
	lines = append(lines, cfg.Instructions...)
	if len(cfg.Tools) > 0 || cfg.GoogleSearch {
		lines = append(lines, "When the transcript does not cover something the user asks, you may search the web and say so.")
	}
	if cfg.Markdown {
		lines = append(lines, "Use markdown to format your answers.")
	}
	return strings.Join(lines, "\n")
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Model() string {
	return a.model
}

// Run sends prompt to the model, answering tool calls until the model replies
// with text or the tool budget is spent.
func (a *Agent) Run(ctx context.Context, prompt string) (*models.AgentResponse, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	toolCalls := 0

	for {
		cfg := a.config
		if toolCalls >= a.maxToolCalls {
			cfg = a.finalConfig
		}

		result, err := a.models.GenerateContent(ctx, a.model, contents, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to generate content with %s: %w", a.model, err)
		}
		if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
				return nil, fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyResponse, result.PromptFeedback.BlockReason)
			}
			return nil, ErrEmptyResponse
		}

		calls := result.FunctionCalls()
		if len(calls) == 0 || cfg == a.finalConfig {
			text := result.Text()
			if strings.TrimSpace(text) == "" {
				return nil, ErrEmptyResponse
			}
			return &models.AgentResponse{Content: text, Model: a.model, ToolCalls: toolCalls}, nil
		}

		contents = append(contents, result.Candidates[0].Content)

		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			toolCalls++
			parts = append(parts, &genai.Part{FunctionResponse: &genai.FunctionResponse{
				ID:       call.ID,
				Name:     call.Name,
				Response: a.callTool(ctx, call),
			}})
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}
}

func (a *Agent) callTool(ctx context.Context, call *genai.FunctionCall) map[string]any {
	tool, ok := a.tools[call.Name]
	if !ok {
		log.Printf("Model requested unknown tool %s", call.Name)
		return map[string]any{"error": fmt.Sprintf("unknown tool %q", call.Name)}
	}

	output, err := tool.Call(ctx, call.Args)
	if err != nil {
		log.Printf("Warning: Tool %s failed: %v", call.Name, err)
		return map[string]any{"error": err.Error()}
	}
	return output
}
