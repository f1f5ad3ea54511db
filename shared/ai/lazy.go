package ai

import (
	"context"
	"log"
	"sync"

	"yt-summarizer/internal/models"
)

// Runner answers a single prompt.
type Runner interface {
	Run(ctx context.Context, prompt string) (*models.AgentResponse, error)
}

// LazyAgent builds its Agent on first use and reuses it for the life of the
// process. A failed build is not cached, so the next call tries again.
type LazyAgent struct {
	cfg   AgentConfig
	build func(context.Context, AgentConfig) (*Agent, error)

	mu    sync.Mutex
	agent *Agent
}

func NewLazyAgent(cfg AgentConfig) *LazyAgent {
	return &LazyAgent{cfg: cfg, build: NewAgent}
}

func (l *LazyAgent) Get(ctx context.Context) (*Agent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.agent != nil {
		return l.agent, nil
	}

	agent, err := l.build(ctx, l.cfg)
	if err != nil {
		return nil, err
	}

	log.Printf("AI agent %q initialized (model %s, %d tools)", l.cfg.Name, l.cfg.Model, len(l.cfg.Tools))
	l.agent = agent
	return agent, nil
}

func (l *LazyAgent) Run(ctx context.Context, prompt string) (*models.AgentResponse, error) {
	agent, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}
	return agent.Run(ctx, prompt)
}
