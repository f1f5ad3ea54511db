package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	videosummarizer "yt-summarizer/agents/video-summarizer"
	"yt-summarizer/agents/video-summarizer/web"
	"yt-summarizer/shared/config"
)

func main() {
	once := flag.Bool("once", false, "run a single action and print the answer instead of serving the page")
	url := flag.String("url", "", "YouTube video URL (with --once)")
	query := flag.String("query", "", "question about the video (with --once)")
	insights := flag.Bool("insights", false, "ask for insights instead of a summary (with --once; requires -query)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	agent := videosummarizer.NewVideoSummarizer(cfg)
	if err := agent.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize agent: %v", err)
	}

	if *once {
		if err := runOnce(ctx, agent, *url, *query, *insights); err != nil {
			log.Fatalf("Failed to run: %v", err)
		}
		return
	}

	fmt.Printf("Starting %s on port %d...\n", agent.Name(), cfg.Server.Port)
	server := web.NewServer(cfg, agent, agent.Monitor())
	if err := server.Run(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func runOnce(ctx context.Context, agent *videosummarizer.VideoSummarizer, url, query string, insights bool) error {
	session, err := agent.LoadVideo(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to load video: %w", err)
	}

	req := videosummarizer.ActionRequest{
		URL:        url,
		Query:      query,
		Transcript: session.Transcript.Text(),
	}

	run := agent.Summarize
	if insights {
		run = agent.Insights
	}

	answer, err := run(ctx, req)
	if err != nil {
		return err
	}

	if session.Video != nil {
		fmt.Printf("# %s (%s)\n\n", session.Video.Title, session.Video.ChannelTitle)
	}
	fmt.Println(answer.Content)
	return nil
}
