package videosummarizer

import "fmt"

func buildSummaryPrompt(transcript, query string) string {
	return fmt.Sprintf(`Summarize the following YouTube video transcript:
%s

Additionally, answer the user query: %s
`, transcript, query)
}

// buildInsightPrompt tells the model explicitly that the transcript is included.
func buildInsightPrompt(transcript, query string) string {
	return fmt.Sprintf(`The following is the transcript of a YouTube video. You **DO HAVE** access to this text.

Transcript:
%s

Based on the video transcript, answer the following question:
%s
`, transcript, query)
}
