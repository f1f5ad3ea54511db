package youtube

import (
	"context"
	"fmt"
	"log"
	"strings"

	"yt-summarizer/internal/models"
)

// LanguagePriority is the ordered list of caption languages to try. The first
// language that yields a transcript wins; results are never merged.
type LanguagePriority []string

// maxLanguageAttempts caps the resolver at a primary and a fallback language.
const maxLanguageAttempts = 2

// DefaultLanguages tries English first, then Hindi.
var DefaultLanguages = LanguagePriority{"en", "hi"}

// TranscriptFetcher is the transcript service collaborator.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string, languages []string) ([]models.TranscriptEntry, error)
}

// LanguageAttempt records one failed fetch.
type LanguageAttempt struct {
	Language string
	Err      error
}

// TranscriptError is returned when every language in the priority list failed.
// It reports and unwraps to the last failure.
type TranscriptError struct {
	VideoID  string
	Attempts []LanguageAttempt
}

func (e *TranscriptError) Error() string {
	last := e.last()
	if last == nil {
		return fmt.Sprintf("no transcript languages to try for video %s", e.VideoID)
	}
	return fmt.Sprintf("could not retrieve a transcript for video %s (tried %s): %v",
		e.VideoID, strings.Join(e.languages(), ", "), last.Err)
}

func (e *TranscriptError) Unwrap() error {
	if last := e.last(); last != nil {
		return last.Err
	}
	return nil
}

func (e *TranscriptError) last() *LanguageAttempt {
	if len(e.Attempts) == 0 {
		return nil
	}
	return &e.Attempts[len(e.Attempts)-1]
}

func (e *TranscriptError) languages() []string {
	langs := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		langs[i] = a.Language
	}
	return langs
}

// ResolveTranscript asks the fetcher for each language in priority order, one
// language per attempt, and returns the first transcript it gets. At most
// maxLanguageAttempts languages are tried and none is tried twice.
func ResolveTranscript(ctx context.Context, fetcher TranscriptFetcher, videoID string, priority LanguagePriority) (*models.Transcript, error) {
	terr := &TranscriptError{VideoID: videoID}

	if len(priority) > maxLanguageAttempts {
		priority = priority[:maxLanguageAttempts]
	}

	for _, lang := range priority {
		entries, err := fetcher.Fetch(ctx, videoID, []string{lang})
		if err == nil {
			if len(terr.Attempts) > 0 {
				log.Printf("Transcript for %s resolved in fallback language %s", videoID, lang)
			}
			return &models.Transcript{
				VideoID:  videoID,
				Language: lang,
				Entries:  entries,
			}, nil
		}

		log.Printf("Transcript fetch failed for %s (language %s): %v", videoID, lang, err)
		terr.Attempts = append(terr.Attempts, LanguageAttempt{Language: lang, Err: err})
	}

	return nil, terr
}
