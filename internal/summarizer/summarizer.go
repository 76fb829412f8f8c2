package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

var prompts = map[Mode]string{
	ModeShort:    "Summarize the following transcript in three sentences.",
	ModeDetailed: "Provide a detailed five-paragraph summary of the following transcript.",
}

// Prompt returns the system instruction used for mode.
func Prompt(mode Mode) string {
	if p, ok := prompts[mode]; ok {
		return p
	}
	return "Summarize the following transcript."
}

// Summarize sends the transcript to Gemini and returns the trimmed summary.
func (s *implSummarizer) Summarize(ctx context.Context, text string, mode Mode) (string, error) {
	if len(s.apiKeys) == 0 {
		return "", ErrNoCredential
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Info(ctx, "Requesting %s summary from %s (%d words)", mode, s.model, len(strings.Fields(text)))

	summary, err := s.callGemini(ctx, Prompt(mode), text)
	if err != nil {
		return "", fmt.Errorf("%s summary: %w", mode, err)
	}

	s.logger.Info(ctx, "%s summary ready: %d words in %s", mode, len(strings.Fields(summary)), time.Since(start))
	return strings.TrimSpace(summary), nil
}

// callGemini sends the transcript with the given instruction and returns the text.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, instruction, transcript string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key, idx := s.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(transcript), cfg)
		if err != nil {
			if isRateLimited(err) {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				s.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			if strings.TrimSpace(text) != "" {
				return text, nil
			}
		}

		return "", ErrEmptyResponse
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED")
}

func (s *implSummarizer) key() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKeys[s.currentKey], s.currentKey
}

// rotateKey moves past idx unless a concurrent call already did.
func (s *implSummarizer) rotateKey(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey == idx {
		s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	}
}
