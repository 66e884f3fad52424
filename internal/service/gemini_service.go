package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"google.golang.org/genai"
)

const (
	maxEmbeddingChars = 10000
	maxEmbeddingBatch = 100
)

type GeminiService struct {
	Client            *genai.Client
	EmbeddingModelID  string
	TaggerModelID     string
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	RequestTimeout    time.Duration
	// CooldownPeriod is how long an open breaker rejects calls before it
	// lets one trial call through.
	CooldownPeriod    time.Duration
	consecutiveErrors atomic.Int32
	openedAt          atomic.Int64
	circuitBreakerMax int32
	now               func() time.Time
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	apiKey := geminiConfig.APIKey
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:            client,
		EmbeddingModelID:  geminiConfig.EmbeddingModel,
		TaggerModelID:     geminiConfig.TaggerModel,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          30 * time.Second,
		RequestTimeout:    90 * time.Second,
		CooldownPeriod:    30 * time.Second,
		circuitBreakerMax: 5,
		now:               time.Now,
	}, nil
}

func (s *GeminiService) EmbeddingModel() string {
	return s.EmbeddingModelID
}

// Embed returns one vector per text, in order. Texts are sent in batches and
// each text is truncated to maxEmbeddingChars.
func (s *GeminiService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxEmbeddingBatch {
		end := min(start+maxEmbeddingBatch, len(texts))
		batch, err := s.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (s *GeminiService) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return nil, fmt.Errorf("text %d for embedding cannot be empty", i)
		}
		if len(trimmed) > maxEmbeddingChars {
			log.Printf("Warning: text length %d exceeds recommended limit, truncating...", len(trimmed))
			trimmed = truncateRunes(trimmed, maxEmbeddingChars)
		}
		contents[i] = genai.NewContentFromText(trimmed, genai.RoleUser)
	}

	var result *genai.EmbedContentResponse
	err := s.withRetry(ctx, "EmbedContent", func(ctx context.Context) error {
		var err error
		result, err = s.Client.Models.EmbedContent(ctx, s.EmbeddingModelID, contents, &genai.EmbedContentConfig{
			TaskType: "SEMANTIC_SIMILARITY",
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.validateEmbeddingResponse(result, len(texts))
}

// Tag asks the tagger model for the named entities in text.
func (s *GeminiService) Tag(ctx context.Context, text string) ([]matcher.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var result *genai.GenerateContentResponse
	err := s.withRetry(ctx, "GenerateContent", func(ctx context.Context) error {
		var err error
		result, err = s.Client.Models.GenerateContent(ctx, s.TaggerModelID, genai.Text(entityPrompt(text)), &genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0)),
			ResponseMIMEType: "application/json",
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := s.validateGenerateResponse(result); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	return parseEntities(result.Text())
}

// withRetry runs fn with exponential backoff on retryable errors, behind a
// consecutive-failure circuit breaker. An open breaker lets a single trial
// call through once CooldownPeriod has passed; success closes it.
func (s *GeminiService) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if err := s.allowCall(); err != nil {
		return err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			log.Printf("Retry attempt %d/%d for %s after %v", attempt, s.MaxRetries, op, delay)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		err := fn(timeoutCtx)
		if err == nil {
			if s.consecutiveErrors.Swap(0) >= s.circuitBreakerMax {
				log.Printf("Circuit breaker closed after successful %s", op)
			}
			return nil
		}
		lastErr = err

		if !s.isRetryableError(err) {
			log.Printf("Non-retryable error from %s: %v", op, err)
			s.recordFailure()
			return fmt.Errorf("%s failed: %w", op, err)
		}
		log.Printf("Retryable error on attempt %d: %v", attempt+1, err)
	}

	s.recordFailure()
	return fmt.Errorf("max retries (%d) exceeded for %s: %w", s.MaxRetries, op, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}
	return delay
}

func (s *GeminiService) isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("candidate content is empty")
	}
	return nil
}

func (s *GeminiService) validateEmbeddingResponse(resp *genai.EmbedContentResponse, want int) ([][]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) != want {
		return nil, fmt.Errorf("got %d embeddings, want %d", len(resp.Embeddings), want)
	}

	out := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("embedding %d is empty", i)
		}
		for j, val := range e.Values {
			if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
				return nil, fmt.Errorf("invalid embedding value at %d/%d: %v", i, j, val)
			}
		}
		out[i] = e.Values
	}
	return out, nil
}

func (s *GeminiService) allowCall() error {
	n := s.consecutiveErrors.Load()
	if n < s.circuitBreakerMax {
		return nil
	}
	opened := s.openedAt.Load()
	now := s.clock()
	if now.Sub(time.Unix(0, opened)) < s.CooldownPeriod {
		return fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", n)
	}
	// half-open: only the caller that restarts the cool-down gets the trial
	if !s.openedAt.CompareAndSwap(opened, now.UnixNano()) {
		return fmt.Errorf("circuit breaker open: trial call in progress")
	}
	log.Printf("Circuit breaker half-open, allowing trial call")
	return nil
}

func (s *GeminiService) recordFailure() {
	if s.consecutiveErrors.Add(1) >= s.circuitBreakerMax {
		s.openedAt.Store(s.clock().UnixNano())
	}
}

func (s *GeminiService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// CircuitBreakerStatus reports the consecutive failure count and whether
// calls are currently being rejected.
func (s *GeminiService) CircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	n := s.consecutiveErrors.Load()
	if n < s.circuitBreakerMax {
		return int(n), false
	}
	return int(n), s.clock().Sub(time.Unix(0, s.openedAt.Load())) < s.CooldownPeriod
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
