package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterService tags entities through an OpenRouter chat model.
type OpenRouterService struct {
	APIKey  string
	Model   string
	BaseURL string
	client  *resty.Client
}

func NewOpenRouterService() *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	return &OpenRouterService{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: openRouterURL,
		client: resty.New().
			SetTimeout(60 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(time.Second),
	}
}

func (s *OpenRouterService) Tag(ctx context.Context, text string) ([]matcher.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if s.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model":       s.Model,
			"temperature": 0,
			"messages": []map[string]string{
				{"role": "system", "content": "You are a named entity tagger. You only answer with JSON."},
				{"role": "user", "content": entityPrompt(text)},
			},
		}).
		Post(s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("openrouter request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("openrouter returned %d: %s", resp.StatusCode(), resp.String())
	}

	content := gjson.Get(resp.String(), "choices.0.message.content").String()
	if content == "" {
		return nil, fmt.Errorf("no response from LLM")
	}
	return parseEntities(content)
}
