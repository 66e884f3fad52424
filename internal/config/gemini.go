package config

import (
	"os"
	"sync"
)

type GeminiConfig struct {
	APIKey         string
	EmbeddingModel string
	TaggerModel    string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = &GeminiConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			EmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001"),
			TaggerModel:    getEnv("GEMINI_TAGGER_MODEL", "gemini-2.5-flash"),
		}
	})
	return geminiConfig
}
