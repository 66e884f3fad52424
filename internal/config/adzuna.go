package config

import (
	"os"
	"sync"
)

type AdzunaConfig struct {
	AppID    string
	AppKey   string
	Country  string
	BaseURL  string
	MaxPages int
}

var (
	adzunaConfig *AdzunaConfig
	adzunaOnce   sync.Once
)

func LoadAdzunaConfig() *AdzunaConfig {
	adzunaOnce.Do(func() {
		adzunaConfig = &AdzunaConfig{
			AppID:    os.Getenv("ADZUNA_APP_ID"),
			AppKey:   os.Getenv("ADZUNA_APP_KEY"),
			Country:  getEnv("ADZUNA_COUNTRY", "us"),
			BaseURL:  getEnv("ADZUNA_BASE_URL", "https://api.adzuna.com/v1/api/jobs"),
			MaxPages: getEnvInt("ADZUNA_MAX_PAGES", 2),
		}
	})
	return adzunaConfig
}
