package config

import (
	"os"
	"sync"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	ExpiresIn   time.Duration
	AdminEmails []string
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		authConfig = &AuthConfig{
			JWTSecret:   os.Getenv("JWT_SECRET"),
			ExpiresIn:   getEnvDuration("JWT_EXPIRES_IN", 60*time.Minute),
			AdminEmails: splitList(os.Getenv("ADMIN_EMAILS")),
		}
	})
	return authConfig
}
