package config

import (
	"os"
	"sync"
)

type MatcherConfig struct {
	SkillListPath  string
	NameDenylist   []string
	TaggerProvider string // "gemini" or "openrouter"
	RefreshCron    string // empty disables scheduled refresh
	RefreshQuery   string
	UploadsPerMin  int
}

var (
	matcherConfig *MatcherConfig
	matcherOnce   sync.Once
)

func LoadMatcherConfig() *MatcherConfig {
	matcherOnce.Do(func() {
		matcherConfig = &MatcherConfig{
			SkillListPath:  getEnv("SKILL_LIST_PATH", "skill_list.txt"),
			NameDenylist:   splitList(os.Getenv("NAME_DENYLIST")),
			TaggerProvider: getEnv("TAGGER_PROVIDER", "gemini"),
			RefreshCron:    os.Getenv("REFRESH_CRON"),
			RefreshQuery:   getEnv("REFRESH_QUERY", "software engineer"),
			UploadsPerMin:  getEnvInt("UPLOADS_PER_MINUTE", 10),
		}
	})
	return matcherConfig
}
