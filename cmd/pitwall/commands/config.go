package commands

import (
	"errors"
	"log/slog"
	"os"
	"pitwall-results/internal/components/telemetry"
	"pitwall-results/internal/configutil"
	"pitwall-results/internal/race/export"
	"pitwall-results/internal/race/fetch"
	"pitwall-results/internal/race/resolver"
	"time"
)

type SimilarityConfig struct {
	Threshold     float64 `json:"threshold"`
	MaxCandidates int     `json:"max_candidates"`
	// Scorer is either "ratio" or "jaro-winkler".
	Scorer string `json:"scorer"`
}

type ExportConfig struct {
	Dir     string   `json:"dir"`
	Formats []string `json:"formats"`
	// SqlitePath is resolved against Dir when relative.
	SqlitePath string `json:"sqlite_path"`
}

type Config struct {
	BaseUrl           string           `json:"base_url"`
	TimeoutSeconds    int              `json:"timeout_seconds"`
	RequestsPerSecond float64          `json:"requests_per_second"`
	UserAgent         string           `json:"user_agent"`
	CloudflareBypass  bool             `json:"cloudflare_bypass"`
	Similarity        SimilarityConfig `json:"similarity"`
	Export            ExportConfig     `json:"export"`
	Telemetry         telemetry.Config `json:"telemetry"`
}

var defaultConfig = Config{
	BaseUrl:           fetch.DefaultBaseUrl,
	TimeoutSeconds:    int(fetch.DefaultTimeout / time.Second),
	RequestsPerSecond: fetch.DefaultRequestsPerSecond,
	UserAgent:         fetch.DefaultUserAgent,
	Similarity: SimilarityConfig{
		Threshold:     resolver.DefaultThreshold,
		MaxCandidates: resolver.DefaultMaxCandidates,
		Scorer:        resolver.ScorerRatio,
	},
	Export: ExportConfig{
		Dir:        ".",
		Formats:    []string{export.FormatCSV},
		SqlitePath: "results.db",
	},
}

// readConfig reads the config at `path`, a missing file just means the defaults.
func readConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file, using defaults", "path", path)
		err = nil
	}
	if err != nil {
		return Config{}, err
	}
	return configutil.WithDefaults(cfg, defaultConfig)
}
