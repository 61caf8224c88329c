package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	ListenAddr string
	BaseURL    string

	// DataDir holds the per-club event partition files and clubs.json.
	DataDir   string
	ClubsFile string

	PrometheusEnabled bool
	TrustedProxies    []string
}

func Load() (*Config, error) {
	cfg := &Config{}

	cfg.ListenAddr = getenvDefault("APP_LISTEN_ADDR", ":8080")
	cfg.BaseURL = getenvDefault("APP_BASE_URL", "http://localhost:8080")
	cfg.DataDir = getenvDefault("APP_DATA_DIR", "data")
	cfg.ClubsFile = getenvDefault("APP_CLUBS_FILE", "")
	cfg.PrometheusEnabled = getenvBool("APP_PROMETHEUS_ENDPOINT_ENABLED", false)
	cfg.TrustedProxies = getenvList("APP_TRUSTED_PROXIES")

	info, err := os.Stat(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("APP_DATA_DIR %q is not accessible: %w", cfg.DataDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("APP_DATA_DIR %q is not a directory", cfg.DataDir)
	}

	if cfg.ClubsFile == "" {
		cfg.ClubsFile = cfg.DataDir + string(os.PathSeparator) + "clubs.json"
	}

	if len(cfg.TrustedProxies) == 0 {
		fmt.Println("WARNING: No APP_TRUSTED_PROXIES configured. The portal will trust all proxies - Not recommended for public environments.")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func getenvList(key string) []string {
	if v := os.Getenv(key); v != "" {
		var result []string
		for _, item := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return nil
}
