package cli

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/envforge/pkg/cache"
	"github.com/matzehuels/envforge/pkg/classify"
	envferrors "github.com/matzehuels/envforge/pkg/errors"
)

// Config is the top-level configuration for envforge.
type Config struct {
	Classifier ClassifierConfig `yaml:"classifier"`
	Cache      CacheConfig      `yaml:"cache"`
	Rules      string           `yaml:"rules"`   // Path to a TOML rule-base overlay
	Workers    int              `yaml:"workers"` // Concurrent subdirectory resolution
	Offline    bool             `yaml:"offline"` // Skip all registry lookups
}

// ClassifierConfig selects and configures the classifier adapter.
type ClassifierConfig struct {
	Type   string `yaml:"type"`    // "static" (default) or "gemini"
	Model  string `yaml:"model"`   // Gemini model name
	APIKey string `yaml:"api_key"` // Inline or ${ENV_VAR}
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Type     string `yaml:"type"`     // "file" (default), "redis", or "none"
	Redis    string `yaml:"redis"`    // Redis address (host:port)
	Password string `yaml:"password"` // Inline or ${ENV_VAR}
	DB       int    `yaml:"db"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// LoadConfig reads and parses a configuration file, expanding ${ENV_VAR}
// references in secrets. An empty path searches the default locations and
// returns a zero config when nothing is found.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		found, ok := findConfigFile()
		if !ok {
			return &Config{}, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, envferrors.Wrap(envferrors.ErrCodeInvalidConfig, err, "reading config %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, envferrors.Wrap(envferrors.ErrCodeInvalidConfig, err, "parsing config %s", path)
	}

	cfg.Classifier.APIKey = expandEnv(cfg.Classifier.APIKey)
	cfg.Cache.Password = expandEnv(cfg.Cache.Password)
	return &cfg, nil
}

// findConfigFile searches the working directory and the user config
// directory for an envforge config file.
func findConfigFile() (string, bool) {
	candidates := []string{".envforge.yaml", ".envforge.yml", "envforge.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", appName, "config.yaml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, true
		}
	}
	return "", false
}

// expandEnv replaces ${VAR} references with environment values. Unset
// variables expand to the empty string.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

// openCache builds the configured cache backend. Failures degrade to the
// null cache with a warning: caching is advisory, never required.
func openCache(ctx context.Context, cfg CacheConfig, noCache bool) cache.Cache {
	if noCache || cfg.Type == "none" {
		return cache.NewNullCache()
	}
	if cfg.Type == "redis" {
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			printWarning("redis cache unavailable, continuing without cache: %v", err)
			return cache.NewNullCache()
		}
		return c
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// newClassifier builds the configured classifier adapter, wrapped in the
// LRU memoizer. An unavailable Gemini adapter degrades to the static table.
func newClassifier(ctx context.Context, cfg ClassifierConfig) classify.Classifier {
	var inner classify.Classifier
	switch cfg.Type {
	case "gemini":
		g, err := classify.NewGeminiClassifier(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			printWarning("gemini classifier unavailable, using static table: %v", err)
			inner = classify.NewStaticClassifier(nil)
		} else {
			inner = g
		}
	default:
		inner = classify.NewStaticClassifier(nil)
	}

	memo, err := classify.NewMemoized(inner, 0)
	if err != nil {
		return inner
	}
	return memo
}

// cacheDir returns the cache directory using XDG standard
// (~/.cache/envforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
