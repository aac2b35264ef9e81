package cli

import (
	"os"
	"path/filepath"
	"testing"

	envferrors "github.com/matzehuels/envforge/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "envforge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
classifier:
  type: gemini
  model: gemini-2.0-flash
cache:
  type: redis
  redis: localhost:6379
workers: 8
offline: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Classifier.Type != "gemini" {
		t.Errorf("Classifier.Type = %q, want gemini", cfg.Classifier.Type)
	}
	if cfg.Cache.Redis != "localhost:6379" {
		t.Errorf("Cache.Redis = %q", cfg.Cache.Redis)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if !cfg.Offline {
		t.Error("Offline should be true")
	}
}

func TestLoadConfigExpandsEnvVars(t *testing.T) {
	t.Setenv("ENVFORGE_TEST_KEY", "secret-123")

	path := writeConfig(t, `
classifier:
  api_key: ${ENVFORGE_TEST_KEY}
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Classifier.APIKey != "secret-123" {
		t.Errorf("APIKey = %q, want secret-123", cfg.Classifier.APIKey)
	}
}

func TestLoadConfigUnsetEnvVarExpandsEmpty(t *testing.T) {
	path := writeConfig(t, `
classifier:
  api_key: ${ENVFORGE_DEFINITELY_UNSET_VAR}
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Classifier.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.Classifier.APIKey)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !envferrors.Is(err, envferrors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want ErrCodeInvalidConfig", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "classifier: [unclosed")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid yaml")
	}
	if !envferrors.Is(err, envferrors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want ErrCodeInvalidConfig", err)
	}
}

func TestLoadConfigEmptyPathWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	t.Setenv("HOME", dir)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Classifier.Type != "" || cfg.Workers != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}
