package rules

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	envferrors "github.com/matzehuels/envforge/pkg/errors"
)

func TestImplied(t *testing.T) {
	base := Default()
	tests := []struct {
		eco, symbol string
		want        []string
	}{
		{"python", "numpy", []string{"scipy", "matplotlib"}},
		{"python", "sklearn", []string{"numpy", "scipy"}},
		{"javascript", "react", []string{"react-dom"}},
		{"python", "unknown", nil},
		{"ruby", "rails", nil},
	}
	for _, tt := range tests {
		t.Run(tt.eco+"/"+tt.symbol, func(t *testing.T) {
			if got := base.Implied(tt.eco, tt.symbol); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Implied(%s, %s) = %v, want %v", tt.eco, tt.symbol, got, tt.want)
			}
		})
	}
}

func TestDeprecated(t *testing.T) {
	base := Default()

	d, ok := base.Deprecated("python", "tensorflow")
	if !ok {
		t.Fatal("tensorflow should be in the deprecation table")
	}
	if d.Cutoff != "2.0.0" {
		t.Errorf("Cutoff = %q, want 2.0.0", d.Cutoff)
	}

	if _, ok := base.Deprecated("python", "numpy"); ok {
		t.Error("numpy should not be deprecated")
	}
	if _, ok := base.Deprecated("go", "anything"); ok {
		t.Error("no table for go")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	content := `
[transitive.python]
numpy = ["scipy"]

[transitive.ruby]
rails = ["activesupport"]

[deprecations.python.requests]
cutoff = "2.0.0"
latest = "2.32.0"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	base, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Overridden entry.
	if got := base.Implied("python", "numpy"); !reflect.DeepEqual(got, []string{"scipy"}) {
		t.Errorf("numpy = %v, want file override", got)
	}
	// New ecosystem table.
	if got := base.Implied("ruby", "rails"); !reflect.DeepEqual(got, []string{"activesupport"}) {
		t.Errorf("rails = %v, want [activesupport]", got)
	}
	// Untouched default survives.
	if got := base.Implied("python", "sklearn"); !reflect.DeepEqual(got, []string{"numpy", "scipy"}) {
		t.Errorf("sklearn = %v, want default", got)
	}
	// New deprecation merged, default kept.
	if _, ok := base.Deprecated("python", "requests"); !ok {
		t.Error("requests deprecation missing")
	}
	if _, ok := base.Deprecated("python", "tensorflow"); !ok {
		t.Error("tensorflow default deprecation missing")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !envferrors.Is(err, envferrors.ErrCodeInvalidConfig) {
		t.Errorf("missing file: got %v, want INVALID_CONFIG", err)
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("transitive = 3"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !envferrors.Is(err, envferrors.ErrCodeInvalidConfig) {
		t.Errorf("bad toml: got %v, want INVALID_CONFIG", err)
	}
}
