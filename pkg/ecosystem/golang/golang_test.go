package golang

import (
	"reflect"
	"testing"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

func TestParseGoMod(t *testing.T) {
	lines := []string{
		"module example.com/demo",
		"",
		"go 1.22",
		"",
		"require (",
		"\tgithub.com/spf13/cobra v1.8.0",
		"\tgithub.com/stretchr/testify v1.9.0 // indirect",
		")",
	}

	got := parseConfig("go.mod", lines)
	want := []ecosystem.Declared{
		{Name: "github.com/spf13/cobra", Version: "1.8.0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseConfig(go.mod) = %v, want %v", got, want)
	}
}

func TestGoSumNotParsed(t *testing.T) {
	if got := parseConfig("go.sum", []string{"example.com/x v1.0.0 h1:abc"}); got != nil {
		t.Errorf("go.sum should not yield declared deps, got %v", got)
	}
}

func TestRootSymbol(t *testing.T) {
	tests := []struct{ in, want string }{
		{"github.com/spf13/cobra", "github.com/spf13/cobra"},
		{"golang.org/x/mod/modfile", "golang.org/x/mod/modfile"},
		{"fmt", ""},
		{"net/http", ""},
	}
	for _, tt := range tests {
		if got := Ecosystem.Root(tt.in); got != tt.want {
			t.Errorf("Root(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
