package ruby

import (
	"reflect"
	"testing"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

func TestParseGemfile(t *testing.T) {
	lines := []string{
		`source 'https://rubygems.org'`,
		``,
		`gem 'rails', '7.0.8'`,
		`gem "puma"`,
		`gem 'pg', '~> 1.5'`,
		`# gem 'commented-out'`,
	}

	got := parseConfig("Gemfile", lines)
	want := []ecosystem.Declared{
		{Name: "rails", Version: "7.0.8"},
		{Name: "puma", Version: "latest"},
		{Name: "pg", Version: "1.5"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseGemfile = %v, want %v", got, want)
	}
}

func TestParseGemfileLock(t *testing.T) {
	lines := []string{
		"GEM",
		"  remote: https://rubygems.org/",
		"  specs:",
		"    rails (7.0.8)",
		"      actionpack (= 7.0.8)",
		"    puma (6.4.0)",
		"",
		"PLATFORMS",
		"  ruby",
	}

	got := parseConfig("Gemfile.lock", lines)
	want := []ecosystem.Declared{
		{Name: "rails", Version: "7.0.8"},
		{Name: "puma", Version: "6.4.0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseGemfileLock = %v, want %v", got, want)
	}
}

func TestRootSymbol(t *testing.T) {
	tests := []struct{ in, want string }{
		{"json", "json"},
		{"active_support/core_ext", "active_support"},
		{"./helper", ""},
	}
	for _, tt := range tests {
		if got := Ecosystem.Root(tt.in); got != tt.want {
			t.Errorf("Root(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
