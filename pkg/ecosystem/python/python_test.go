package python

import (
	"reflect"
	"testing"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

func TestParseRequirements(t *testing.T) {
	lines := []string{
		"# web stack",
		"flask==2.3.2",
		"requests >= 2.28",
		"numpy",
		"pandas[excel]==2.1.0 ; python_version >= '3.9'",
		"-r other.txt",
		"",
	}

	got := parseConfig("requirements.txt", lines)
	want := []ecosystem.Declared{
		{Name: "flask", Version: "2.3.2"},
		{Name: "requests", Version: "2.28"},
		{Name: "numpy", Version: "latest"},
		{Name: "pandas", Version: "2.1.0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseRequirements = %v, want %v", got, want)
	}
}

func TestParsePyprojectPEP621(t *testing.T) {
	lines := []string{
		"[project]",
		`name = "demo"`,
		"dependencies = [",
		`  "numpy==1.24.0",`,
		`  "httpx>=0.24",`,
		"]",
	}

	got := parseConfig("pyproject.toml", lines)
	want := []ecosystem.Declared{
		{Name: "numpy", Version: "1.24.0"},
		{Name: "httpx", Version: "0.24"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parsePyproject = %v, want %v", got, want)
	}
}

func TestParsePyprojectPoetry(t *testing.T) {
	lines := []string{
		"[tool.poetry.dependencies]",
		`python = "^3.11"`,
		`requests = "^2.31.0"`,
		`rich = { version = "==13.5.2", extras = ["jupyter"] }`,
	}

	got := parseConfig("pyproject.toml", lines)
	want := []ecosystem.Declared{
		{Name: "requests", Version: "2.31.0"},
		{Name: "rich", Version: "13.5.2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("poetry deps = %v, want %v", got, want)
	}
}

func TestParsePipfile(t *testing.T) {
	lines := []string{
		"[packages]",
		`flask = "==2.3.2"`,
		`requests = "*"`,
		"",
		"[dev-packages]",
		`pytest = { version = "==7.4.0" }`,
	}

	got := parseConfig("Pipfile", lines)
	want := []ecosystem.Declared{
		{Name: "flask", Version: "2.3.2"},
		{Name: "requests", Version: "latest"},
		{Name: "pytest", Version: "7.4.0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parsePipfile = %v, want %v", got, want)
	}
}

func TestSetupPyNotParsed(t *testing.T) {
	if got := parseConfig("setup.py", []string{"from setuptools import setup"}); got != nil {
		t.Errorf("setup.py should not yield declared deps, got %v", got)
	}
}

func TestImportPatterns(t *testing.T) {
	src := "import numpy as np\nfrom sklearn.linear_model import LinearRegression\nimport os\n"

	var symbols []string
	for _, re := range Ecosystem.ImportPatterns {
		for _, m := range re.FindAllStringSubmatch(src, -1) {
			symbols = append(symbols, m[1])
		}
	}

	want := []string{"numpy", "os", "sklearn.linear_model"}
	if !reflect.DeepEqual(symbols, want) {
		t.Errorf("symbols = %v, want %v", symbols, want)
	}
}

func TestRootSymbol(t *testing.T) {
	tests := []struct{ in, want string }{
		{"numpy", "numpy"},
		{"numpy.linalg", "numpy"},
		{"sklearn.linear_model", "sklearn"},
		{".relative", ""},
	}
	for _, tt := range tests {
		if got := Ecosystem.Root(tt.in); got != tt.want {
			t.Errorf("Root(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Ecosystem.Normalize("Python_Dateutil"); got != "python-dateutil" {
		t.Errorf("Normalize = %q", got)
	}
}
