package ecosystem

import "testing"

func TestCanonicalVersion(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"1.2.3", "1.2.3"},
		{"==1.2.3", "1.2.3"},
		{"=1.2.3", "1.2.3"},
		{"^1.2.3", "1.2.3"},
		{"~1.2", "1.2"},
		{"v1.26.0", "1.26.0"},
		{">=1.0", "1.0"},
		{"1.2.3-beta.1", "1.2.3-beta.1"},
		{"", VersionLatest},
		{"*", VersionLatest},
		{"latest", VersionLatest},
		{">=1.0,<2.0", VersionLatest},
		{"1.2.x", VersionLatest},
		{"not-a-version", VersionLatest},
		{"^1.2 || ^2.0", VersionLatest},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if got := CanonicalVersion(tt.spec); got != tt.want {
				t.Errorf("CanonicalVersion(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	a := &Ecosystem{Name: "alpha"}
	b := &Ecosystem{Name: "beta"}
	all := []*Ecosystem{a, b}

	if got := Find("beta", all); got != b {
		t.Errorf("Find(beta) = %v", got)
	}
	if got := Find("missing", all); got != nil {
		t.Errorf("Find(missing) = %v, want nil", got)
	}
}

func TestRecognizesFile(t *testing.T) {
	e := &Ecosystem{Name: "python", Extensions: []string{".py"}}

	if !e.RecognizesFile("main.py") {
		t.Error("main.py should be recognized")
	}
	if !e.RecognizesFile("SHOUTY.PY") {
		t.Error("extension match should be case-insensitive")
	}
	if e.RecognizesFile("main.go") {
		t.Error("main.go should not be recognized")
	}
	if e.RecognizesFile("README") {
		t.Error("extensionless file should not be recognized")
	}
}

func TestIsManifest(t *testing.T) {
	e := &Ecosystem{Name: "python", ManifestFiles: []string{"requirements.txt"}}

	if !e.IsManifest("requirements.txt") {
		t.Error("requirements.txt should match")
	}
	if !e.IsManifest("sub/dir/requirements.txt") {
		t.Error("basename should be used for matching")
	}
	if e.IsManifest("requirements-dev.txt") {
		t.Error("requirements-dev.txt should not match")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	e := &Ecosystem{Name: "plain"}
	if got := e.Normalize("  Foo  "); got != "Foo" {
		t.Errorf("Normalize without hook = %q", got)
	}
	if got := e.Root("foo.bar"); got != "foo.bar" {
		t.Errorf("Root without hook = %q", got)
	}
}
