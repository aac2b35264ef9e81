package scan

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/envforge/pkg/ecosystem/ecosystems"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func TestDetectTagsAndCounts(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.py":             "import os\n",
		"util.py":             "import json\n",
		"web/app.js":          "const x = require('express')\n",
		"web/package.json":    `{"dependencies":{}}`,
		"docs/readme.txt":     "nothing\n",
		"svc/go.mod":          "module example.com/svc\n",
		".git/config":         "ignored\n",
		"node_modules/x/a.js": "ignored\n",
	})

	snap, err := Detect(root, ecosystems.All)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if got := snap.Counts["python"]; got != 2 {
		t.Errorf("python count = %d, want 2", got)
	}
	if got := snap.Counts["javascript"]; got != 1 {
		t.Errorf("javascript count = %d, want 1", got)
	}
	if got := snap.Counts["go"]; got != 0 {
		t.Errorf("go count = %d, want 0 (manifests do not count)", got)
	}

	wantDirs := map[string][]string{
		"/":    {"python"},
		"web":  {"javascript"},
		"docs": {},
		"svc":  {"go"},
	}
	for dir, want := range wantDirs {
		got, ok := snap.Dirs[dir]
		if !ok {
			t.Errorf("missing dir %q", dir)
			continue
		}
		if len(got) == 0 && len(want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Dirs[%q] = %v, want %v", dir, got, want)
		}
	}
	if _, ok := snap.Dirs[".git"]; ok {
		t.Error(".git should be skipped")
	}
	if _, ok := snap.Dirs["node_modules"]; ok {
		t.Error("node_modules should be skipped")
	}
}

func TestDetectManifestOnlyDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"frontend/package.json": `{"dependencies":{"react":"^18.0.0"}}`,
	})

	snap, err := Detect(root, ecosystems.All)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if got := snap.Dirs["frontend"]; !reflect.DeepEqual(got, []string{"javascript"}) {
		t.Errorf("frontend tags = %v, want [javascript]", got)
	}
}

func TestPrimary(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		forced string
		want   string
	}{
		{"forced override", map[string]int{"python": 10}, "ruby", "ruby"},
		{"highest count", map[string]int{"python": 2, "javascript": 5}, "", "javascript"},
		{"tie breaks on preference order", map[string]int{"python": 3, "javascript": 3}, "", "python"},
		{"empty snapshot", map[string]int{}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &Snapshot{Counts: tt.counts}
			if got := snap.Primary(tt.forced, ecosystems.All); got != tt.want {
				t.Errorf("Primary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortedDirs(t *testing.T) {
	snap := &Snapshot{Dirs: map[string][]string{
		"web":  nil,
		"/":    nil,
		"back": nil,
	}}
	want := []string{"/", "back", "web"}
	if got := snap.SortedDirs(); !reflect.DeepEqual(got, want) {
		t.Errorf("SortedDirs() = %v, want %v", got, want)
	}
}

func TestFingerprintStable(t *testing.T) {
	files := map[string]string{
		"a.py":     "import os\n",
		"sub/b.py": "import sys\n",
	}
	root1 := writeTree(t, files)
	root2 := writeTree(t, files)

	fp1, err := Fingerprint(root1, ecosystems.All)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	fp2, err := Fingerprint(root2, ecosystems.All)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if fp1 != fp2 {
		t.Errorf("identical trees produced different fingerprints: %s vs %s", fp1, fp2)
	}
	if len(fp1) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(fp1))
	}
}

func TestFingerprintSensitiveToContent(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "import os\n"})
	before, err := Fingerprint(root, ecosystems.All)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.py"), []byte("import sys\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	after, err := Fingerprint(root, ecosystems.All)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if before == after {
		t.Error("fingerprint unchanged after file edit")
	}
}

func TestFingerprintIgnoresUnrecognizedFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "import os\n"})
	before, err := Fingerprint(root, ecosystems.All)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("scratch\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	after, err := Fingerprint(root, ecosystems.All)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if before != after {
		t.Error("fingerprint changed by unrecognized file")
	}
}
