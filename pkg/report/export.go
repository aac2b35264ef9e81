package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/matzehuels/envforge/pkg/resolve"
)

// WriteJSON exports the full result as indented JSON, written atomically
// so a concurrent reader never sees a partial file.
func WriteJSON(path string, result *resolve.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".envforge-report-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
