package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one file's outcome in the output manifest.
type ManifestEntry struct {
	Path     string `json:"path"`
	Success  bool   `json:"success"`
	Warnings int    `json:"warnings"`
	Error    string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json summarizing a batch Run to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Path:     r.Path,
			Success:  r.Success,
			Warnings: r.Warnings,
			Error:    r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
