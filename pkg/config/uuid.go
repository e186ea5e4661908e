package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type uuidFile struct {
	UUID string `json:"uuid"`
}

// resolveLibraryUUID reads {libraryRoot}/cooler-uuid.json, or generates
// and persists a version-4 UUID there on first access. The file is never
// deleted by this package.
func resolveLibraryUUID(libraryRoot string) (string, error) {
	path := filepath.Join(libraryRoot, "cooler-uuid.json")

	raw, err := os.ReadFile(path)
	if err == nil {
		var doc uuidFile
		if jsonErr := json.Unmarshal(raw, &doc); jsonErr == nil && doc.UUID != "" {
			return doc.UUID, nil
		}
		// Fall through to regenerate: the file exists but is unparsable or
		// empty, which is indistinguishable from "never created" here.
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("config: read library uuid file: %w", err)
	}

	generated := uuid.NewString()
	raw, err = json.MarshalIndent(uuidFile{UUID: generated}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("config: marshal library uuid file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("config: create library root: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("config: write library uuid file: %w", err)
	}
	return generated, nil
}
