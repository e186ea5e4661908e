package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// StorageType selects which of the four well-known JSON files a Scope
// reads and writes.
type StorageType string

const (
	Global  StorageType = "global"
	Plugin  StorageType = "plugin"
	Library StorageType = "library"
)

// Scope is a configuration instance's full parameterization: which file,
// which section-key derivation, and the identifiers the derivation needs.
type Scope struct {
	StorageType StorageType

	// ThisPluginOnly, UseLibraryName and UseLibraryUUID are the three
	// orthogonal booleans from the scope-descriptor table. UseLibraryName
	// and UseLibraryUUID are meaningful only when StorageType is Library;
	// UseLibraryUUID takes priority over UseLibraryName when both are set.
	ThisPluginOnly bool
	UseLibraryName bool
	UseLibraryUUID bool

	// PluginID overrides the process-wide PluginID() for this scope, if
	// set. Leave empty to use the process-wide value.
	PluginID string

	// LibraryRoot is the library's on-disk root, required whenever
	// StorageType is Library. It backs both the libraryPath identifier
	// and the location of cooler-uuid.json in UUID mode.
	LibraryRoot string

	// LibraryName is required when StorageType is Library and
	// UseLibraryName is set (and UseLibraryUUID is not).
	LibraryName string
}

func (s Scope) pluginID() string {
	if s.PluginID != "" {
		return s.PluginID
	}
	return PluginID()
}

// file returns the config file basename this scope reads and writes.
func (s Scope) file() (string, error) {
	switch s.StorageType {
	case Global:
		if s.ThisPluginOnly {
			return "globalPerPlugin.json", nil
		}
		return "global.json", nil
	case Plugin:
		return "plugin.json", nil
	case Library:
		return "library.json", nil
	default:
		return "", fmt.Errorf("config: unknown storage type %q", s.StorageType)
	}
}

// sectionKey derives the section key per the scope-descriptor table. A
// "" result means "operate on the document root directly" (the
// global/non-per-plugin row). libraryUUID is supplied by the caller,
// already resolved (reading or creating cooler-uuid.json is an IO
// operation the Store performs, not this pure derivation).
func (s Scope) sectionKey(libraryUUID string) (string, error) {
	switch s.StorageType {
	case Global:
		if !s.ThisPluginOnly {
			return "", nil
		}
		return sha(s.pluginID()), nil
	case Plugin:
		return sha(s.pluginID()), nil
	case Library:
		identifier, err := s.libraryIdentifier(libraryUUID)
		if err != nil {
			return "", err
		}
		if s.ThisPluginOnly {
			return sha(identifier + s.pluginID()), nil
		}
		return sha(identifier), nil
	default:
		return "", fmt.Errorf("config: unknown storage type %q", s.StorageType)
	}
}

func (s Scope) libraryIdentifier(libraryUUID string) (string, error) {
	switch {
	case s.UseLibraryUUID:
		if libraryUUID == "" {
			return "", fmt.Errorf("config: library UUID mode requires a resolved UUID")
		}
		return libraryUUID, nil
	case s.UseLibraryName:
		if s.LibraryName == "" {
			return "", fmt.Errorf("config: library-name mode requires Scope.LibraryName")
		}
		return s.LibraryName, nil
	default:
		if s.LibraryRoot == "" {
			return "", fmt.Errorf("config: library scope requires Scope.LibraryRoot")
		}
		return s.LibraryRoot, nil
	}
}

// sha returns the first 16 lowercase hex characters of SHA-256(x).
func sha(x string) string {
	sum := sha256.Sum256([]byte(x))
	return hex.EncodeToString(sum[:])[:16]
}
