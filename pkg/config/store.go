package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store is one configuration instance bound to a Scope and a home
// directory. It has no in-memory state of its own beyond those two
// fields: every operation re-reads its backing file, per spec.md's "no
// locking, re-read before each section update" rule.
type Store struct {
	homeDir string
	scope   Scope
}

// New binds a Scope to the user's config root ({homeDir}/.eaglecooler/config).
func New(homeDir string, scope Scope) *Store {
	return &Store{homeDir: homeDir, scope: scope}
}

func (s *Store) configDir() string {
	return filepath.Join(s.homeDir, ".eaglecooler", "config")
}

func (s *Store) filePath() (string, error) {
	name, err := s.scope.file()
	if err != nil {
		return "", err
	}
	return filepath.Join(s.configDir(), name), nil
}

// resolvedSectionKey derives this scope's section key, resolving (and
// lazily creating) the library UUID file first if the scope needs it.
func (s *Store) resolvedSectionKey() (string, error) {
	var libraryUUID string
	if s.scope.StorageType == Library && s.scope.UseLibraryUUID {
		uuid, err := resolveLibraryUUID(s.scope.LibraryRoot)
		if err != nil {
			return "", err
		}
		libraryUUID = uuid
	}
	return s.scope.sectionKey(libraryUUID)
}

// loadDocument reads the backing file. A missing or unparsable file both
// yield an empty document rather than an error: an as-yet-unused scope
// simply has nothing persisted.
func loadDocument(path string) map[string]any {
	raw, err := os.ReadFile(path)
	if err != nil {
		return map[string]any{}
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return map[string]any{}
	}
	return doc
}

func saveDocument(path string, doc map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create config dir: %w", err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal config file: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("config: write config file: %w", err)
	}
	return nil
}

// section returns this scope's section within doc, live (same map) when
// the section key is "" (root-level) or the section already exists, and
// a fresh detached map otherwise — callers that mutate a fresh map must
// reattach it via setSection before saving.
func section(doc map[string]any, key string) map[string]any {
	if key == "" {
		return doc
	}
	raw, ok := doc[key]
	if !ok {
		return map[string]any{}
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

func setSection(doc map[string]any, key string, sec map[string]any) {
	if key == "" {
		return
	}
	doc[key] = sec
}

func (s *Store) readSection() (map[string]any, error) {
	path, err := s.filePath()
	if err != nil {
		return nil, err
	}
	key, err := s.resolvedSectionKey()
	if err != nil {
		return nil, err
	}
	return section(loadDocument(path), key), nil
}

// withSection loads the document, hands fn this scope's section to
// mutate in place, reattaches it, and writes the whole document back —
// preserving every sibling section untouched.
func (s *Store) withSection(fn func(sec map[string]any)) error {
	path, err := s.filePath()
	if err != nil {
		return err
	}
	key, err := s.resolvedSectionKey()
	if err != nil {
		return err
	}

	doc := loadDocument(path)
	sec := section(doc, key)
	fn(sec)
	setSection(doc, key, sec)
	return saveDocument(path, doc)
}

// Get returns the value at key and whether it was present.
func (s *Store) Get(key string) (any, bool, error) {
	sec, err := s.readSection()
	if err != nil {
		return nil, false, err
	}
	v, ok := sec[key]
	return v, ok, nil
}

// GetOrDefault returns the value at key, or def if absent.
func (s *Store) GetOrDefault(key string, def any) (any, error) {
	v, ok, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// Has reports whether key is present in this scope's section.
func (s *Store) Has(key string) (bool, error) {
	_, ok, err := s.Get(key)
	return ok, err
}

// Keys returns every key currently present in this scope's section.
func (s *Store) Keys() ([]string, error) {
	sec, err := s.readSection()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(sec))
	for k := range sec {
		keys = append(keys, k)
	}
	return keys, nil
}

// GetAll returns a copy of this scope's entire section.
func (s *Store) GetAll() (map[string]any, error) {
	sec, err := s.readSection()
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(sec))
	for k, v := range sec {
		out[k] = v
	}
	return out, nil
}

// Set writes key=value into this scope's section.
func (s *Store) Set(key string, value any) error {
	return s.withSection(func(sec map[string]any) {
		sec[key] = value
	})
}

// SetMany writes every key/value in patch into this scope's section in
// one read-modify-write cycle.
func (s *Store) SetMany(patch map[string]any) error {
	return s.withSection(func(sec map[string]any) {
		for k, v := range patch {
			sec[k] = v
		}
	})
}

// Remove deletes key from this scope's section and reports whether it
// had been present.
func (s *Store) Remove(key string) (bool, error) {
	var existed bool
	err := s.withSection(func(sec map[string]any) {
		_, existed = sec[key]
		delete(sec, key)
	})
	return existed, err
}

// Clear empties this scope's section only, leaving every sibling section
// in the same file untouched.
func (s *Store) Clear() error {
	return s.withSection(func(sec map[string]any) {
		for k := range sec {
			delete(sec, k)
		}
	})
}
