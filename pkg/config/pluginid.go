// Package config implements the scoped key/value configuration store:
// a handful of well-known JSON files under the user's home directory,
// partitioned into sections by a deterministic hash of a scope
// descriptor (see scope.go).
package config

import "sync"

// Manifest is the plugin-context shape Init reads pluginId from. It
// mirrors hostapi.Manifest rather than importing it, so this package has
// no dependency on the host interface layer.
type Manifest struct {
	ID   string
	Name string
}

var (
	pluginIDMu sync.RWMutex
	pluginID   string
)

// Init establishes the process-wide pluginId once: manifest.ID, falling
// back to manifest.Name, falling back to the literal "unknown-plugin".
// Calling it again re-resolves the value — callers that want a one-time
// initializer enforce that themselves; this package doesn't, since a
// plugin host may legitimately reload its own manifest.
func Init(m Manifest) string {
	pluginIDMu.Lock()
	defer pluginIDMu.Unlock()
	pluginID = resolvePluginID(m)
	return pluginID
}

// PluginID returns the current process-wide pluginId, or "unknown-plugin"
// if Init was never called.
func PluginID() string {
	pluginIDMu.RLock()
	defer pluginIDMu.RUnlock()
	if pluginID == "" {
		return "unknown-plugin"
	}
	return pluginID
}

func resolvePluginID(m Manifest) string {
	if m.ID != "" {
		return m.ID
	}
	if m.Name != "" {
		return m.Name
	}
	return "unknown-plugin"
}
