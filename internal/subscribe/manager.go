package subscribe

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zackaryw/eaglecore/pkg/hostapi"
	"github.com/zackaryw/eaglecore/pkg/snapshot"
)

// Manager is the single process-wide coordinator owning the five
// pollers. Construct one per host; in a typical plugin process there is
// exactly one.
type Manager struct {
	host hostapi.Host

	identity        *poller
	itemSelection   *poller
	folderSelection *poller
	libraryConfig   *poller
	folderStructure *poller
}

// NewManager wires all five pollers against host. Every poller,
// library-identity included, sits idle (no ticker) until its first
// subscriber.
func NewManager(host hostapi.Host) *Manager {
	m := &Manager{host: host}

	m.itemSelection = newPoller("item-selection", m.fetchItemSelection)
	m.itemSelection.idsOf = idsOfItems

	m.folderSelection = newPoller("folder-selection", m.fetchFolderSelection)
	m.folderSelection.idsOf = idsOfFolders

	m.libraryConfig = newPoller("library-config", m.fetchLibraryConfigMtime)
	m.libraryConfig.equal = int64Equal

	m.folderStructure = newPoller("library-folder-structure", m.fetchLibraryRootMtime)
	m.folderStructure.equal = int64Equal

	m.identity = newPoller("library-identity", m.fetchLibraryIdentity)
	m.identity.fixedInterval = identityInterval
	m.identity.equal = identityPathEqual
	m.identity.onChange = func(prev, curr any) {
		m.itemSelection.CascadeReset()
		m.folderSelection.CascadeReset()
		m.libraryConfig.CascadeReset()
		m.folderStructure.CascadeReset()
	}

	return m
}

// SubscribeLibraryIdentity fires on change of the open library's path.
// The payload is a snapshot.LibraryIdentitySnapshot.
func (m *Manager) SubscribeLibraryIdentity(cb Callback, opts Options) Unsubscribe {
	return m.identity.Subscribe(cb, opts)
}

// SubscribeItemSelection fires when the host's selected-items id
// sequence changes. The payload is []snapshot.ItemSnapshot.
func (m *Manager) SubscribeItemSelection(cb Callback, opts Options) Unsubscribe {
	return m.subscribeWithIdentityKeptAlive(m.itemSelection, cb, opts)
}

// SubscribeFolderSelection fires when the host's selected-folders id
// sequence changes. The payload is []snapshot.FolderSnapshot.
func (m *Manager) SubscribeFolderSelection(cb Callback, opts Options) Unsubscribe {
	return m.subscribeWithIdentityKeptAlive(m.folderSelection, cb, opts)
}

// SubscribeLibraryConfig fires when metadata.json's mtime changes. The
// payload is an int64 epoch-millisecond mtime.
func (m *Manager) SubscribeLibraryConfig(cb Callback, opts Options) Unsubscribe {
	return m.subscribeWithIdentityKeptAlive(m.libraryConfig, cb, opts)
}

// SubscribeLibraryFolderStructure fires when the library root directory's
// own mtime changes. The payload is an int64 epoch-millisecond mtime.
func (m *Manager) SubscribeLibraryFolderStructure(cb Callback, opts Options) Unsubscribe {
	return m.subscribeWithIdentityKeptAlive(m.folderStructure, cb, opts)
}

// subscribeWithIdentityKeptAlive subscribes cb on p and, alongside it,
// takes out its own subscription on the library-identity poller so that
// identity polling runs whenever any subscription anywhere is active, not
// only when a caller subscribes to library-identity directly — per the
// lifecycle rule that cascade-reset must be live for every other poller.
// The identity subscription is a plain no-op callback; it exists only to
// hold a slot in m.identity's subscriber map, and is released together
// with p's own subscription.
func (m *Manager) subscribeWithIdentityKeptAlive(p *poller, cb Callback, opts Options) Unsubscribe {
	unsubIdentity := m.identity.Subscribe(func(ChangeEvent) {}, Options{})
	unsubPoller := p.Subscribe(cb, opts)
	return func() {
		unsubPoller()
		unsubIdentity()
	}
}

// Close permanently stops every poller's dispatch goroutine. Intended
// for process shutdown and tests; a Manager is not usable afterward.
func (m *Manager) Close() {
	m.identity.Close()
	m.itemSelection.Close()
	m.folderSelection.Close()
	m.libraryConfig.Close()
	m.folderStructure.Close()
}

const identityInterval = 1000 * time.Millisecond

func (m *Manager) fetchLibraryIdentity() (any, error) {
	id, err := m.host.LibraryIdentity()
	if err != nil {
		return nil, fmt.Errorf("subscribe: library identity: %w", err)
	}
	return snapshot.LibraryIdentitySnapshot{Path: id.Path, Name: id.Name}, nil
}

func identityPathEqual(prev, curr any) bool {
	p := prev.(snapshot.LibraryIdentitySnapshot)
	c := curr.(snapshot.LibraryIdentitySnapshot)
	return p.Path == c.Path
}

func (m *Manager) fetchItemSelection() (any, error) {
	records, err := m.host.SelectedItems()
	if err != nil {
		return nil, fmt.Errorf("subscribe: selected items: %w", err)
	}
	snaps := make([]snapshot.ItemSnapshot, 0, len(records))
	for _, r := range records {
		snaps = append(snaps, snapshot.ExtractItem(r))
	}
	return snaps, nil
}

func idsOfItems(v any) []string {
	snaps := v.([]snapshot.ItemSnapshot)
	ids := make([]string, len(snaps))
	for i, s := range snaps {
		ids[i] = s.ID
	}
	return ids
}

func (m *Manager) fetchFolderSelection() (any, error) {
	records, err := m.host.SelectedFolders()
	if err != nil {
		return nil, fmt.Errorf("subscribe: selected folders: %w", err)
	}
	snaps := make([]snapshot.FolderSnapshot, 0, len(records))
	for _, r := range records {
		snaps = append(snaps, snapshot.ExtractFolder(r))
	}
	return snaps, nil
}

func idsOfFolders(v any) []string {
	snaps := v.([]snapshot.FolderSnapshot)
	ids := make([]string, len(snaps))
	for i, s := range snaps {
		ids[i] = s.ID
	}
	return ids
}

func (m *Manager) fetchLibraryConfigMtime() (any, error) {
	root, err := m.libraryRoot()
	if err != nil {
		return nil, err
	}
	return statMtimeMillis(filepath.Join(root, "metadata.json"))
}

func (m *Manager) fetchLibraryRootMtime() (any, error) {
	root, err := m.libraryRoot()
	if err != nil {
		return nil, err
	}
	return statMtimeMillis(root)
}

func (m *Manager) libraryRoot() (string, error) {
	id, err := m.host.LibraryIdentity()
	if err != nil {
		return "", fmt.Errorf("subscribe: library identity: %w", err)
	}
	return id.Path, nil
}

func statMtimeMillis(path string) (any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("subscribe: stat %s: %w", path, err)
	}
	return info.ModTime().UnixMilli(), nil
}

func int64Equal(prev, curr any) bool {
	return prev.(int64) == curr.(int64)
}
