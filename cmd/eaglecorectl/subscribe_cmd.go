package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zackaryw/eaglecore/internal/subscribe"
	"github.com/zackaryw/eaglecore/pkg/hostapi"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Drive the change subscription manager from a fixture file",
}

var subscribeFixtureDir string

var subscribeWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Subscribe to every change feed against a fixture directory and print events as JSON lines",
	Long: `watch reads <dir>/fixture.json fresh on every poll, so editing that
file while the command runs is a live way to exercise the subscription
manager without a real plugin host attached.`,
	RunE: runSubscribeWatch,
}

func init() {
	subscribeWatchCmd.Flags().StringVar(&subscribeFixtureDir, "fixture", "", "directory containing fixture.json (required)")
	_ = subscribeWatchCmd.MarkFlagRequired("fixture")
	subscribeCmd.AddCommand(subscribeWatchCmd)
}

func runSubscribeWatch(cmd *cobra.Command, args []string) error {
	host := &fixtureHost{dir: subscribeFixtureDir}
	if _, err := host.load(); err != nil {
		return fmt.Errorf("eaglecorectl: load fixture: %w", err)
	}

	manager := subscribe.NewManager(host)
	defer manager.Close()

	out := cmd.OutOrStdout()
	print := func(feed string) subscribe.Callback {
		return func(ev subscribe.ChangeEvent) {
			line, err := json.Marshal(map[string]any{
				"feed":      feed,
				"previous":  ev.Previous,
				"current":   ev.Current,
				"timestamp": ev.Timestamp,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "eaglecorectl: marshal event: %v\n", err)
				return
			}
			fmt.Fprintln(out, string(line))
		}
	}

	defer manager.SubscribeLibraryIdentity(print("library-identity"), subscribe.Options{})()
	defer manager.SubscribeItemSelection(print("item-selection"), subscribe.Options{})()
	defer manager.SubscribeFolderSelection(print("folder-selection"), subscribe.Options{})()
	defer manager.SubscribeLibraryConfig(print("library-config"), subscribe.Options{})()
	defer manager.SubscribeLibraryFolderStructure(print("library-folder-structure"), subscribe.Options{})()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	<-ctx.Done()
	return nil
}

// fixtureDoc is the on-disk shape fixtureHost reads. It stands in for a
// live plugin host's object API: a flat item/folder list plus two id
// selections.
type fixtureDoc struct {
	Path              string          `json:"path"`
	Name              string          `json:"name"`
	SelectedItemIDs   []string        `json:"selectedItemIds"`
	SelectedFolderIDs []string        `json:"selectedFolderIds"`
	Items             []fixtureItem   `json:"items"`
	Folders           []fixtureFolder `json:"folders"`
}

type fixtureItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Ext        string   `json:"ext"`
	URL        string   `json:"url"`
	Annotation string   `json:"annotation"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Size       int64    `json:"size"`
	Star       *int     `json:"star"`
	ImportedAt int64    `json:"importedAt"`
	ModifiedAt int64    `json:"modifiedAt"`
	Tags       []string `json:"tags"`
	Folders    []string `json:"folders"`
}

type fixtureFolder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IconColor   string `json:"iconColor"`
	CreatedAt   int64  `json:"createdAt"`
	ParentID    string `json:"parentId"`
}

// fixtureHost implements hostapi.Host by re-reading fixture.json on every
// call, so a file edited mid-run is observed on the pollers' next tick —
// there is no in-memory caching to go stale.
type fixtureHost struct {
	dir string
}

func (h *fixtureHost) load() (fixtureDoc, error) {
	raw, err := os.ReadFile(filepath.Join(h.dir, "fixture.json"))
	if err != nil {
		return fixtureDoc{}, err
	}
	var doc fixtureDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fixtureDoc{}, fmt.Errorf("parse fixture.json: %w", err)
	}
	return doc, nil
}

func (h *fixtureHost) LibraryIdentity() (hostapi.LibraryIdentity, error) {
	doc, err := h.load()
	if err != nil {
		return hostapi.LibraryIdentity{}, err
	}
	path := doc.Path
	if path == "" {
		path = h.dir
	}
	return hostapi.LibraryIdentity{Path: path, Name: doc.Name}, nil
}

func (h *fixtureHost) HomeDir() (string, error) {
	return os.UserHomeDir()
}

func (h *fixtureHost) SelectedItems() ([]hostapi.ItemRecord, error) {
	doc, err := h.load()
	if err != nil {
		return nil, err
	}
	byID := fixtureItemsByID(doc)
	out := make([]hostapi.ItemRecord, 0, len(doc.SelectedItemIDs))
	for _, id := range doc.SelectedItemIDs {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (h *fixtureHost) SelectedFolders() ([]hostapi.FolderRecord, error) {
	doc, err := h.load()
	if err != nil {
		return nil, err
	}
	byID := fixtureFoldersByID(doc)
	out := make([]hostapi.FolderRecord, 0, len(doc.SelectedFolderIDs))
	for _, id := range doc.SelectedFolderIDs {
		if folder, ok := byID[id]; ok {
			out = append(out, folder)
		}
	}
	return out, nil
}

func (h *fixtureHost) AllItems() ([]hostapi.ItemRecord, error) {
	doc, err := h.load()
	if err != nil {
		return nil, err
	}
	out := make([]hostapi.ItemRecord, 0, len(doc.Items))
	for _, item := range doc.Items {
		out = append(out, fixtureItemRecord{v: item})
	}
	return out, nil
}

func (h *fixtureHost) AllFolders() ([]hostapi.FolderRecord, error) {
	doc, err := h.load()
	if err != nil {
		return nil, err
	}
	byID := fixtureFoldersByID(doc)
	out := make([]hostapi.FolderRecord, 0, len(byID))
	for _, folder := range byID {
		out = append(out, folder)
	}
	return out, nil
}

func (h *fixtureHost) ItemByID(id string) (hostapi.ItemRecord, error) {
	doc, err := h.load()
	if err != nil {
		return nil, err
	}
	if item, ok := fixtureItemsByID(doc)[id]; ok {
		return item, nil
	}
	return nil, fmt.Errorf("eaglecorectl: fixture item %q not found", id)
}

func (h *fixtureHost) FolderByID(id string) (hostapi.FolderRecord, error) {
	doc, err := h.load()
	if err != nil {
		return nil, err
	}
	if folder, ok := fixtureFoldersByID(doc)[id]; ok {
		return folder, nil
	}
	return nil, fmt.Errorf("eaglecorectl: fixture folder %q not found", id)
}

func (h *fixtureHost) OnCreate(fn func(hostapi.Manifest)) {
	fn(hostapi.Manifest{ID: "eaglecorectl", Name: "eaglecorectl"})
}

func fixtureItemsByID(doc fixtureDoc) map[string]fixtureItemRecord {
	out := make(map[string]fixtureItemRecord, len(doc.Items))
	for _, item := range doc.Items {
		out[item.ID] = fixtureItemRecord{v: item}
	}
	return out
}

func fixtureFoldersByID(doc fixtureDoc) map[string]fixtureFolderRecord {
	childrenOf := make(map[string][]fixtureFolder)
	for _, f := range doc.Folders {
		if f.ParentID != "" {
			childrenOf[f.ParentID] = append(childrenOf[f.ParentID], f)
		}
	}
	out := make(map[string]fixtureFolderRecord, len(doc.Folders))
	for _, f := range doc.Folders {
		kids := make([]hostapi.FolderRecord, 0, len(childrenOf[f.ID]))
		for _, c := range childrenOf[f.ID] {
			kids = append(kids, fixtureFolderRecord{v: c})
		}
		out[f.ID] = fixtureFolderRecord{v: f, kids: kids}
	}
	return out
}

// fixtureItemRecord adapts fixtureItem to hostapi.ItemRecord.
type fixtureItemRecord struct{ v fixtureItem }

func (r fixtureItemRecord) ID() string         { return r.v.ID }
func (r fixtureItemRecord) Name() string       { return r.v.Name }
func (r fixtureItemRecord) Ext() string        { return r.v.Ext }
func (r fixtureItemRecord) URL() string        { return r.v.URL }
func (r fixtureItemRecord) Annotation() string { return r.v.Annotation }
func (r fixtureItemRecord) Width() int         { return r.v.Width }
func (r fixtureItemRecord) Height() int        { return r.v.Height }
func (r fixtureItemRecord) Size() int64        { return r.v.Size }
func (r fixtureItemRecord) Star() (int, bool) {
	if r.v.Star == nil {
		return 0, false
	}
	return *r.v.Star, true
}
func (r fixtureItemRecord) ImportedAt() int64 { return r.v.ImportedAt }
func (r fixtureItemRecord) ModifiedAt() int64 { return r.v.ModifiedAt }
func (r fixtureItemRecord) Tags() []string    { return r.v.Tags }
func (r fixtureItemRecord) Folders() []string { return r.v.Folders }

// fixtureFolderRecord adapts fixtureFolder to hostapi.FolderRecord. kids
// is resolved once, at fixtureFoldersByID construction time, rather than
// by re-scanning the document on every Children() call.
type fixtureFolderRecord struct {
	v    fixtureFolder
	kids []hostapi.FolderRecord
}

func (r fixtureFolderRecord) ID() string          { return r.v.ID }
func (r fixtureFolderRecord) Name() string        { return r.v.Name }
func (r fixtureFolderRecord) Description() string { return r.v.Description }
func (r fixtureFolderRecord) Icon() string        { return r.v.Icon }
func (r fixtureFolderRecord) IconColor() string   { return r.v.IconColor }
func (r fixtureFolderRecord) CreatedAt() int64    { return r.v.CreatedAt }
func (r fixtureFolderRecord) ParentID() (string, bool) {
	return r.v.ParentID, r.v.ParentID != ""
}
func (r fixtureFolderRecord) Children() []hostapi.FolderRecord { return r.kids }
