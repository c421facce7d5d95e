package store

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jsphweid/tranhdex/lyric"
	"github.com/jsphweid/tranhdex/model"
	"github.com/pkg/errors"
)

const catalogFile = "catalog.json"

var ErrNotFound = errors.New("analysis not found")

// Catalog is a cache directory of analyses. Each analysis is stored as a
// pair of uuid-named files listed in catalog.json.
type Catalog struct {
	Dir string

	mu      sync.RWMutex
	entries map[string]model.CatalogEntry
}

// OpenCatalog reads the catalog in dir, creating the directory if needed.
func OpenCatalog(dir string) (*Catalog, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, errors.Wrapf(err, "creating cache dir %v", dir)
	}
	c := &Catalog{Dir: dir, entries: make(map[string]model.CatalogEntry)}

	var entries []model.CatalogEntry
	err := readJSON(c.path(catalogFile), &entries)
	if err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, err
	}
	for _, e := range entries {
		c.entries[e.ID] = e
	}
	return c, nil
}

func (c *Catalog) path(name string) string {
	return filepath.Join(c.Dir, name)
}

// Save writes the index and lyrics of one analysis and records them under
// id. A zero id gets a fresh one.
func (c *Catalog) Save(id uuid.UUID, source string, doc *Document, l *lyric.Lyrics) (model.CatalogEntry, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	entry := model.CatalogEntry{
		ID:         id.String(),
		Source:     source,
		IndexFile:  id.String() + ".index.json",
		LyricsFile: id.String() + ".lyrics.json",
		TotalNotes: doc.Metadata.TotalNotes,
	}
	if err := WriteIndex(c.path(entry.IndexFile), doc); err != nil {
		return entry, err
	}
	if l != nil {
		if err := WriteLyrics(c.path(entry.LyricsFile), l); err != nil {
			return entry, err
		}
	} else {
		entry.LyricsFile = ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.ID] = entry
	return entry, c.flush()
}

// flush must be called with mu held.
func (c *Catalog) flush() error {
	entries := make([]model.CatalogEntry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	sortEntries(entries)
	return writeJSON(c.path(catalogFile), entries)
}

func (c *Catalog) List() []model.CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := make([]model.CatalogEntry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	sortEntries(entries)
	return entries
}

func (c *Catalog) Get(id string) (model.CatalogEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	if !ok {
		return e, errors.Wrapf(ErrNotFound, "id %v", id)
	}
	return e, nil
}

// FindSource looks up an entry made from source.
func (c *Catalog) FindSource(source string) (model.CatalogEntry, bool) {
	for _, e := range c.List() {
		if e.Source == source {
			return e, true
		}
	}
	return model.CatalogEntry{}, false
}

// Load reads the stored index and lyrics of id. Lyrics are nil when none
// were saved.
func (c *Catalog) Load(id string) (*Document, *lyric.Lyrics, error) {
	entry, err := c.Get(id)
	if err != nil {
		return nil, nil, err
	}
	doc, err := ReadIndex(c.path(entry.IndexFile))
	if err != nil {
		return nil, nil, err
	}
	if entry.LyricsFile == "" {
		return doc, nil, nil
	}
	l, err := ReadLyrics(c.path(entry.LyricsFile))
	if err != nil {
		return nil, nil, err
	}
	return doc, l, nil
}

func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[id]
	if !ok {
		return errors.Wrapf(ErrNotFound, "id %v", id)
	}
	for _, name := range []string{entry.IndexFile, entry.LyricsFile} {
		if name == "" {
			continue
		}
		if err := os.Remove(c.path(name)); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %v", name)
		}
	}
	delete(c.entries, id)
	return c.flush()
}

// Prune deletes cache files that no catalog entry references.
func (c *Catalog) Prune() (int, error) {
	c.mu.RLock()
	keep := map[string]bool{catalogFile: true}
	for _, e := range c.entries {
		keep[e.IndexFile] = true
		keep[e.LyricsFile] = true
	}
	c.mu.RUnlock()

	files, err := os.ReadDir(c.Dir)
	if err != nil {
		return 0, errors.Wrapf(err, "reading %v", c.Dir)
	}
	var removed int
	for _, f := range files {
		if f.IsDir() || keep[f.Name()] || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		if err := os.Remove(c.path(f.Name())); err != nil {
			return removed, errors.Wrapf(err, "removing %v", f.Name())
		}
		removed++
	}
	return removed, nil
}

// FileSize reports the bytes used on disk by one entry.
func (c *Catalog) FileSize(e model.CatalogEntry) int64 {
	var total int64
	for _, name := range []string{e.IndexFile, e.LyricsFile} {
		if name == "" {
			continue
		}
		if st, err := os.Stat(c.path(name)); err == nil {
			total += st.Size()
		}
	}
	return total
}

func sortEntries(entries []model.CatalogEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Source != entries[j].Source {
			return entries[i].Source < entries[j].Source
		}
		return entries[i].ID < entries[j].ID
	})
}
