// Package assets keeps the downloadable documents of the résumé page in memory.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/chasingbytes/resume/backend/internal/model/profile"
)

// Asset is the byte content of one document.
type Asset struct {
	Name     string
	FileName string
	MIME     string
	Data     []byte
	ModTime  time.Time
}

// Store serves assets by their stable name.
type Store struct {
	items map[string]Asset
}

// Load reads every document from dir. Missing files are logged and skipped so
// the page still renders without them; other read errors fail the load.
func Load(dir string, documents []profile.Document) (*Store, error) {
	store := &Store{items: make(map[string]Asset, len(documents))}

	for _, doc := range documents {
		path := filepath.Join(dir, doc.File)

		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			log.Warnf("[assets] %s not found at %s, skipping", doc.Name, path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		mime := doc.MIME
		if mime == "" {
			mime = "application/octet-stream"
		}

		store.items[doc.Name] = Asset{
			Name:     doc.Name,
			FileName: filepath.Base(doc.File),
			MIME:     mime,
			Data:     data,
			ModTime:  info.ModTime(),
		}
	}

	log.Printf("[assets] loaded %d of %d documents from %s", len(store.items), len(documents), dir)
	return store, nil
}

// Get returns the asset registered under name.
func (s *Store) Get(name string) (Asset, bool) {
	if s == nil {
		return Asset{}, false
	}
	asset, ok := s.items[name]
	return asset, ok
}

// Has reports whether name was loaded.
func (s *Store) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}
