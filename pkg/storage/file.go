package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/kilowatch/kilowatch/pkg/types"
	"github.com/levenlabs/go-lflag"
)

// FileProvider implements Database with JSON files in a local directory. It
// is the default provider for local runs and the fetch job.
type FileProvider struct {
	dir string

	mu sync.Mutex
}

const (
	catalogueFile = "plans.json"
	tduRatesFile  = "tdu_rates.json"
)

func configuredFile() *FileProvider {
	dir := lflag.String("storage-dir", "data", "Directory for file storage")

	f := &FileProvider{}

	lflag.Do(func() {
		f.dir = *dir
	})

	return f
}

// NewFileProvider returns a provider rooted at dir, for callers that do not
// go through flag configuration.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// Validate checks if the provider is properly configured.
func (f *FileProvider) Validate() error {
	if f.dir == "" {
		return errors.New("storage-dir cannot be empty")
	}
	return nil
}

// Close is a no-op for file storage.
func (f *FileProvider) Close() error {
	return nil
}

// GetCatalogue reads the stored plan catalogue.
func (f *FileProvider) GetCatalogue(ctx context.Context) (Catalogue, error) {
	var c Catalogue
	if err := f.read(catalogueFile, &c); err != nil {
		return Catalogue{}, err
	}
	return c, nil
}

// SetCatalogue writes the plan catalogue atomically.
func (f *FileProvider) SetCatalogue(ctx context.Context, c Catalogue) error {
	return f.write(catalogueFile, c)
}

// GetTDURates reads the stored TDU rate table.
func (f *FileProvider) GetTDURates(ctx context.Context) (map[string]types.TDURates, error) {
	var rates map[string]types.TDURates
	if err := f.read(tduRatesFile, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// SetTDURates writes the TDU rate table atomically.
func (f *FileProvider) SetTDURates(ctx context.Context, rates map[string]types.TDURates) error {
	return f.write(tduRatesFile, rates)
}

func (f *FileProvider) read(name string, v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

// write marshals v and renames a temp file into place so readers never see
// a partial document.
func (f *FileProvider) write(name string, v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage dir: %w", err)
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(f.dir, name)
	tmp, err := os.CreateTemp(f.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
