// Package storage persists the plan catalogue and TDU rate table behind a
// small Database interface with file and Firestore providers.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kilowatch/kilowatch/pkg/types"
	"github.com/levenlabs/go-lflag"
)

// ErrNotFound is returned when the requested record has never been stored.
var ErrNotFound = errors.New("not found")

// Catalogue is a snapshot of the plan list plus when it was fetched from the
// upstream source.
type Catalogue struct {
	Plans     []types.Plan `json:"plans"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

// Database defines the interface for persisting the plan catalogue.
type Database interface {
	GetCatalogue(ctx context.Context) (Catalogue, error)
	SetCatalogue(ctx context.Context, c Catalogue) error

	// TDU rate tables, keyed by delivery-area code.
	GetTDURates(ctx context.Context) (map[string]types.TDURates, error)
	SetTDURates(ctx context.Context, rates map[string]types.TDURates) error

	// Lifecycle
	Close() error
}

// Configured sets up the storage provider based on flags.
func Configured() Database {
	provider := lflag.String("storage-provider", "file", "Storage provider to use (available: file, firestore)")

	var p struct{ Database }

	f := configuredFile()
	fs := configuredFirestore()

	lflag.Do(func() {
		switch *provider {
		case "file":
			if err := f.Validate(); err != nil {
				panic(fmt.Sprintf("file storage validation failed: %v", err))
			}
			p.Database = f
		case "firestore":
			if err := fs.Validate(); err != nil {
				panic(fmt.Sprintf("firestore validation failed: %v", err))
			}
			p.Database = fs
			if err := fs.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("firestore init failed: %v", err))
			}
		default:
			panic(fmt.Sprintf("unknown storage provider: %s", *provider))
		}
	})

	return &p
}
