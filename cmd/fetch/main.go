// Command fetch runs a one-shot catalogue refresh: it downloads the Power to
// Choose plan list, collapses duplicates, drops invalid records, and stores
// the snapshot along with the default TDU rate table if none exists yet.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kilowatch/kilowatch/pkg/catalog"
	"github.com/kilowatch/kilowatch/pkg/log"
	"github.com/kilowatch/kilowatch/pkg/storage"

	"github.com/levenlabs/go-lflag"
)

func main() {
	db := storage.Configured()
	fetcher := catalog.Configured()
	lflag.Configure()

	ctx := context.Background()

	defer func() {
		if err := db.Close(); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to close storage", "error", err)
		}
	}()

	plans, err := fetcher.FetchPlans(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to fetch plans", "error", err)
		os.Exit(1)
	}

	unique := catalog.Deduplicate(plans)
	valid := unique[:0]
	for _, p := range unique {
		if err := p.Validate(); err != nil {
			log.Ctx(ctx).WarnContext(ctx, "dropping invalid plan", "error", err)
			continue
		}
		valid = append(valid, p)
	}

	c := storage.Catalogue{Plans: valid, FetchedAt: time.Now().UTC()}
	if err := db.SetCatalogue(ctx, c); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to store catalogue", "error", err)
		os.Exit(1)
	}

	// seed the TDU rate table on first run, leave an operator-edited one alone
	if _, err := db.GetTDURates(ctx); errors.Is(err, storage.ErrNotFound) {
		if err := db.SetTDURates(ctx, catalog.DefaultTDURates()); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to store tdu rates", "error", err)
			os.Exit(1)
		}
		log.Ctx(ctx).InfoContext(ctx, "seeded default tdu rates")
	}

	fmt.Printf("stored %d plans (%d fetched, %d duplicates, %d invalid)\n",
		len(valid), len(plans), len(plans)-len(unique), len(unique)-len(valid))
}
