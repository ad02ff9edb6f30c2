package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kilowatch/kilowatch/pkg/catalog"
	"github.com/kilowatch/kilowatch/pkg/log"
	"github.com/kilowatch/kilowatch/pkg/storage"
)

type refreshResponse struct {
	Fetched    int       `json:"fetched"`
	Stored     int       `json:"stored"`
	Duplicates int       `json:"duplicates"`
	Invalid    int       `json:"invalid"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := s.doRefresh(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "refresh failed", slog.Any("error", err))
		writeJSONError(w, "refresh failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, summary)
}

// refreshCatalogue is the scheduled-refresh entry point.
func (s *Server) refreshCatalogue(ctx context.Context) error {
	summary, err := s.doRefresh(ctx)
	if err != nil {
		return err
	}
	log.Ctx(ctx).InfoContext(ctx, "catalogue refreshed",
		slog.Int("fetched", summary.Fetched),
		slog.Int("stored", summary.Stored),
		slog.Int("duplicates", summary.Duplicates),
		slog.Int("invalid", summary.Invalid))
	return nil
}

// doRefresh fetches the upstream catalogue, collapses duplicate listings,
// drops invalid records, and replaces the stored snapshot.
func (s *Server) doRefresh(ctx context.Context) (refreshResponse, error) {
	fetched, err := s.fetcher.FetchPlans(ctx)
	if err != nil {
		return refreshResponse{}, fmt.Errorf("failed to fetch plans: %w", err)
	}

	unique := catalog.Deduplicate(fetched)

	valid := unique[:0]
	invalid := 0
	for _, p := range unique {
		if err := p.Validate(); err != nil {
			log.Ctx(ctx).WarnContext(ctx, "dropping invalid plan", slog.Any("error", err))
			invalid++
			continue
		}
		valid = append(valid, p)
	}

	c := storage.Catalogue{Plans: valid, FetchedAt: time.Now().UTC()}
	if err := s.storage.SetCatalogue(ctx, c); err != nil {
		return refreshResponse{}, fmt.Errorf("failed to store catalogue: %w", err)
	}

	return refreshResponse{
		Fetched:    len(fetched),
		Stored:     len(valid),
		Duplicates: len(fetched) - len(unique),
		Invalid:    invalid,
		FetchedAt:  c.FetchedAt,
	}, nil
}
