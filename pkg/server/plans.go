package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/kilowatch/kilowatch/pkg/catalog"
	"github.com/kilowatch/kilowatch/pkg/log"
	"github.com/kilowatch/kilowatch/pkg/storage"
	"github.com/kilowatch/kilowatch/pkg/types"
)

// decodeJSONBody decodes the request body into v, writing an error response
// and returning false on failure.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// tduRates returns the stored rate table, falling back to the shipped
// defaults when storage has never been seeded.
func (s *Server) tduRates(ctx context.Context) map[string]types.TDURates {
	rates, err := s.storage.GetTDURates(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Ctx(ctx).WarnContext(ctx, "failed to load tdu rates, using defaults", slog.Any("error", err))
		}
		return catalog.DefaultTDURates()
	}
	return rates
}

type plansResponse struct {
	Plans     []types.Plan `json:"plans"`
	Total     int          `json:"total"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := s.storage.GetCatalogue(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSONError(w, "plan catalogue not loaded", http.StatusServiceUnavailable)
			return
		}
		log.Ctx(ctx).ErrorContext(ctx, "failed to load catalogue", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	plans := c.Plans
	if tdu := r.URL.Query().Get("tdu"); tdu != "" {
		filtered := make([]types.Plan, 0, len(plans))
		for _, p := range plans {
			if p.TDUArea == tdu {
				filtered = append(filtered, p)
			}
		}
		plans = filtered
	}

	writeJSON(w, plansResponse{
		Plans:     plans,
		Total:     len(plans),
		FetchedAt: c.FetchedAt,
	})
}

func (s *Server) handleListTDUs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.tduRates(r.Context()))
}
