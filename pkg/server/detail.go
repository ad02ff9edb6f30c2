package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kilowatch/kilowatch/pkg/contract"
	"github.com/kilowatch/kilowatch/pkg/etf"
	"github.com/kilowatch/kilowatch/pkg/log"
	"github.com/kilowatch/kilowatch/pkg/storage"
)

type etfResponse struct {
	PlanID          string             `json:"planId"`
	Classification  etf.Classification `json:"classification"`
	MonthsRemaining int                `json:"monthsRemaining"`
	TotalFee        float64            `json:"totalFee"`
}

// handlePlanETF serves the "cancellation fee" detail panel: the classified
// fee structure plus the fee owed at a given point in the contract.
func (s *Server) handlePlanETF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	planID := r.PathValue("id")

	// -1 means not supplied; an explicit 0 is a real answer for per-month fees
	monthsRemaining := -1
	if raw := r.URL.Query().Get("monthsRemaining"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeJSONError(w, "monthsRemaining must be a non-negative integer", http.StatusBadRequest)
			return
		}
		monthsRemaining = v
	}

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

	for _, p := range c.Plans {
		if p.PlanID == planID {
			cls := etf.Classify(p)
			if monthsRemaining < 0 {
				monthsRemaining = p.TermMonths
			}
			writeJSON(w, etfResponse{
				PlanID:          planID,
				Classification:  cls,
				MonthsRemaining: monthsRemaining,
				TotalFee:        cls.TotalFee(monthsRemaining),
			})
			return
		}
	}
	writeJSONError(w, "plan not found: "+planID, http.StatusNotFound)
}

// handleExpiration serves the "contract expiration" detail panel
// independently of the main ranking flow.
func (s *Server) handleExpiration(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		writeJSONError(w, "start must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	termMonths, err := strconv.Atoi(r.URL.Query().Get("termMonths"))
	if err != nil || termMonths < 1 {
		writeJSONError(w, "termMonths must be a positive integer", http.StatusBadRequest)
		return
	}

	writeJSON(w, contract.Analyze(start, termMonths))
}
