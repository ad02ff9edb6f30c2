package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/kilowatch/kilowatch/pkg/catalog"
	"github.com/kilowatch/kilowatch/pkg/log"
	"github.com/kilowatch/kilowatch/pkg/ranking"
	"github.com/kilowatch/kilowatch/pkg/storage"
	"github.com/kilowatch/kilowatch/pkg/types"
	"github.com/kilowatch/kilowatch/pkg/usage"
)

type rankRequest struct {
	TDUArea string `json:"tduArea"`
	ZIP     string `json:"zip"`
	// LocalTaxRate overrides the ZIP-based lookup when positive.
	LocalTaxRate float64 `json:"localTaxRate,omitempty"`

	// Usage resolution, most specific wins: an explicit 12-month sequence,
	// then an average, then a home-size category.
	Usage         []float64 `json:"usage,omitempty"`
	AvgMonthlyKWH float64   `json:"avgMonthlyKWH,omitempty"`
	HomeSize      string    `json:"homeSize,omitempty"`

	FixedOnly     bool   `json:"fixedOnly"`
	ContractStart string `json:"contractStart,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

type rankResponse struct {
	Plans        []types.RankedPlan `json:"plans"`
	TotalPlans   int                `json:"totalPlans"`
	TDU          types.TDURates     `json:"tdu"`
	LocalTaxRate float64            `json:"localTaxRate"`
	UsageProfile types.UsageProfile `json:"usageProfile"`
	FetchedAt    time.Time          `json:"fetchedAt"`
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req rankRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.TDUArea == "" {
		writeJSONError(w, "tduArea is required", http.StatusBadRequest)
		return
	}

	profile, err := resolveUsage(req)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	taxRate := req.LocalTaxRate
	if taxRate < 0 || taxRate > 1 {
		writeJSONError(w, "localTaxRate must be a fraction between 0 and 1", http.StatusBadRequest)
		return
	}
	if taxRate == 0 {
		taxRate = catalog.DefaultLocalTaxes().Resolve(req.ZIP)
	}

	opts := ranking.Options{
		FixedOnly:    req.FixedOnly,
		LocalTaxRate: taxRate,
	}
	if req.ContractStart != "" {
		start, err := time.Parse("2006-01-02", req.ContractStart)
		if err != nil {
			writeJSONError(w, "contractStart must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		opts.ContractStart = start
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

	tdu, ok := s.tduRates(ctx)[req.TDUArea]
	if !ok {
		writeJSONError(w, "unknown tduArea: "+req.TDUArea, http.StatusBadRequest)
		return
	}

	var areaPlans []types.Plan
	for _, p := range c.Plans {
		if p.TDUArea == req.TDUArea {
			areaPlans = append(areaPlans, p)
		}
	}

	ranked := ranking.Rank(areaPlans, profile, tdu, opts)
	total := len(ranked)
	if req.Limit > 0 && req.Limit < len(ranked) {
		ranked = ranked[:req.Limit]
	}

	writeJSON(w, rankResponse{
		Plans:        ranked,
		TotalPlans:   total,
		TDU:          tdu,
		LocalTaxRate: opts.LocalTaxRate,
		UsageProfile: profile,
		FetchedAt:    c.FetchedAt,
	})
}

func resolveUsage(req rankRequest) (types.UsageProfile, error) {
	if len(req.Usage) > 0 {
		return types.NewUsageProfile(req.Usage)
	}
	avg := req.AvgMonthlyKWH
	if avg < 0 {
		return types.UsageProfile{}, errors.New("avgMonthlyKWH must be positive")
	}
	if avg == 0 {
		avg = usage.ForHomeSize(req.HomeSize)
	}
	return usage.Estimate(avg), nil
}
