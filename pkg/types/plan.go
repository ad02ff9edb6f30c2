package types

import (
	"encoding/json"
	"fmt"
)

// RateType classifies how a plan's energy rate behaves over the contract.
type RateType string

const (
	RateTypeFixed    RateType = "FIXED"
	RateTypeVariable RateType = "VARIABLE"
	RateTypeIndexed  RateType = "INDEXED"
)

// Valid reports whether the rate type is one of the catalogue's values.
func (r RateType) Valid() bool {
	switch r {
	case RateTypeFixed, RateTypeVariable, RateTypeIndexed:
		return true
	}
	return false
}

// ETFStructure identifies how an early termination fee is calculated.
type ETFStructure string

const (
	ETFStructureFlat     ETFStructure = "flat"
	ETFStructurePerMonth ETFStructure = "per-month"
	ETFStructureNone     ETFStructure = "none"
	ETFStructureUnknown  ETFStructure = "unknown"
)

// ETFSource records where an ETF classification came from.
type ETFSource string

const (
	ETFSourceEFL         ETFSource = "efl"
	ETFSourceTextParsing ETFSource = "text-parsing"
	ETFSourceLegacy      ETFSource = "legacy"
)

// ETFDetails is the pre-verified fee structure extracted from a plan's EFL.
// When present it is authoritative over any free-text heuristics.
type ETFDetails struct {
	Structure  ETFStructure `json:"structure"`
	BaseAmount *float64     `json:"base_amount,omitempty"`
	Source     ETFSource    `json:"source"`
}

// UnmarshalJSON normalizes the catalogue's legacy "per-month-remaining"
// structure tag to the canonical "per-month" value.
func (d *ETFDetails) UnmarshalJSON(b []byte) error {
	type alias ETFDetails
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Structure == "per-month-remaining" {
		a.Structure = ETFStructurePerMonth
	}
	*d = ETFDetails(a)
	return nil
}

// Plan represents one electricity offer from the Power to Choose catalogue.
// Plans are constructed once per refresh cycle and are read-only afterwards;
// calculations attach derived fields to a RankedPlan copy, never to the
// canonical record.
type Plan struct {
	PlanID   string `json:"plan_id"`
	PlanName string `json:"plan_name"`
	RepName  string `json:"rep_name"`
	TDUArea  string `json:"tdu_area"`

	RateType   RateType `json:"rate_type"`
	TermMonths int      `json:"term_months"`

	// Benchmark prices in cents per kWh at the three disclosed usage levels.
	// TDU delivery charges are already folded into these per EFL disclosure
	// rules.
	PriceKWH500  float64 `json:"price_kwh_500"`
	PriceKWH1000 float64 `json:"price_kwh_1000"`
	PriceKWH2000 float64 `json:"price_kwh_2000"`

	BaseChargeMonthly float64 `json:"base_charge_monthly"`
	// EarlyTerminationFee is nil when the catalogue does not disclose one.
	EarlyTerminationFee *float64    `json:"early_termination_fee"`
	ETFDetails          *ETFDetails `json:"etf_details,omitempty"`

	RenewablePct int  `json:"renewable_pct"`
	IsPrepaid    bool `json:"is_prepaid"`
	IsTOU        bool `json:"is_tou"`

	// Free-text provider disclosures, used only for heuristic extraction.
	SpecialTerms     string `json:"special_terms"`
	PromotionDetails string `json:"promotion_details"`
	FeesCredits      string `json:"fees_credits"`
	MinUsageFees     string `json:"min_usage_fees"`

	Language      string `json:"language"`
	EFLURL        string `json:"efl_url"`
	EnrollmentURL string `json:"enrollment_url"`
	TermsURL      string `json:"terms_url"`
}

// Validate checks the invariants the ranking core relies on.
func (p Plan) Validate() error {
	if p.PlanID == "" {
		return fmt.Errorf("plan missing plan_id")
	}
	if p.TDUArea == "" {
		return fmt.Errorf("plan %s missing tdu_area", p.PlanID)
	}
	if !p.RateType.Valid() {
		return fmt.Errorf("plan %s has invalid rate_type: %s", p.PlanID, p.RateType)
	}
	if p.PriceKWH500 <= 0 || p.PriceKWH1000 <= 0 || p.PriceKWH2000 <= 0 {
		return fmt.Errorf("plan %s has non-positive benchmark rate", p.PlanID)
	}
	if p.TermMonths < 1 {
		return fmt.Errorf("plan %s has term_months %d, want >= 1", p.PlanID, p.TermMonths)
	}
	if p.RenewablePct < 0 || p.RenewablePct > 100 {
		return fmt.Errorf("plan %s has renewable_pct %d, want 0-100", p.PlanID, p.RenewablePct)
	}
	return nil
}
