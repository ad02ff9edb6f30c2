package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kilowatch/kilowatch/pkg/types"
)

// jsonPlan is the loosely-typed shape the Power to Choose API returns. The
// API has used several field names over time, so every field carries its
// known aliases.
type jsonPlan struct {
	PlanID   json.Number `json:"planId"`
	ID       json.Number `json:"id"`
	RepName  string      `json:"repName"`
	Provider string      `json:"provider"`
	PlanName string      `json:"planName"`
	Name     string      `json:"name"`
	TDU      string      `json:"tdu"`

	RateType  string `json:"rateType"`
	RateType2 string `json:"rate_type"`

	Price500     json.Number `json:"price500"`
	PriceKWH500  json.Number `json:"priceKwh500"`
	Price1000    json.Number `json:"price1000"`
	PriceKWH1000 json.Number `json:"priceKwh1000"`
	Price2000    json.Number `json:"price2000"`
	PriceKWH2000 json.Number `json:"priceKwh2000"`

	TermMonths json.Number `json:"termMonths"`
	Term       json.Number `json:"term"`

	RenewablePct json.Number `json:"renewablePct"`
	Renewable    json.Number `json:"renewable"`

	IsPrepaid bool `json:"isPrepaid"`
	Prepaid   bool `json:"prepaid"`
	IsTOU     bool `json:"isTou"`
	TimeOfUse bool `json:"timeOfUse"`

	ETF             json.Number `json:"etf"`
	CancellationFee json.Number `json:"cancellationFee"`
	BaseCharge      json.Number `json:"baseCharge"`
	MonthlyCharge   json.Number `json:"monthlyCharge"`

	EFLURL    string `json:"eflUrl"`
	FactLabel string `json:"factLabel"`
	EnrollURL string `json:"enrollUrl"`
	Enroll    string `json:"enroll"`
	TOSURL    string `json:"tosUrl"`
	Terms     string `json:"terms"`

	SpecialTerms string `json:"specialTerms"`
	Promotions   string `json:"promotions"`
	Language     string `json:"language"`
}

type jsonEnvelope struct {
	Plans   []jsonPlan `json:"plans"`
	Data    []jsonPlan `json:"data"`
	Results []jsonPlan `json:"results"`
}

// ParseJSON parses the Power to Choose API response into plans. The API
// only reliably describes fixed-rate products, so non-fixed entries are
// dropped here rather than guessed at.
func ParseJSON(text string) ([]types.Plan, error) {
	trimmed := strings.TrimSpace(text)

	var items []jsonPlan
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	} else {
		var env jsonEnvelope
		if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
		switch {
		case len(env.Plans) > 0:
			items = env.Plans
		case len(env.Data) > 0:
			items = env.Data
		default:
			items = env.Results
		}
	}

	var plans []types.Plan
	for _, item := range items {
		rateType := strings.ToUpper(firstString(item.RateType, item.RateType2))
		if !strings.Contains(rateType, "FIXED") {
			continue
		}

		price1000 := number(item.Price1000, item.PriceKWH1000)
		if price1000 <= 0 {
			continue
		}

		fee := number(item.ETF, item.CancellationFee)
		p := types.Plan{
			PlanID:              firstString(item.PlanID.String(), item.ID.String()),
			RepName:             sanitizeString(firstString(item.RepName, item.Provider)),
			PlanName:            sanitizeString(firstString(item.PlanName, item.Name)),
			TDUArea:             NormalizeTDUName(item.TDU),
			RateType:            types.RateTypeFixed,
			TermMonths:          int(number(item.TermMonths, item.Term)),
			PriceKWH1000:        price1000,
			RenewablePct:        int(number(item.RenewablePct, item.Renewable)),
			IsPrepaid:           item.IsPrepaid || item.Prepaid,
			IsTOU:               item.IsTOU || item.TimeOfUse,
			EarlyTerminationFee: &fee,
			BaseChargeMonthly:   number(item.BaseCharge, item.MonthlyCharge),
			EFLURL:              sanitizeURL(firstString(item.EFLURL, item.FactLabel)),
			EnrollmentURL:       sanitizeURL(firstString(item.EnrollURL, item.Enroll)),
			TermsURL:            sanitizeURL(firstString(item.TOSURL, item.Terms)),
			SpecialTerms:        sanitizeString(item.SpecialTerms),
			PromotionDetails:    sanitizeString(item.Promotions),
			Language:            sanitizeString(firstString(item.Language, "English")),
		}

		p.PriceKWH500 = number(item.Price500, item.PriceKWH500)
		if p.PriceKWH500 == 0 {
			p.PriceKWH500 = price1000
		}
		p.PriceKWH2000 = number(item.Price2000, item.PriceKWH2000)
		if p.PriceKWH2000 == 0 {
			p.PriceKWH2000 = price1000
		}

		plans = append(plans, p)
	}
	return plans, nil
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func number(values ...json.Number) float64 {
	for _, v := range values {
		if v == "" {
			continue
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return 0
}
