package catalog

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"github.com/kilowatch/kilowatch/pkg/types"
)

var cancelFeeRe = regexp.MustCompile(`Cancellation Fee:\s*\$?([\d.]+)`)

// row is one CSV record keyed by header name, with multi-name lookup since
// Power to Choose has renamed columns across export versions and currently
// wraps them in brackets, e.g. [TduCompanyName].
type row map[string]string

func (r row) get(keys ...string) string {
	for _, key := range keys {
		if v := r[key]; v != "" {
			return v
		}
		if v := r["["+key+"]"]; v != "" {
			return v
		}
	}
	return ""
}

// ParseCSV parses a Power to Choose CSV export into plans. Rows without a
// usable 1000 kWh benchmark, provider, or product name are dropped; rows
// missing a 500 or 2000 kWh benchmark inherit the 1000 kWh value.
func ParseCSV(text string) ([]types.Plan, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv has no data rows")
	}

	header := records[0]
	var plans []types.Plan
	for _, record := range records[1:] {
		r := make(row, len(header))
		for i, col := range header {
			if i < len(record) {
				r[strings.TrimSpace(col)] = record[i]
			}
		}
		if p, ok := planFromRow(r); ok {
			plans = append(plans, p)
		}
	}
	return plans, nil
}

func planFromRow(r row) (types.Plan, bool) {
	price1000, ok := ParsePrice(r.get("kwh1000", "Price/kWh 1000", "Price/kWh: 1000 kWh", "Price1000", "price_kwh_1000"))
	if !ok || price1000 <= 0 {
		return types.Plan{}, false
	}

	p := types.Plan{
		PlanID:       sanitizeString(r.get("idKey", "ID Plan", "Plan ID", "plan_id")),
		RepName:      sanitizeString(r.get("RepCompany", "REP Name", "rep_name")),
		PlanName:     sanitizeString(r.get("Product", "Plan Name", "plan_name")),
		TDUArea:      NormalizeTDUName(r.get("TduCompanyName", "TduCompany", "TDU", "TDU Area", "tdu_area")),
		PriceKWH1000: price1000,
	}
	if p.RepName == "" || p.PlanName == "" {
		return types.Plan{}, false
	}

	if v, ok := ParsePrice(r.get("kwh500", "Price/kWh 500", "Price/kWh: 500 kWh", "Price500", "price_kwh_500")); ok {
		p.PriceKWH500 = v
	} else {
		p.PriceKWH500 = price1000
	}
	if v, ok := ParsePrice(r.get("kwh2000", "Price/kWh 2000", "Price/kWh: 2000 kWh", "Price2000", "price_kwh_2000")); ok {
		p.PriceKWH2000 = v
	} else {
		p.PriceKWH2000 = price1000
	}

	rateType := strings.ToUpper(sanitizeString(r.get("RateType", "Rate Type", "rate_type")))
	if rateType == "" {
		rateType = string(types.RateTypeFixed)
	}
	p.RateType = types.RateType(rateType)

	if v, ok := parseInt(r.get("TermValue", "Term Value", "Term", "term_months")); ok {
		p.TermMonths = v
	}
	if v, ok := parseInt(r.get("Renewable", "Renewable Perc", "Renewable Content", "renewable_pct")); ok {
		p.RenewablePct = v
	}
	p.IsPrepaid = parseBool(r.get("PrePaid", "Prepaid", "is_prepaid"))
	p.IsTOU = parseBool(r.get("TimeOfUse", "Time Of Use", "Time of Use", "is_tou"))

	cancelFee := r.get("CancelFee", "Cancellation Fee", "ETF", "early_termination_fee")
	if cancelFee == "" {
		// some exports only disclose the fee inside the pricing blurb
		if m := cancelFeeRe.FindStringSubmatch(r.get("Pricing Details")); m != nil {
			cancelFee = m[1]
		}
	}
	if fee, ok := parseFloat(cancelFee); ok {
		p.EarlyTerminationFee = &fee
	}

	if v, ok := parseFloat(r.get("base_charge_monthly")); ok {
		p.BaseChargeMonthly = v
	}

	p.SpecialTerms = sanitizeString(r.get("SpecialTerms", "Plan Details", "Special terms and conditions", "Special Terms", "special_terms"))
	p.PromotionDetails = sanitizeString(r.get("PromotionDesc", "Promotion", "Promotion details", "Promotions"))
	p.FeesCredits = sanitizeString(r.get("Fees/Credits", "MinUsageFeesCredits", "Min Usage Fees/Credits"))
	p.MinUsageFees = sanitizeString(r.get("MinUsageFeesCredits", "Min Usage Fees/Credits", "Min Usage Fees"))

	p.Language = sanitizeString(r.get("Language", "Lang"))
	if p.Language == "" {
		p.Language = "English"
	}
	p.EFLURL = sanitizeURL(r.get("FactsURL", "Fact Sheet", "Electricity Facts Label (EFL) URL", "EFL URL", "efl_url"))
	p.EnrollmentURL = sanitizeURL(r.get("EnrollURL", "Ordering Info", "Enroll URL", "Enrollment URL", "enrollment_url"))
	p.TermsURL = sanitizeURL(r.get("TermsURL", "Terms of Service", "Terms of Service (TOS) URL", "TOS URL", "terms_url"))

	return p, true
}
