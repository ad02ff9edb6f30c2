package types

// TDURates holds the delivery-charge parameters for one regulated TDU area.
// Loaded once per refresh from PUCT filings; treated as a constant during a
// ranking pass. Note the per-kWh rate is in cents while the base charge is in
// dollars, matching the published tariff sheets.
type TDURates struct {
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	MonthlyBaseCharge float64 `json:"monthly_base_charge"`
	PerKWHRate        float64 `json:"per_kwh_rate"`
	EffectiveDate     string  `json:"effective_date"`
	Notes             string  `json:"notes,omitempty"`
}

// CityTax is the local tax data for one major city.
type CityTax struct {
	Rate     float64  `json:"rate"`
	TDU      string   `json:"tdu,omitempty"`
	ZIPCodes []string `json:"zip_codes,omitempty"`
}

// RangeTax is the local tax data for a ZIP-prefix range.
type RangeTax struct {
	Rate   float64 `json:"rate"`
	Region string  `json:"region"`
}

// LocalTaxes maps ZIP codes to local sales tax rates (decimal fractions).
type LocalTaxes struct {
	MajorCities      map[string]CityTax  `json:"major_cities"`
	ZIPCodeRanges    map[string]RangeTax `json:"zip_code_ranges"`
	DefaultLocalRate float64             `json:"default_local_rate"`
}

// Resolve returns the local tax rate for a ZIP code, checking major-city ZIP
// lists first, then ZIP prefixes, then the default rate.
func (l LocalTaxes) Resolve(zip string) float64 {
	for _, city := range l.MajorCities {
		for _, z := range city.ZIPCodes {
			if z == zip {
				return city.Rate
			}
		}
	}
	for prefix, r := range l.ZIPCodeRanges {
		if len(zip) >= len(prefix) && zip[:len(prefix)] == prefix {
			return r.Rate
		}
	}
	return l.DefaultLocalRate
}
