package catalog

import "github.com/kilowatch/kilowatch/pkg/types"

// DefaultTDURates is the shipped delivery-rate table, sourced from PUCT
// tariff filings. TDU rates change March 1 and September 1; the fetch job
// can overwrite these in storage between releases.
func DefaultTDURates() map[string]types.TDURates {
	return map[string]types.TDURates{
		"ONCOR": {
			Code:              "ONCOR",
			Name:              "Oncor Electric Delivery",
			MonthlyBaseCharge: 4.23,
			PerKWHRate:        5.5833,
			EffectiveDate:     "2025-09-01",
		},
		"CENTERPOINT": {
			Code:              "CENTERPOINT",
			Name:              "CenterPoint Energy Houston Electric",
			MonthlyBaseCharge: 4.39,
			PerKWHRate:        5.8224,
			EffectiveDate:     "2025-09-01",
		},
		"AEP_CENTRAL": {
			Code:              "AEP_CENTRAL",
			Name:              "AEP Texas Central",
			MonthlyBaseCharge: 5.88,
			PerKWHRate:        6.0744,
			EffectiveDate:     "2025-09-01",
		},
		"AEP_NORTH": {
			Code:              "AEP_NORTH",
			Name:              "AEP Texas North",
			MonthlyBaseCharge: 5.88,
			PerKWHRate:        6.4908,
			EffectiveDate:     "2025-09-01",
		},
		"TNMP": {
			Code:              "TNMP",
			Name:              "Texas-New Mexico Power",
			MonthlyBaseCharge: 7.85,
			PerKWHRate:        6.7907,
			EffectiveDate:     "2025-09-01",
		},
		"LPL": {
			Code:              "LPL",
			Name:              "Lubbock Power & Light",
			MonthlyBaseCharge: 0,
			PerKWHRate:        5.26,
			EffectiveDate:     "2025-09-01",
			Notes:             "Base charge recovered through the volumetric rate",
		},
	}
}
