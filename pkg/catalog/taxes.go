package catalog

import "github.com/kilowatch/kilowatch/pkg/types"

// DefaultLocalTaxes ships the local sales tax table used to resolve a ZIP
// code to a rate. Texas caps combined local rates at 2%, and the major
// metros are all at the cap; outlying areas get a conservative default.
func DefaultLocalTaxes() types.LocalTaxes {
	return types.LocalTaxes{
		MajorCities: map[string]types.CityTax{
			"houston": {
				Rate:     0.02,
				TDU:      "CENTERPOINT",
				ZIPCodes: []string{"77002", "77019", "77030", "77056", "77084", "77095"},
			},
			"dallas": {
				Rate:     0.02,
				TDU:      "ONCOR",
				ZIPCodes: []string{"75201", "75204", "75230", "75243"},
			},
			"fort_worth": {
				Rate:     0.02,
				TDU:      "ONCOR",
				ZIPCodes: []string{"76102", "76109", "76137"},
			},
			"corpus_christi": {
				Rate:     0.02,
				TDU:      "AEP_CENTRAL",
				ZIPCodes: []string{"78401", "78411", "78414"},
			},
			"lubbock": {
				Rate:     0.02,
				TDU:      "LPL",
				ZIPCodes: []string{"79401", "79423"},
			},
		},
		ZIPCodeRanges: map[string]types.RangeTax{
			"75": {Rate: 0.02, Region: "Dallas-Fort Worth metro"},
			"76": {Rate: 0.02, Region: "North Central Texas"},
			"77": {Rate: 0.02, Region: "Greater Houston"},
			"78": {Rate: 0.0175, Region: "South and Central Texas"},
			"79": {Rate: 0.015, Region: "West Texas"},
		},
		DefaultLocalRate: 0.0125,
	}
}
