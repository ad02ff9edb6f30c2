package pricing

import "github.com/kilowatch/kilowatch/pkg/types"

// RateAt returns the plan's per-kWh rate (cents) at the given monthly usage,
// linearly interpolated between the 500/1000/2000 kWh benchmark anchors.
//
// Below 500 kWh the 500 rate is returned verbatim, and above 2000 kWh the
// 2000 rate is returned verbatim: we deliberately do not extrapolate the
// trend past the disclosed anchors. Any non-negative finite usage is valid.
func RateAt(usageKWH float64, p types.Plan) float64 {
	switch {
	case usageKWH <= 500:
		return p.PriceKWH500
	case usageKWH <= 1000:
		return p.PriceKWH500 + (p.PriceKWH1000-p.PriceKWH500)*(usageKWH-500)/500
	case usageKWH <= 2000:
		return p.PriceKWH1000 + (p.PriceKWH2000-p.PriceKWH1000)*(usageKWH-1000)/1000
	default:
		return p.PriceKWH2000
	}
}
