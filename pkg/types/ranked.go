package types

import "time"

// MonthlyCost is the cost breakdown for a single month of service.
type MonthlyCost struct {
	UsageKWH   float64 `json:"usageKWH"`
	EnergyCost float64 `json:"energyCost"`
	// TDUCost is informational: delivery charges are already folded into the
	// benchmark per-kWh rates, so adding this to the total would double-count.
	TDUCost    float64 `json:"tduCost"`
	BaseCharge float64 `json:"baseCharge"`
	Credit     float64 `json:"credit"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	// EffectiveRateCents is total/usage in cents per kWh; 0 for 0-usage months.
	EffectiveRateCents float64 `json:"effectiveRateCents"`
}

// AnnualCost aggregates twelve MonthlyCosts.
type AnnualCost struct {
	Total              float64       `json:"total"`
	Monthly            []MonthlyCost `json:"monthly"`
	AverageMonthly     float64       `json:"averageMonthly"`
	TotalUsageKWH      float64       `json:"totalUsageKWH"`
	EffectiveRateCents float64       `json:"effectiveRateCents"`
}

// QualityBreakdown itemizes the penalties applied to a plan's quality score.
// When a plan is automatically zeroed, Reason is set and the penalty fields
// are meaningless.
type QualityBreakdown struct {
	Reason            string `json:"reason,omitempty"`
	CostPenalty       int    `json:"costPenalty"`
	VolatilityPenalty int    `json:"volatilityPenalty"`
	WarningPenalty    int    `json:"warningPenalty"`
	BaseChargePenalty int    `json:"baseChargePenalty"`
	ExpirationPenalty int    `json:"expirationPenalty"`
}

// ExpirationRisk tiers the seasonality score of a contract's end month.
type ExpirationRisk string

const (
	ExpirationRiskOptimal ExpirationRisk = "optimal"
	ExpirationRiskLow     ExpirationRisk = "low"
	ExpirationRiskMedium  ExpirationRisk = "medium"
	ExpirationRiskHigh    ExpirationRisk = "high"
)

// TermAlternative suggests a different contract length that expires in a
// cheaper month to shop.
type TermAlternative struct {
	TermMonths       int            `json:"termMonths"`
	ExpirationMonth  time.Month     `json:"expirationMonth"`
	SeasonalityScore float64        `json:"seasonalityScore"`
	Risk             ExpirationRisk `json:"risk"`
}

// ExpirationAnalysis describes when a contract ends and how risky that month
// is to be shopping for a replacement. Computed on demand, never stored.
type ExpirationAnalysis struct {
	ExpirationDate   time.Time         `json:"expirationDate"`
	ExpirationMonth  time.Month        `json:"expirationMonth"`
	SeasonalityScore float64           `json:"seasonalityScore"`
	Risk             ExpirationRisk    `json:"risk"`
	Alternatives     []TermAlternative `json:"alternatives,omitempty"`
}

// RankedPlan is a Plan plus the derived fields one ranking pass produces.
// It is created fresh per invocation and discarded after the caller consumes
// the sorted list.
type RankedPlan struct {
	Plan

	AnnualCost         float64             `json:"annualCost"`
	MonthlyCosts       []MonthlyCost       `json:"monthlyCosts"`
	AverageMonthlyCost float64             `json:"averageMonthlyCost"`
	EffectiveRateCents float64             `json:"effectiveRateCents"`
	Volatility         float64             `json:"volatility"`
	QualityScore       int                 `json:"qualityScore"`
	QualityBreakdown   QualityBreakdown    `json:"qualityBreakdown"`
	Warnings           []string            `json:"warnings"`
	Expiration         *ExpirationAnalysis `json:"expiration,omitempty"`
	CostScore          float64             `json:"costScore"`
	CombinedScore      float64             `json:"combinedScore"`
}
