package domain

// ConvictionRow is the aggregated, recency-weighted institutional
// interest in a single security.
type ConvictionRow struct {
	Ticker           string   `json:"ticker"`
	SecurityName     string   `json:"securityName"`
	RawConviction    float64  `json:"rawConviction"`
	NormalizedWeight float64  `json:"normalizedWeight"`
	InvestorCount    int      `json:"investorCount"`
	Investors        []string `json:"investors"`
}
