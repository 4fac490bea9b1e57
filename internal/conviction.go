package internal

import (
	"fmt"
	"math"
	"sort"

	"convictiontrader/internal/domain"

	"github.com/maja42/goval"
	"github.com/montanaflynn/stats"
)

type ConvictionConfig struct {
	// RecencyHalfLifeDays is the number of days after which a filing's
	// contribution decays to half its original value. Floored at 1.
	RecencyHalfLifeDays float64

	// MinWeight drops tickers whose raw conviction falls below it.
	// Zero disables the filter.
	MinWeight float64

	// MaxPositions keeps only the top N tickers by raw conviction.
	// Zero disables truncation.
	MaxPositions int

	// ScoreExpression optionally replaces the built-in
	// portfolioWeight * recencyWeight formula with a goval expression
	// over the variables portfolioWeight, daysOld and recencyWeight.
	ScoreExpression string
}

func DefaultConvictionConfig() ConvictionConfig {
	return ConvictionConfig{
		RecencyHalfLifeDays: 90,
	}
}

type CalculateConvictionScoresInput struct {
	Holdings []domain.HoldingRecord
	Config   ConvictionConfig
}

type tickerAggregate struct {
	ticker        string
	securityName  string
	rawConviction float64
	investorNames map[string]string
}

// CalculateConvictionScores aggregates raw holdings into a normalized
// per-ticker weight vector. Contributions are additive across
// investors, and the result is order-independent given fixed input
// rows. A zero conviction sum yields all-zero weights; callers treat
// that as a valid empty outcome.
func CalculateConvictionScores(in CalculateConvictionScoresInput) ([]domain.ConvictionRow, error) {
	halfLife := in.Config.RecencyHalfLifeDays
	if halfLife < 1 {
		halfLife = 1
	}

	var evaluator *goval.Evaluator
	if in.Config.ScoreExpression != "" {
		evaluator = goval.NewEvaluator()
	}

	aggregates := map[string]*tickerAggregate{}
	firstSeen := map[string]int{}

	for _, holding := range in.Holdings {
		portfolioWeight := holding.PortfolioWeight()
		if portfolioWeight == nil || holding.DaysOld == nil {
			continue
		}

		recencyWeight := math.Exp(-math.Ln2 * float64(*holding.DaysOld) / halfLife)
		score := *portfolioWeight * recencyWeight
		if evaluator != nil {
			result, err := evaluator.Evaluate(in.Config.ScoreExpression, map[string]interface{}{
				"portfolioWeight": *portfolioWeight,
				"daysOld":         float64(*holding.DaysOld),
				"recencyWeight":   recencyWeight,
			}, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to evaluate score expression: %w", err)
			}
			score, err = coerceFloat(result)
			if err != nil {
				return nil, fmt.Errorf("score expression returned non-numeric value: %w", err)
			}
		}
		if score < 0 || math.IsNaN(score) {
			score = 0
		}

		aggregate, ok := aggregates[holding.Ticker]
		if !ok {
			aggregate = &tickerAggregate{
				ticker:        holding.Ticker,
				securityName:  holding.SecurityName,
				investorNames: map[string]string{},
			}
			aggregates[holding.Ticker] = aggregate
			firstSeen[holding.Ticker] = len(firstSeen)
		}
		aggregate.rawConviction += score
		aggregate.investorNames[holding.InvestorID] = holding.InvestorName
		if aggregate.securityName == "" {
			aggregate.securityName = holding.SecurityName
		}
	}

	ordered := []*tickerAggregate{}
	for _, aggregate := range aggregates {
		if in.Config.MinWeight > 0 && aggregate.rawConviction < in.Config.MinWeight {
			continue
		}
		ordered = append(ordered, aggregate)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].rawConviction != ordered[j].rawConviction {
			return ordered[i].rawConviction > ordered[j].rawConviction
		}
		return firstSeen[ordered[i].ticker] < firstSeen[ordered[j].ticker]
	})

	if in.Config.MaxPositions > 0 && len(ordered) > in.Config.MaxPositions {
		ordered = ordered[:in.Config.MaxPositions]
	}

	if len(ordered) == 0 {
		return []domain.ConvictionRow{}, nil
	}

	dataset := []float64{}
	for _, aggregate := range ordered {
		dataset = append(dataset, aggregate.rawConviction)
	}
	totalConviction, err := stats.Sum(dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to sum conviction scores: %w", err)
	}

	rows := []domain.ConvictionRow{}
	for _, aggregate := range ordered {
		normalized := 0.0
		if totalConviction > 0 {
			normalized = aggregate.rawConviction / totalConviction
		}

		investors := []string{}
		for _, name := range aggregate.investorNames {
			investors = append(investors, name)
		}
		sort.Strings(investors)

		rows = append(rows, domain.ConvictionRow{
			Ticker:           aggregate.ticker,
			SecurityName:     aggregate.securityName,
			RawConviction:    aggregate.rawConviction,
			NormalizedWeight: normalized,
			InvestorCount:    len(aggregate.investorNames),
			Investors:        investors,
		})
	}

	return rows, nil
}

func coerceFloat(v interface{}) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case int:
		return float64(value), nil
	default:
		return 0, fmt.Errorf("got %T", v)
	}
}
