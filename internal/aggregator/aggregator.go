// Package aggregator folds per-call results into corpus-level metrics. Pure
// function of the result sequence; an empty run yields zeroed metrics.
package aggregator

import (
	"fmt"
	"math"
	"time"

	"voice-bench-go/internal/types"
)

func Summarize(results []types.CallResult) types.BenchmarkSummary {
	passed := 0
	common := map[types.FailureReason]int{}
	for _, r := range types.AllFailureReasons() {
		common[r] = 0
	}
	for _, r := range results {
		if r.Success {
			passed++
		}
		for _, reason := range r.FailureReasons {
			common[reason]++
		}
	}

	total := len(results)
	return types.BenchmarkSummary{
		Timestamp:      time.Now(),
		TotalTests:     total,
		Successful:     passed,
		Failed:         total - passed,
		SuccessRate:    round2(100 * float64(passed) / float64(max(total, 1))),
		ByPersona:      results,
		CommonFailures: common,
		ExtraMetrics:   extraMetrics(results),
	}
}

func extraMetrics(results []types.CallResult) types.ExtraMetrics {
	m := types.ExtraMetrics{
		PartialSuccess:   map[string]int{},
		FailuresByTrait:  map[string]int{},
		SuccessByPersona: map[string]bool{},
	}
	if len(results) == 0 {
		return m
	}

	total := len(results)
	nameMatches, zipMatches, agreements, transfers := 0, 0, 0, 0
	for _, r := range results {
		score := 0
		if r.NameCorrect {
			nameMatches++
			score++
		}
		if r.ZipCorrect {
			zipMatches++
			score++
		}
		if r.CustomerAgreed {
			agreements++
			score++
		}
		if r.BotTransferred {
			transfers++
			score++
		}

		// fully successful calls stay out of the partial histogram
		if score < 4 {
			m.PartialSuccess[fmt.Sprintf("%d_of_4", score)]++
		}
		if !r.Success {
			for _, trait := range r.Traits {
				m.FailuresByTrait[trait]++
			}
		}
		// last write wins on persona name collisions
		m.SuccessByPersona[r.Persona] = r.Success
	}

	m.ComponentAccuracy = types.ComponentAccuracy{
		NameAccuracy:          fmt.Sprintf("%d/%d", nameMatches, total),
		ZipAccuracy:           fmt.Sprintf("%d/%d", zipMatches, total),
		CustomerAgreementRate: fmt.Sprintf("%d/%d", agreements, total),
		BotTransferRate:       fmt.Sprintf("%d/%d", transfers, total),
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
