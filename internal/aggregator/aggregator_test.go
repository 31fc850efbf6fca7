package aggregator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"voice-bench-go/internal/types"
)

func TestSummarizeEmptyInput(t *testing.T) {
	s := Summarize(nil)

	require.Equal(t, 0, s.TotalTests)
	require.Equal(t, 0, s.Successful)
	require.Equal(t, 0, s.Failed)
	require.Equal(t, 0.0, s.SuccessRate)
	require.Len(t, s.CommonFailures, 6)
	for _, reason := range types.AllFailureReasons() {
		require.Equal(t, 0, s.CommonFailures[reason])
	}
	require.Empty(t, s.ExtraMetrics.PartialSuccess)
	require.Empty(t, s.ExtraMetrics.FailuresByTrait)
	require.Empty(t, s.ExtraMetrics.SuccessByPersona)
}

func TestSummarizeMixedRun(t *testing.T) {
	results := []types.CallResult{
		{
			Persona: "jane doe", Success: true,
			NameCorrect: true, ZipCorrect: true, CustomerAgreed: true, BotTransferred: true,
			FailureReasons: []types.FailureReason{},
		},
		{
			Persona: "bob smith", Success: false,
			NameCorrect: true, ZipCorrect: false, CustomerAgreed: false, BotTransferred: true,
			Traits:         []string{"impatient", "chatty"},
			FailureReasons: []types.FailureReason{types.MissingZip, types.CustomerDisagreed},
		},
	}

	s := Summarize(results)

	require.Equal(t, 2, s.TotalTests)
	require.Equal(t, 1, s.Successful)
	require.Equal(t, 1, s.Failed)
	require.Equal(t, 50.0, s.SuccessRate)
	require.Equal(t, 1, s.CommonFailures[types.MissingZip])
	require.Equal(t, 1, s.CommonFailures[types.CustomerDisagreed])
	require.Equal(t, 0, s.CommonFailures[types.WrongName])

	em := s.ExtraMetrics
	require.Equal(t, "2/2", em.ComponentAccuracy.NameAccuracy)
	require.Equal(t, "1/2", em.ComponentAccuracy.ZipAccuracy)
	require.Equal(t, "1/2", em.ComponentAccuracy.CustomerAgreementRate)
	require.Equal(t, "2/2", em.ComponentAccuracy.BotTransferRate)

	// the fully successful call stays out of the partial histogram
	require.Equal(t, map[string]int{"2_of_4": 1}, em.PartialSuccess)
	require.Equal(t, map[string]int{"impatient": 1, "chatty": 1}, em.FailuresByTrait)
	require.Equal(t, map[string]bool{"jane doe": true, "bob smith": false}, em.SuccessByPersona)
}

func TestSummarizeSuccessRateRounding(t *testing.T) {
	results := []types.CallResult{
		{Success: true}, {Success: false}, {Success: false},
	}
	s := Summarize(results)
	require.Equal(t, 33.33, s.SuccessRate)
	require.Equal(t, s.TotalTests, s.Successful+s.Failed)
}

func TestSummarizePersonaCollisionLastWriteWins(t *testing.T) {
	results := []types.CallResult{
		{Persona: "jane doe", Success: true, NameCorrect: true, ZipCorrect: true, CustomerAgreed: true, BotTransferred: true},
		{Persona: "jane doe", Success: false},
	}
	s := Summarize(results)
	require.Equal(t, map[string]bool{"jane doe": false}, s.ExtraMetrics.SuccessByPersona)
}

func TestSummarizeMultipleReasonsPerCall(t *testing.T) {
	results := []types.CallResult{
		{
			FailureReasons: []types.FailureReason{
				types.MissingName, types.MissingZip, types.CustomerDisagreed, types.BotNoTransfer,
			},
		},
	}
	s := Summarize(results)
	total := 0
	for _, n := range s.CommonFailures {
		total += n
	}
	require.Equal(t, 4, total)
	require.Equal(t, 1, s.Failed)
}
