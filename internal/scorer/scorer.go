// Package scorer turns one persona's extraction and event observations into
// a pass/fail verdict with structured failure reasons. Pure: artifact writes
// belong to the run loop.
package scorer

import (
	"strings"
	"time"

	"voice-bench-go/internal/extractor"
	"voice-bench-go/internal/types"
)

// Observation bundles everything the engine derived from one call.
type Observation struct {
	Transcript    string
	Segments      []types.LabeledSegment
	ExtractedName string
	ExtractedZip  string
	Agreed        bool
	Transferred   bool
}

// Score compares an observation against the persona's expected values.
// Names match fuzzily (threshold 0.8); ZIPs must match exactly. Every false
// dimension contributes a failure reason, with missing extraction split from
// wrong extraction, so the reason list is empty exactly when the call passed.
func Score(p types.Persona, obs Observation) types.CallResult {
	expectedName := strings.ToLower(strings.TrimSpace(p.Name))
	expectedZip := strings.TrimSpace(p.ZipCode)

	nameCorrect := obs.ExtractedName != "" && extractor.FuzzyMatch(obs.ExtractedName, expectedName)
	zipCorrect := obs.ExtractedZip != "" && obs.ExtractedZip == expectedZip
	success := nameCorrect && zipCorrect && obs.Agreed && obs.Transferred

	reasons := []types.FailureReason{}
	if obs.ExtractedName == "" {
		reasons = append(reasons, types.MissingName)
	} else if !nameCorrect {
		reasons = append(reasons, types.WrongName)
	}
	if obs.ExtractedZip == "" {
		reasons = append(reasons, types.MissingZip)
	} else if !zipCorrect {
		reasons = append(reasons, types.WrongZip)
	}
	if !obs.Agreed {
		reasons = append(reasons, types.CustomerDisagreed)
	}
	if !obs.Transferred {
		reasons = append(reasons, types.BotNoTransfer)
	}

	return types.CallResult{
		Persona:        expectedName,
		ExpectedZip:    expectedZip,
		ExtractedName:  orNotFound(obs.ExtractedName),
		ExtractedZip:   orNotFound(obs.ExtractedZip),
		CustomerAgreed: obs.Agreed,
		BotTransferred: obs.Transferred,
		NameCorrect:    nameCorrect,
		ZipCorrect:     zipCorrect,
		Success:        success,
		Traits:         p.Traits,
		Transcript:     obs.Transcript,
		Timestamp:      time.Now(),
		Segments:       obs.Segments,
		FailureReasons: reasons,
	}
}

func orNotFound(v string) string {
	if v == "" {
		return types.NotFound
	}
	return v
}
