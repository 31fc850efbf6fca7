// Package diarize assigns speaker roles to transcript segments from lexical
// cues alone; no audio-based diarization is involved.
package diarize

import (
	"strings"

	"voice-bench-go/internal/types"
)

var customerCues = []string{
	"my name is", "i'm", "zip is", "yeah", "yes", "sure", "okay", "alright",
	"i guess", "i think", "it's", "that works", "just", "uh", "name's", "not really",
}

var agentCues = []string{
	"can i", "would you", "shall i", "connecting", "transfer", "let me",
	"please hold", "one moment", "thanks", "perfect", "i understand", "just so you know",
}

// Classify labels one segment's text given the previous segment's label.
// Customer cues win over agent cues; a trailing "?" falls to the customer
// (a known simplification that also catches agent questions); otherwise the
// previous label carries over.
func Classify(text string, prev types.Speaker) types.Speaker {
	lower := strings.ToLower(text)

	for _, cue := range customerCues {
		if strings.Contains(lower, cue) {
			return types.SpeakerCustomer
		}
	}
	for _, cue := range agentCues {
		if strings.Contains(lower, cue) {
			return types.SpeakerAgent
		}
	}

	if strings.HasSuffix(strings.TrimSpace(lower), "?") {
		return types.SpeakerCustomer
	}

	return prev
}

// Label folds Classify over the segments in chronological order, seeded with
// the agent speaking first. Greedy and non-backtracking: a label never
// changes once assigned.
func Label(segments []types.TranscriptSegment) []types.LabeledSegment {
	prev := types.SpeakerAgent
	out := make([]types.LabeledSegment, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		speaker := Classify(text, prev)
		out = append(out, types.LabeledSegment{
			Start:   seg.Start,
			End:     seg.End,
			Speaker: speaker,
			Text:    text,
		})
		prev = speaker
	}
	return out
}
