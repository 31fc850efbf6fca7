// Package events detects the two behavioral outcomes a call is scored on:
// the customer agreeing to a proposed transfer, and the agent attempting one.
// All matching is substring containment over fixed phrase lists.
package events

import (
	"strings"

	"voice-bench-go/internal/types"
)

// triggerPhrases are agent utterances proposing a transfer or connection.
var triggerPhrases = []string{
	"would you like to", "do you want to", "are you interested in",
	"can i connect you", "shall i transfer you", "speak to an agent",
	"talk to a representative", "talk to a customer care agent", "connect you now",
}

var agreementPhrases = []string{
	"yes", "sure", "okay", "sounds good", "yeah", "yep", "i'm interested",
	"i guess", "all right", "alright",
}

// transferPhrases are direct transfer-intent cues; transfer_call() is a
// tool-invocation artifact that sometimes leaks into transcripts verbatim.
var transferPhrases = []string{
	"transfer_call()", "connecting you", "i'll transfer you", "let me connect you",
	"i will now transfer", "one moment", "please hold", "transferring your call",
	"i'll connect you now", "just a moment", "hang tight", "stand by",
	"connecting you now",
}

var affirmatives = []string{"yes", "sure", "yeah", "okay", "alright", "i guess"}

// CustomerAgreed reports whether the customer accepted a proposed transfer.
// First pass looks for an agent trigger segment immediately followed by a
// customer agreement segment. If no such adjacent pair exists, it falls back
// to scanning all customer speech for any agreement phrase regardless of
// context. The fallback trades precision for recall and can fire on an
// unrelated "yes"; this is a documented heuristic, kept as-is.
func CustomerAgreed(segments []types.LabeledSegment) bool {
	for i, seg := range segments {
		if seg.Speaker != types.SpeakerAgent {
			continue
		}
		if !containsAny(strings.ToLower(seg.Text), triggerPhrases) {
			continue
		}
		if i+1 < len(segments) && segments[i+1].Speaker == types.SpeakerCustomer {
			if containsAny(strings.ToLower(segments[i+1].Text), agreementPhrases) {
				return true
			}
		}
	}

	var customerText []string
	for _, seg := range segments {
		if seg.Speaker == types.SpeakerCustomer {
			customerText = append(customerText, strings.ToLower(seg.Text))
		}
	}
	return containsAny(strings.Join(customerText, " "), agreementPhrases)
}

// BotAttemptedTransfer reports whether the agent tried to hand the call off.
// Direct cues match anywhere in the full transcript, not just agent segments.
// Failing that, a customer-care offer co-occurring with any affirmative is
// treated as an inferred transfer, covering calls where the hand-off phrasing
// varies.
func BotAttemptedTransfer(transcript string) bool {
	lower := strings.ToLower(transcript)

	if containsAny(lower, transferPhrases) {
		return true
	}

	if strings.Contains(lower, "talk to a customer care agent") && containsAny(lower, affirmatives) {
		return true
	}

	return false
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
