// Package extractor recovers structured facts (customer name, ZIP code) from
// a raw call transcript using ordered pattern cascades with explicit
// tie-break rules: longest match wins for names, last match wins for ZIPs.
package extractor

import (
	"regexp"
	"strings"
	"unicode"
)

// zipStated handles transcription artifacts that split a 5-digit ZIP with a
// comma, e.g. "zip is 95,125".
var zipStated = regexp.MustCompile(`zip\s+(is\s+)?(\d{2}),?(\d{3})`)

// zipFallback accepts 4-6 digit tokens so clipped ZIPs like "9407" still land.
var zipFallback = regexp.MustCompile(`\b\d{4,6}\b`)

// namePatterns are the self-identification cues, each capturing one or two
// word tokens. Evaluated independently, first hit per pattern.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bit'?s\s+([A-Za-z]+(?: [A-Za-z]+)?)`),
	regexp.MustCompile(`(?i)\bmy name is\s+([A-Za-z]+(?: [A-Za-z]+)?)`),
	regexp.MustCompile(`(?i)\bi'?m\s+([A-Za-z]+(?: [A-Za-z]+)?)`),
	regexp.MustCompile(`(?i)\bname'?s\s+([A-Za-z]+(?: [A-Za-z]+)?)`),
	regexp.MustCompile(`(?i)\bjust\s+([A-Za-z]+(?: [A-Za-z]+)?)`),
	regexp.MustCompile(`(?i)\bright[, -]+([A-Za-z]+(?: [A-Za-z]+)?)`),
}

// agentKeywords mark candidates that are really agent script text misrouted
// into a name slot ("it's insurance plans...").
var agentKeywords = []string{"insurance", "plans", "coverage", "agent"}

// Zip returns the best ZIP candidate in the transcript, or "" when none
// exists. The stated-ZIP pattern wins; otherwise the last standalone 4-6
// digit token is used, since the ZIP is typically stated near the end of the
// exchange.
func Zip(text string) string {
	lower := strings.ToLower(text)

	if m := zipStated.FindStringSubmatch(lower); m != nil {
		return m[2] + m[3]
	}

	candidates := zipFallback.FindAllString(lower, -1)
	if len(candidates) > 0 {
		return candidates[len(candidates)-1]
	}
	return ""
}

// Name returns the best name candidate in the transcript, or "" when no
// candidate survives the agent-keyword filter. Longer survivors win on the
// theory that they are full names rather than fragments.
func Name(text string) string {
	var candidates []string
	for _, p := range namePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			candidates = append(candidates, titleCase(m[1]))
		}
	}

	best := ""
	for _, c := range candidates {
		if containsAgentKeyword(c) {
			continue
		}
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

func containsAgentKeyword(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, k := range agentKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
