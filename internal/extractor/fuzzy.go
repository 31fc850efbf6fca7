package extractor

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const (
	// NameThreshold tolerates minor transcription noise in names.
	NameThreshold = 0.8
	// ZipThreshold is deliberately looser; scoring still compares ZIPs
	// exactly and FuzzyZipMatch stays a utility only.
	ZipThreshold = 0.6
)

// Ratio is the normalized similarity of two strings in [0,1].
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return levenshtein.RatioForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
}

// FuzzyMatch reports whether two names are close enough to count as the same,
// case-insensitively.
func FuzzyMatch(a, b string) bool {
	return Ratio(strings.ToLower(a), strings.ToLower(b)) >= NameThreshold
}

// FuzzyZipMatch is a looser comparison for ZIPs. Not wired into scoring,
// which uses exact equality.
func FuzzyZipMatch(extracted, expected string) bool {
	if extracted == "" || expected == "" {
		return false
	}
	return Ratio(extracted, expected) >= ZipThreshold
}
