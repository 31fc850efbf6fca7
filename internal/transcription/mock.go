package transcription

import (
	"context"
	"strings"

	"voice-bench-go/internal/types"
)

// Mock is an offline Transcriber for demos and tests. Substitutable via the
// Transcriber interface, so the run loop never knows the difference.
type Mock struct {
	Result Result
	Err    error
}

func (m *Mock) Transcribe(_ context.Context, _ string) (Result, error) {
	return m.Result, m.Err
}

// NewMock returns a canned happy-path conversation.
func NewMock() *Mock {
	segments := []types.TranscriptSegment{
		{Start: 0, End: 3.2, Text: "Hello, thanks for calling. Can I get your name?"},
		{Start: 3.2, End: 5.1, Text: "Hi, it's Jane Doe."},
		{Start: 5.1, End: 7.4, Text: "And your zip code please?"},
		{Start: 7.4, End: 9.0, Text: "The zip is 90,210."},
		{Start: 9.0, End: 12.5, Text: "Would you like to talk to a customer care agent?"},
		{Start: 12.5, End: 13.8, Text: "Yes sure."},
		{Start: 13.8, End: 16.0, Text: "One moment, connecting you now."},
	}
	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		texts = append(texts, s.Text)
	}
	return &Mock{Result: Result{
		Text:     strings.Join(texts, " "),
		Segments: segments,
	}}
}
