package types

import "time"

// Speaker is the inferred role of a transcript segment.
type Speaker string

const (
	SpeakerAgent    Speaker = "agent"
	SpeakerCustomer Speaker = "customer"
)

// Persona is one synthetic test customer: the expected attributes the
// recorded call should surface, plus the recording that exercises them.
type Persona struct {
	Name      string   `json:"name"`
	ZipCode   string   `json:"zip_code"`
	Traits    []string `json:"persona_traits,omitempty"`
	AudioFile string   `json:"audio_file"`
}

// TranscriptSegment is a timestamped span of text from the transcription
// collaborator. Segments arrive ordered by Start; overlap is assumed absent
// but not enforced.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// LabeledSegment is a TranscriptSegment with an inferred speaker role.
type LabeledSegment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

type FailureReason string

const (
	MissingName       FailureReason = "missing_name"
	WrongName         FailureReason = "wrong_name"
	MissingZip        FailureReason = "missing_zip"
	WrongZip          FailureReason = "wrong_zip"
	CustomerDisagreed FailureReason = "customer_disagreed"
	BotNoTransfer     FailureReason = "bot_no_transfer"
)

// AllFailureReasons returns the reasons in report order, so breakdown maps
// always carry every key even at zero.
func AllFailureReasons() []FailureReason {
	return []FailureReason{
		MissingName, MissingZip, WrongName, WrongZip,
		CustomerDisagreed, BotNoTransfer,
	}
}

// NotFound is the report placeholder for an extraction that produced nothing.
const NotFound = "Not found"

// CallResult is the scored outcome of one persona's call. Built once by the
// scorer, never mutated afterwards.
type CallResult struct {
	Persona        string           `json:"persona"`
	ExpectedZip    string           `json:"expected_zip"`
	ExtractedName  string           `json:"extracted_name"`
	ExtractedZip   string           `json:"extracted_zip"`
	CustomerAgreed bool             `json:"customer_agreed"`
	BotTransferred bool             `json:"bot_transferred"`
	NameCorrect    bool             `json:"name_correct"`
	ZipCorrect     bool             `json:"zip_correct"`
	Success        bool             `json:"success"`
	Traits         []string         `json:"traits"`
	Transcript     string           `json:"transcript"`
	Timestamp      time.Time        `json:"timestamp"`
	Segments       []LabeledSegment `json:"conversation_segments"`
	FailureReasons []FailureReason  `json:"failure_reasons"`
}

// ComponentAccuracy holds per-dimension hit counts formatted as "matches/total".
type ComponentAccuracy struct {
	NameAccuracy          string `json:"name_accuracy"`
	ZipAccuracy           string `json:"zip_accuracy"`
	CustomerAgreementRate string `json:"customer_agreement_rate"`
	BotTransferRate       string `json:"bot_transfer_rate"`
}

type ExtraMetrics struct {
	ComponentAccuracy ComponentAccuracy `json:"component_accuracy"`
	PartialSuccess    map[string]int    `json:"partial_success"`
	FailuresByTrait   map[string]int    `json:"failures_by_trait"`
	SuccessByPersona  map[string]bool   `json:"success_by_persona"`
}

// BenchmarkSummary is derived purely from the CallResult sequence and is
// recomputable from it at any time.
type BenchmarkSummary struct {
	Timestamp      time.Time             `json:"timestamp"`
	TotalTests     int                   `json:"total_tests"`
	Successful     int                   `json:"successful"`
	Failed         int                   `json:"failed"`
	SuccessRate    float64               `json:"success_rate"`
	ByPersona      []CallResult          `json:"by_persona"`
	CommonFailures map[FailureReason]int `json:"common_failures"`
	ExtraMetrics   ExtraMetrics          `json:"extra_metrics"`
}

// RunStats separates run-loop bookkeeping from scored totals: skipped
// personas (missing audio, failed transcription, malformed record) never
// enter the summary.
type RunStats struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}
