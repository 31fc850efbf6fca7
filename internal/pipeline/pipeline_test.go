package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"voice-bench-go/internal/config"
	"voice-bench-go/internal/logger"
	"voice-bench-go/internal/transcription"
	"voice-bench-go/internal/types"
)

const happyTranscript = "Hi it's Jane Doe. zip is 90,210. Would you like to talk to a customer care agent? Yes sure, one moment, connecting you now."

func happyResult() transcription.Result {
	return transcription.Result{
		Text: happyTranscript,
		Segments: []types.TranscriptSegment{
			{Start: 0, End: 2, Text: "Hi it's Jane Doe."},
			{Start: 2, End: 4, Text: "zip is 90,210."},
			{Start: 4, End: 7, Text: "Would you like to talk to a customer care agent?"},
			{Start: 7, End: 10, Text: "Yes sure, one moment, connecting you now."},
		},
	}
}

func testConfig(t *testing.T, audioFiles ...string) *config.Root {
	t.Helper()
	dir := t.TempDir()
	audioDir := filepath.Join(dir, "rec")
	require.NoError(t, os.MkdirAll(audioDir, 0o755))
	for _, name := range audioFiles {
		require.NoError(t, os.WriteFile(filepath.Join(audioDir, name), []byte("RIFF"), 0o644))
	}
	return &config.Root{
		Paths: config.Paths{
			AudioDir:         audioDir,
			Personas:         filepath.Join(dir, "personas.json"),
			ReportJSON:       filepath.Join(dir, "benchmark_report.json"),
			ReportCSV:        filepath.Join(dir, "benchmark_report.csv"),
			ReportXLSX:       filepath.Join(dir, "benchmark_report.xlsx"),
			ConversationLogs: filepath.Join(dir, "conversation_logs"),
		},
		Transcription: config.Transcription{TimeoutSec: 5},
	}
}

func writePersonas(t *testing.T, cfg *config.Root, personas string) {
	t.Helper()
	require.NoError(t, os.WriteFile(cfg.Paths.Personas, []byte(personas), 0o644))
}

func TestRunHappyPath(t *testing.T) {
	cfg := testConfig(t, "a.wav")
	writePersonas(t, cfg, `[{"name": "Jane Doe", "zip_code": "90210", "persona_traits": ["impatient"], "audio_file": "a.wav"}]`)

	stub := &transcription.Mock{Result: happyResult()}
	summary, stats, err := New(cfg, stub, logger.New()).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, stats.Processed)
	require.Equal(t, 0, stats.Skipped)
	require.Equal(t, 1, summary.TotalTests)
	require.Equal(t, 1, summary.Successful)
	require.Equal(t, 100.0, summary.SuccessRate)

	res := summary.ByPersona[0]
	require.Equal(t, "Jane Doe", res.ExtractedName)
	require.Equal(t, "90210", res.ExtractedZip)
	require.True(t, res.NameCorrect)
	require.True(t, res.ZipCorrect)
	require.True(t, res.CustomerAgreed)
	require.True(t, res.BotTransferred)
	require.True(t, res.Success)
	require.Empty(t, res.FailureReasons)

	for _, path := range []string{
		cfg.Paths.ReportJSON,
		cfg.Paths.ReportCSV,
		cfg.Paths.ReportXLSX,
		filepath.Join(cfg.Paths.ConversationLogs, "jane_doe.json"),
	} {
		_, err := os.Stat(path)
		require.NoError(t, err, path)
	}
}

func TestRunMissingZipFailure(t *testing.T) {
	cfg := testConfig(t, "a.wav")
	writePersonas(t, cfg, `[{"name": "Jane Doe", "zip_code": "90210", "audio_file": "a.wav"}]`)

	noZip := strings.ReplaceAll(happyTranscript, "zip is 90,210. ", "")
	stub := &transcription.Mock{Result: transcription.Result{
		Text: noZip,
		Segments: []types.TranscriptSegment{
			{Start: 0, End: 2, Text: "Hi it's Jane Doe."},
			{Start: 2, End: 5, Text: "Would you like to talk to a customer care agent?"},
			{Start: 5, End: 8, Text: "Yes sure, one moment, connecting you now."},
		},
	}}

	summary, _, err := New(cfg, stub, logger.New()).Run(context.Background())
	require.NoError(t, err)

	res := summary.ByPersona[0]
	require.Equal(t, types.NotFound, res.ExtractedZip)
	require.False(t, res.ZipCorrect)
	require.False(t, res.Success)
	require.Contains(t, res.FailureReasons, types.MissingZip)
	require.Equal(t, 1, summary.CommonFailures[types.MissingZip])
}

func TestRunSkipsMissingAudio(t *testing.T) {
	cfg := testConfig(t, "a.wav")
	writePersonas(t, cfg, `[
		{"name": "Jane Doe", "zip_code": "90210", "audio_file": "a.wav"},
		{"name": "Bob Smith", "zip_code": "10001", "audio_file": "missing.wav"}
	]`)

	stub := &transcription.Mock{Result: happyResult()}
	summary, stats, err := New(cfg, stub, logger.New()).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, stats.Processed)
	require.Equal(t, 1, stats.Skipped)
	require.Equal(t, 1, summary.TotalTests)
	require.Len(t, summary.ByPersona, 1)
	require.Equal(t, "jane doe", summary.ByPersona[0].Persona)
}

func TestRunSkipsTranscriptionFailure(t *testing.T) {
	cfg := testConfig(t, "a.wav", "b.wav")
	writePersonas(t, cfg, `[
		{"name": "Jane Doe", "zip_code": "90210", "audio_file": "a.wav"},
		{"name": "Bob Smith", "zip_code": "10001", "audio_file": "b.wav"}
	]`)

	stub := &flakyTranscriber{failOn: "b.wav", ok: happyResult()}
	summary, stats, err := New(cfg, stub, logger.New()).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, stats.Processed)
	require.Equal(t, 1, stats.Skipped)
	require.Equal(t, 1, summary.TotalTests)
}

func TestRunEmptyPersonaList(t *testing.T) {
	cfg := testConfig(t)
	writePersonas(t, cfg, `[]`)

	summary, stats, err := New(cfg, transcription.NewMock(), logger.New()).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, types.RunStats{}, stats)
	require.Equal(t, 0, summary.TotalTests)
	require.Equal(t, 0.0, summary.SuccessRate)
}

type flakyTranscriber struct {
	failOn string
	ok     transcription.Result
}

func (f *flakyTranscriber) Transcribe(_ context.Context, audioPath string) (transcription.Result, error) {
	if filepath.Base(audioPath) == f.failOn {
		return transcription.Result{}, fmt.Errorf("collaborator crashed")
	}
	return f.ok, nil
}
