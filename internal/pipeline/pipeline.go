// Package pipeline orchestrates a benchmark run: per persona, transcribe the
// recording, label speakers, extract facts, detect events, score, and write
// the per-call artifact; then aggregate and write the reports. Personas are
// processed strictly sequentially.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"voice-bench-go/internal/aggregator"
	"voice-bench-go/internal/config"
	"voice-bench-go/internal/diarize"
	"voice-bench-go/internal/events"
	"voice-bench-go/internal/extractor"
	"voice-bench-go/internal/logger"
	"voice-bench-go/internal/persona"
	"voice-bench-go/internal/report"
	"voice-bench-go/internal/scorer"
	"voice-bench-go/internal/transcription"
	"voice-bench-go/internal/types"
)

type Pipeline struct {
	cfg   *config.Root
	trans transcription.Transcriber
	log   *logger.Logger
}

func New(cfg *config.Root, trans transcription.Transcriber, log *logger.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, trans: trans, log: log}
}

// Run executes the whole benchmark. Per-persona failures (missing audio,
// collaborator errors, timeouts) skip that persona and continue; only
// persona-list loading and report writing are fatal.
func (p *Pipeline) Run(ctx context.Context) (types.BenchmarkSummary, types.RunStats, error) {
	runID := uuid.New().String()
	log := p.log.WithRun(runID)

	personas, err := persona.Load(p.cfg.Paths.Personas)
	if err != nil {
		return types.BenchmarkSummary{}, types.RunStats{}, fmt.Errorf("load personas: %w", err)
	}
	log.WithField("personas", len(personas)).Info("benchmark starting")

	var (
		results []types.CallResult
		stats   types.RunStats
	)
	for _, per := range personas {
		plog := log.WithField("persona", per.Name).WithField("audio_file", per.AudioFile)

		res, err := p.ProcessOne(ctx, per)
		if err != nil {
			plog.WithField("error", err.Error()).Warn("skipping persona")
			stats.Skipped++
			continue
		}

		logPath, err := report.WriteConversationLog(p.cfg.Paths.ConversationLogs, res.Persona, res.Segments)
		if err != nil {
			return types.BenchmarkSummary{}, stats, fmt.Errorf("write conversation log: %w", err)
		}
		plog.WithField("success", res.Success).WithField("conversation_log", logPath).Info("persona scored")

		results = append(results, res)
		stats.Processed++
	}

	summary := aggregator.Summarize(results)

	if err := report.WriteJSON(p.cfg.Paths.ReportJSON, summary); err != nil {
		return summary, stats, fmt.Errorf("write json report: %w", err)
	}
	if err := report.WriteCSV(p.cfg.Paths.ReportCSV, results); err != nil {
		return summary, stats, fmt.Errorf("write csv report: %w", err)
	}
	if p.cfg.Paths.ReportXLSX != "" {
		if err := report.WriteXLSX(p.cfg.Paths.ReportXLSX, summary); err != nil {
			return summary, stats, fmt.Errorf("write xlsx report: %w", err)
		}
	}

	log.WithField("processed", stats.Processed).WithField("skipped", stats.Skipped).Info("benchmark finished")
	return summary, stats, nil
}

// ProcessOne runs the engine for a single persona with an overall
// transcription timeout.
func (p *Pipeline) ProcessOne(ctx context.Context, per types.Persona) (types.CallResult, error) {
	audioPath := filepath.Join(p.cfg.Paths.AudioDir, per.AudioFile)
	if _, err := os.Stat(audioPath); err != nil {
		return types.CallResult{}, fmt.Errorf("audio file missing: %s", audioPath)
	}

	tctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	type tResult struct {
		res transcription.Result
		err error
	}
	trCh := make(chan tResult, 1)
	go func() {
		r, err := p.trans.Transcribe(tctx, audioPath)
		trCh <- tResult{r, err}
	}()

	var tr transcription.Result
	select {
	case <-tctx.Done():
		return types.CallResult{}, fmt.Errorf("transcription timeout after %s", p.timeout())
	case out := <-trCh:
		if out.err != nil {
			return types.CallResult{}, fmt.Errorf("transcription error: %w", out.err)
		}
		tr = out.res
	}

	labeled := diarize.Label(tr.Segments)
	obs := scorer.Observation{
		Transcript:    tr.Text,
		Segments:      labeled,
		ExtractedName: extractor.Name(tr.Text),
		ExtractedZip:  extractor.Zip(tr.Text),
		Agreed:        events.CustomerAgreed(labeled),
		Transferred:   events.BotAttemptedTransfer(tr.Text),
	}
	return scorer.Score(per, obs), nil
}

func (p *Pipeline) timeout() time.Duration {
	if p.cfg.Transcription.TimeoutSec <= 0 {
		return 40 * time.Second
	}
	return p.cfg.Transcription.Timeout()
}
