// Package report renders a finished benchmark run into its flat-file
// artifacts (JSON, CSV, XLSX, per-persona conversation logs) and the console
// summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"voice-bench-go/internal/types"
)

// csvColumns is a fixed contract; downstream spreadsheets key on it.
var csvColumns = []string{
	"persona", "expected_zip", "extracted_name", "extracted_zip", "customer_agreed",
	"bot_transferred", "name_correct", "zip_correct", "success", "traits", "timestamp",
}

func WriteJSON(path string, summary types.BenchmarkSummary) error {
	return writeJSON(path, summary)
}

func WriteCSV(path string, results []types.CallResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write(csvRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func csvRow(r types.CallResult) []string {
	return []string{
		r.Persona,
		r.ExpectedZip,
		r.ExtractedName,
		r.ExtractedZip,
		strconv.FormatBool(r.CustomerAgreed),
		strconv.FormatBool(r.BotTransferred),
		strconv.FormatBool(r.NameCorrect),
		strconv.FormatBool(r.ZipCorrect),
		strconv.FormatBool(r.Success),
		strings.Join(r.Traits, ", "),
		r.Timestamp.Format(time.RFC3339),
	}
}

// WriteXLSX renders the same rows as the CSV plus a summary sheet, for the
// audience that feeds spreadsheet persona lists in.
func WriteXLSX(path string, summary types.BenchmarkSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	const results = "Results"
	if err := f.SetSheetName("Sheet1", results); err != nil {
		return err
	}
	header := make([]interface{}, len(csvColumns))
	for i, c := range csvColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(results, "A1", &header); err != nil {
		return err
	}
	for i, r := range summary.ByPersona {
		row := csvRow(r)
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(results, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}

	const sumSheet = "Summary"
	if _, err := f.NewSheet(sumSheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"total_tests", summary.TotalTests},
		{"successful", summary.Successful},
		{"failed", summary.Failed},
		{"success_rate", summary.SuccessRate},
	}
	for _, reason := range types.AllFailureReasons() {
		rows = append(rows, []interface{}{string(reason), summary.CommonFailures[reason]})
	}
	for i := range rows {
		if err := f.SetSheetRow(sumSheet, fmt.Sprintf("A%d", i+1), &rows[i]); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// WriteConversationLog persists one call's labeled segments as a standalone
// artifact keyed by the sanitized persona name. Returns the path written.
func WriteConversationLog(dir, personaName string, segments []types.LabeledSegment) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, strings.ReplaceAll(personaName, " ", "_")+".json")
	if err := writeJSON(path, segments); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintSummary emits the human-readable run totals and failure breakdown.
func PrintSummary(w io.Writer, summary types.BenchmarkSummary, stats types.RunStats) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Benchmark Summary")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total Tests        : %d\n", summary.TotalTests)
	fmt.Fprintf(w, "Successful         : %d\n", summary.Successful)
	fmt.Fprintf(w, "Failed             : %d\n", summary.Failed)
	fmt.Fprintf(w, "Skipped            : %d\n", stats.Skipped)
	fmt.Fprintf(w, "Success Rate       : %.2f%%\n", summary.SuccessRate)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Failure Breakdown")
	for _, reason := range types.AllFailureReasons() {
		fmt.Fprintf(w, "%-20s: %d\n", titleWords(string(reason)), summary.CommonFailures[reason])
	}
}

func titleWords(s string) string {
	words := strings.Split(s, "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
