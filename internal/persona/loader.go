// Package persona loads the test customer list from a JSON array or a
// spreadsheet. Malformed records are skipped with a logged reason instead of
// aborting the batch.
package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"voice-bench-go/internal/logger"
	"voice-bench-go/internal/types"
)

// Load reads personas from path; .xlsx goes through the spreadsheet loader,
// everything else is treated as a JSON array.
func Load(path string) ([]types.Persona, error) {
	var (
		personas []types.Persona
		err      error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		personas, err = loadSheet(path)
	} else {
		personas, err = loadJSON(path)
	}
	if err != nil {
		return nil, err
	}
	return validate(personas), nil
}

func loadJSON(path string) ([]types.Persona, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read personas: %w", err)
	}
	var personas []types.Persona
	if err := json.Unmarshal(b, &personas); err != nil {
		return nil, fmt.Errorf("parse personas: %w", err)
	}
	return personas, nil
}

// loadSheet auto-detects columns by header heuristics, so persona sheets
// exported from different tools still load.
func loadSheet(path string) ([]types.Persona, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	nameIdx, zipIdx, traitsIdx, audioIdx := -1, -1, -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "zip"):
			if zipIdx == -1 {
				zipIdx = i
			}
		case strings.Contains(l, "trait"):
			if traitsIdx == -1 {
				traitsIdx = i
			}
		case strings.Contains(l, "audio") || strings.Contains(l, "record") || strings.Contains(l, "file"):
			if audioIdx == -1 {
				audioIdx = i
			}
		case strings.Contains(l, "name") || strings.Contains(l, "persona"):
			if nameIdx == -1 {
				nameIdx = i
			}
		}
	}
	// fallback: the original column order is name, zip, traits, audio
	if nameIdx == -1 {
		nameIdx = 0
	}
	if zipIdx == -1 && len(header) > 1 {
		zipIdx = 1
	}
	if audioIdx == -1 && len(header) > 3 {
		audioIdx = 3
	}

	var out []types.Persona
	for i, r := range rows {
		if i == 0 {
			continue
		}
		p := types.Persona{}
		if nameIdx >= 0 && nameIdx < len(r) {
			p.Name = strings.TrimSpace(r[nameIdx])
		}
		if zipIdx >= 0 && zipIdx < len(r) {
			p.ZipCode = strings.TrimSpace(r[zipIdx])
		}
		if traitsIdx >= 0 && traitsIdx < len(r) {
			p.Traits = splitTraits(r[traitsIdx])
		}
		if audioIdx >= 0 && audioIdx < len(r) {
			p.AudioFile = strings.TrimSpace(r[audioIdx])
		}
		out = append(out, p)
	}
	return out, nil
}

func splitTraits(cell string) []string {
	var traits []string
	for _, t := range strings.FieldsFunc(cell, func(r rune) bool { return r == ',' || r == ';' }) {
		if t = strings.TrimSpace(t); t != "" {
			traits = append(traits, t)
		}
	}
	return traits
}

// validate drops records missing a required field, logging each skip.
func validate(personas []types.Persona) []types.Persona {
	log := logger.New().WithField("component", "persona")
	out := make([]types.Persona, 0, len(personas))
	for i, p := range personas {
		if reason := invalidReason(p); reason != "" {
			log.WithField("index", i).WithField("reason", reason).Warn("skipping malformed persona record")
			continue
		}
		out = append(out, p)
	}
	return out
}

func invalidReason(p types.Persona) string {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return "empty name"
	case strings.TrimSpace(p.ZipCode) == "":
		return "empty zip_code"
	case strings.TrimSpace(p.AudioFile) == "":
		return "empty audio_file"
	}
	return ""
}
