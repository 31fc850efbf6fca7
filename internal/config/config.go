package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Paths struct {
	AudioDir         string `yaml:"audio_dir"`
	Personas         string `yaml:"personas"`
	ReportJSON       string `yaml:"report_json"`
	ReportCSV        string `yaml:"report_csv"`
	ReportXLSX       string `yaml:"report_xlsx"`
	ConversationLogs string `yaml:"conversation_logs"`
}

type Transcription struct {
	URL        string `yaml:"url"`
	Mock       bool   `yaml:"mock"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

type Root struct {
	Paths         Paths         `yaml:"paths"`
	Transcription Transcription `yaml:"transcription"`
}

func Default() *Root {
	return &Root{
		Paths: Paths{
			AudioDir:         "./rec",
			Personas:         "./personas.json",
			ReportJSON:       "./benchmark_report.json",
			ReportCSV:        "./benchmark_report.csv",
			ReportXLSX:       "./benchmark_report.xlsx",
			ConversationLogs: "./conversation_logs",
		},
		Transcription: Transcription{
			TimeoutSec: 40,
		},
	}
}

// Load reads the yaml config at path (optional; defaults apply when path is
// empty or the file is absent) and then applies environment overrides, which
// always win.
func Load(path string) (*Root, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Root) {
	cfg.Paths.AudioDir = envOr("AUDIO_DIR", cfg.Paths.AudioDir)
	cfg.Paths.Personas = envOr("PERSONA_FILE", cfg.Paths.Personas)
	cfg.Paths.ReportJSON = envOr("REPORT_FILE_JSON", cfg.Paths.ReportJSON)
	cfg.Paths.ReportCSV = envOr("REPORT_FILE_CSV", cfg.Paths.ReportCSV)
	cfg.Paths.ReportXLSX = envOr("REPORT_FILE_XLSX", cfg.Paths.ReportXLSX)
	cfg.Paths.ConversationLogs = envOr("CONVO_LOG_DIR", cfg.Paths.ConversationLogs)
	cfg.Transcription.URL = envOr("TRANSCRIBE_URL", cfg.Transcription.URL)
	if os.Getenv("USE_MOCK_TRANSCRIBE") == "true" {
		cfg.Transcription.Mock = true
	}
	if v := os.Getenv("TRANSCRIBE_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Transcription.TimeoutSec = n
		}
	}
}

func (t Transcription) Timeout() time.Duration {
	return time.Duration(t.TimeoutSec) * time.Second
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
