package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"voice-bench-go/internal/config"
	"voice-bench-go/internal/logger"
	"voice-bench-go/internal/pipeline"
	"voice-bench-go/internal/transcription"
	"voice-bench-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "voice-bench-go").Info("starting service")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	var trans transcription.Transcriber
	if cfg.Transcription.Mock {
		trans = transcription.NewMock()
	} else {
		trans, err = transcription.NewClient(cfg.Transcription.URL)
		if err != nil {
			log.WithError(err).Fatal("failed to build transcription client")
		}
	}
	p := pipeline.New(cfg, trans, log)

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// score one recorded call against expected values
	mux.HandleFunc("/score", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "score")
		reqLog.Info("score request received")

		q := r.URL.Query()
		per := types.Persona{
			Name:      q.Get("name"),
			ZipCode:   q.Get("zip"),
			AudioFile: q.Get("audio_file"),
		}
		if traits := q.Get("traits"); traits != "" {
			for _, t := range strings.Split(traits, ",") {
				if t = strings.TrimSpace(t); t != "" {
					per.Traits = append(per.Traits, t)
				}
			}
		}
		if per.Name == "" || per.ZipCode == "" || per.AudioFile == "" {
			reqLog.Warn("missing name, zip or audio_file")
			http.Error(w, "missing name, zip or audio_file", http.StatusBadRequest)
			return
		}

		start := time.Now()
		res, err := p.ProcessOne(r.Context(), per)
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("scoring finished")

		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			reqLog.WithError(err).Warn("scoring returned error")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			reqLog.WithError(err).Error("failed to write response")
		}
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
