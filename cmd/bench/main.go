package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"voice-bench-go/internal/config"
	"voice-bench-go/internal/logger"
	"voice-bench-go/internal/persona"
	"voice-bench-go/internal/pipeline"
	"voice-bench-go/internal/report"
	"voice-bench-go/internal/transcription"
)

func main() {
	_ = godotenv.Load() // loads .env

	var cfgPath string

	root := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark AI voice agents against simulated customers",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to yaml config (env vars override)")

	root.AddCommand(benchmarkCmd(&cfgPath))
	root.AddCommand(showPersonasCmd(&cfgPath))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func benchmarkCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "benchmark",
		Short: "Run the benchmark suite on the configured personas",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			trans, err := buildTranscriber(cfg)
			if err != nil {
				return err
			}

			summary, stats, err := pipeline.New(cfg, trans, log).Run(context.Background())
			if err != nil {
				return err
			}
			report.PrintSummary(cmd.OutOrStdout(), summary, stats)
			return nil
		},
	}
}

func showPersonasCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show-personas",
		Short: "Display the persona test cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			personas, err := persona.Load(cfg.Paths.Personas)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, p := range personas {
				fmt.Fprintf(w, "\nPersona %d:\n", i+1)
				fmt.Fprintf(w, "  Name: %s\n", p.Name)
				fmt.Fprintf(w, "  ZIP Code: %s\n", p.ZipCode)
				fmt.Fprintf(w, "  Traits: %s\n", strings.Join(p.Traits, ", "))
				fmt.Fprintf(w, "  Audio File: %s\n", p.AudioFile)
			}
			return nil
		},
	}
}

func buildTranscriber(cfg *config.Root) (transcription.Transcriber, error) {
	if cfg.Transcription.Mock {
		return transcription.NewMock(), nil
	}
	return transcription.NewClient(cfg.Transcription.URL)
}
