package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/boramlab/vlens/internal/config"
	"github.com/boramlab/vlens/internal/model"
	"github.com/boramlab/vlens/internal/server"
	"github.com/boramlab/vlens/internal/service/analysis"
	"github.com/boramlab/vlens/internal/storage"
	"github.com/boramlab/vlens/internal/telemetry"
	"github.com/boramlab/vlens/migrations"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "vlens",
	Short:        "YouTube analytics engine",
	Long:         "vlens detects trends, viral moments, and growth trajectories in video snapshot series, and extracts Korean/English entities from video metadata.",
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analytics service",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		slog.SetDefault(logger)

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := runServe(ctx, logger); err != nil {
			logger.Error("fatal error", "error", err)
			return err
		}
		return nil
	},
}

func runServe(ctx context.Context, logger *slog.Logger) error {
	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Info("vlens starting", "version", version, "port", cfg.Port)

	otelShutdown, err := telemetry.Init(ctx, cfg.OTELEndpoint, cfg.ServiceName, version, cfg.OTELInsecure)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() { _ = otelShutdown(context.Background()) }()

	store, err := storage.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	if pg, ok := store.(*storage.Postgres); ok {
		if err := pg.RunMigrations(ctx, migrations.FS); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	pipe := analysis.NewPipeline(analysis.PipelineConfig{
		ViralMultiplier:    cfg.ViralThresholdMultiplier,
		TopKeywords:        cfg.TopKeywords,
		DefaultHorizonDays: cfg.PredictionHorizonDays,
	})
	svc := analysis.NewService(store, pipe, logger)

	srv := server.New(server.ServerConfig{
		Store:               store,
		Service:             svc,
		Logger:              logger,
		Port:                cfg.Port,
		ReadTimeout:         cfg.ReadTimeout,
		WriteTimeout:        cfg.WriteTimeout,
		Version:             version,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
		ReportVideoLimit:    cfg.ReportVideoLimit,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("vlens stopped")
	return nil
}

// analyzeInput is the offline batch format: one entry per video.
type analyzeInput struct {
	Video     model.VideoMetadata   `json:"video"`
	Channel   *model.ChannelStats   `json:"channel,omitempty"`
	Snapshots []model.VideoSnapshot `json:"snapshots"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <input.json>",
	Short: "Run a one-shot analysis over a JSON batch file",
	Long:  "Reads a JSON array of {video, channel, snapshots} entries, analyzes each video, and writes the results to stdout as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		var inputs []analyzeInput
		if err := json.Unmarshal(raw, &inputs); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}
		if len(inputs) == 0 {
			return errors.New("input contains no videos")
		}

		pipe := analysis.NewPipeline(analysis.PipelineConfig{})
		results := make([]any, 0, len(inputs))
		for _, in := range inputs {
			va := pipe.AnalyzeVideo(in.Video, in.Snapshots, in.Channel)
			entities := pipe.Extractor().Extract(in.Video)
			results = append(results, map[string]any{
				"analysis": va,
				"entities": entities,
			})
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("VLENS_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
