// Command analyze runs the analytics pipeline over a directory of live
// session spreadsheets and writes the scored tables next to them, without
// starting the HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"streampulse/internal/analytics"
	"streampulse/internal/config"
	"streampulse/internal/dataprocessing"
	"streampulse/internal/exporter"
	"streampulse/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "data", "input directory containing .xlsx exports")
	outDir := flag.String("out", "exports", "output directory for CSV and xlsx reports")
	workers := flag.Int("workers", 4, "number of workbooks to process concurrently")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := infrastructure.MustInitializeLogger(cfg.Logging)

	if err := run(context.Background(), logger, cfg, *inDir, *outDir, *workers); err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, inDir, outDir string, workers int) error {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("read input directory %s: %w", inDir, err)
	}

	var workbooks []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(strings.ToLower(name), ".xlsx") && !strings.HasPrefix(name, "~$") {
			workbooks = append(workbooks, filepath.Join(inDir, name))
		}
	}
	if len(workbooks) == 0 {
		return fmt.Errorf("no .xlsx files found in %s", inDir)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	parser := dataprocessing.NewParser(logger)
	engine := analytics.NewEngine(cfg.EngineParams(), logger)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range workbooks {
		g.Go(func() error {
			return analyzeWorkbook(ctx, logger, parser, engine, path, outDir)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "all workbooks analyzed",
		slog.Int("workbooks", len(workbooks)),
		slog.String("out", outDir))
	return nil
}

func analyzeWorkbook(ctx context.Context, logger *slog.Logger, parser *dataprocessing.Parser, engine *analytics.Engine, path, outDir string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sessions, err := parser.ParseWorkbook(ctx, f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	result := engine.Analyze(ctx, sessions)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	sessionsPath := filepath.Join(outDir, base+"_sessions.csv")
	if err := writeFile(sessionsPath, func(w *os.File) error {
		return exporter.WriteSessionsCSV(w, result.Sessions, exporter.WriteOptions{BOMPrefix: true})
	}); err != nil {
		return err
	}

	entries := analytics.Leaderboard(result.Sessions)
	reportPath := filepath.Join(outDir, base+"_report.csv")
	if err := writeFile(reportPath, func(w *os.File) error {
		return exporter.WriteReportCSV(w, entries, exporter.WriteOptions{BOMPrefix: true})
	}); err != nil {
		return err
	}

	workbookPath := filepath.Join(outDir, base+"_report.xlsx")
	if err := writeFile(workbookPath, func(w *os.File) error {
		return exporter.WriteReportWorkbook(w, result.Summary, entries)
	}); err != nil {
		return err
	}

	logger.InfoContext(ctx, "workbook analyzed",
		slog.String("source", path),
		slog.Int("sessions", len(result.Sessions)),
		slog.Int("creators", len(result.Aggregates)),
		slog.Int("insights", len(result.Insights)))
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
