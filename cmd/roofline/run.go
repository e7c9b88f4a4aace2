package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/reusecanada/roofline/internal/catalog"
	"github.com/reusecanada/roofline/internal/config"
	"github.com/reusecanada/roofline/internal/engine"
	"github.com/reusecanada/roofline/internal/export"
	"github.com/reusecanada/roofline/internal/importer"
	"github.com/reusecanada/roofline/internal/model"
	"github.com/reusecanada/roofline/internal/solar"
)

type analyzeOptions struct {
	Address  string
	Lat      float64
	Lng      float64
	LatSet   bool
	LngSet   bool
	Shingle  string
	JSONPath string
	PDFPath  string
	XLSXPath string
	DXFPath  string
	Quiet    bool
}

type batchOptions struct {
	Path      string
	OutputDir string
	Quiet     bool
}

// app bundles the wired pipeline shared by the CLI commands.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	catalog  catalog.Catalog
	solar    *solar.Client
	analyzer *engine.Analyzer
}

// bootstrap loads configuration and wires the logger, catalog, optional
// Redis cache, acquisition client and analyzer. The solar client is nil
// when no Google API key is configured; commands that need it check.
func bootstrap() (*app, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := initLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	catalogPath := cfg.Catalog.Path
	if catalogPath == "" {
		catalogPath = catalog.DefaultPath()
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}

	var cache solar.Cache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		cache = solar.NewRedisCache(rdb, cfg.Redis.TTL, logger)
		logger.Info("Redis response cache enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	var sc *solar.Client
	if cfg.Google.APIKey != "" {
		sc = solar.NewClient(solar.Config{
			APIKey:  cfg.Google.APIKey,
			MapsKey: cfg.Google.MapsKey,
			Timeout: cfg.Google.Timeout,
			Cache:   cache,
			Logger:  logger,
		})
	}

	return &app{
		cfg:      cfg,
		log:      logger,
		catalog:  cat,
		solar:    sc,
		analyzer: engine.NewAnalyzer(cat.Prices, cat.Yields, logger),
	}, nil
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

// analyze runs the full acquisition and measurement chain for one
// property. Addresses are geocoded first; known coordinates skip that
// step and its quota cost.
func (a *app) analyze(ctx context.Context, address string, lat, lng float64, hasCoords bool, shingle model.ShingleType) (*model.RoofReport, error) {
	if !hasCoords {
		var err error
		lat, lng, err = a.solar.Geocode(ctx, address)
		if err != nil {
			return nil, err
		}
	}

	ins, err := a.solar.BuildingInsights(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	in := engine.Input{
		Location:       solar.ParseLocation(address, lat, lng),
		Segments:       solar.ParseSegments(&ins.BuildingInsights),
		Shingle:        shingle,
		Solar:          ins.Potential(),
		ImageryQuality: ins.Quality(),
		ImageryDate:    ins.ImageryDateString(),
		Provider:       "google_solar_api",
		APIDurationMs:  ins.DurationMs,
		Imagery:        solar.ImageryURLs(lat, lng, a.solar.MapsKey()),
	}
	return a.analyzer.Analyze(in)
}

func runAnalyze(opts analyzeOptions) error {
	if opts.LatSet != opts.LngSet {
		return fmt.Errorf("latitude and longitude must both be provided")
	}
	hasCoords := opts.LatSet && opts.LngSet
	if opts.Address == "" && !hasCoords {
		return fmt.Errorf("provide --address or --lat/--lng coordinates")
	}

	shingle, err := model.ParseShingleType(opts.Shingle)
	if err != nil {
		return err
	}

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	if a.solar == nil {
		return fmt.Errorf("no Google API key configured; set GOOGLE_API_KEY or google.api_key in config.yaml")
	}

	report, err := a.analyze(context.Background(), opts.Address, opts.Lat, opts.Lng, hasCoords, shingle)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		printSummary(os.Stdout, report)
	}

	return writeReports(a.log, report, outputs{
		JSON: opts.JSONPath,
		PDF:  opts.PDFPath,
		XLSX: opts.XLSXPath,
		DXF:  opts.DXFPath,
	})
}

func runBatch(opts batchOptions) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	if a.solar == nil {
		return fmt.Errorf("no Google API key configured; set GOOGLE_API_KEY or google.api_key in config.yaml")
	}

	result := importJobs(opts.Path)
	for _, msg := range result.Warnings {
		a.log.Warn(msg)
	}
	for _, msg := range result.Errors {
		a.log.Error(msg)
	}
	if len(result.Jobs) == 0 {
		return fmt.Errorf("no usable jobs in %s", opts.Path)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = a.cfg.Output.Dir
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ctx := context.Background()
	failed := 0
	for i, job := range result.Jobs {
		if !opts.Quiet {
			fmt.Printf("\n--- [%d/%d] %s ---\n", i+1, len(result.Jobs), job.Name)
		}

		report, err := a.analyze(ctx, job.Address, job.Lat, job.Lng, job.HasCoords, job.Shingle)
		if err != nil {
			failed++
			a.log.Error("Job failed", zap.String("job", job.Name), zap.Error(err))
			continue
		}

		if !opts.Quiet {
			printSummary(os.Stdout, report)
		}

		base := filepath.Join(outDir, safeName(job.Name))
		out := outputs{JSON: base + ".json", PDF: base + ".pdf"}
		if err := writeReports(a.log, report, out); err != nil {
			failed++
			a.log.Error("Job export failed", zap.String("job", job.Name), zap.Error(err))
		}
	}

	fmt.Printf("\n[BATCH] Done: %d of %d jobs succeeded. Reports saved to: %s/\n",
		len(result.Jobs)-failed, len(result.Jobs), outDir)
	return nil
}

func importJobs(path string) importer.ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return importer.ImportExcel(path)
	default:
		return importer.ImportCSV(path)
	}
}

// outputs maps report formats to their destination paths. Empty paths
// are skipped.
type outputs struct {
	JSON string
	PDF  string
	XLSX string
	DXF  string
}

func writeReports(logger *zap.Logger, r *model.RoofReport, out outputs) error {
	writers := []struct {
		path  string
		write func(string, *model.RoofReport) error
	}{
		{out.JSON, export.ExportJSON},
		{out.PDF, export.ExportPDF},
		{out.XLSX, export.ExportExcel},
		{out.DXF, export.ExportDXF},
	}
	for _, w := range writers {
		if w.path == "" {
			continue
		}
		if err := w.write(w.path, r); err != nil {
			return err
		}
		logger.Info("Report written", zap.String("path", w.path))
	}
	return nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// safeName turns a job name into a filesystem-safe report basename.
func safeName(name string) string {
	s := unsafeNameChars.ReplaceAllString(name, "_")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}
