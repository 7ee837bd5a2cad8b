// Package pipeline wires one end-to-end run: calendar, sampling, chunked
// retrieval, assembly, gold normalization and artifact output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"GoldLens/internal/assembler"
	"GoldLens/internal/calendar"
	"GoldLens/internal/collector"
	"GoldLens/internal/config"
	"GoldLens/internal/logger"
	"GoldLens/internal/model"
	"GoldLens/internal/normalizer"
	"GoldLens/internal/recorder"
	"GoldLens/internal/universe"
)

// ErrArtifactWrite means at least one artifact could not be written. The
// other artifacts of the run are still produced.
var ErrArtifactWrite = errors.New("artifact write failed")

// Runner holds the collaborators of a run. Lister may be nil, in which case
// the static S&P 500 list of the universe definition is used.
type Runner struct {
	Config   *config.Config
	History  calendar.HistorySource
	Prices   collector.PriceProvider
	Lister   collector.SymbolLister
	Universe *universe.Definition
	Recorder recorder.Recorder
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config, history calendar.HistorySource, prices collector.PriceProvider,
	lister collector.SymbolLister, def *universe.Definition, rec recorder.Recorder) *Runner {
	return &Runner{
		Config:   cfg,
		History:  history,
		Prices:   prices,
		Lister:   lister,
		Universe: def,
		Recorder: rec,
	}
}

type run struct {
	*Runner
	log    *zap.SugaredLogger
	report *Report
}

// Run performs one run with asOf as the end of every look-back window.
// Every degradation is logged and recorded in the report; the returned error
// wraps collector.ErrNoPriceData when no chunk of the main retrieval
// succeeded, and ErrArtifactWrite when an artifact could not be written.
func (r *Runner) Run(ctx context.Context, asOf time.Time) (*Report, error) {
	rn := &run{
		Runner: r,
		report: &Report{RunID: uuid.NewString(), AsOf: asOf, Started: time.Now()},
	}
	rn.log = logger.With("run_id", rn.report.RunID)
	defer func() { rn.report.Duration = time.Since(rn.report.Started) }()

	rn.log.Infof("run started, as of %s", asOf.Format(time.RFC3339))
	err := rn.execute(ctx, asOf)
	if err != nil {
		rn.log.Errorf("run failed: %v", err)
	} else {
		rn.log.Infof("run finished: %d artifacts, %d warnings", len(rn.report.Artifacts), len(rn.report.Warnings))
	}
	return rn.report, err
}

func (rn *run) execute(ctx context.Context, asOf time.Time) error {
	cfg := rn.Config

	cal := calendar.Load(ctx, rn.History, cfg.Calendar.ReferenceSymbol)
	rn.report.CalendarDays = cal.Len()
	if cal.Len() == 0 {
		rn.warn("calendar empty: reference %s has no history", cfg.Calendar.ReferenceSymbol)
	}
	samples := calendar.SampleAll(cal, cfg.Sampling.Timeframes, asOf)

	u := universe.Build(rn.definition(), rn.listings(ctx))
	rn.report.Assets = u.Len()
	assets := u.Assets()

	orch := collector.NewOrchestrator(rn.Prices, cfg.Retrieval.ChunkSize, cfg.Retrieval.Concurrency)

	var tables []model.PriceTable
	if start, ok := calendar.Earliest(samples); ok {
		res, err := orch.Retrieve(ctx, u.Symbols(), collector.DownloadRequest{Start: start, End: asOf, Interval: "1d"})
		rn.report.Chunks = res.Chunks
		rn.report.FailedChunks = res.Failed
		rn.report.FailedSymbols = res.FailedSymbols
		if err != nil {
			return fmt.Errorf("retrieve prices: %w", err)
		}
		if res.Failed > 0 {
			rn.warn("%d of %d chunks failed, %d symbols absent", res.Failed, res.Chunks, len(res.FailedSymbols))
		}
		tables = res.Tables
	} else {
		rn.warn("no sampled dates, skipping price retrieval")
	}

	set := assembler.AssembleAll(samples, assets, tables)
	for _, s := range samples {
		t := set[s.Timeframe.Label]
		rn.report.Timeframes = append(rn.report.Timeframes, TimeframeStat{
			Label:  s.Timeframe.Label,
			Points: len(t.Rows),
			Absent: assembler.AbsentCells(t),
		})
		if len(t.Rows) == 0 {
			rn.warn("timeframe %s is empty", s.Timeframe.Label)
		}
	}

	fast := assembler.Reduce(set, cfg.Output.FastTimeframe, cfg.Output.FastAssets)
	if len(fast) == 0 {
		rn.warn("reduced view %s %v is empty", cfg.Output.FastTimeframe, cfg.Output.FastAssets)
	}

	var writeErrs []error
	write := func(name string, fn func() error) {
		if err := fn(); err != nil {
			rn.log.Errorf("write %s: %v", name, err)
			writeErrs = append(writeErrs, fmt.Errorf("%s: %w", name, err))
			return
		}
		rn.report.Artifacts = append(rn.report.Artifacts, name)
	}

	write(recorder.TablesFile, func() error { return rn.Recorder.WriteTables(set) })
	write(recorder.FastFile, func() error { return rn.Recorder.WriteFast(fast) })
	write(recorder.TickersFile, func() error { return rn.Recorder.WriteTickers(u.Tickers()) })

	if rows, ok := rn.goldPrices(ctx, orch, u, asOf); ok {
		rn.report.GoldRows = len(rows)
		write(recorder.GoldPricesBase, func() error { return rn.Recorder.WriteGoldPrices(rows) })
	}

	if len(writeErrs) > 0 {
		return fmt.Errorf("%w: %w", ErrArtifactWrite, errors.Join(writeErrs...))
	}
	return nil
}

// definition returns the universe definition, without the static S&P 500
// list when S&P 500 constituents are disabled.
func (rn *run) definition() *universe.Definition {
	def := *rn.Universe
	if !rn.Config.Universe.IncludeSP500 {
		def.SP500 = nil
	}
	return &def
}

func (rn *run) listings(ctx context.Context) []model.Listing {
	if !rn.Config.Universe.IncludeSP500 || rn.Lister == nil {
		return nil
	}
	listings, err := rn.Lister.List(ctx)
	if err != nil {
		rn.warn("S&P 500 list unavailable, using static list: %v", err)
		return nil
	}
	rn.log.Infof("S&P 500 list: %d constituents", len(listings))
	return listings
}

// goldPrices builds the reference-normalized long table from a weekly
// history reconciled with the reference asset's latest daily close. ok is false when the
// weekly history could not be retrieved at all.
func (rn *run) goldPrices(ctx context.Context, orch *collector.Orchestrator, u *universe.Universe, asOf time.Time) ([]model.NormalizedRow, bool) {
	cfg := rn.Config.Normalization
	symbols := u.Symbols()
	assets := u.Assets()

	weekly, err := orch.Retrieve(ctx, symbols, collector.DownloadRequest{Range: cfg.HistoryRange, Interval: cfg.HistoryInterval, End: asOf})
	if err != nil {
		rn.warn("gold prices skipped: %v", err)
		return nil, false
	}
	base := normalizer.SeriesFromTables(weekly.Tables, assets)

	tail := model.NewSeries()
	daily, err := orch.Retrieve(ctx, symbols, collector.DownloadRequest{Range: cfg.TailRange, Interval: cfg.TailInterval, End: asOf})
	if err != nil {
		rn.warn("latest daily closes unavailable: %v", err)
	} else {
		tail = normalizer.LatestFor(normalizer.SeriesFromTables(daily.Tables, assets), cfg.ReferenceAsset)
	}

	combined := normalizer.Reconcile(base, tail)
	if last, ok := combined.Last(); ok {
		rn.log.Infof("gold series: %d dates, last %s", len(combined.Dates), last)
	}

	rows, err := normalizer.Normalize(combined, assets, cfg.ReferenceAsset)
	if err != nil {
		rn.warn("gold prices empty: %v", err)
		return []model.NormalizedRow{}, true
	}
	return rows, true
}

func (rn *run) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	rn.log.Warn(msg)
	rn.report.Warnings = append(rn.report.Warnings, msg)
}
