package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/arnau/data-standards-authority/internal/config"
	"github.com/arnau/data-standards-authority/internal/metrics"
	"github.com/arnau/data-standards-authority/internal/reconcile"
	"github.com/arnau/data-standards-authority/internal/report"
	"github.com/arnau/data-standards-authority/internal/resource"
	"github.com/arnau/data-standards-authority/internal/source"
	"github.com/arnau/data-standards-authority/internal/store"
)

// session bundles everything one command needs against an open cache.
type session struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *store.Store
	metrics    *metrics.Metrics
	report     *report.Report
	set        *resource.Set
	reconciler *reconcile.Reconciler
}

// openSession connects to the configured cache and wires the resources,
// reconciler, metrics and report around it.
func openSession(opts *RootOptions, storeOpts ...store.Option) (*session, error) {
	cfg := opts.Config
	logger := opts.Logger

	logger.Debug("opening cache", "location", cfg.Cache, "strategy", store.StrategyFor(cfg.Cache))
	st, err := store.Connect(cfg.Cache, storeOpts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open cache", err)
	}

	rep, err := report.New(st.Session())
	if err != nil {
		st.Disconnect()
		return nil, WrapExitError(ExitCommandError, "failed to start report", err)
	}
	rep.Log(report.Entry{Action: report.ActionChore, Message: "connected to " + cfg.Cache})

	m := metrics.New()
	s := &session{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		metrics: m,
		report:  rep,
		set: resource.NewSet(st,
			resource.WithLogger(logger),
			resource.WithMetrics(m),
			resource.WithReport(rep),
		),
		reconciler: reconcile.New(st,
			reconcile.WithLogger(logger),
			reconcile.WithMetrics(m),
			reconcile.WithReport(rep),
		),
	}
	logger.Debug("cache ready", "session", st.Session())
	return s, nil
}

// Close disconnects the cache and writes the configured artefacts.
func (s *session) Close() error {
	s.report.Log(report.Entry{Action: report.ActionChore, Message: "disconnected"})
	err := s.store.Disconnect()
	if werr := s.writeArtefacts(); err == nil {
		err = werr
	}
	return err
}

func (s *session) writeArtefacts() error {
	if s.cfg.MetricsFile != "" {
		if err := s.metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if s.cfg.ReportFile != "" {
		f, err := os.Create(s.cfg.ReportFile)
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		defer f.Close()
		if err := s.report.WriteJSON(f); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

// SyncResult describes one full pass.
type SyncResult struct {
	Session string            `json:"session"`
	Summary *source.Summary   `json:"summary"`
	Swept   []reconcile.Swept `json:"swept"`
	Drained int64             `json:"drained"`
	Skipped string            `json:"sweep_skipped,omitempty"`
}

// WriteText renders the result for humans.
func (r *SyncResult) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "session %s\n", r.Session)
	fmt.Fprintf(w, "files: %d cards: %d", r.Summary.Files, r.Summary.Cards)
	for _, outcome := range []string{"created", "updated", "skipped"} {
		fmt.Fprintf(w, " %s: %d", outcome, r.Summary.Outcomes[outcome])
	}
	fmt.Fprintln(w)
	for _, f := range r.Summary.Failures {
		fmt.Fprintf(w, "failed %s: %s\n", f.Path, f.Reason)
	}
	for _, path := range r.Summary.Unprocessed {
		fmt.Fprintf(w, "unprocessed %s\n", path)
	}
	for _, sw := range r.Swept {
		fmt.Fprintf(w, "swept %s %s\n", sw.Kind, sw.ID)
	}
	if r.Skipped != "" {
		_, err := fmt.Fprintf(w, "sweep and drain skipped: %s\n", r.Skipped)
		return err
	}
	_, err := fmt.Fprintf(w, "drained %d trail rows\n", r.Drained)
	return err
}

// passOptions selects the maintenance run after reading the source.
type passOptions struct {
	sweep bool
	drain bool
}

// sync reads the whole source tree, marks the session complete, then sweeps
// and drains. A pass where any file failed to parse is incomplete: it is not
// marked, nothing is swept and the earlier trail is kept.
func (s *session) sync(ctx context.Context, pass passOptions) (*SyncResult, error) {
	start := time.Now()

	reader, err := source.NewReader(s.set,
		source.WithIgnore(s.cfg.Ignore...),
		source.WithLogger(s.logger),
		source.WithMetrics(s.metrics),
		source.WithReport(s.report),
	)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid ignore pattern", err)
	}

	summary, err := reader.Read(ctx, s.cfg.Source)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read source", err)
	}

	result := &SyncResult{Session: s.store.Session(), Summary: summary, Swept: []reconcile.Swept{}}

	if !summary.OK() {
		result.Skipped = fmt.Sprintf("%d files failed to parse", len(summary.Failures))
		s.logger.Warn("sweep and drain skipped", "failures", len(summary.Failures))
		s.metrics.SyncFinished(start, time.Now())
		return result, nil
	}

	if err := s.reconciler.MarkComplete(ctx); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to record session", err)
	}

	if pass.sweep {
		swept, err := s.reconciler.PruneAll(ctx)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to prune cache", err)
		}
		result.Swept = swept
	}

	if pass.drain {
		n, err := s.reconciler.DrainTrail(ctx)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to drain trail", err)
		}
		result.Drained = n
	}

	s.metrics.SyncFinished(start, time.Now())
	s.logger.Info("sync finished",
		"cards", summary.Cards,
		"failures", len(summary.Failures),
		"swept", len(result.Swept),
		"drained", result.Drained,
		"elapsed", time.Since(start),
	)
	return result, nil
}

// failures turns parse failures into the command's exit status.
func (r *SyncResult) failures() error {
	if r.Summary.OK() {
		return nil
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d files failed to parse", len(r.Summary.Failures)))
}

// withSession opens a session, runs fn and closes it. A close failure is
// reported only when fn succeeded.
func withSession(opts *RootOptions, storeOpts []store.Option, fn func(s *session) error) (err error) {
	s, err := openSession(opts, storeOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			opts.Logger.Error("error closing cache", "error", cerr)
			if err == nil {
				err = WrapExitError(ExitCommandError, "failed to close cache", cerr)
			}
		}
	}()
	return fn(s)
}

// requireDisk rejects maintenance commands on an in-memory cache, which
// holds nothing between runs.
func requireDisk(opts *RootOptions, command string) error {
	if store.StrategyFor(opts.Config.Cache) == store.Memory {
		return NewExitError(ExitCommandError, command+" needs a disk cache: set --cache or cache in the config")
	}
	return nil
}

// populate reads the source into an in-memory cache so read-only commands
// have something to look at. Disk caches are used as they are.
func (s *session) populate(ctx context.Context) error {
	if s.store.Strategy() != store.Memory {
		return nil
	}
	_, err := s.sync(ctx, passOptions{})
	return err
}
