// Package reconcile sweeps the cache after a full pass over the source tree.
//
// Resources mark every card they see in the session trail. Prune deletes the
// cards that were not marked in the current session; DrainTrail forgets the
// marks of earlier sessions. Both must only run once a pass is complete:
// pruning mid-pass deletes cards that have not been visited yet. A caller
// that finishes a pass cleanly says so with MarkComplete, and callers
// sweeping a resumed session check Complete first.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/metrics"
	"github.com/arnau/data-standards-authority/internal/report"
	"github.com/arnau/data-standards-authority/internal/store"
)

// Swept is a card removed by a prune.
type Swept struct {
	Kind card.Kind `json:"kind" yaml:"kind"`
	ID   string    `json:"id" yaml:"id"`
}

// Reference is a related-standard row whose target is not in the cache.
type Reference struct {
	Standard string `json:"standard" yaml:"standard"`
	Related  string `json:"related" yaml:"related"`
	Ordinal  int    `json:"ordinal" yaml:"ordinal"`
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Reconciler) { r.logger = l }
}

// WithMetrics counts sweeps and drains in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Reconciler) { r.metrics = m }
}

// WithReport logs every swept card to rep.
func WithReport(rep *report.Report) Option {
	return func(r *Reconciler) { r.report = rep }
}

// Reconciler runs the maintenance operations of one store session.
type Reconciler struct {
	store   *store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	report  *report.Report
}

// New returns a Reconciler over s.
func New(s *store.Store, opts ...Option) *Reconciler {
	r := &Reconciler{store: s, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prune deletes every standard not marked in the current session, together
// with its endorsement state and related rows. It returns the removed ids.
func (r *Reconciler) Prune(ctx context.Context) ([]string, error) {
	swept, err := r.sweep(ctx, []card.Kind{card.KindStandard})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(swept))
	for i, s := range swept {
		ids[i] = s.ID
	}
	return ids, nil
}

// PruneAll deletes every card of every kind not marked in the current
// session, in one transaction.
func (r *Reconciler) PruneAll(ctx context.Context) ([]Swept, error) {
	return r.sweep(ctx, card.Kinds)
}

func (r *Reconciler) sweep(ctx context.Context, kinds []card.Kind) ([]Swept, error) {
	swept := []Swept{}
	err := r.store.Update(ctx, func(tx *store.Tx) error {
		for _, kind := range kinds {
			ids, err := tx.SelectUnconfirmed(ctx, kind)
			if err != nil {
				return err
			}
			for _, id := range ids {
				if err := tx.Delete(ctx, kind, id); err != nil {
					return err
				}
				swept = append(swept, Swept{Kind: kind, ID: id})
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("prune failed", "session", r.store.Session(), "error", err)
		r.report.Log(report.Entry{Action: report.ActionFail, Message: "prune: " + err.Error()})
		return nil, fmt.Errorf("prune: %w", err)
	}

	counts := map[card.Kind]int{}
	for _, s := range swept {
		counts[s.Kind]++
		r.logger.Info("pruned", "kind", s.Kind, "id", s.ID)
		r.report.Log(report.Entry{
			Action:  report.ActionPrune,
			Kind:    s.Kind,
			ID:      s.ID,
			Message: "not seen this session",
		})
	}
	for kind, n := range counts {
		r.metrics.Swept(string(kind), n)
	}
	r.logger.Debug("prune complete", "session", r.store.Session(), "swept", len(swept))
	return swept, nil
}

// MarkComplete records that the current session read every source document
// without a parse failure, so its trail is safe to sweep against.
func (r *Reconciler) MarkComplete(ctx context.Context) error {
	err := r.store.Update(ctx, func(tx *store.Tx) error {
		return tx.MarkComplete(ctx)
	})
	if err != nil {
		return fmt.Errorf("mark complete: %w", err)
	}
	r.logger.Debug("session complete", "session", r.store.Session())
	return nil
}

// Complete reports whether the current session was marked complete.
func (r *Reconciler) Complete(ctx context.Context) (bool, error) {
	var complete bool
	err := r.store.View(ctx, func(tx *store.Tx) error {
		var err error
		complete, err = tx.IsComplete(ctx)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("session completion: %w", err)
	}
	return complete, nil
}

// DrainTrail deletes trail rows of every session but the current one and
// returns how many were removed. It is independent of pruning.
func (r *Reconciler) DrainTrail(ctx context.Context) (int64, error) {
	var n int64
	err := r.store.Update(ctx, func(tx *store.Tx) error {
		var err error
		n, err = tx.DeleteStaleTrail(ctx)
		return err
	})
	if err != nil {
		r.logger.Error("drain failed", "session", r.store.Session(), "error", err)
		r.report.Log(report.Entry{Action: report.ActionFail, Message: "drain: " + err.Error()})
		return 0, fmt.Errorf("drain trail: %w", err)
	}

	r.logger.Info("trail drained", "session", r.store.Session(), "rows", n)
	r.metrics.Drained(n)
	r.report.Log(report.Entry{
		Action:  report.ActionDrain,
		Message: fmt.Sprintf("%d trail rows", n),
	})
	return n, nil
}

// Dangling lists related-standard rows whose target standard is absent.
//
// Deleting a standard does not remove rows in other standards that point at
// it. Those rows are returned verbatim by reads so the owning standard keeps
// its fingerprint; this audit is how callers find them.
func (r *Reconciler) Dangling(ctx context.Context) ([]Reference, error) {
	refs := []Reference{}
	err := r.store.View(ctx, func(tx *store.Tx) error {
		recs, err := tx.SelectDanglingRelatedStandards(ctx)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			refs = append(refs, Reference{
				Standard: rec.StandardID,
				Related:  rec.RelatedStandardID,
				Ordinal:  rec.Ordinal,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dangling references: %w", err)
	}
	return refs, nil
}
