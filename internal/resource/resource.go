// Package resource reconciles typed cards against the cache.
//
// Every kind has one implementation of Resource. Add computes the card's
// fingerprint and takes one of three paths inside a single transaction:
//
//   - absent: insert the card and its dependent rows (Created)
//   - present with another fingerprint: delete it, cascading its dependents,
//     then insert again (Updated)
//   - present with the same fingerprint: leave it (Skipped)
//
// Whatever the path, the fingerprint is marked in the session trail so a
// later prune knows the card is still in the source.
package resource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/digest"
	"github.com/arnau/data-standards-authority/internal/metrics"
	"github.com/arnau/data-standards-authority/internal/report"
	"github.com/arnau/data-standards-authority/internal/store"
)

// Outcome is the path Add took.
type Outcome int

const (
	Created Outcome = iota + 1
	Updated
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// Mutated reports whether the outcome changed the cache.
func (o Outcome) Mutated() bool {
	return o == Created || o == Updated
}

// Resource is the point access to one kind of card.
type Resource[T card.Card] interface {
	// Get returns the card with id, or nil if the cache has none.
	Get(ctx context.Context, id string) (*T, error)
	// Add reconciles doc against the cache and marks it in the session trail.
	Add(ctx context.Context, doc T) (Outcome, error)
	// Drop deletes the card with id and returns what was deleted, or nil.
	Drop(ctx context.Context, id string) (*T, error)
}

// Option configures a resource.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	report  *report.Report
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics counts every decision in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithReport logs every decision to r.
func WithReport(r *report.Report) Option {
	return func(o *options) { o.report = r }
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// codec binds a card kind to its tables.
type codec[T card.Card] struct {
	kind card.Kind
	// checksum returns the stored fingerprint for id, or nil if absent.
	checksum func(ctx context.Context, tx *store.Tx, id string) (*digest.Fingerprint, error)
	read     func(ctx context.Context, tx *store.Tx, id string) (*T, error)
	ids      func(ctx context.Context, tx *store.Tx) ([]string, error)
	write    func(ctx context.Context, tx *store.Tx, fp digest.Fingerprint, doc T) error
}

// base implements Resource for any kind given its codec.
type base[T card.Card] struct {
	store *store.Store
	codec codec[T]
	options
}

func newBase[T card.Card](s *store.Store, c codec[T], opts []Option) *base[T] {
	return &base[T]{store: s, codec: c, options: newOptions(opts)}
}

// Kind returns the kind this resource handles.
func (b *base[T]) Kind() card.Kind {
	return b.codec.kind
}

// Get returns the card with id, or nil if absent.
func (b *base[T]) Get(ctx context.Context, id string) (*T, error) {
	var doc *T
	err := b.store.View(ctx, func(tx *store.Tx) error {
		var err error
		doc, err = b.codec.read(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, b.fail(id, "get", err)
	}

	b.logger.Debug("get", "kind", b.codec.kind, "id", id, "found", doc != nil)
	b.report.Log(report.Entry{
		Action:  report.ActionGet,
		Kind:    b.codec.kind,
		ID:      id,
		Outcome: found(doc != nil),
	})
	return doc, nil
}

// All returns every card of this kind in the store's order.
func (b *base[T]) All(ctx context.Context) ([]T, error) {
	docs := []T{}
	err := b.store.View(ctx, func(tx *store.Tx) error {
		ids, err := b.codec.ids(ctx, tx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			doc, err := b.codec.read(ctx, tx, id)
			if err != nil {
				return err
			}
			if doc != nil {
				docs = append(docs, *doc)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", b.codec.kind, err)
	}
	return docs, nil
}

// Add reconciles doc against the cache.
func (b *base[T]) Add(ctx context.Context, doc T) (Outcome, error) {
	id := doc.Identifier()
	fp := card.Fingerprint(doc)

	var outcome Outcome
	err := b.store.Update(ctx, func(tx *store.Tx) error {
		stored, err := b.codec.checksum(ctx, tx, id)
		if err != nil {
			return err
		}

		switch {
		case stored == nil:
			outcome = Created
		case *stored != fp:
			outcome = Updated
			if err := tx.Delete(ctx, b.codec.kind, id); err != nil {
				return err
			}
		default:
			outcome = Skipped
		}

		if outcome.Mutated() {
			if err := b.codec.write(ctx, tx, fp, doc); err != nil {
				return err
			}
		}

		return tx.InsertTrailmark(ctx, fp, b.codec.kind)
	})
	if err != nil {
		return 0, b.fail(id, "add", err)
	}

	b.logger.Debug("reconciled",
		"kind", b.codec.kind,
		"id", id,
		"outcome", outcome,
		"checksum", fp,
	)
	b.metrics.Reconciled(string(b.codec.kind), outcome.String())
	b.report.Log(report.Entry{
		Action:   report.ActionAdd,
		Kind:     b.codec.kind,
		ID:       id,
		Outcome:  outcome.String(),
		Checksum: fp,
	})
	return outcome, nil
}

// Drop deletes the card with id, cascading its dependents.
func (b *base[T]) Drop(ctx context.Context, id string) (*T, error) {
	var doc *T
	err := b.store.Update(ctx, func(tx *store.Tx) error {
		var err error
		doc, err = b.codec.read(ctx, tx, id)
		if err != nil || doc == nil {
			return err
		}
		return tx.Delete(ctx, b.codec.kind, id)
	})
	if err != nil {
		return nil, b.fail(id, "drop", err)
	}

	b.logger.Info("dropped", "kind", b.codec.kind, "id", id, "found", doc != nil)
	if doc != nil {
		b.metrics.Dropped(string(b.codec.kind))
	}
	b.report.Log(report.Entry{
		Action:  report.ActionDrop,
		Kind:    b.codec.kind,
		ID:      id,
		Outcome: found(doc != nil),
	})
	return doc, nil
}

func (b *base[T]) fail(id, op string, err error) error {
	err = fmt.Errorf("%s %s %q: %w", op, b.codec.kind, id, err)
	b.logger.Error("operation failed", "op", op, "kind", b.codec.kind, "id", id, "error", err)
	b.report.Log(report.Entry{
		Action:  report.ActionFail,
		Kind:    b.codec.kind,
		ID:      id,
		Message: err.Error(),
	})
	return err
}

func found(ok bool) string {
	if ok {
		return "found"
	}
	return "missing"
}

// corrupt wraps an undecodable stored value as an integrity fault.
func corrupt(kind card.Kind, id, what string, err error) error {
	return &store.IntegrityError{Kind: kind, ID: id, Missing: what, Err: err}
}
