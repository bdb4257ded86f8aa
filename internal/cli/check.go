package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/reconcile"
	"github.com/arnau/data-standards-authority/internal/store"
)

// Fault is a card that could not be read back from the cache.
type Fault struct {
	Kind    card.Kind `json:"kind"`
	Message string    `json:"message"`
}

// CheckResult is the outcome of a cache audit.
type CheckResult struct {
	Counts   map[card.Kind]int64   `json:"counts"`
	Faults   []Fault               `json:"faults"`
	Dangling []reconcile.Reference `json:"dangling"`
}

// WriteText renders the result for humans.
func (r *CheckResult) WriteText(w io.Writer) error {
	for _, kind := range card.Kinds {
		fmt.Fprintf(w, "%s: %d\n", kind, r.Counts[kind])
	}
	for _, f := range r.Faults {
		fmt.Fprintf(w, "fault %s: %s\n", f.Kind, f.Message)
	}
	for _, d := range r.Dangling {
		fmt.Fprintf(w, "dangling %s -> %s (#%d)\n", d.Standard, d.Related, d.Ordinal)
	}
	if r.OK() {
		_, err := fmt.Fprintln(w, "cache ok")
		return err
	}
	return nil
}

// OK reports whether the audit found nothing.
func (r *CheckResult) OK() bool {
	return len(r.Faults) == 0 && len(r.Dangling) == 0
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Audit the cache for broken rows and dangling references",
		Long: `Read back every cached card to surface integrity faults (for example a
standard without its endorsement state) and list related-standard references
whose target is no longer cached. With an in-memory cache the source tree is
read first.

Exits with status 1 when anything is found.

Example:
  hammer check --cache ./cache.db
  hammer check --source ../corpus`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, cmd *cobra.Command) error {
	return withSession(opts, []store.Option{store.WithLatestSession()}, func(s *session) error {
		ctx := cmd.Context()
		if err := s.populate(ctx); err != nil {
			return err
		}

		result, err := s.audit(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to audit cache", err)
		}
		if err := opts.output(cmd).Success(result); err != nil {
			return err
		}
		if !result.OK() {
			return NewExitError(ExitFailure, fmt.Sprintf("%d faults, %d dangling references", len(result.Faults), len(result.Dangling)))
		}
		return nil
	})
}

func (s *session) audit(ctx context.Context) (*CheckResult, error) {
	result := &CheckResult{
		Counts:   map[card.Kind]int64{},
		Faults:   []Fault{},
		Dangling: []reconcile.Reference{},
	}

	err := s.store.View(ctx, func(tx *store.Tx) error {
		for _, kind := range card.Kinds {
			n, err := tx.Count(ctx, kind)
			if err != nil {
				return err
			}
			result.Counts[kind] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	readers := map[card.Kind]func(context.Context) error{
		card.KindStandard:     func(ctx context.Context) error { _, err := s.set.Standards.All(ctx); return err },
		card.KindGuidance:     func(ctx context.Context) error { _, err := s.set.Guidances.All(ctx); return err },
		card.KindLicence:      func(ctx context.Context) error { _, err := s.set.Licences.All(ctx); return err },
		card.KindOrganisation: func(ctx context.Context) error { _, err := s.set.Organisations.All(ctx); return err },
		card.KindTopic:        func(ctx context.Context) error { _, err := s.set.Topics.All(ctx); return err },
		card.KindTheme:        func(ctx context.Context) error { _, err := s.set.Themes.All(ctx); return err },
		card.KindSection:      func(ctx context.Context) error { _, err := s.set.Sections.All(ctx); return err },
	}
	for _, kind := range card.Kinds {
		err := readers[kind](ctx)
		switch {
		case errors.Is(err, store.ErrIntegrity):
			result.Faults = append(result.Faults, Fault{Kind: kind, Message: err.Error()})
		case err != nil:
			return nil, err
		}
	}

	dangling, err := s.reconciler.Dangling(ctx)
	if err != nil {
		return nil, err
	}
	result.Dangling = dangling
	return result, nil
}
