package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/resource"
)

// ShowResult is one cached card, plus its children for taxonomy cards.
type ShowResult struct {
	Kind        card.Kind                `json:"kind"`
	Fingerprint string                   `json:"fingerprint"`
	Card        card.Card                `json:"card"`
	Standards   []resource.TopicStandard `json:"standards,omitempty"`
	Topics      []card.Topic             `json:"topics,omitempty"`
}

// WriteText renders the card back in its source form: YAML frontmatter
// followed by the markdown body.
func (r *ShowResult) WriteText(w io.Writer) error {
	front, err := yaml.Marshal(r.Card)
	if err != nil {
		return fmt.Errorf("render %s: %w", r.Kind, err)
	}

	fmt.Fprintf(w, "---\n# fingerprint %s\ntype: %s\n%s---\n", r.Fingerprint, r.Kind, front)
	if body := cardBody(r.Card); body != "" {
		fmt.Fprint(w, body)
	}

	for _, s := range r.Standards {
		fmt.Fprintf(w, "standard %s %q %s review %s\n", s.ID, s.Name, s.Status, s.ReviewDate)
	}
	for _, t := range r.Topics {
		fmt.Fprintf(w, "topic %s %q\n", t.ID, t.Name)
	}
	return nil
}

func cardBody(c card.Card) string {
	switch doc := c.(type) {
	case card.Standard:
		return doc.Content
	case card.Guidance:
		return doc.Content
	case card.Section:
		return doc.Content
	case card.Topic:
		return doc.Description
	case card.Theme:
		return doc.Description
	}
	return ""
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Print a cached card",
		Long: `Print one card from the cache. Topics also list their standards and
themes their topics. With an in-memory cache the source tree is read first.

Kinds: standard, guidance, licence, organisation, topic, theme, section.

Example:
  hammer show standard vapour --cache ./cache.db
  hammer show topic exchange --source ../corpus --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, args[0], args[1])
		},
	}

	return cmd
}

func runShow(opts *RootOptions, cmd *cobra.Command, kindArg, id string) error {
	kind, err := card.ParseKind(kindArg)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid kind", err)
	}

	return withSession(opts, nil, func(s *session) error {
		ctx := cmd.Context()
		if err := s.populate(ctx); err != nil {
			return err
		}

		c, err := s.set.Get(ctx, kind, id)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read cache", err)
		}
		if c == nil {
			return NewExitError(ExitFailure, fmt.Sprintf("%s %q not found", kind, id))
		}

		result := &ShowResult{Kind: kind, Fingerprint: string(card.Fingerprint(c)), Card: c}
		switch kind {
		case card.KindTopic:
			result.Standards, err = s.set.Standards.ByTopic(ctx, id)
		case card.KindTheme:
			result.Topics, err = s.set.Topics.ByTheme(ctx, id)
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read cache", err)
		}

		return opts.output(cmd).Success(result)
	})
}
