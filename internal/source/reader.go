package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/metrics"
	"github.com/arnau/data-standards-authority/internal/report"
	"github.com/arnau/data-standards-authority/internal/resource"
)

// ParseError reports a source file that could not be turned into cards.
// It never aborts a pass.
type ParseError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Summary describes one pass over a source tree.
type Summary struct {
	Files       int            `json:"files"`
	Cards       int            `json:"cards"`
	Outcomes    map[string]int `json:"outcomes"`
	Failures    []*ParseError  `json:"failures"`
	Unprocessed []string       `json:"unprocessed"`
}

// OK reports whether every file parsed.
func (s *Summary) OK() bool {
	return len(s.Failures) == 0
}

// Option configures a Reader.
type Option func(*Reader)

// WithIgnore skips paths matching any of the doublestar patterns. Patterns
// match slash-separated paths relative to the source root.
func WithIgnore(patterns ...string) Option {
	return func(r *Reader) { r.ignore = append(r.ignore, patterns...) }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// WithMetrics counts parse failures in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Reader) { r.metrics = m }
}

// WithReport logs parse failures to rep.
func WithReport(rep *report.Report) Option {
	return func(r *Reader) { r.report = rep }
}

// Reader walks a source tree and reconciles every card it finds.
type Reader struct {
	set     *resource.Set
	parser  *Parser
	ignore  []string
	logger  *slog.Logger
	metrics *metrics.Metrics
	report  *report.Report
}

// NewReader returns a Reader adding cards to set.
func NewReader(set *resource.Set, opts ...Option) (*Reader, error) {
	parser, err := NewParser()
	if err != nil {
		return nil, err
	}
	r := &Reader{set: set, parser: parser, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	for _, p := range r.ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
	}
	return r, nil
}

// Read walks root and reconciles every card found. Parse failures are
// collected in the summary; a storage failure stops the walk and is returned.
func (r *Reader) Read(ctx context.Context, root string) (*Summary, error) {
	summary := &Summary{
		Outcomes:    map[string]int{},
		Failures:    []*ParseError{},
		Unprocessed: []string{},
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		if r.skip(root, path, d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		return r.readFile(ctx, path, summary)
	})
	if err != nil {
		return summary, fmt.Errorf("read %s: %w", root, err)
	}

	r.logger.Info("source read",
		"root", root,
		"files", summary.Files,
		"cards", summary.Cards,
		"failures", len(summary.Failures),
	)
	return summary, nil
}

func (r *Reader) skip(root, path string, d fs.DirEntry) bool {
	if strings.HasPrefix(d.Name(), ".") {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range r.ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			r.logger.Debug("ignored", "path", rel, "pattern", pattern)
			return true
		}
	}
	return false
}

func (r *Reader) readFile(ctx context.Context, path string, summary *Summary) error {
	var cards []card.Card
	var err error

	switch filepath.Ext(path) {
	case ".md":
		cards, err = r.markdown(path)
	case ".json":
		cards, err = r.registry(path)
	default:
		err = errUnprocessed
	}

	switch {
	case errors.Is(err, errUnprocessed), errors.Is(err, ErrNoFrontmatter), errors.Is(err, ErrNoType):
		r.logger.Warn("unprocessed", "path", path, "reason", err)
		summary.Unprocessed = append(summary.Unprocessed, path)
		return nil
	case err != nil:
		perr := &ParseError{Path: path, Reason: err.Error(), Err: err}
		r.logger.Warn("parse failed", "path", path, "error", err)
		r.metrics.ParseFailed()
		r.report.Log(report.Entry{Action: report.ActionFail, Message: perr.Error()})
		summary.Failures = append(summary.Failures, perr)
		return nil
	}

	summary.Files++
	for _, c := range cards {
		outcome, err := r.set.Add(ctx, c)
		if err != nil {
			return err
		}
		summary.Cards++
		summary.Outcomes[outcome.String()]++
		r.logger.Debug("card", "path", path, "kind", c.Kind(), "id", c.Identifier(), "outcome", outcome)
	}
	return nil
}

var errUnprocessed = errors.New("not a source file")

func (r *Reader) markdown(path string) ([]card.Card, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := r.parser.ParseCard(blob)
	if err != nil {
		return nil, err
	}
	return []card.Card{c}, nil
}

// registry reads the licence and organisation lists, identified by file name.
func (r *Reader) registry(path string) ([]card.Card, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if stem != "licences" && stem != "organisations" {
		return nil, errUnprocessed
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cards []card.Card
	switch stem {
	case "licences":
		list, err := r.parser.ParseLicences(blob)
		if err != nil {
			return nil, err
		}
		for _, l := range list {
			cards = append(cards, l)
		}
	case "organisations":
		list, err := r.parser.ParseOrganisations(blob)
		if err != nil {
			return nil, err
		}
		for _, o := range list {
			cards = append(cards, o)
		}
	}
	return cards, nil
}
