package readers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// PageSeparator joins the text of consecutive pages.
const PageSeparator = "\n\n"

var ErrNoStrategies = errors.New("no extraction strategies configured")

// Result is the outcome of the first strategy that succeeded.
type Result struct {
	Strategy string
	Pages    []string
	Text     string
}

// StrategyError records why a single strategy failed.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }

// ExhaustedError is returned when every strategy has failed.
type ExhaustedError struct {
	Path     string
	Failures []*StrategyError
}

func (e *ExhaustedError) Error() string {
	reasons := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		reasons = append(reasons, f.Error())
	}

	return fmt.Sprintf("all extraction strategies failed for %s: %s", e.Path, strings.Join(reasons, "; "))
}

func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}

	return errs
}

// Chain tries its readers in order until one of them succeeds.
type Chain struct {
	log     *slog.Logger
	readers []PageReader
}

func NewChain(log *slog.Logger, readers ...PageReader) *Chain {
	if log == nil {
		log = slog.Default()
	}

	return &Chain{log: log, readers: readers}
}

func (c *Chain) Strategies() []string {
	names := make([]string, 0, len(c.readers))
	for _, r := range c.readers {
		names = append(names, r.Name())
	}

	return names
}

func (c *Chain) Extract(ctx context.Context, path string) (*Result, error) {
	if len(c.readers) == 0 {
		return nil, ErrNoStrategies
	}

	exhausted := &ExhaustedError{Path: path}
	for _, r := range c.readers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !r.CanRead(path) {
			exhausted.Failures = append(exhausted.Failures, &StrategyError{
				Strategy: r.Name(),
				Err:      fmt.Errorf("unsupported file: %s", path),
			})
			continue
		}

		pages, err := readPages(ctx, r, path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			c.log.Warn("extraction strategy failed", "strategy", r.Name(), "path", path, "error", err)
			exhausted.Failures = append(exhausted.Failures, &StrategyError{Strategy: r.Name(), Err: err})
			continue
		}

		c.log.Info("extracted pdf text", "strategy", r.Name(), "path", path, "pages", len(pages))
		return &Result{
			Strategy: r.Name(),
			Pages:    pages,
			Text:     strings.Join(pages, PageSeparator),
		}, nil
	}

	return nil, exhausted
}

func readPages(ctx context.Context, r PageReader, path string) (pages []string, err error) {
	defer recoverPanic(&err)
	return r.ReadPages(ctx, path)
}

// ExtractToFile runs Extract and writes the text to out. Nothing is
// written when extraction fails.
func (c *Chain) ExtractToFile(ctx context.Context, path, out string) (*Result, error) {
	res, err := c.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	err = WriteText(out, res.Text)
	if err != nil {
		return nil, err
	}

	return res, nil
}
