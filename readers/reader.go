package readers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// PageReader is a single extraction strategy backed by one PDF library.
// ReadPages returns one entry per page, in page order. A page without
// extractable text is returned as an empty string.
type PageReader interface {
	Name() string
	CanRead(path string) bool
	ReadPages(ctx context.Context, path string) ([]string, error)
}

const (
	Ledongthuc = "ledongthuc"
	Rsc        = "rsc"
	Docconv    = "docconv"
)

// DefaultStrategies is the order used when none is configured.
var DefaultStrategies = []string{Ledongthuc, Rsc, Docconv}

// ByName resolves strategy names into readers, preserving order.
func ByName(names []string) ([]PageReader, error) {
	if len(names) == 0 {
		names = DefaultStrategies
	}

	res := make([]PageReader, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if _, ok := seen[n]; ok {
			return nil, fmt.Errorf("strategy listed twice: %s", n)
		}
		seen[n] = struct{}{}

		switch n {
		case Ledongthuc:
			res = append(res, &LedongthucReader{})
		case Rsc:
			res = append(res, &RscReader{})
		case Docconv:
			res = append(res, &DocconvReader{})
		default:
			return nil, fmt.Errorf("unknown extraction strategy: %s", n)
		}
	}

	return res, nil
}

func isPdf(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// recoverPanic turns a panic raised by a parsing library into an error.
// Both pdf packages panic on some malformed inputs instead of returning.
// Chain applies it around every strategy as well.
func recoverPanic(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("pdf parser panic: %v", r)
	}
}
