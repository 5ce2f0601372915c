package readers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"code.sajari.com/docconv/v2"
)

// DocconvReader shells out to poppler through docconv. Page breaks are
// only visible when pdftotext emits form feeds; otherwise the whole body
// is returned as a single page.
type DocconvReader struct {
}

func (r *DocconvReader) Name() string { return Docconv }

func (r *DocconvReader) CanRead(path string) bool {
	return isPdf(path)
}

func (r *DocconvReader) ReadPages(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf document: %w", err)
	}
	defer f.Close()

	body, _, err := docconv.ConvertPDF(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf document: %w", err)
	}

	return splitPages(body), nil
}

func splitPages(body string) []string {
	pages := strings.Split(body, "\f")
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}

	return pages
}
