package readers

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"rsc.io/pdf"
)

type RscReader struct {
}

func (r *RscReader) Name() string { return Rsc }

func (r *RscReader) CanRead(path string) bool {
	return isPdf(path)
}

func (r *RscReader) ReadPages(ctx context.Context, path string) (pages []string, err error) {
	defer recoverPanic(&err)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf document: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat pdf document: %w", err)
	}

	doc, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pdf document: %w", err)
	}

	n := doc.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := doc.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		pages = append(pages, joinGlyphs(p.Content().Text))
	}

	return pages, nil
}

// joinGlyphs concatenates positioned glyphs, starting a new line whenever
// the baseline moves by more than half the font size.
func joinGlyphs(glyphs []pdf.Text) string {
	var sb strings.Builder
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			tol := math.Max(prev.FontSize, g.FontSize) / 2
			if tol < 1 {
				tol = 1
			}
			if math.Abs(prev.Y-g.Y) > tol {
				sb.WriteByte('\n')
			}
		}
		sb.WriteString(g.S)
	}

	return sb.String()
}
