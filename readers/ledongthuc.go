package readers

import (
	"context"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

type LedongthucReader struct {
}

func (r *LedongthucReader) Name() string { return Ledongthuc }

func (r *LedongthucReader) CanRead(path string) bool {
	return isPdf(path)
}

func (r *LedongthucReader) ReadPages(ctx context.Context, path string) (pages []string, err error) {
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
	fonts := make(map[string]*pdf.Font)
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

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, err := p.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", i, err)
		}

		pages = append(pages, text)
	}

	return pages, nil
}
