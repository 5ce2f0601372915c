package readers

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// WriteText writes text as UTF-8, replacing ill-formed sequences with
// U+FFFD so the write never fails on encoding.
func WriteText(path string, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w := transform.NewWriter(f, unicode.UTF8.NewEncoder())
	_, err = w.Write([]byte(text))
	if err == nil {
		err = w.Close()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}
