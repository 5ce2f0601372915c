// extract-pdf-text writes the text of a PDF to a UTF-8 text file, trying
// each configured PDF library in turn until one succeeds.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamma-omg/doctools/config"
	"github.com/gamma-omg/doctools/readers"
	"github.com/gamma-omg/doctools/watch"
)

func main() {
	cfgPath := flag.String("config", "", "Configuration file (default "+config.DefaultPath+" if present)")
	in := flag.String("in", "", "PDF file to read")
	out := flag.String("out", "", "Text file to write")
	watchMode := flag.Bool("watch", false, "Keep running and re-extract whenever the PDF changes")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *in != "" {
		cfg.Extract.Input = *in
	}
	if *out != "" {
		cfg.Extract.Output = *out
	}

	logger, logCloser, err := cfg.NewLogger()
	if err != nil {
		log.Fatal(err)
	}

	strategies, err := readers.ByName(cfg.Extract.Strategies)
	if err != nil {
		logCloser.Close()
		log.Fatal(err)
	}
	chain := readers.NewChain(logger, strategies...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var code int
	if *watchMode {
		code = runWatch(ctx, logger, cfg, chain, os.Stdout, os.Stderr)
	} else {
		code = run(ctx, chain, cfg.Extract.Input, cfg.Extract.Output, os.Stdout, os.Stderr)
	}

	stop()
	logCloser.Close()
	os.Exit(code)
}

func run(ctx context.Context, chain *readers.Chain, in, out string, stdout, stderr io.Writer) int {
	_, err := chain.ExtractToFile(ctx, in, out)
	if err != nil {
		fmt.Fprintln(stderr, "PDF extract failed:", err)
		return 1
	}

	fmt.Fprintf(stdout, "Saved extracted text to %s\n", out)
	return 0
}

func runWatch(ctx context.Context, logger *slog.Logger, cfg *config.Config, chain *readers.Chain, stdout, stderr io.Writer) int {
	w := watch.New(logger, cfg.Extract.Input, cfg.WatchDebounce(), func(ctx context.Context, path string) error {
		_, err := chain.ExtractToFile(ctx, path, cfg.Extract.Output)
		if err != nil {
			fmt.Fprintln(stderr, "PDF extract failed:", err)
			return err
		}

		fmt.Fprintf(stdout, "Saved extracted text to %s\n", cfg.Extract.Output)
		return nil
	})

	// a failed first pass is reported but does not stop the watch
	ran, err := w.Sync(ctx)
	if err != nil && !ran {
		fmt.Fprintln(stderr, "PDF extract failed:", err)
	}

	err = w.Watch(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	<-ctx.Done()
	return 0
}
