// copy-asset copies a source image into the mobile app's asset tree. The
// source is either given directly or found by name prefix and suffix.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gamma-omg/doctools/assets"
	"github.com/gamma-omg/doctools/config"
)

func main() {
	cfgPath := flag.String("config", "", "Configuration file (default "+config.DefaultPath+" if present)")
	src := flag.String("src", "", "Source file; when empty it is looked up in -dir")
	dir := flag.String("dir", "", "Directory to search for the source file")
	prefix := flag.String("prefix", "", "File name prefix to look for")
	suffix := flag.String("suffix", "", "File name suffix to look for")
	dst := flag.String("dst", "", "Destination file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	c := cfg.Copy
	if *dir != "" {
		c.Dir = *dir
	}
	if *prefix != "" {
		c.Prefix = *prefix
	}
	if *suffix != "" {
		c.Suffix = *suffix
	}
	if *dst != "" {
		c.Dest = *dst
	}

	os.Exit(run(*src, c, os.Stdout, os.Stderr))
}

func run(src string, c config.CopyConfig, stdout, stderr io.Writer) int {
	var err error
	if src == "" {
		src, err = assets.Find(c.Dir, c.Prefix, c.Suffix)
		if err != nil {
			return report(err, stderr)
		}
	}

	_, err = assets.Copy(src, c.Dest)
	if err != nil {
		return report(err, stderr)
	}

	fmt.Fprintf(stdout, "Copied %s to %s\n", src, c.Dest)
	return 0
}

func report(err error, stderr io.Writer) int {
	if errors.Is(err, assets.ErrNotFound) {
		fmt.Fprintln(stderr, "Source file not found!")
	} else {
		fmt.Fprintln(stderr, "Error copying file:", err)
	}

	return 1
}
