// crop-image trims the fully transparent border of a PNG and overwrites
// the file with the result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gamma-omg/doctools/config"
	"github.com/gamma-omg/doctools/imgcrop"
)

func main() {
	cfgPath := flag.String("config", "", "Configuration file (default "+config.DefaultPath+" if present)")
	in := flag.String("in", "", "PNG file to crop in place")
	backup := flag.Bool("backup", false, "Keep a copy of the original as <file>.bak")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *in != "" {
		cfg.Crop.Input = *in
	}
	if *backup {
		cfg.Crop.Backup = true
	}

	logger, logCloser, err := cfg.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logCloser.Close()

	run(imgcrop.NewCropper(logger, cfg.Crop.Backup), cfg.Crop.Input, os.Stdout)
}

// run reports every outcome on out; none of them is fatal.
func run(cropper *imgcrop.Cropper, path string, out io.Writer) {
	res, err := cropper.CropFile(path)
	switch {
	case errors.Is(err, imgcrop.ErrEmptyImage):
		fmt.Fprintln(out, "Image is completely transparent or empty.")
	case err != nil:
		fmt.Fprintf(out, "Error: %v\n", err)
	default:
		fmt.Fprintf(out, "Successfully cropped %s. New size: (%d, %d)\n", path, res.Size.X, res.Size.Y)
	}
}
