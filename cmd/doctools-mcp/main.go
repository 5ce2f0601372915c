// doctools-mcp serves the PDF text extractor and the image cropper as MCP
// tools, over SSE by default or over stdio.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gamma-omg/doctools/config"
	"github.com/gamma-omg/doctools/imgcrop"
	"github.com/gamma-omg/doctools/readers"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	cfgPath := flag.String("config", "", "Configuration file (default "+config.DefaultPath+" if present)")
	stdio := flag.Bool("stdio", false, "Serve over stdin/stdout instead of SSE")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, logCloser, err := cfg.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logCloser.Close()

	strategies, err := readers.ByName(cfg.Extract.Strategies)
	if err != nil {
		log.Fatal(err)
	}

	srv := NewToolServer(
		readers.NewChain(logger, strategies...),
		imgcrop.NewCropper(logger, cfg.Crop.Backup),
	)

	if *stdio {
		err = server.ServeStdio(srv)
		if err != nil {
			logger.Error("stdio server stopped", "error", err)
		}
		return
	}

	logger.Info("serving MCP over SSE", "addr", cfg.ServerAddr)
	sse := server.NewSSEServer(srv, server.WithBaseURL(fmt.Sprintf("http://%s", cfg.ServerAddr)))
	log.Println(sse.Start(cfg.ServerAddr))
}
