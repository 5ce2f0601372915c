package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamma-omg/doctools/imgcrop"
	"github.com/gamma-omg/doctools/readers"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type textExtractor interface {
	Extract(ctx context.Context, path string) (*readers.Result, error)
	ExtractToFile(ctx context.Context, path, out string) (*readers.Result, error)
}

type imageCropper interface {
	CropFile(path string) (*imgcrop.Result, error)
}

type toolServer struct {
	extractor textExtractor
	cropper   imageCropper
}

func NewToolServer(extractor textExtractor, cropper imageCropper) *server.MCPServer {
	ts := &toolServer{extractor: extractor, cropper: cropper}

	extractTool := mcp.NewTool("extract_pdf_text",
		mcp.WithDescription("Extracts plain text from a PDF file, page by page, trying several PDF libraries in turn"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the PDF file"),
		),
		mcp.WithString("output",
			mcp.Description("Optional path of a text file to write the result to"),
		))

	cropTool := mcp.NewTool("crop_image",
		mcp.WithDescription("Crops a PNG to the bounding box of its non-transparent pixels and overwrites it"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the PNG file"),
		))

	srv := server.NewMCPServer("doctools", "0.1.0", server.WithToolCapabilities(false))
	srv.AddTool(extractTool, ts.extractPdfText)
	srv.AddTool(cropTool, ts.cropImage)

	return srv
}

func (ts *toolServer) extractPdfText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var res *readers.Result
	if out := request.GetString("output", ""); out != "" {
		res, err = ts.extractor.ExtractToFile(ctx, path, out)
	} else {
		res, err = ts.extractor.Extract(ctx, path)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(res.Text), nil
}

func (ts *toolServer) cropImage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := ts.cropper.CropFile(path)
	if errors.Is(err, imgcrop.ErrEmptyImage) {
		return mcp.NewToolResultText("Image is completely transparent or empty."), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully cropped %s. New size: (%d, %d)", path, res.Size.X, res.Size.Y)), nil
}
