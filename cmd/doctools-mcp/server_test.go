package main

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/gamma-omg/doctools/imgcrop"
	"github.com/gamma-omg/doctools/readers"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, path string) (*readers.Result, error) {
	args := m.Called(ctx, path)
	res, _ := args.Get(0).(*readers.Result)
	return res, args.Error(1)
}

func (m *mockExtractor) ExtractToFile(ctx context.Context, path, out string) (*readers.Result, error) {
	args := m.Called(ctx, path, out)
	res, _ := args.Get(0).(*readers.Result)
	return res, args.Error(1)
}

type mockCropper struct {
	mock.Mock
}

func (m *mockCropper) CropFile(path string) (*imgcrop.Result, error) {
	args := m.Called(path)
	res, _ := args.Get(0).(*imgcrop.Result)
	return res, args.Error(1)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()

	require.Len(t, res.Content, 1)
	txt, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return txt.Text
}

func Test_extractPdfText(t *testing.T) {
	ext := new(mockExtractor)
	ext.On("Extract", mock.Anything, "plan.pdf").Return(&readers.Result{Text: "p1\n\np2"}, nil)

	ts := &toolServer{extractor: ext}
	res, err := ts.extractPdfText(context.Background(), callRequest(map[string]any{"path": "plan.pdf"}))
	require.NoError(t, err)

	assert.False(t, res.IsError)
	assert.Equal(t, "p1\n\np2", resultText(t, res))
	ext.AssertExpectations(t)
}

func Test_extractPdfText_WithOutput(t *testing.T) {
	ext := new(mockExtractor)
	ext.On("ExtractToFile", mock.Anything, "plan.pdf", "out.txt").Return(&readers.Result{Text: "text"}, nil)

	ts := &toolServer{extractor: ext}
	res, err := ts.extractPdfText(context.Background(), callRequest(map[string]any{"path": "plan.pdf", "output": "out.txt"}))
	require.NoError(t, err)

	assert.Equal(t, "text", resultText(t, res))
	ext.AssertExpectations(t)
}

func Test_extractPdfText_Errors(t *testing.T) {
	ext := new(mockExtractor)
	ext.On("Extract", mock.Anything, "broken.pdf").Return(nil, errors.New("all extraction strategies failed"))

	ts := &toolServer{extractor: ext}
	res, err := ts.extractPdfText(context.Background(), callRequest(map[string]any{"path": "broken.pdf"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "all extraction strategies failed")

	res, err = ts.extractPdfText(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func Test_cropImage(t *testing.T) {
	cropper := new(mockCropper)
	cropper.On("CropFile", "paw.png").Return(&imgcrop.Result{Size: image.Pt(10, 12)}, nil)
	cropper.On("CropFile", "empty.png").Return(&imgcrop.Result{}, imgcrop.ErrEmptyImage)
	cropper.On("CropFile", "broken.png").Return(nil, errors.New("failed to decode png"))

	ts := &toolServer{cropper: cropper}

	res, err := ts.cropImage(context.Background(), callRequest(map[string]any{"path": "paw.png"}))
	require.NoError(t, err)
	assert.Equal(t, "Successfully cropped paw.png. New size: (10, 12)", resultText(t, res))

	res, err = ts.cropImage(context.Background(), callRequest(map[string]any{"path": "empty.png"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "Image is completely transparent or empty.", resultText(t, res))

	res, err = ts.cropImage(context.Background(), callRequest(map[string]any{"path": "broken.png"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	cropper.AssertExpectations(t)
}

func Test_NewToolServer(t *testing.T) {
	srv := NewToolServer(new(mockExtractor), new(mockCropper))
	require.NotNil(t, srv)
}
