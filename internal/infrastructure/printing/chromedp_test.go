package printing

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChromedpRenderer_Defaults(t *testing.T) {
	r, err := NewChromedpRenderer(nil)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, defaultChromeTimeout, r.config.DefaultTimeout)
	assert.Equal(t, defaultMaxConcurrent, cap(r.slots))
}

func TestBuildPrintParams(t *testing.T) {
	t.Run("A4 portrait", func(t *testing.T) {
		params := buildPrintParams(&RenderRequest{
			PaperSize:   PaperSizeA4,
			Orientation: OrientationPortrait,
			Margins:     DefaultMargins(),
		})
		assert.InDelta(t, mmToInches(210), params.PaperWidth, 0.001)
		assert.InDelta(t, mmToInches(297), params.PaperHeight, 0.001)
		assert.InDelta(t, mmToInches(10), params.MarginBottom, 0.001)
		assert.False(t, params.Landscape)
		assert.True(t, params.PrintBackground)
		assert.False(t, params.DisplayHeaderFooter)
	})

	t.Run("landscape with footer widens bottom margin", func(t *testing.T) {
		params := buildPrintParams(&RenderRequest{
			PaperSize:   PaperSizeLetter,
			Orientation: OrientationLandscape,
			Margins:     Margins{Top: 5, Bottom: 5},
			FooterHTML:  ReportFooter(),
		})
		assert.True(t, params.Landscape)
		assert.True(t, params.DisplayHeaderFooter)
		assert.InDelta(t, mmToInches(12), params.MarginBottom, 0.001)
		assert.InDelta(t, mmToInches(215.9), params.PaperWidth, 0.001)
	})
}

func TestValidateRequest(t *testing.T) {
	var renderErr *RenderError

	err := validateRequest(nil)
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)

	err = validateRequest(&RenderRequest{HTML: "   "})
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)

	err = validateRequest(&RenderRequest{HTML: "<p>x</p>", PaperSize: "A0"})
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeInvalidPaperSize, renderErr.Code)

	req := &RenderRequest{HTML: "<p>x</p>"}
	require.NoError(t, validateRequest(req))
	assert.Equal(t, PaperSizeA4, req.PaperSize)
}

func TestBuildCompleteHTML(t *testing.T) {
	assert.Equal(t, "<!DOCTYPE html><html></html>", buildCompleteHTML(&RenderRequest{HTML: "<!DOCTYPE html><html></html>"}))

	got := buildCompleteHTML(&RenderRequest{HTML: "<p>hi</p>", Title: "A & B"})
	assert.Contains(t, got, "<title>A &amp; B</title>")
	assert.Contains(t, got, "<body><p>hi</p></body>")
}

func TestEstimatePageCount(t *testing.T) {
	pdf := []byte("/Type /Pages /Type /Page /Type /Page /Type /Page")
	assert.Equal(t, 3, estimatePageCount(pdf))
	assert.Equal(t, 1, estimatePageCount([]byte("%PDF-1.4")))
}

// Needs a local Chrome; enabled with CHROME_TEST=1
func TestChromedpRenderer_Render(t *testing.T) {
	if os.Getenv("CHROME_TEST") == "" {
		t.Skip("CHROME_TEST not set")
	}
	r, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true, DefaultTimeout: 20 * time.Second})
	require.NoError(t, err)
	defer r.Close()

	html, err := RenderActivityReport(ActivityReport{})
	require.NoError(t, err)

	result, err := r.Render(context.Background(), &RenderRequest{HTML: html, Margins: DefaultMargins(), FooterHTML: ReportFooter()})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(result.PDFData[:4]))
	assert.GreaterOrEqual(t, result.PageCount, 1)
}
