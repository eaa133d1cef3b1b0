// Package printing renders HTML reports to PDF with headless Chrome.
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    return err
//	}
//	defer renderer.Close()
//
//	html, err := RenderActivityReport(report)
//	result, err := renderer.Render(ctx, &RenderRequest{
//	    HTML:        html,
//	    PaperSize:   PaperSizeA4,
//	    Orientation: OrientationLandscape,
//	    Margins:     DefaultMargins(),
//	})
package printing
