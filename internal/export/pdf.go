package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

func renderPDF(content string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	for _, ln := range stripMarkdown(content) {
		if ln.text == "" {
			pdf.Ln(3)
			continue
		}
		if ln.heading {
			pdf.SetFont("Helvetica", "B", 14)
			pdf.MultiCell(0, 7, ln.text, "", "L", false)
			pdf.Ln(1)
			continue
		}
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5.5, ln.text, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
