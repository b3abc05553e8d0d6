// Package export renders generated resumes into downloadable formats.
package export

import (
	"fmt"
	"strings"
)

// Format identifies an export format.
type Format string

// Supported export formats.
const (
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// UnsupportedFormatError indicates a format the exporter cannot produce.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format: %s", e.Format)
}

// Result is a rendered export ready to be served or written to disk.
type Result struct {
	Data        []byte
	ContentType string
	Extension   string
}

// ParseFormat maps a user-supplied format string to a Format. An empty
// string selects markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	default:
		return "", &UnsupportedFormatError{Format: s}
	}
}

// Export renders markdown resume content into the requested format.
func Export(content string, format Format) (*Result, error) {
	switch format {
	case FormatMarkdown:
		return &Result{
			Data:        []byte(content),
			ContentType: "text/markdown; charset=utf-8",
			Extension:   "md",
		}, nil
	case FormatPDF:
		data, err := renderPDF(content)
		if err != nil {
			return nil, err
		}
		return &Result{
			Data:        data,
			ContentType: "application/pdf",
			Extension:   "pdf",
		}, nil
	case FormatDOCX:
		data, err := renderDOCX(content)
		if err != nil {
			return nil, err
		}
		return &Result{
			Data:        data,
			ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Extension:   "docx",
		}, nil
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
}

// stripMarkdown reduces markdown source to plain lines for the formats that
// do not render markup. Headings keep their text, list markers become
// bullets, emphasis markers are dropped.
func stripMarkdown(content string) []line {
	var lines []line
	for _, raw := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(raw)
		switch {
		case trimmed == "":
			lines = append(lines, line{})
		case strings.HasPrefix(trimmed, "#"):
			text := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			lines = append(lines, line{text: stripEmphasis(text), heading: true})
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			lines = append(lines, line{text: "• " + stripEmphasis(trimmed[2:])})
		default:
			lines = append(lines, line{text: stripEmphasis(trimmed)})
		}
	}
	return lines
}

type line struct {
	text    string
	heading bool
}

func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
