package estimate

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"bodyshop-work-order/models"
)

// wordGap is the horizontal gap, relative to the font size, that separates two words
const wordGap = 0.2

// IsPDF reports whether data starts with the PDF magic header
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, "\r\n\t "), []byte("%PDF-"))
}

// PDFText extracts the text of every page, one output line per text row
func PDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}
		for _, row := range rows {
			sb.WriteString(joinRow(row.Content))
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// joinRow concatenates the glyph runs of one row, inserting a space where
// the gap between two runs is wider than a fraction of the font size
func joinRow(texts []pdf.Text) string {
	var sb strings.Builder
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			if t.X-(prev.X+prev.W) > t.FontSize*wordGap {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
	}
	return sb.String()
}

// FromDocument extracts work order fields from an uploaded estimate.
// PDFs are converted to text first; anything else is read as plain text.
func FromDocument(data []byte) (models.AnalysisResult, error) {
	if !IsPDF(data) {
		return Extract(string(data)), nil
	}
	text, err := PDFText(data)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	return Extract(text), nil
}
