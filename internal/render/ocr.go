package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// NoTextText is shown for a successful OCR run that produced no characters.
const NoTextText = "No text was extracted from this entity."

// OCRResult renders a single OCR outcome.
func OCRResult(r *domain.OCRResult) string {
	var b strings.Builder
	if r == nil {
		return "# OCR\nNo result was returned.\n"
	}

	if !r.OK() {
		writeOCRFailure(&b, r)
		return b.String()
	}

	s := r.Success
	fmt.Fprintf(&b, "# OCR result for %s\n", r.PI)
	if s.Status != "" {
		fmt.Fprintf(&b, "Status: %s\n", s.Status)
	}
	if s.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", s.Source)
	}
	fmt.Fprintf(&b, "Elapsed: %s\n", formatMillis(s.ElapsedMS))
	if n := len(s.Pages); n > 0 {
		fmt.Fprintf(&b, "Pages: %d\n", n)
	}
	if s.TotalTokens != nil {
		fmt.Fprintf(&b, "Total tokens: %s\n", humanize.Comma(int64(*s.TotalTokens)))
	}
	if s.TotalCost != nil {
		fmt.Fprintf(&b, "Total cost: %s\n", formatCost(*s.TotalCost))
	}

	if len(s.Pages) > 0 {
		b.WriteString("\n## Pages\n")
		for i, p := range s.Pages {
			if i == MaxListedPages {
				fmt.Fprintf(&b, "- +%d more pages\n", len(s.Pages)-MaxListedPages)
				break
			}
			writePage(&b, p)
		}
	}

	if pv := s.Provenance; pv != nil && (pv.Model != "" || pv.ProcessedAt != "") {
		b.WriteString("\n## Provenance\n")
		if pv.Model != "" {
			fmt.Fprintf(&b, "Model: %s\n", pv.Model)
		}
		if pv.ProcessedAt != "" {
			fmt.Fprintf(&b, "Processed at: %s\n", pv.ProcessedAt)
		}
	}

	text := strings.TrimSpace(ocrText(s))
	b.WriteString("\n")
	if text == "" {
		b.WriteString("## Extracted text\n")
		b.WriteString(NoTextText)
		b.WriteString("\n")
		return b.String()
	}
	fmt.Fprintf(&b, "## Extracted text (%s words, %s characters)\n",
		humanize.Comma(int64(len(strings.Fields(text)))),
		humanize.Comma(int64(utf8.RuneCountInString(text))))
	b.WriteString(text)
	b.WriteString("\n")
	return b.String()
}

// OCRBatch renders an aggregate summary followed by one condensed block
// per entity.
func OCRBatch(batch *domain.OCRBatch) string {
	var b strings.Builder
	if batch == nil {
		batch = &domain.OCRBatch{}
	}

	total := len(batch.Results)
	ok := batch.Succeeded()
	fmt.Fprintf(&b, "# Batch OCR (%d entities)\n", total)
	fmt.Fprintf(&b, "Successful: %d\n", ok)
	fmt.Fprintf(&b, "Failed: %d\n", total-ok)
	if cost := batch.TotalCost(); cost > 0 {
		fmt.Fprintf(&b, "Total cost: %s\n", formatCost(cost))
	}
	if batch.ElapsedMS > 0 {
		fmt.Fprintf(&b, "Elapsed: %s\n", formatMillis(batch.ElapsedMS))
	}

	for i := range batch.Results {
		r := &batch.Results[i]
		b.WriteString("\n")
		if !r.OK() {
			fmt.Fprintf(&b, "## ✗ %s\n", r.PI)
			if r.Failure != nil {
				fmt.Fprintf(&b, "Error code: %s\n", r.Failure.Code)
				fmt.Fprintf(&b, "Message: %s\n", r.Failure.Message)
			}
			continue
		}

		s := r.Success
		fmt.Fprintf(&b, "## ✓ %s\n", r.PI)
		if s.Source != "" {
			fmt.Fprintf(&b, "Source: %s\n", s.Source)
		}
		var stats []string
		if n := len(s.Pages); n > 0 {
			stats = append(stats, fmt.Sprintf("%d pages", n))
		}
		if s.TotalTokens != nil {
			stats = append(stats, humanize.Comma(int64(*s.TotalTokens))+" tokens")
		}
		if s.TotalCost != nil {
			stats = append(stats, formatCost(*s.TotalCost))
		}
		if len(stats) > 0 {
			fmt.Fprintf(&b, "Stats: %s\n", strings.Join(stats, ", "))
		}

		text := strings.Join(strings.Fields(ocrText(s)), " ")
		if text == "" {
			b.WriteString("Preview: (no text)\n")
			continue
		}
		preview, omitted := truncateRunes(text, BatchPreviewLimit)
		if omitted > 0 {
			preview += "..."
		}
		fmt.Fprintf(&b, "Preview: %s\n", preview)
	}
	return b.String()
}

func writeOCRFailure(b *strings.Builder, r *domain.OCRResult) {
	fmt.Fprintf(b, "# OCR failed for %s\n", r.PI)
	if f := r.Failure; f != nil {
		fmt.Fprintf(b, "Error code: %s\n", f.Code)
		fmt.Fprintf(b, "Message: %s\n", f.Message)
		fmt.Fprintf(b, "Elapsed: %s\n", formatMillis(f.ElapsedMS))
	}
}

func writePage(b *strings.Builder, p domain.OCRPage) {
	parts := []string{fmt.Sprintf("Page %d", p.PageNumber)}
	if p.Source != "" {
		parts = append(parts, "file "+p.Source)
	}
	if p.Tokens > 0 {
		parts = append(parts, humanize.Comma(int64(p.Tokens))+" tokens")
	}
	if p.Cost > 0 {
		parts = append(parts, formatCost(p.Cost))
	}
	fmt.Fprintf(b, "- %s\n", strings.Join(parts, ", "))
}

// ocrText prefers the combined text and falls back to the page texts.
func ocrText(s *domain.OCRSuccess) string {
	if strings.TrimSpace(s.Text) != "" {
		return s.Text
	}
	var parts []string
	for _, p := range s.Pages {
		if t := strings.TrimSpace(p.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}
