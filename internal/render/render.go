// Package render turns search results, resolved entities and OCR results
// into bounded text for AI assistants. Every function is pure and never
// fails: missing optional fields are omitted rather than reported.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Mode selects how search results are rendered.
type Mode string

const (
	// ModeConcise renders selected fields and a bounded text preview.
	ModeConcise Mode = "concise"

	// ModeVerbose dumps every result in full.
	ModeVerbose Mode = "verbose"
)

// Size budgets.
const (
	// PreviewLimit caps the joined extracted-text preview of one result.
	PreviewLimit = 2000

	// BatchPreviewLimit caps the per-entity text preview in batch OCR output.
	BatchPreviewLimit = 200

	// MaxListedPages is how many OCR pages are listed individually.
	MaxListedPages = 5
)

// PreviewSeparator joins the extracted-text fragments of one result.
const PreviewSeparator = "\n\n---\n\n"

// Options controls search result rendering.
type Options struct {
	Mode Mode

	// ViewerBaseURL is prefixed to a PI to build its view link.
	ViewerBaseURL string

	// Elapsed is the client-side round-trip time, shown when the gateway
	// did not report its own.
	Elapsed time.Duration
}

// ViewLink builds the viewer URL for pi.
func ViewLink(baseURL, pi string) string {
	return strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(pi)
}

// dumpJSON serialises v as indented JSON without HTML escaping, so the
// block parses back to the same value.
func dumpJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("{\"error\": %q}", err.Error())
	}
	return strings.TrimRight(buf.String(), "\n")
}

// writeJSONBlock writes v as a fenced json block.
func writeJSONBlock(b *strings.Builder, v any) {
	b.WriteString("```json\n")
	b.WriteString(dumpJSON(v))
	b.WriteString("\n```\n")
}

// truncateRunes cuts s to limit runes and reports how many were dropped.
func truncateRunes(s string, limit int) (string, int) {
	runes := []rune(s)
	if len(runes) <= limit {
		return s, 0
	}
	return string(runes[:limit]), len(runes) - limit
}

func formatMillis(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}

func formatCost(c float64) string {
	return fmt.Sprintf("$%.4f", c)
}
