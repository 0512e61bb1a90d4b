package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/extract"
)

// NoResultsText is rendered in place of result blocks for an empty response.
const NoResultsText = "No results found. Try broader terms, different wording, or fewer namespace filters."

const conciseNotes = `---
Notes:
- Call get_arke_entities with one or more PIs for complete component data.
- Call search_arke with verbose=true (top_k at most 5) for a full dump of each result.
- Call extract_text_ocr on digitalObject PIs to extract text from scanned pages.
`

const bytesPerMB = 1024 * 1024

// SearchResults renders a search response. Hits keep the gateway's order.
func SearchResults(resp *domain.SearchResponse, opts Options) string {
	var b strings.Builder
	if resp == nil {
		resp = &domain.SearchResponse{}
	}

	writeSearchHeader(&b, resp, opts)

	if len(resp.Results) == 0 {
		b.WriteString("\n")
		b.WriteString(NoResultsText)
		b.WriteString("\n")
		return b.String()
	}

	for i := range resp.Results {
		b.WriteString("\n")
		if opts.Mode == ModeVerbose {
			writeVerboseHit(&b, i+1, &resp.Results[i], opts)
		} else {
			writeConciseHit(&b, i+1, &resp.Results[i], opts)
		}
	}

	if opts.Mode != ModeVerbose {
		b.WriteString("\n")
		b.WriteString(conciseNotes)
	}
	return b.String()
}

func writeSearchHeader(b *strings.Builder, resp *domain.SearchResponse, opts Options) {
	fmt.Fprintf(b, "# Search results for %q\n", resp.Query)
	fmt.Fprintf(b, "Total results: %d", resp.TotalResults)
	if n := len(resp.Results); n > 0 && n != resp.TotalResults {
		fmt.Fprintf(b, " (showing %d)", n)
	}
	b.WriteString("\n")

	if len(resp.Namespaces) > 0 {
		fmt.Fprintf(b, "Namespaces searched: %s\n", strings.Join(resp.Namespaces, ", "))
	} else {
		b.WriteString("Namespaces searched: all\n")
	}

	switch {
	case resp.TookMS != nil:
		fmt.Fprintf(b, "Search time: %s\n", formatMillis(int64(*resp.TookMS)))
	case opts.Elapsed > 0:
		fmt.Fprintf(b, "Search time: %s\n", opts.Elapsed.Round(time.Millisecond))
	}
	if opts.Mode == ModeVerbose {
		b.WriteString("Mode: verbose\n")
	}
}

func writeVerboseHit(b *strings.Builder, rank int, hit *domain.RankedHit, opts Options) {
	fmt.Fprintf(b, "## Result %d\n", rank)
	fmt.Fprintf(b, "Score: %.3f\n", hit.Score)
	fmt.Fprintf(b, "View: %s\n", ViewLink(opts.ViewerBaseURL, hit.PI))
	writeJSONBlock(b, hit)
}

func writeConciseHit(b *strings.Builder, rank int, hit *domain.RankedHit, opts Options) {
	ranking := rankingView(hit)
	record, hasRecord := recordView(hit.ResolvedMetadata)

	fmt.Fprintf(b, "## Result %d\n", rank)
	fmt.Fprintf(b, "Score: %.3f\n", hit.Score)
	if hit.Type != "" {
		fmt.Fprintf(b, "Type: %s\n", hit.Type)
	}
	fmt.Fprintf(b, "PI: %s\n", hit.PI)
	fmt.Fprintf(b, "View: %s\n", ViewLink(opts.ViewerBaseURL, hit.PI))

	if hasRecord {
		if record.Title != "" {
			fmt.Fprintf(b, "Title: %s\n", record.Title)
		}
		if record.Level != "" {
			fmt.Fprintf(b, "Level: %s\n", record.Level)
		}
	}

	switch {
	case hasRecord && record.NativeID != nil:
		fmt.Fprintf(b, "NARA ID: %d\n", *record.NativeID)
	case ranking.NativeID != nil:
		fmt.Fprintf(b, "NARA ID: %d\n", *ranking.NativeID)
	}

	if ranking.StartDate != nil || ranking.EndDate != nil {
		fmt.Fprintf(b, "Dates: %s to %s\n", yearOf(ranking.StartDate), yearOf(ranking.EndDate))
	}

	if hasRecord {
		writeRecordFields(b, hit.Type, &record)
	}

	if m := hit.Manifest; m != nil {
		if m.ParentPI != "" {
			fmt.Fprintf(b, "Parent: %s\n", m.ParentPI)
		}
		if n := len(m.ChildrenPI); n > 0 {
			fmt.Fprintf(b, "Children: %d\n", n)
		}
	}

	if hasRecord {
		if record.AccessRestriction != nil && record.AccessRestriction.Status != "" {
			fmt.Fprintf(b, "Access: %s\n", record.AccessRestriction.Status)
		}
		if unit, ok := record.FirstReferenceUnit(); ok {
			if loc := joinNonEmpty(", ", unit.Name, unit.City, unit.State); loc != "" {
				fmt.Fprintf(b, "Location: %s\n", loc)
			}
		}
	}

	if m := hit.Manifest; m != nil && m.ManifestCID != "" {
		fmt.Fprintf(b, "Manifest CID: %s\n", m.ManifestCID)
	}
	if cid := hit.ResolvedMetadataCID; cid != "" && cid != canonicalCID(hit) {
		fmt.Fprintf(b, "Metadata CID: %s\n", cid)
	}

	writePreview(b, extract.Text(hit))
}

func writeRecordFields(b *strings.Builder, entityType string, record *domain.CatalogRecord) {
	if len(record.GeneralRecordsTypes) > 0 {
		fmt.Fprintf(b, "Record types: %s\n", strings.Join(record.GeneralRecordsTypes, ", "))
	}
	if entityType == domain.NamespaceDigitalObject {
		if record.Filename != "" {
			fmt.Fprintf(b, "Filename: %s\n", record.Filename)
		}
		if record.FileSize != nil {
			fmt.Fprintf(b, "File size: %.2f MB\n", float64(*record.FileSize)/bytesPerMB)
		}
	}
	if n := len(record.DigitalObjects); n > 0 {
		fmt.Fprintf(b, "Digital objects: %d\n", n)
	}
}

// canonicalCID is the content id the manifest lists for the catalog record.
func canonicalCID(hit *domain.RankedHit) string {
	if hit.Manifest == nil {
		return ""
	}
	return hit.Manifest.Components[domain.CatalogRecordComponent]
}

// writePreview emits the joined extracted text, capped at PreviewLimit.
func writePreview(b *strings.Builder, texts []string) {
	if len(texts) == 0 {
		return
	}
	joined := strings.Join(texts, PreviewSeparator)
	preview, omitted := truncateRunes(joined, PreviewLimit)

	b.WriteString("Text preview:\n")
	b.WriteString(preview)
	b.WriteString("\n")
	if omitted > 0 {
		fmt.Fprintf(b, "[Truncated: %d more characters available. Use get_arke_entities for the full text.]\n", omitted)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
