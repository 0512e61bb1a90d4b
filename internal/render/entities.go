package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// Entities renders each resolved entity as a full structured dump.
// Component data appears exactly as fetched; failed components show their
// error marker.
func Entities(entities []*domain.ResolvedEntity, viewerBaseURL string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Entities (%d)\n", len(entities))
	for i, e := range entities {
		if e == nil {
			continue
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "## %d. %s\n", i+1, e.PI)
		fmt.Fprintf(&b, "View: %s\n", ViewLink(viewerBaseURL, e.PI))
		fmt.Fprintf(&b, "Components: %d\n", len(e.ComponentData))
		if failed := sortedFailed(e); len(failed) > 0 {
			fmt.Fprintf(&b, "Failed components: %s\n", strings.Join(failed, ", "))
		}
		writeJSONBlock(&b, e)
	}
	return b.String()
}

func sortedFailed(e *domain.ResolvedEntity) []string {
	failed := e.FailedComponents()
	if len(failed) > 1 {
		// Map iteration order is random.
		slices.Sort(failed)
	}
	return failed
}
