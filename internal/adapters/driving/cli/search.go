package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/render"
)

var (
	searchLimit      int
	searchNamespaces []string
	searchFull       bool
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the Arke archive",
	Long: `Runs a semantic search across the Arke archive and prints the results
exactly as the search_arke tool renders them.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringSliceVar(&searchNamespaces, "namespace", nil, "restrict to these namespaces (repeatable)")
	searchCmd.Flags().BoolVar(&searchFull, "full", false, "dump every result in full")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the raw response as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	start := time.Now()
	resp, err := searchService.Search(cmd.Context(), domain.SearchRequest{
		Query:      args[0],
		TopK:       searchLimit,
		Namespaces: searchNamespaces,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, resp)
	}

	mode := render.ModeConcise
	if searchFull {
		mode = render.ModeVerbose
	}
	cmd.Print(render.SearchResults(resp, render.Options{
		Mode:          mode,
		ViewerBaseURL: toolConfig.ViewerBaseURL,
		Elapsed:       time.Since(start),
	}))
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
