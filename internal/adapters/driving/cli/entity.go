package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/arke-mcp/internal/render"
)

var entityJSON bool

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Entity commands",
}

var entityGetCmd = &cobra.Command{
	Use:   "get [pi...]",
	Short: "Fetch entities with every component",
	Long: `Fetches each entity's manifest and all of its components, as the
get_arke_entities tool does. Up to 10 PIs per call.`,
	Args: cobra.RangeArgs(1, 10),
	RunE: runEntityGet,
}

func init() {
	entityGetCmd.Flags().BoolVar(&entityJSON, "json", false, "output entities as JSON")
	entityCmd.AddCommand(entityGetCmd)
	rootCmd.AddCommand(entityCmd)
}

func runEntityGet(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	entities, err := entityService.ResolveMany(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("entity lookup failed: %w", err)
	}

	if entityJSON {
		return outputJSON(cmd, entities)
	}
	cmd.Print(render.Entities(entities, toolConfig.ViewerBaseURL))
	return nil
}
