package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/arke-mcp/internal/render"
)

var ocrForce bool

var ocrCmd = &cobra.Command{
	Use:   "ocr [pi...]",
	Short: "Extract text from digitised objects",
	Long: `Runs OCR on one or more entities, as the extract_text_ocr tool does.
Cached text is returned unless --force is given.`,
	Args: cobra.RangeArgs(1, 10),
	RunE: runOCR,
}

func init() {
	ocrCmd.Flags().BoolVar(&ocrForce, "force", false, "reprocess even if cached text exists")
	rootCmd.AddCommand(ocrCmd)
}

func runOCR(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	if len(args) == 1 {
		result, err := ocrService.Extract(cmd.Context(), args[0], ocrForce)
		if err != nil {
			return fmt.Errorf("ocr failed: %w", err)
		}
		cmd.Print(render.OCRResult(result))
		return nil
	}

	batch, err := ocrService.ExtractBatch(cmd.Context(), args, ocrForce)
	if err != nil {
		return fmt.Errorf("ocr failed: %w", err)
	}
	cmd.Print(render.OCRBatch(batch))
	return nil
}
