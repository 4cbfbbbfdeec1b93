package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veripack/internal/pipeline"
	"github.com/ppiankov/veripack/internal/report"
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval [packs.jsonl]",
	Short: "Evaluate generated verification packs",
	Long: `Eval prints the label distribution, evidence coverage, and quality
checks for a packs.jsonl file.

Example:
  veripack eval ./outputs/packs.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	path := "./outputs/packs.jsonl"
	if len(args) == 1 {
		path = args[0]
	}

	packs, err := pipeline.ReadPacks(path)
	if err != nil {
		return err
	}

	report.Evaluate(packs).Render(os.Stdout)
	return nil
}
