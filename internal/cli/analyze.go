package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/divah21/stage-one-backend/internal/analyzer"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze [value]",
		Short: "Analyze a string locally without storing it",
		Long:  "Analyze a string locally. The value can be positional args (joined by spaces) or piped via stdin.",
		Run:   runAnalyze,
	}

	RootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	value, ok := readValue(cmd, args)
	if !ok {
		exitErr("analyze", fmt.Errorf("value is required (positional arg or stdin)"))
	}

	rec := analyzer.Analyze(value)
	printRecord(cmd, &rec)
}
