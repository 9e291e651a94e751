package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/divah21/stage-one-backend/internal/errors"
	"github.com/divah21/stage-one-backend/internal/nlquery"
)

func init() {
	cmd := &cobra.Command{
		Use:   "translate [phrase]",
		Short: "Show how a natural language query is translated into filters",
		Run:   runTranslate,
	}

	cmd.Flags().Bool("rules", false, "List the translation rules in evaluation order and exit")

	RootCmd.AddCommand(cmd)
}

func runTranslate(cmd *cobra.Command, args []string) {
	if listRules, _ := cmd.Flags().GetBool("rules"); listRules {
		for _, name := range nlquery.Rules() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return
	}

	if len(args) == 0 {
		exitErr("translate", fmt.Errorf("phrase is required"))
	}
	phrase := strings.Join(args, " ")
	res := nlquery.Explain(phrase)
	if res.Fired == nil {
		res.Fired = []string{}
	}

	if formatFlag == "text" {
		b, _ := json.Marshal(res.Filters)
		fmt.Fprintf(cmd.OutOrStdout(), "rules:   %s\nfilters: %s\n", strings.Join(res.Fired, ", "), b)
	} else {
		printJSON(cmd, struct {
			Query string `json:"query"`
			nlquery.Result
		}{phrase, res})
	}

	switch {
	case res.Filters.IsEmpty():
		exitErr("translate", errors.ErrUnparseableQuery)
	case res.Filters.Conflicting():
		exitErr("translate", errors.ErrConflictingFilters)
	}
}
