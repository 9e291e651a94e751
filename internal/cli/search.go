package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Filter stored strings with a natural language query",
		Long:  `Filter stored strings with an English phrase such as "single word palindromic strings" or "strings longer than 10 characters".`,
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	res, err := newClient().Search(cmd.Context(), query)
	if err != nil {
		exitErr("search", err)
	}

	if formatFlag == "text" {
		printRecords(cmd, res.Data)
		return
	}
	printJSON(cmd, res)
}
