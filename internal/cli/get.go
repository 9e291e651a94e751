package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get [value]",
		Short: "Retrieve the stored analysis of a string",
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	value, ok := readValue(cmd, args)
	if !ok {
		exitErr("get", fmt.Errorf("value is required (positional arg or stdin)"))
	}

	rec, err := newClient().Get(cmd.Context(), value)
	if err != nil {
		exitErr("get", err)
	}
	printRecord(cmd, rec)
}
