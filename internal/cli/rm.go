package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [value]",
		Short: "Delete the stored analysis of a string",
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	value, ok := readValue(cmd, args)
	if !ok {
		exitErr("rm", fmt.Errorf("value is required (positional arg or stdin)"))
	}

	if err := newClient().Delete(cmd.Context(), value); err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"value":%q}`+"\n", value)
}
