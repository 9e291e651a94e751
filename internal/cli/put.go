package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "put [value]",
		Short: "Analyze and store a string on the server",
		Long:  "Analyze and store a string. The value can be positional args (joined by spaces) or piped via stdin.",
		Run:   runPut,
	}

	RootCmd.AddCommand(cmd)
}

func runPut(cmd *cobra.Command, args []string) {
	value, ok := readValue(cmd, args)
	if !ok {
		exitErr("put", fmt.Errorf("value is required (positional arg or stdin)"))
	}

	rec, err := newClient().Create(cmd.Context(), value)
	if err != nil {
		exitErr("put", err)
	}
	printRecord(cmd, rec)
}
