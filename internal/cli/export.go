package cli

import (
	"github.com/spf13/cobra"

	"github.com/divah21/stage-one-backend/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored analyses as JSON",
		Long:  "Export every stored analysis as a JSON array, in insertion order. The output can be fed to import.",
		Args:  cobra.NoArgs,
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	res, err := newClient().List(cmd.Context(), model.FilterSet{})
	if err != nil {
		exitErr("export", err)
	}
	printJSON(cmd, res.Data)
}
