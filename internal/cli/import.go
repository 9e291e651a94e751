package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/divah21/stage-one-backend/internal/errors"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import strings from JSON",
		Long: "Import strings from a JSON array on stdin. Elements may be bare strings or objects " +
			`with a "value" field, so the output of export is accepted. Strings already stored are skipped.`,
		Args: cobra.NoArgs,
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		exitErr("read stdin", err)
	}

	values, err := parseImport(data)
	if err != nil {
		exitErr("parse json", err)
	}

	c := newClient()
	imported, skipped := 0, 0
	for _, v := range values {
		_, err := c.Create(cmd.Context(), v)
		switch {
		case err == nil:
			imported++
		case errors.Is(err, errors.ErrDuplicateKey):
			skipped++
		default:
			exitErr("import", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d,"skipped":%d}`+"\n", imported, skipped)
}

// parseImport accepts a JSON array whose elements are strings or objects
// carrying a string "value".
func parseImport(data []byte) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	values := make([]string, 0, len(items))
	for i, raw := range items {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			values = append(values, s)
			continue
		}
		var obj struct {
			Value *string `json:"value"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil || obj.Value == nil {
			return nil, fmt.Errorf("element %d: expected a string or an object with a string \"value\"", i)
		}
		values = append(values, *obj.Value)
	}
	return values, nil
}
