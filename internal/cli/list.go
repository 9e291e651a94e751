package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/divah21/stage-one-backend/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored strings, optionally filtered",
		Args:  cobra.NoArgs,
		Run:   runList,
	}

	cmd.Flags().String("palindrome", "", "Filter by palindrome: true or false")
	cmd.Flags().Int("min-length", 0, "Minimum length (inclusive)")
	cmd.Flags().Int("max-length", 0, "Maximum length (inclusive)")
	cmd.Flags().IntP("words", "w", 0, "Exact word count")
	cmd.Flags().String("contains", "", "Single character the string must contain")
	cmd.Flags().Bool("values-only", false, "Only output the string values")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	f, err := listFilters(cmd)
	if err != nil {
		exitErr("list", err)
	}

	res, err := newClient().List(cmd.Context(), f)
	if err != nil {
		exitErr("list", err)
	}

	if valuesOnly, _ := cmd.Flags().GetBool("values-only"); valuesOnly {
		for _, r := range res.Data {
			fmt.Fprintln(cmd.OutOrStdout(), r.Value)
		}
		return
	}
	if formatFlag == "text" {
		printRecords(cmd, res.Data)
		return
	}
	printJSON(cmd, res)
}

// listFilters builds a FilterSet from the flags the user actually set.
func listFilters(cmd *cobra.Command) (model.FilterSet, error) {
	var f model.FilterSet
	flags := cmd.Flags()

	if flags.Changed("palindrome") {
		s, _ := flags.GetString("palindrome")
		b, err := strconv.ParseBool(s)
		if err != nil {
			return f, err
		}
		f.IsPalindrome = model.Bool(b)
	}
	if flags.Changed("min-length") {
		n, _ := flags.GetInt("min-length")
		f.MinLength = model.Int(n)
	}
	if flags.Changed("max-length") {
		n, _ := flags.GetInt("max-length")
		f.MaxLength = model.Int(n)
	}
	if flags.Changed("words") {
		n, _ := flags.GetInt("words")
		f.WordCount = model.Int(n)
	}
	if flags.Changed("contains") {
		s, _ := flags.GetString("contains")
		f.ContainsCharacter = model.String(s)
	}
	return f, f.Validate()
}
