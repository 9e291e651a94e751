// Package cli implements the string-analyzer CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/divah21/stage-one-backend/internal/client"
	"github.com/divah21/stage-one-backend/internal/config"
	"github.com/divah21/stage-one-backend/internal/logger"
	"github.com/divah21/stage-one-backend/internal/model"
)

var (
	configPath string
	serverURL  string
	formatFlag string

	cfg *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "string-analyzer",
	Short: "Analyze, store and query strings",
	Long: "Computes content-addressed properties of strings (length, palindrome, word count, " +
		"character frequencies) and serves them over HTTP. Subcommands either run locally " +
		"(serve, analyze, translate) or talk to a running server.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (toml, yaml or json)")
	RootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Server base URL (default: client.base_url from config)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func setup() error {
	if formatFlag != "json" && formatFlag != "text" {
		return fmt.Errorf("--format must be json or text, got %q", formatFlag)
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c

	return logger.Initialize(logger.Config{JSON: cfg.Log.JSON, Level: cfg.Log.Level})
}

func newClient() *client.Client {
	base := serverURL
	if base == "" {
		base = cfg.Client.BaseURL
	}
	return client.New(base, cfg.Client.Timeout())
}

// readValue returns the positional args joined by spaces, or piped stdin
// with one trailing newline removed.
func readValue(cmd *cobra.Command, args []string) (string, bool) {
	if len(args) > 0 {
		return strings.Join(args, " "), true
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
			return "", false
		}
	}
	b, err := io.ReadAll(in)
	if err != nil {
		exitErr("read stdin", err)
	}
	s := strings.TrimSuffix(string(b), "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, true
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func printRecord(cmd *cobra.Command, rec *model.AnalysisRecord) {
	if formatFlag == "text" {
		printRecords(cmd, []model.AnalysisRecord{*rec})
		return
	}
	printJSON(cmd, rec)
}

func printRecords(cmd *cobra.Command, recs []model.AnalysisRecord) {
	out := cmd.OutOrStdout()
	for _, r := range recs {
		p := r.Properties
		fmt.Fprintf(out, "%s  len=%-4d words=%-3d unique=%-3d palindrome=%-5t  %q\n",
			r.ID[:12], p.Length, p.WordCount, p.UniqueCharacters, p.IsPalindrome, r.Value)
	}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
