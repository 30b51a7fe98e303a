package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsift/docsift/internal/version"
	"github.com/docsift/docsift/pkg/decode"
	"github.com/docsift/docsift/pkg/export"
	"github.com/docsift/docsift/pkg/scorer"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show supported formats, scorers, and build information",
	Long: `Print static capability information: supported input document
formats, available export formats, configured label scorers and their
readiness, and build metadata. No files are read or written.`,
	Run: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, version.Full())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Input formats:")
	formats := decode.Formats()
	names := make([]string, 0, len(formats))
	for f := range formats {
		names = append(names, string(f))
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-6s %s\n", name, strings.Join(formats[decode.Format(name)], ", "))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Export formats:")
	for _, f := range []export.Format{export.FormatJSON, export.FormatCSV, export.FormatXLSX} {
		fmt.Fprintf(out, "  %s\n", f)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Scorers:")
	remote := scorer.Config{APIKey: viper.GetString("api_key")}
	for _, s := range []scorer.Scorer{
		scorer.NewKeyword(nil),
		scorer.NewOpenAI(remote),
		scorer.NewAnthropic(remote),
	} {
		state := "not configured"
		if s.Ready() {
			state = "ready"
		}
		fmt.Fprintf(out, "  %-10s %s\n", s.Name(), state)
	}
}
