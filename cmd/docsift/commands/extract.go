package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/docsift/docsift/internal/logger"
	"github.com/docsift/docsift/pkg/docsift"
	"github.com/docsift/docsift/pkg/export"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE...",
	Short: "Extract and classify content from document files",
	Long: `Extract content from one or more documents and write one output
artifact per input.

Each document is decoded, segmented into paragraphs, classified against the
label set, scanned for tables and inline "key: value" structures, and
serialized to the selected format. Documents are processed one at a time;
a decode failure aborts that document only.

Examples:
  docsift extract contract.docx
  docsift extract contract.docx -o contract.xlsx --format xlsx
  docsift extract notes.txt --labels "todo,decision,risk" --threshold 0.6
  docsift extract report.pdf --scorer anthropic --no-tables`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()

	// Output settings
	flags.StringP("output", "o", "", "output file (single input only; default: input name with format extension)")
	flags.StringP("format", "f", "json", "output format: json, csv, xlsx")
	flags.Bool("include-metadata", true, "include source metadata in the output (use --include-metadata=false to disable)")
	flags.Bool("pretty", true, "pretty-print JSON output")

	// Classification settings
	flags.StringP("labels", "l", "", "comma-separated label set (default: built-in label set)")
	flags.Float64P("threshold", "t", docsift.DefaultThreshold, "minimum adjusted confidence in [0,1]")
	flags.String("profile", "", "label profile file (YAML or JSON)")
	flags.Bool("no-tables", false, "disable table detection and extraction")

	// Scorer settings
	flags.StringP("scorer", "s", "keyword", "label scorer: keyword, openai, anthropic")
	flags.StringP("model", "m", "", "model name for remote scorers")
	flags.StringP("api-key", "k", "", "API key for remote scorers (or use env var)")
	flags.String("base-url", "", "custom API base URL for remote scorers")

	_ = viper.BindPFlag("scorer", flags.Lookup("scorer"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	flags := cmd.Flags()

	formatStr, _ := flags.GetString("format")
	format, err := export.ParseFormat(formatStr)
	if err != nil {
		logError("%v", err)
		return err
	}

	output, _ := flags.GetString("output")
	if output != "" && len(args) > 1 {
		logError("--output requires a single input file; got %d", len(args))
		return cmd.Help()
	}

	opts, err := pipelineOptions(flags)
	if err != nil {
		logError("%v", err)
		return err
	}

	pipeline, err := docsift.New(opts...)
	if err != nil {
		logError("%v", err)
		return err
	}

	includeMetadata, _ := flags.GetBool("include-metadata")
	pretty, _ := flags.GetBool("pretty")

	var firstErr error
	for _, input := range args {
		// One document is fully processed before the next begins; a SIGINT
		// cancels between documents.
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := pipeline.ExtractFile(ctx, input)
		if err != nil {
			logError("extract %s: %v", input, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		dest := output
		if dest == "" {
			dest = derivedOutputPath(input, format)
		}

		exportErr := export.Export(result, export.Options{
			Format:          format,
			DestinationPath: dest,
			IncludeMetadata: includeMetadata,
			PrettyPrint:     pretty,
		})
		if exportErr != nil {
			logError("%v", exportErr)
			if firstErr == nil {
				firstErr = exportErr
			}
			continue
		}

		logInfo("%s: %d units -> %s", input, result.Summary.TotalItems, dest)
	}

	return firstErr
}

// pipelineOptions translates CLI flags and viper settings into pipeline
// options. Profile settings load first so explicit flags win.
func pipelineOptions(flags *pflag.FlagSet) ([]docsift.Option, error) {
	var opts []docsift.Option

	if profilePath, _ := flags.GetString("profile"); profilePath != "" {
		profile, err := docsift.LoadProfile(profilePath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, docsift.WithLabels(profile.Labels))
		if profile.Threshold != nil {
			opts = append(opts, docsift.WithThreshold(*profile.Threshold))
		}
		if len(profile.Lexicon) > 0 {
			opts = append(opts, docsift.WithLexicon(profile.Lexicon))
		}
	}

	if labelsStr, _ := flags.GetString("labels"); labelsStr != "" {
		opts = append(opts, docsift.WithLabels(splitLabels(labelsStr)))
	}
	if flags.Changed("threshold") {
		threshold, _ := flags.GetFloat64("threshold")
		opts = append(opts, docsift.WithThreshold(threshold))
	}
	if noTables, _ := flags.GetBool("no-tables"); noTables {
		opts = append(opts, docsift.WithTableExtraction(false))
	}

	opts = append(opts,
		docsift.WithScorerName(viper.GetString("scorer")),
		docsift.WithModel(viper.GetString("model")),
		docsift.WithAPIKey(viper.GetString("api_key")),
		docsift.WithBaseURL(viper.GetString("base_url")),
	)

	return opts, nil
}

// splitLabels parses a comma-separated label list, trimming each entry and
// dropping empties.
func splitLabels(s string) []string {
	var labels []string
	for _, l := range strings.Split(s, ",") {
		l = strings.TrimSpace(l)
		if l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// derivedOutputPath swaps the input extension for the export format's.
func derivedOutputPath(input string, format export.Format) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + string(format)
}
