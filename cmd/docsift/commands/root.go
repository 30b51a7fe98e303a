// Package commands implements the CLI commands for docsift.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Extract, classify, and structure content from business documents",
	Long: `Docsift ingests word-processor and page-description documents (docx,
pdf, html, plain text), segments them into content units, classifies each
unit against a configurable label set, recovers tables and inline
"key: value" structures, and writes the combined result as JSON, CSV, or
a multi-sheet spreadsheet.

Examples:
  # Extract a contract to pretty JSON
  docsift extract contract.docx -o contract.json

  # Classify against custom labels with an OpenAI scorer
  docsift extract report.pdf --labels "summary,risk,financial" \
      --scorer openai --format xlsx -o report.xlsx

  # Batch extraction, one CSV per input
  docsift extract a.docx b.pdf c.html --format csv`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.docsift.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".docsift")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DOCSIFT")
	viper.AutomaticEnv()

	// Also check common API key env vars
	_ = viper.BindEnv("api_key", "OPENAI_API_KEY", "ANTHROPIC_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
