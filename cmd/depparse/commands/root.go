// Package commands implements the CLI commands for depparse.
package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/depparse/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "depparse",
	Short: "Batch dependency parsing of line-oriented corpora into CoNLL files",
	Long: `Depparse reads every file in an input directory, treats each line as
"<id> <text>", strips HTML and corpus markup from the text, runs it through
a dependency parser and appends the CoNLL result to <name>.conll in the
output directory.

Output files are appended to, never overwritten, unless --truncate is set.

Examples:
  # Parse with the public UDPipe service
  depparse parse -i corpus/ -o parsed/

  # Use a local spaCy/Stanza script that reads stdin and prints CoNLL
  depparse parse -i corpus/ -o parsed/ -b command \
      --command "python conll_stdin.py" --use-gpu

  # Check what the cleaner does to a line
  echo '<p>Hello (aside) world</p>' | depparse clean --trace`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.depparse.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
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
		viper.SetConfigName(".depparse")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("DEPPARSE")
	viper.AutomaticEnv()

	// Also check the hosted LLM API key env vars
	_ = viper.BindEnv("api_key", "DEPPARSE_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "OPENROUTER_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// initLogger configures logging from the global flags.
func initLogger() error {
	return logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		Level: viper.GetString("log_level"),
		JSON:  viper.GetBool("log_json"),
	})
}

// underscoreFlags lets --input_dir style names resolve to --input-dir.
func underscoreFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
