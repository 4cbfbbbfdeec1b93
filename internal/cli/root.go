package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veripack",
	Short: "Veripack - verify claims against a line-numbered corpus",
	Long: `Veripack verifies natural-language claims against a fixed corpus of
line-numbered documents and assigns each claim one of three verdicts:
SUPPORTED, NOT_SUPPORTED, or INSUFFICIENT.

When evidence exists, every verdict carries a pinpoint citation: document
id plus an exact contiguous line range, with the snippet reconstructed
verbatim from the source.

Veripack favors abstention over incorrect assertion. An affirmative claim
matching a prohibitive sentence is never marked SUPPORTED, and a claim
whose figure disagrees with the cited figure is always NOT_SUPPORTED.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Veripack.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("veripack v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.veripack/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.veripack")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match VERIPACK_*; nested keys
	// map dots to underscores (retrieval.top_k -> VERIPACK_RETRIEVAL_TOP_K)
	viper.SetEnvPrefix("VERIPACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
