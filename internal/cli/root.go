package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is overridden at build time with -ldflags "-X .../internal/cli.version=..."
var version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "acevents",
	Short: "acevents - build event-type classification datasets from the ACE corpus",
	Long: `acevents converts an ACE-style annotated corpus into a labeled dataset for
event-type classification.

Event mentions are read from the annotation files of each genre (bn, nw, wl).
Sentences of the raw documents that contain no event mention become Non-event
examples. Positives and a capped share of negatives are shuffled together and
split 80/10/10 into train.txt, dev.txt and test.txt, one "<text>\t<code>" per line.`,
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
	Long:  `Display the version number of acevents.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "acevents %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.acevents/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	configure(viper.GetViper(), cfgFile)

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// configure points v at the config file and the ACEVENTS_* environment
func configure(v *viper.Viper, file string) {
	if file != "" {
		// Use config file from the flag
		v.SetConfigFile(file)
	} else if dir, err := defaultConfigDir(); err == nil {
		// Search for config in home directory
		v.AddConfigPath(dir)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	} else {
		fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
	}

	// Read in environment variables that match ACEVENTS_*, e.g. ACEVENTS_SAMPLING_NEGATIVE_CAP
	v.SetEnvPrefix("ACEVENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".acevents"), nil
}
