package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/iwvelando/finance-models/internal/config"
	"github.com/iwvelando/finance-models/pkg/constants"
	"github.com/iwvelando/finance-models/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath   string
	logLevel     string
	outputFormat string
	envFile      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "finance-models",
		Short: "Corporate finance calculator: CAPM, WACC, future value and NPV",
		Long: `finance-models evaluates the standard corporate finance formulas
either from a YAML session file, from command line flags or through a
small web UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(opts.envFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv")
	flags.StringVar(&opts.envFile, "env-file", constants.DefaultEnvFile, "optional dotenv file loaded before configuration")

	rootCmd.AddCommand(
		newReportCmd(opts),
		newCAPMCmd(opts),
		newWACCCmd(opts),
		newFutureValueCmd(opts),
		newNPVCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// loadEnvFile loads FINANCE_MODELS_* overrides from a dotenv file. A missing
// file is not an error; variables already set in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// resolveOutputFormat applies the CLI override on top of the configured
// format, defaulting to pretty.
func resolveOutputFormat(configured, override string) (string, error) {
	outputFormat := configured
	if override != "" {
		outputFormat = override
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return "", err
	}
	return outputFormat, nil
}

// commandLogger builds the logger for subcommands that have no session file.
func commandLogger(opts *rootOptions) (*zap.Logger, error) {
	return initializeLogger(config.LoggingConfig{}, opts.logLevel)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the finance-models version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}
