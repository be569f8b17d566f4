package main

import (
	"fmt"

	"github.com/iwvelando/finance-models/internal/calculator"
	"github.com/iwvelando/finance-models/internal/config"
	"github.com/iwvelando/finance-models/pkg/constants"
	"github.com/iwvelando/finance-models/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Compute every formula from the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}
}

func runReport(cmd *cobra.Command, opts *rootOptions) error {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat, err := resolveOutputFormat(conf.Output.Format, opts.outputFormat)
	if err != nil {
		logger.Error(err.Error(),
			zap.String("op", "report"),
		)
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "report"),
		)
	}

	report, err := calculator.Compute(logger, conf.Inputs)
	if err != nil {
		logger.Error("failed to compute report",
			zap.String("op", "report"),
			zap.Error(err),
		)
		return err
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		return output.WriteCSV(cmd.OutOrStdout(), report)
	default:
		return output.WritePretty(cmd.OutOrStdout(), report)
	}
}
