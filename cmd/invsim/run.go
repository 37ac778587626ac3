package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cgfgestion/investment-simulator/internal/config"
	"github.com/cgfgestion/investment-simulator/internal/domain"
	"github.com/cgfgestion/investment-simulator/internal/notify"
	"github.com/cgfgestion/investment-simulator/internal/output"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		format    string
		outputDir string
		email     bool
		emailTo   string
	)
	cmd := &cobra.Command{
		Use:   "run <simulations.yaml>",
		Short: "Run every simulation in a file and produce a report",
		Long: `Run loads a simulation file, solves each simulation, and renders the report.
Console formats are printed unless --output-dir is given; every other format,
and "all", is written to timestamped files. With --email the PDF report is
also sent to the client through the configured SMTP relay.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email = email || emailTo != ""
			if email && !a.settings.SMTP.Configured() {
				return notify.ErrNotConfigured
			}
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			a.logger.Info("loaded simulations", zap.String("file", args[0]), zap.Int("simulations", len(cfg.Simulations)), zap.Int("sweeps", len(cfg.Sweeps)))

			report, err := a.engine.RunSimulations(cmd.Context(), cfg, a.reportOptions())
			if err != nil {
				return err
			}
			for _, e := range report.Entries {
				if e.Failed() {
					a.logger.Warn("simulation not computed", zap.String("simulation", e.Name), zap.String("error", e.Error))
				}
			}

			name := output.NormalizeFormatName(format)
			toStdout := (name == "console" || name == "console-lite") && !cmd.Flags().Changed("output-dir")
			if toStdout {
				data, err := output.GetFormatterByName(name).Format(report)
				if err != nil {
					return err
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			} else {
				if outputDir == "" {
					outputDir = a.settings.Report.OutputDir
				}
				paths, err := output.GenerateReport(report, format, outputDir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", p)
				}
			}

			if !email {
				return nil
			}
			return a.emailReport(cmd, report, emailTo)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format, or all")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for report files (default from settings)")
	cmd.Flags().BoolVar(&email, "email", false, "e-mail the PDF report to the client")
	cmd.Flags().StringVar(&emailTo, "email-to", "", "recipient overriding the client file's email (implies --email)")
	return cmd
}

func (a *app) emailReport(cmd *cobra.Command, report *domain.Report, to string) error {
	pdf, err := output.PDFFormatter{}.Format(report)
	if err != nil {
		return err
	}
	msg, err := notify.ReportMessage(report, pdf, to, a.settings.SMTP.From)
	if err != nil {
		return err
	}
	if err := notify.NewMailer(a.settings.SMTP, a.logger).Send(msg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report e-mailed to %s\n", msg.To)
	return nil
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init <simulations.yaml>",
		Short: "Write an example simulation file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := config.SaveConfiguration(cfg, args[0]); err != nil {
				return err
			}
			a.logger.Debug("example simulation file written", zap.String("file", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "Example simulations written to %s\n", args[0])
			return nil
		},
	}
}
