package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cgfgestion/investment-simulator/internal/calculation"
	"github.com/cgfgestion/investment-simulator/internal/config"
	"github.com/cgfgestion/investment-simulator/internal/domain"
	"github.com/cgfgestion/investment-simulator/internal/output"
)

// bindParameterFlags registers one flag per simulation parameter, defaulting
// to the advisor form's initial values.
func bindParameterFlags(fs *pflag.FlagSet, p *domain.Parameters) {
	d := config.DefaultParameters()
	fs.Float64Var(&p.InitialCapital, "initial", d.InitialCapital, "initial capital")
	fs.Float64Var(&p.MonthlyContribution, "contribution", d.MonthlyContribution, "monthly contribution")
	fs.Float64Var(&p.TargetValue, "target", d.TargetValue, "target value")
	fs.Float64Var(&p.AnnualRate, "rate", d.AnnualRate, "nominal annual rate in percent")
	fs.Float64Var(&p.HorizonYears, "years", d.HorizonYears, "horizon in years")
	fs.Float64Var(&p.InflationRate, "inflation", 0, "annual inflation in percent, for real values")
}

// solveReport solves a single simulation into a one-entry report, returning
// the entry's typed error when it could not be computed.
func solveReport(ctx context.Context, engine *calculation.CalculationEngine, m domain.Mode, params domain.Parameters, opts calculation.ReportOptions) (*domain.Report, error) {
	cfg := &domain.Configuration{Simulations: []domain.Simulation{{Name: m.Label(), Mode: string(m), Parameters: params}}}
	report, err := engine.RunSimulations(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	if err := report.Entries[0].Err; err != nil {
		return nil, err
	}
	return report, nil
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		mode   string
		format string
		params domain.Parameters
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one simulation for its unknown parameter",
		Long: `Solve computes whichever parameter the mode leaves unknown:
  fv       final value from capital, contribution, rate and horizon
  pmt      monthly contribution needed to reach the target
  pv       initial capital needed to reach the target
  horizon  time needed to reach the target`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := domain.ParseMode(mode)
			if err != nil {
				return err
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
			}

			report, err := solveReport(cmd.Context(), a.engine, m, params, a.reportOptions())
			if err != nil {
				return err
			}
			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "fv", "unknown to solve for: fv, pmt, pv, horizon")
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite", "output format")
	bindParameterFlags(cmd.Flags(), &params)
	return cmd
}
