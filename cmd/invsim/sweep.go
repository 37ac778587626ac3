package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cgfgestion/investment-simulator/internal/calculation"
	"github.com/cgfgestion/investment-simulator/internal/domain"
	"github.com/cgfgestion/investment-simulator/internal/output"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		kind   string
		values []float64
		params domain.Parameters
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Tabulate the final value while varying one parameter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sweep, err := calculation.RunSweep(cmd.Context(), domain.SweepKind(kind), params, values)
			if err != nil {
				return err
			}
			a.logger.Debug("sweep computed", zap.String("kind", kind), zap.Int("points", len(sweep.Points)))

			cur := a.settings.Report.Currency
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "%s\tFinal value\t\n", kind)
			for _, pt := range sweep.Points {
				fmt.Fprintf(tw, "%s\t%s\t\n", output.FormatSweepInput(sweep.Kind, pt.Input, cur), output.FormatCurrency(pt.FutureValue, cur))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", string(domain.SweepHorizon), "parameter to vary: horizon, rate, contribution")
	cmd.Flags().Float64SliceVar(&values, "values", nil, "values to evaluate (defaults depend on kind)")
	bindParameterFlags(cmd.Flags(), &params)
	return cmd
}
