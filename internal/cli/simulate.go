package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"evetrade/internal/engine"
	"evetrade/internal/export"
)

func newSimulateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate multi-day trading under competition",
		Example: `  evetrade simulate --buy 1000000 --sell 1100000 --market-volume 50 \
    --qty 10 --interval 30 --competitors 10 --days 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			buy, _ := cmd.Flags().GetFloat64("buy")
			sell, _ := cmd.Flags().GetFloat64("sell")
			marketVolume, _ := cmd.Flags().GetInt64("market-volume")
			qty, _ := cmd.Flags().GetInt64("qty")
			interval, _ := cmd.Flags().GetInt("interval")
			competitors, _ := cmd.Flags().GetInt("competitors")
			days, _ := cmd.Flags().GetInt("days")

			simCfg := engine.SimulationConfig{
				BuyPrice:                buy,
				SellPrice:               sell,
				DailyMarketVolume:       marketVolume,
				OrderQuantity:           qty,
				UndercutIntervalMinutes: interval,
				CompetitorCount:         competitors,
				SimulationDays:          days,
			}
			rates := app.Rates.EffectiveRates(skillProfile(cmd))
			result := engine.Simulate(simCfg, rates)

			if app.Store != nil {
				if _, err := app.Store.SaveSimRun(simCfg, result.Summary); err != nil {
					app.Logger.Warn().Err(err).Msg("could not save simulation run")
				}
			}

			if path, _ := cmd.Flags().GetString("csv"); path != "" {
				if err := writeSimulationReport(path, result); err != nil {
					return err
				}
				app.Logger.Info().Str("path", path).Msg("simulation ledger written")
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Day  Margin    Volume  Updates  Day profit        Cumulative")
			for _, d := range result.Days {
				fmt.Fprintf(out, "%3d  %6.2f%%  %7d  %7d  %16s  %16s\n",
					d.Day, d.MarginPercent, d.VolumeTraded, d.OrderUpdates,
					FormatISKShort(d.DayProfit), FormatISKShort(d.CumulativeProfit))
			}

			s := result.Summary
			fmt.Fprintf(out, "\nMargin:       %s -> %s (eroded %.2fpp)\n",
				FormatPercent(s.InitialMarginPercent), FormatPercent(s.FinalMarginPercent), s.MarginErosion)
			fmt.Fprintf(out, "Total profit: %s (%s avg/day, ROI %s)\n",
				FormatISKShort(s.TotalProfit), FormatISKShort(s.AvgDailyProfit), FormatPercent(s.ROIPercent))
			fmt.Fprintf(out, "Volume moved: %d units over %d order updates\n", s.TotalVolume, s.OrderUpdates)
			fmt.Fprintf(out, "Fees paid:    %s broker, %s tax, %s relists (%s total)\n",
				FormatISKShort(s.TotalBrokerFees), FormatISKShort(s.TotalSalesTax),
				FormatISKShort(s.TotalUpdateCost), FormatISKShort(s.TotalFees))
			fmt.Fprintf(out, "Success:      %.0f%%\n", s.SuccessProbability)
			return nil
		},
	}
	cmd.Flags().Float64("buy", 0, "buy price per unit (ISK)")
	cmd.Flags().Float64("sell", 0, "sell price per unit (ISK)")
	cmd.Flags().Int64("market-volume", 0, "total daily market volume (units)")
	cmd.Flags().Int64("qty", 0, "units per order cycle")
	cmd.Flags().Int("interval", app.Config.Simulation.UndercutIntervalMinutes, "minutes between competitor undercuts")
	cmd.Flags().Int("competitors", 0, "competing traders on the item")
	cmd.Flags().Int("days", app.Config.Simulation.Days, "days to simulate")
	cmd.MarkFlagRequired("buy")
	cmd.MarkFlagRequired("sell")
	skillFlags(cmd, app)
	cmd.Flags().String("csv", "", "write the day-by-day ledger to a CSV file")
	return cmd
}

func writeSimulationReport(path string, result engine.SimulationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return export.WriteSimulationCSV(f, result)
}
