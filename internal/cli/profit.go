package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"evetrade/internal/engine"
	"evetrade/internal/export"
)

// tradeFlags registers the flags describing a single trade.
func tradeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("buy", 0, "buy price per unit (ISK)")
	cmd.Flags().Float64("sell", 0, "sell price per unit (ISK)")
	cmd.Flags().Int64("qty", 1, "units in the position")
	cmd.Flags().Int64("volume", 0, "daily traded volume (units)")
}

func markTradeRequired(cmd *cobra.Command) {
	cmd.MarkFlagRequired("buy")
	cmd.MarkFlagRequired("sell")
}

func tradeFromFlags(cmd *cobra.Command) engine.TradeRecord {
	buy, _ := cmd.Flags().GetFloat64("buy")
	sell, _ := cmd.Flags().GetFloat64("sell")
	qty, _ := cmd.Flags().GetInt64("qty")
	volume, _ := cmd.Flags().GetInt64("volume")
	return engine.TradeRecord{BuyPrice: buy, SellPrice: sell, Volume: volume, Quantity: qty}
}

func newProfitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Analyze the profitability of a trade",
		Example: `  evetrade profit --buy 4500000 --sell 5200000 --qty 20 --volume 350
  evetrade profit --buy 100 --sell 120 --qty 1000 --csv report.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			trade := tradeFromFlags(cmd)
			rates := app.Rates.EffectiveRates(skillProfile(cmd))

			hours, _ := cmd.Flags().GetFloat64("hours")
			turnover, _ := cmd.Flags().GetFloat64("turnover")
			result := engine.AnalyzeTradeWithTurnover(trade, rates, hours, turnover)

			if path, _ := cmd.Flags().GetString("csv"); path != "" {
				if err := writeProfitReport(path, trade, result); err != nil {
					return err
				}
				app.Logger.Info().Str("path", path).Msg("profit report written")
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Gross profit:       %s\n", FormatISK(result.GrossProfit))
			fmt.Fprintf(out, "Buy broker fee:     %s\n", FormatISK(result.BuyBrokerFee))
			fmt.Fprintf(out, "Sell broker fee:    %s\n", FormatISK(result.SellBrokerFee))
			fmt.Fprintf(out, "Sales tax:          %s\n", FormatISK(result.SalesTax))
			fmt.Fprintf(out, "Net profit:         %s\n", FormatISK(result.NetProfit))
			fmt.Fprintf(out, "ROI:                %s\n", FormatPercent(result.ROIPercent))
			fmt.Fprintf(out, "Margin:             %s\n", FormatPercent(result.MarginPercent))
			fmt.Fprintf(out, "Capital required:   %s\n", FormatISKShort(result.CapitalRequired))
			fmt.Fprintf(out, "Profit per hour:    %s\n", FormatISKShort(result.ProfitPerHour))
			fmt.Fprintf(out, "Capital efficiency: %s/hour per 1M invested\n", FormatISKShort(result.CapitalEfficiency))
			fmt.Fprintf(out, "Time to recover:    %s\n", FormatHours(result.TimeToRecoverHours))
			fmt.Fprintf(out, "Rating:             %s\n", FormatRating(result.Rating))
			return nil
		},
	}
	tradeFlags(cmd)
	markTradeRequired(cmd)
	skillFlags(cmd, app)
	cmd.Flags().Float64("hours", app.Config.Simulation.HoursPerDay, "trading hours per day")
	cmd.Flags().Float64("turnover", app.Config.Simulation.AssumedTurnover, "assumed share of daily volume captured (0-1)")
	cmd.Flags().String("csv", "", "write the result to a CSV file")
	return cmd
}

func writeProfitReport(path string, trade engine.TradeRecord, result engine.ProfitResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return export.WriteProfitCSV(f, []export.ProfitRow{export.NewProfitRow("trade", trade, result)})
}
