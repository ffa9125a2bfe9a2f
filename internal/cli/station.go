package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"evetrade/internal/engine"
)

func newStationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "station",
		Short: "Score a station's trading viability",
		Example: `  evetrade station --orders 25000 --daily-volume 15000000000 \
    --items 8000 --avg-spread 4.5 --tax 0.045 --broker 0.025 \
    --buyers 30 --sellers 45`,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, _ := cmd.Flags().GetInt("orders")
			dailyVolume, _ := cmd.Flags().GetFloat64("daily-volume")
			items, _ := cmd.Flags().GetInt("items")
			avgSpread, _ := cmd.Flags().GetFloat64("avg-spread")
			tax, _ := cmd.Flags().GetFloat64("tax")
			broker, _ := cmd.Flags().GetFloat64("broker")
			buyers, _ := cmd.Flags().GetInt("buyers")
			sellers, _ := cmd.Flags().GetInt("sellers")
			playerStructure, _ := cmd.Flags().GetBool("player-structure")

			score := engine.ScoreStation(engine.StationProfile{
				OrderCount:        orders,
				DailyVolume:       dailyVolume,
				UniqueItems:       items,
				AvgSpreadPercent:  avgSpread,
				TaxRate:           tax,
				BrokerFeeRate:     broker,
				CompetitorBuyers:  buyers,
				CompetitorSellers: sellers,
				IsPlayerStructure: playerStructure,
			})

			if jsonOutput(cmd) {
				return printJSON(cmd, score)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Liquidity:       %5.1f (weight 0.30)\n", score.Liquidity)
			fmt.Fprintf(out, "Variety:         %5.1f (weight 0.20)\n", score.Variety)
			fmt.Fprintf(out, "Spread:          %5.1f (weight 0.25)\n", score.Spread)
			fmt.Fprintf(out, "Tax efficiency:  %5.1f (weight 0.15)\n", score.TaxEfficiency)
			fmt.Fprintf(out, "Competition:     %5.1f (weight 0.10)\n", score.Competition)
			if score.StructureBonus > 0 {
				fmt.Fprintf(out, "Structure bonus: %5.1f\n", score.StructureBonus)
			}
			fmt.Fprintf(out, "\nOverall: %.1f / 100  (%s)\n", score.Overall, score.Tier)
			return nil
		},
	}
	cmd.Flags().Int("orders", 0, "active market orders at the station")
	cmd.Flags().Float64("daily-volume", 0, "daily ISK volume traded")
	cmd.Flags().Int("items", 0, "unique item types listed")
	cmd.Flags().Float64("avg-spread", 0, "average bid-ask spread (percent)")
	cmd.Flags().Float64("tax", engine.BaseSalesTaxRate, "station sales tax rate (fraction)")
	cmd.Flags().Float64("broker", engine.BaseBrokerFeeRate, "station broker fee rate (fraction)")
	cmd.Flags().Int("buyers", 0, "competing buy-order traders")
	cmd.Flags().Int("sellers", 0, "competing sell-order traders")
	cmd.Flags().Bool("player-structure", false, "station is a player-owned structure")
	return cmd
}
