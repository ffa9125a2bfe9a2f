package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"evetrade/internal/engine"
)

var errNoStore = errors.New("database unavailable")

func newWatchlistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watchlist",
		Aliases: []string{"watch"},
		Short:   "Track trades you are watching",
	}

	addCmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a trade to the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return errNoStore
			}
			trade := tradeFromFlags(cmd)
			note, _ := cmd.Flags().GetString("note")
			id, err := app.Store.AddWatch(args[0], trade, note)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q as #%d\n", args[0], id)
			return nil
		},
	}
	tradeFlags(addCmd)
	markTradeRequired(addCmd)
	addCmd.Flags().String("note", "", "free-form note")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List watched trades with current risk and rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return errNoStore
			}
			entries, err := app.Store.Watchlist()
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Watchlist is empty.")
				return nil
			}

			rates := app.Rates.EffectiveRates(app.Config.SkillProfile())
			scorer := engine.NewRiskScorer(engine.RiskOptions{Conservative: app.Config.Risk.Conservative})
			out := cmd.OutOrStdout()
			for _, e := range entries {
				profit := engine.AnalyzeTrade(e.Trade, rates)
				risk := scorer.Assess(e.Trade)
				fmt.Fprintf(out, "#%-4d %-20s buy %s sell %s  net %s  %s  risk %s\n",
					e.ID, e.Label,
					FormatISKShort(e.Trade.BuyPrice), FormatISKShort(e.Trade.SellPrice),
					FormatISKShort(profit.NetProfit), FormatRating(profit.Rating), risk.Level)
				if e.Note != "" {
					fmt.Fprintf(out, "      %s\n", e.Note)
				}
			}
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a trade from the watchlist",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return errNoStore
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			if err := app.Store.RemoveWatch(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed #%d\n", id)
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, removeCmd)
	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent simulation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return errNoStore
			}
			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := app.Store.RecentSimRuns(limit)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No simulation runs recorded.")
				return nil
			}
			out := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(out, "#%-4d %s  buy %s sell %s  %dd  margin %.2f%% -> %.2f%%  profit %s  success %.0f%%\n",
					r.ID, r.RanAt,
					FormatISKShort(r.BuyPrice), FormatISKShort(r.SellPrice),
					r.Days, r.InitialMargin, r.FinalMargin,
					FormatISKShort(r.TotalProfit), r.SuccessProbability)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum runs to show")
	return cmd
}
