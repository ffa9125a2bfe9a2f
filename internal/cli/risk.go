package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"evetrade/internal/engine"
	"evetrade/internal/export"
)

func newRiskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Score the risk of a trade",
		Example: `  evetrade risk --buy 1000000 --sell 1150000 --volume 50 --qty 10
  evetrade risk --buy 1 --sell 500 --volume 1 --conservative`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conservative, _ := cmd.Flags().GetBool("conservative")
			if !cmd.Flags().Changed("conservative") {
				conservative = app.Config.Risk.Conservative
			}
			opts := engine.RiskOptions{Conservative: conservative}

			if batch, _ := cmd.Flags().GetString("batch"); batch != "" {
				return runRiskBatch(cmd, app, batch, opts)
			}
			if !cmd.Flags().Changed("buy") || !cmd.Flags().Changed("sell") {
				return errors.New("either --batch or both --buy and --sell are required")
			}

			trade := tradeFromFlags(cmd)
			scorer := engine.NewRiskScorer(opts)
			assessment := scorer.Assess(trade)
			app.Logger.Debug().
				Float64("total_score", assessment.TotalScore).
				Bool("conservative", conservative).
				Msg("risk assessed")

			if path, _ := cmd.Flags().GetString("csv"); path != "" {
				if err := writeRiskReport(path, trade, assessment); err != nil {
					return err
				}
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, assessment)
			}

			out := cmd.OutOrStdout()
			for _, f := range assessment.Factors {
				fmt.Fprintf(out, "%-8s %5.1f x %.2f  %s\n", f.Name, f.Score, f.Weight, f.Reason)
			}
			fmt.Fprintf(out, "\nTotal score: %.1f (%s)\n", assessment.TotalScore, assessment.Level)
			if assessment.ScamLikely {
				fmt.Fprintln(out, "WARNING: this listing matches known scam patterns")
			}
			return nil
		},
	}
	tradeFlags(cmd)
	cmd.Flags().Bool("conservative", false, "use tightened risk thresholds")
	cmd.Flags().String("batch", "", "CSV file of trades to score together")
	cmd.Flags().String("csv", "", "write the result to a CSV file")
	return cmd
}

// runRiskBatch scores every trade in the input file together so each
// assessment carries a batch percentile.
func runRiskBatch(cmd *cobra.Command, app *App, path string, opts engine.RiskOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open batch: %w", err)
	}
	defer f.Close()

	inputs, err := export.ReadTradesCSV(f)
	if err != nil {
		return err
	}
	trades := make([]engine.TradeRecord, len(inputs))
	for i, in := range inputs {
		trades[i] = in.Trade()
	}
	assessments := engine.AssessRiskBatch(trades, opts)
	app.Logger.Debug().Int("trades", len(trades)).Msg("batch risk assessed")

	if out, _ := cmd.Flags().GetString("csv"); out != "" {
		rows := make([]export.RiskRow, len(assessments))
		for i, a := range assessments {
			rows[i] = export.NewRiskRow(inputs[i].Label, trades[i], a)
		}
		g, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer g.Close()
		if err := export.WriteRiskCSV(g, rows); err != nil {
			return err
		}
	}

	if jsonOutput(cmd) {
		return printJSON(cmd, assessments)
	}

	w := cmd.OutOrStdout()
	for i, a := range assessments {
		scam := ""
		if a.ScamLikely {
			scam = "  SCAM?"
		}
		fmt.Fprintf(w, "%-20s %5.1f  %-8s p%.0f%s\n",
			inputs[i].Label, a.TotalScore, a.Level, a.BatchPercentile, scam)
	}
	return nil
}

func writeRiskReport(path string, trade engine.TradeRecord, a engine.RiskAssessment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return export.WriteRiskCSV(f, []export.RiskRow{export.NewRiskRow("trade", trade, a)})
}
