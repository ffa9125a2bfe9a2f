package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"evetrade/internal/engine"
)

// skillFlags registers the skill override flags shared by analysis commands,
// defaulting to the configured profile.
func skillFlags(cmd *cobra.Command, app *App) {
	s := app.Config.Skills
	cmd.Flags().Int("accounting", s.Accounting, "Accounting skill level (0-5)")
	cmd.Flags().Int("broker-relations", s.BrokerRelations, "Broker Relations skill level (0-5)")
	cmd.Flags().Int("advanced-broker", s.AdvancedBrokerRelations, "Advanced Broker Relations skill level (0-5)")
	cmd.Flags().Float64("faction-standing", s.FactionStanding, "faction standing (-10 to 10)")
	cmd.Flags().Float64("corp-standing", s.CorporationStanding, "corporation standing (-10 to 10)")
}

// skillProfile reads the skill flags back into an engine profile.
func skillProfile(cmd *cobra.Command) engine.SkillProfile {
	accounting, _ := cmd.Flags().GetInt("accounting")
	broker, _ := cmd.Flags().GetInt("broker-relations")
	advanced, _ := cmd.Flags().GetInt("advanced-broker")
	faction, _ := cmd.Flags().GetFloat64("faction-standing")
	corp, _ := cmd.Flags().GetFloat64("corp-standing")
	return engine.SkillProfile{
		AccountingLevel:              accounting,
		BrokerRelationsLevel:         broker,
		AdvancedBrokerRelationsLevel: advanced,
		FactionStanding:              faction,
		CorporationStanding:          corp,
	}
}

func newRatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show effective fee rates for a skill profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			skills := skillProfile(cmd)
			rates := app.Rates.EffectiveRates(skills)
			app.Logger.Debug().
				Int("accounting", skills.AccountingLevel).
				Int("broker_relations", skills.BrokerRelationsLevel).
				Msg("computed effective rates")

			if jsonOutput(cmd) {
				return printJSON(cmd, rates)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sales tax:   %s  (base %s)\n", FormatRate(rates.SalesTaxRate), FormatRate(engine.BaseSalesTaxRate))
			fmt.Fprintf(out, "Broker fee:  %s  (base %s)\n", FormatRate(rates.BrokerFeeRate), FormatRate(engine.BaseBrokerFeeRate))
			fmt.Fprintf(out, "Relist fee:  %s  (base %s)\n", FormatRate(rates.RelistFeeRate), FormatRate(engine.BaseRelistFeeRate))
			return nil
		},
	}
	skillFlags(cmd, app)
	return cmd
}
