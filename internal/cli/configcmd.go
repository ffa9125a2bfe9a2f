package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"evetrade/internal/config"
)

func newConfigCmd(app *App, configDir string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change persisted settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput(cmd) {
				return printJSON(cmd, app.Config)
			}
			c := app.Config
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "skills.accounting                     %d\n", c.Skills.Accounting)
			fmt.Fprintf(out, "skills.broker_relations               %d\n", c.Skills.BrokerRelations)
			fmt.Fprintf(out, "skills.advanced_broker_relations      %d\n", c.Skills.AdvancedBrokerRelations)
			fmt.Fprintf(out, "skills.faction_standing               %g\n", c.Skills.FactionStanding)
			fmt.Fprintf(out, "skills.corporation_standing           %g\n", c.Skills.CorporationStanding)
			fmt.Fprintf(out, "simulation.days                       %d\n", c.Simulation.Days)
			fmt.Fprintf(out, "simulation.undercut_interval_minutes  %d\n", c.Simulation.UndercutIntervalMinutes)
			fmt.Fprintf(out, "simulation.hours_per_day              %g\n", c.Simulation.HoursPerDay)
			fmt.Fprintf(out, "simulation.assumed_turnover           %g\n", c.Simulation.AssumedTurnover)
			fmt.Fprintf(out, "risk.conservative                     %t\n", c.Risk.Conservative)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting and persist it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applySetting(app.Config, args[0], args[1]); err != nil {
				return err
			}
			if app.Store == nil {
				return errNoStore
			}
			if err := app.Store.SaveSettings(app.Config); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config.yaml with the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(app.Config, configDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", configDir)
			return nil
		},
	}

	cmd.AddCommand(showCmd, setCmd, initCmd)
	return cmd
}

// applySetting mutates one dotted config key from its string form.
func applySetting(c *config.Config, key, value string) error {
	atoi := func(dst *int) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s wants an integer, got %q", key, value)
		}
		*dst = v
		return nil
	}
	atof := func(dst *float64) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s wants a number, got %q", key, value)
		}
		*dst = v
		return nil
	}

	switch key {
	case "skills.accounting":
		return atoi(&c.Skills.Accounting)
	case "skills.broker_relations":
		return atoi(&c.Skills.BrokerRelations)
	case "skills.advanced_broker_relations":
		return atoi(&c.Skills.AdvancedBrokerRelations)
	case "skills.faction_standing":
		return atof(&c.Skills.FactionStanding)
	case "skills.corporation_standing":
		return atof(&c.Skills.CorporationStanding)
	case "simulation.days":
		return atoi(&c.Simulation.Days)
	case "simulation.undercut_interval_minutes":
		return atoi(&c.Simulation.UndercutIntervalMinutes)
	case "simulation.hours_per_day":
		return atof(&c.Simulation.HoursPerDay)
	case "simulation.assumed_turnover":
		return atof(&c.Simulation.AssumedTurnover)
	case "risk.conservative":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s wants true or false, got %q", key, value)
		}
		c.Risk.Conservative = v
		return nil
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
}
