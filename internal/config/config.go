// Package config loads and persists host application settings: the trader's
// skill profile, fee overrides, and simulation defaults. The engine never
// reads these itself; the CLI converts them into explicit engine inputs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"evetrade/internal/engine"
)

// Config holds application settings (in-memory representation).
type Config struct {
	Skills     SkillsConfig     `mapstructure:"skills"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Risk       RiskConfig       `mapstructure:"risk"`
	Log        LogConfig        `mapstructure:"log"`
}

// SkillsConfig mirrors engine.SkillProfile in the settings file.
type SkillsConfig struct {
	Accounting              int     `mapstructure:"accounting"`
	BrokerRelations         int     `mapstructure:"broker_relations"`
	AdvancedBrokerRelations int     `mapstructure:"advanced_broker_relations"`
	FactionStanding         float64 `mapstructure:"faction_standing"`
	CorporationStanding     float64 `mapstructure:"corporation_standing"`
}

// SimulationConfig holds simulator defaults prefilled into the simulate form.
type SimulationConfig struct {
	Days                    int     `mapstructure:"days"`
	UndercutIntervalMinutes int     `mapstructure:"undercut_interval_minutes"`
	HoursPerDay             float64 `mapstructure:"hours_per_day"`
	AssumedTurnover         float64 `mapstructure:"assumed_turnover"`
}

// RiskConfig selects the risk scoring parameterization.
type RiskConfig struct {
	Conservative bool `mapstructure:"conservative"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	File     bool   `mapstructure:"file"`
	FilePath string `mapstructure:"file_path"`
}

// Default returns a Config with sensible defaults: an untrained character and
// the standard 7-day simulation.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Days:                    engine.DefaultSimulationDays,
			UndercutIntervalMinutes: 30,
			HoursPerDay:             engine.DefaultHoursPerDay,
			AssumedTurnover:         engine.DefaultAssumedTurnover,
		},
		Log: LogConfig{
			Level:    "info",
			Console:  true,
			FilePath: filepath.Join(DefaultConfigDir(), "logs", "evetrade.log"),
		},
	}
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "evetrade")
	}
	return filepath.Join(home, ".config", "evetrade")
}

// Load reads config.yaml from configDir (default dir when empty), applying
// EVETRADE_* environment overrides. A missing file yields the defaults.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("EVETRADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("skills.accounting", def.Skills.Accounting)
	v.SetDefault("skills.broker_relations", def.Skills.BrokerRelations)
	v.SetDefault("skills.advanced_broker_relations", def.Skills.AdvancedBrokerRelations)
	v.SetDefault("skills.faction_standing", def.Skills.FactionStanding)
	v.SetDefault("skills.corporation_standing", def.Skills.CorporationStanding)
	v.SetDefault("simulation.days", def.Simulation.Days)
	v.SetDefault("simulation.undercut_interval_minutes", def.Simulation.UndercutIntervalMinutes)
	v.SetDefault("simulation.hours_per_day", def.Simulation.HoursPerDay)
	v.SetDefault("simulation.assumed_turnover", def.Simulation.AssumedTurnover)
	v.SetDefault("risk.conservative", def.Risk.Conservative)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.console", def.Log.Console)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.file_path", def.Log.FilePath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No file yet; defaults and env overrides apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Save writes the config as YAML into configDir, creating it if needed.
func Save(cfg *Config, configDir string) error {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.Set("skills.accounting", cfg.Skills.Accounting)
	v.Set("skills.broker_relations", cfg.Skills.BrokerRelations)
	v.Set("skills.advanced_broker_relations", cfg.Skills.AdvancedBrokerRelations)
	v.Set("skills.faction_standing", cfg.Skills.FactionStanding)
	v.Set("skills.corporation_standing", cfg.Skills.CorporationStanding)
	v.Set("simulation.days", cfg.Simulation.Days)
	v.Set("simulation.undercut_interval_minutes", cfg.Simulation.UndercutIntervalMinutes)
	v.Set("simulation.hours_per_day", cfg.Simulation.HoursPerDay)
	v.Set("simulation.assumed_turnover", cfg.Simulation.AssumedTurnover)
	v.Set("risk.conservative", cfg.Risk.Conservative)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.console", cfg.Log.Console)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.file_path", cfg.Log.FilePath)

	path := filepath.Join(configDir, "config.yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SkillProfile converts the persisted skill settings into the engine's input
// type. The engine receives it as an explicit argument, never as ambient
// state.
func (c *Config) SkillProfile() engine.SkillProfile {
	return engine.SkillProfile{
		AccountingLevel:              c.Skills.Accounting,
		BrokerRelationsLevel:         c.Skills.BrokerRelations,
		AdvancedBrokerRelationsLevel: c.Skills.AdvancedBrokerRelations,
		FactionStanding:              c.Skills.FactionStanding,
		CorporationStanding:          c.Skills.CorporationStanding,
	}
}
