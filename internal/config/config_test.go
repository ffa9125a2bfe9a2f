package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Skills.Accounting)
	assert.Equal(t, 7, cfg.Simulation.Days)
	assert.Equal(t, 30, cfg.Simulation.UndercutIntervalMinutes)
	assert.Equal(t, 24.0, cfg.Simulation.HoursPerDay)
	assert.Equal(t, 1.0, cfg.Simulation.AssumedTurnover)
	assert.False(t, cfg.Risk.Conservative)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Skills.Accounting = 5
	cfg.Skills.BrokerRelations = 3
	cfg.Skills.FactionStanding = 4.7
	cfg.Simulation.Days = 14
	cfg.Risk.Conservative = true

	require.NoError(t, Save(cfg, dir))
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Skills.Accounting)
	assert.Equal(t, 3, loaded.Skills.BrokerRelations)
	assert.InDelta(t, 4.7, loaded.Skills.FactionStanding, 1e-9)
	assert.Equal(t, 14, loaded.Simulation.Days)
	assert.True(t, loaded.Risk.Conservative)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("EVETRADE_SKILLS_ACCOUNTING", "4")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Skills.Accounting)
}

func TestSkillProfileConversion(t *testing.T) {
	cfg := Default()
	cfg.Skills = SkillsConfig{
		Accounting:              5,
		BrokerRelations:         4,
		AdvancedBrokerRelations: 3,
		FactionStanding:         2.5,
		CorporationStanding:     -1,
	}

	p := cfg.SkillProfile()
	assert.Equal(t, 5, p.AccountingLevel)
	assert.Equal(t, 4, p.BrokerRelationsLevel)
	assert.Equal(t, 3, p.AdvancedBrokerRelationsLevel)
	assert.InDelta(t, 2.5, p.FactionStanding, 1e-9)
	assert.InDelta(t, -1.0, p.CorporationStanding, 1e-9)
}
