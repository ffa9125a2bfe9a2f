package store

import (
	"fmt"
	"strconv"

	"evetrade/internal/config"
)

// LoadSettings overlays persisted settings onto base. Keys absent from the
// database keep their base values; base itself is not mutated.
func (s *Store) LoadSettings(base *config.Config) *config.Config {
	if base == nil {
		base = config.Default()
	}
	copied := *base
	cfg := &copied

	rows, err := s.sql.Query("SELECT key, value FROM settings")
	if err != nil {
		return cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	if v, ok := m["skills.accounting"]; ok {
		cfg.Skills.Accounting, _ = strconv.Atoi(v)
	}
	if v, ok := m["skills.broker_relations"]; ok {
		cfg.Skills.BrokerRelations, _ = strconv.Atoi(v)
	}
	if v, ok := m["skills.advanced_broker_relations"]; ok {
		cfg.Skills.AdvancedBrokerRelations, _ = strconv.Atoi(v)
	}
	if v, ok := m["skills.faction_standing"]; ok {
		cfg.Skills.FactionStanding, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["skills.corporation_standing"]; ok {
		cfg.Skills.CorporationStanding, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["simulation.days"]; ok {
		cfg.Simulation.Days, _ = strconv.Atoi(v)
	}
	if v, ok := m["simulation.undercut_interval_minutes"]; ok {
		cfg.Simulation.UndercutIntervalMinutes, _ = strconv.Atoi(v)
	}
	if v, ok := m["simulation.hours_per_day"]; ok {
		cfg.Simulation.HoursPerDay, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["simulation.assumed_turnover"]; ok {
		cfg.Simulation.AssumedTurnover, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["risk.conservative"]; ok {
		cfg.Risk.Conservative, _ = strconv.ParseBool(v)
	}

	return cfg
}

// SaveSettings writes the full settings map in one transaction.
func (s *Store) SaveSettings(cfg *config.Config) error {
	tx, err := s.sql.Begin()
	if err != nil {
		return fmt.Errorf("begin settings tx: %w", err)
	}
	defer tx.Rollback()

	pairs := map[string]string{
		"skills.accounting":                    strconv.Itoa(cfg.Skills.Accounting),
		"skills.broker_relations":              strconv.Itoa(cfg.Skills.BrokerRelations),
		"skills.advanced_broker_relations":     strconv.Itoa(cfg.Skills.AdvancedBrokerRelations),
		"skills.faction_standing":              strconv.FormatFloat(cfg.Skills.FactionStanding, 'g', -1, 64),
		"skills.corporation_standing":          strconv.FormatFloat(cfg.Skills.CorporationStanding, 'g', -1, 64),
		"simulation.days":                      strconv.Itoa(cfg.Simulation.Days),
		"simulation.undercut_interval_minutes": strconv.Itoa(cfg.Simulation.UndercutIntervalMinutes),
		"simulation.hours_per_day":             strconv.FormatFloat(cfg.Simulation.HoursPerDay, 'g', -1, 64),
		"simulation.assumed_turnover":          strconv.FormatFloat(cfg.Simulation.AssumedTurnover, 'g', -1, 64),
		"risk.conservative":                    strconv.FormatBool(cfg.Risk.Conservative),
	}
	for k, v := range pairs {
		if _, err := tx.Exec(
			"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			k, v,
		); err != nil {
			return fmt.Errorf("save setting %s: %w", k, err)
		}
	}
	return tx.Commit()
}
