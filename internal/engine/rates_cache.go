package engine

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// RatesCache memoizes CalcEffectiveRates, keyed purely by SkillProfile value.
// A singleflight.Group deduplicates concurrent computes for the same profile.
// Because the key is the full input value, a cached result can never be stale
// for a different profile; callers that change skills simply hit a new key.
type RatesCache struct {
	mu    sync.RWMutex
	rates map[SkillProfile]EffectiveRates
	group singleflight.Group
}

// NewRatesCache creates an empty rates cache.
func NewRatesCache() *RatesCache {
	return &RatesCache{rates: make(map[SkillProfile]EffectiveRates)}
}

// EffectiveRates returns the memoized rates for the profile, computing them
// on first use.
func (c *RatesCache) EffectiveRates(skills SkillProfile) EffectiveRates {
	c.mu.RLock()
	r, ok := c.rates[skills]
	c.mu.RUnlock()
	if ok {
		return r
	}

	v, _, _ := c.group.Do(ratesKey(skills), func() (interface{}, error) {
		computed := CalcEffectiveRates(skills)
		c.mu.Lock()
		c.rates[skills] = computed
		c.mu.Unlock()
		return computed, nil
	})
	return v.(EffectiveRates)
}

// Len reports how many distinct profiles have been memoized.
func (c *RatesCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rates)
}

// ratesKey builds the singleflight key. SkillProfile is comparable, but the
// group wants a string key.
func ratesKey(s SkillProfile) string {
	return fmt.Sprintf("%d|%d|%d|%g|%g",
		s.AccountingLevel, s.BrokerRelationsLevel, s.AdvancedBrokerRelationsLevel,
		s.FactionStanding, s.CorporationStanding)
}
