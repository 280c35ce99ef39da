package extract

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed overrides.yaml
var overridesYAML []byte

// PeriodOverride is a hardcoded event period in epoch seconds
type PeriodOverride struct {
	OpenedAt int64 `yaml:"opened_at"`
	ClosedAt int64 `yaml:"closed_at"`
}

// Overrides maps page URLs to payloads that replace rule-based extraction
type Overrides struct {
	Periods       map[string]PeriodOverride `yaml:"periods"`
	ExchangeItems map[string][]string       `yaml:"exchange_items"`
}

// LoadOverrides parses an override document
func LoadOverrides(data []byte) (*Overrides, error) {
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parsing overrides: %w", err)
	}

	if o.Periods == nil {
		o.Periods = make(map[string]PeriodOverride)
	}
	if o.ExchangeItems == nil {
		o.ExchangeItems = make(map[string][]string)
	}

	return &o, nil
}

var (
	defaultOverrides     *Overrides
	defaultOverridesOnce sync.Once
)

// DefaultOverrides returns the override tables compiled into the binary
func DefaultOverrides() *Overrides {
	defaultOverridesOnce.Do(func() {
		o, err := LoadOverrides(overridesYAML)
		if err != nil {
			panic(err)
		}
		defaultOverrides = o
	})
	return defaultOverrides
}

// Period returns the hardcoded period for url, if any
func (o *Overrides) Period(url string) (PeriodOverride, bool) {
	if o == nil {
		return PeriodOverride{}, false
	}
	p, ok := o.Periods[url]
	return p, ok
}

// Exchange returns the hardcoded exchange item list for url, if any
func (o *Overrides) Exchange(url string) ([]string, bool) {
	if o == nil {
		return nil, false
	}
	items, ok := o.ExchangeItems[url]
	return items, ok
}
