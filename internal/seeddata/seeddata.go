// Package seeddata loads the project and proposal records the seeder writes.
package seeddata

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/bidentry/internal/config"
)

// Module provides the seed set selected by configuration.
var Module = fx.Provide(FromConfig)

// Data is an ordered set of records for each seeded table.
type Data struct {
	Projects  []Project  `yaml:"project" validate:"dive"`
	Proposals []Proposal `yaml:"proposal" validate:"dive"`
}

// Project is a single seed row for the project table.
type Project struct {
	Name string `yaml:"name" validate:"max=255"`
}

// Proposal is a single seed row for the proposal table.
//
// Diversity, Union and PrevBidder are read from seed files but have no
// column; the seeder never writes them.
type Proposal struct {
	CompanyName  string  `yaml:"companyName" validate:"max=255"`
	ContactName  string  `yaml:"contactName" validate:"max=255"`
	Address      string  `yaml:"address" validate:"max=255"`
	City         string  `yaml:"city" validate:"max=255"`
	State        string  `yaml:"state" validate:"max=255"`
	Zip          ZipCode `yaml:"zip" validate:"omitempty,zipcode"`
	EmailAddress string  `yaml:"emailAddress" validate:"omitempty,email,max=255"`
	PhoneNumber  string  `yaml:"phoneNumber" validate:"max=255"`

	Diversity  any `yaml:"diversity,omitempty"`
	Union      any `yaml:"union,omitempty"`
	PrevBidder any `yaml:"prevBidder,omitempty"`
}

// HasUnstoredFields reports whether the record carries any field that is
// accepted but not persisted.
func (p Proposal) HasUnstoredFields() bool {
	return p.Diversity != nil || p.Union != nil || p.PrevBidder != nil
}

// FromConfig loads seed data from cfg.Seed.File, falling back to the
// embedded set, and validates it when strict mode is on.
func FromConfig(cfg config.Config) (Data, error) {
	data, err := Load(cfg.Seed.File)
	if err != nil {
		return Data{}, err
	}
	if cfg.Seed.Strict {
		if err := Validate(data); err != nil {
			return Data{}, err
		}
	}
	return data, nil
}
