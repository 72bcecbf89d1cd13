package procgen

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/inventory"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

//go:embed content.yaml
var defaultContent []byte

// WeaponTheme is the naming and shape table for one focus.
type WeaponTheme struct {
	Names       []string               `yaml:"names"`
	Slots       []inventory.WeaponSlot `yaml:"slots"`
	DamageTypes []stats.DamageType     `yaml:"damage_types"`
}

// HybridEntry is the display name and animation of one hybrid combination.
type HybridEntry struct {
	Name      string `yaml:"name"`
	Animation string `yaml:"animation"`
}

// VehicleEntry is one vehicle template.
type VehicleEntry struct {
	Name       string   `yaml:"name"`
	TravelTech []string `yaml:"travel_tech"`
}

// Content holds every name table the generator draws from.
type Content struct {
	Weapons   map[stats.Affinity]WeaponTheme                    `yaml:"weapons"`
	Armor     map[stats.Affinity]map[inventory.ArmorSlot]string `yaml:"armor"`
	Abilities map[stats.Affinity]map[ability.Category][]string  `yaml:"abilities"`
	// Hybrids is keyed by "PRIMARY_SECONDARY" then by upper-case category.
	Hybrids     map[string]map[string]HybridEntry `yaml:"hybrids"`
	Enemies     map[stats.Affinity][]string       `yaml:"enemies"`
	Implants    []string                          `yaml:"implants"`
	Relics      map[stats.Affinity]string         `yaml:"relics"`
	Vehicles    []VehicleEntry                    `yaml:"vehicles"`
	Consumables []string                          `yaml:"consumables"`
}

// Validate checks that every table the generator indexes is populated.
//
// Postcondition: returns nil iff every affinity has weapons, armor for all
// slots, enemy names and a relic, and the flat lists are non-empty.
func (c *Content) Validate() error {
	var errs []error
	for _, a := range stats.AllAffinities {
		w, ok := c.Weapons[a]
		if !ok || len(w.Names) == 0 || len(w.Slots) == 0 || len(w.DamageTypes) == 0 {
			errs = append(errs, fmt.Errorf("weapons.%s must list names, slots and damage_types", a))
		}
		for _, slot := range inventory.ArmorSlots {
			if c.Armor[a][slot] == "" {
				errs = append(errs, fmt.Errorf("armor.%s.%s must not be empty", a, slot))
			}
		}
		if len(c.Enemies[a]) == 0 {
			errs = append(errs, fmt.Errorf("enemies.%s must not be empty", a))
		}
		if c.Relics[a] == "" {
			errs = append(errs, fmt.Errorf("relics.%s must not be empty", a))
		}
	}
	if len(c.Implants) == 0 {
		errs = append(errs, fmt.Errorf("implants must not be empty"))
	}
	if len(c.Vehicles) == 0 {
		errs = append(errs, fmt.Errorf("vehicles must not be empty"))
	}
	if len(c.Consumables) == 0 {
		errs = append(errs, fmt.Errorf("consumables must not be empty"))
	}
	for key, byCategory := range c.Hybrids {
		for cat, entry := range byCategory {
			if entry.Name == "" {
				errs = append(errs, fmt.Errorf("hybrids.%s.%s: name must not be empty", key, cat))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("procgen content validation failed: %v", errs)
	}
	return nil
}

// LoadContent parses and validates a content table.
//
// Postcondition: Returns validated Content, or an error.
func LoadContent(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing content YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// DefaultContent returns the built-in content table.
func DefaultContent() (*Content, error) {
	return LoadContent(defaultContent)
}
