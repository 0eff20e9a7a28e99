// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package probe

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/menuprobe/pkg/types"
)

// Plan is the on-disk description of what to probe. A plan names either one
// restaurant (restaurant:) or several (restaurants:). Fields left empty fall
// back to the default restaurant and the default strategies.
type Plan struct {
	Restaurant  types.Restaurant   `yaml:"restaurant,omitempty"`
	Restaurants []types.Restaurant `yaml:"restaurants,omitempty"`
	Keywords    []string           `yaml:"keywords,omitempty"`
	Strategies  []Strategy         `yaml:"strategies,omitempty"`
}

// Target is one restaurant together with its rendered queries.
type Target struct {
	Restaurant types.Restaurant
	Queries    []Query
}

// DefaultPlan returns the plan a run uses when no plan file is given.
func DefaultPlan() Plan {
	return Plan{
		Restaurant: types.DefaultRestaurant,
		Keywords:   append([]string(nil), types.DefaultKeywords...),
		Strategies: DefaultStrategies(),
	}
}

// ReadPlan loads a plan file and fills unset parts from DefaultPlan. Every
// restaurant the plan names must have a name and a location; a plan without
// restaurants probes the default one.
func ReadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("reading plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("parsing plan file %s: %w", path, err)
	}
	if p.Restaurant != (types.Restaurant{}) && len(p.Restaurants) > 0 {
		return Plan{}, fmt.Errorf("plan file %s: set restaurant or restaurants, not both", path)
	}

	p = p.withDefaults()
	for i, r := range p.RestaurantList() {
		if r.Name == "" {
			return Plan{}, fmt.Errorf("plan file %s: restaurant %d has no name", path, i+1)
		}
		if r.Location == "" {
			return Plan{}, fmt.Errorf("plan file %s: restaurant %q has no location", path, r.Name)
		}
	}
	return p, nil
}

// WritePlan saves p as YAML.
func WritePlan(path string, p Plan) error {
	data, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// RestaurantList returns the restaurants to probe, in plan order.
func (p Plan) RestaurantList() []types.Restaurant {
	if len(p.Restaurants) > 0 {
		return p.Restaurants
	}
	return []types.Restaurant{p.Restaurant}
}

// Targets renders the plan's strategies for each of its restaurants.
func (p Plan) Targets() ([]Target, error) {
	var targets []Target
	for _, r := range p.RestaurantList() {
		queries, err := BuildQueries(r, p.Strategies)
		if err != nil {
			return nil, err
		}
		targets = append(targets, Target{Restaurant: r, Queries: queries})
	}
	return targets, nil
}

// CountQueries returns the total number of queries across targets.
func CountQueries(targets []Target) int {
	n := 0
	for _, t := range targets {
		n += len(t.Queries)
	}
	return n
}

func (p Plan) withDefaults() Plan {
	def := DefaultPlan()
	if p.Restaurant.Name == "" && len(p.Restaurants) == 0 {
		p.Restaurant = def.Restaurant
	}
	if len(p.Keywords) == 0 {
		p.Keywords = def.Keywords
	}
	if len(p.Strategies) == 0 {
		p.Strategies = def.Strategies
	}
	return p
}
