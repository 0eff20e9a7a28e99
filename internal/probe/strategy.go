// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package probe

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/menuprobe/pkg/types"
)

// Strategy is a named query phrasing. Template is a text/template over
// types.Restaurant fields ({{.Name}}, {{.Location}}, {{.Zip}}, {{.Address}}).
type Strategy struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Template    string `yaml:"template"`
}

// Query is a strategy rendered for one restaurant.
type Query struct {
	Restaurant  string
	Strategy    string
	Description string
	Text        string
}

// DefaultStrategies returns the six phrasings probed by a default run:
// a site-restricted delivery search, a PDF search, two aggregator-site
// searches, a street-address search and a multi-platform search.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{
			Name:        "doordash_store",
			Description: "DoorDash store page",
			Template:    `"{{.Name}}" "{{.Location}}" site:doordash.com/store`,
		},
		{
			Name:        "menu_pdf",
			Description: "PDF menus",
			Template:    `{{.Name}} {{.Location}} menu PDF`,
		},
		{
			Name:        "allmenus",
			Description: "Menu aggregator: allmenus.com",
			Template:    `{{.Name}} {{.Location}} menu allmenus.com`,
		},
		{
			Name:        "menupages",
			Description: "Menu aggregator: menupages.com",
			Template:    `{{.Name}} {{.Location}} menu menupages.com`,
		},
		{
			Name:        "street_address",
			Description: "Street address",
			Template:    `{{.Name}} {{.Address}} {{.Location}} menu`,
		},
		{
			Name:        "multi_platform",
			Description: "Delivery platforms",
			Template:    `"{{.Name}}" "{{.Location}}" (site:ubereats.com OR site:grubhub.com OR site:doordash.com)`,
		},
	}
}

// Render executes the strategy template for r. Runs of whitespace left by
// empty fields collapse to a single space.
func (s Strategy) Render(r types.Restaurant) (string, error) {
	tmpl, err := template.New(s.Name).Option("missingkey=error").Parse(s.Template)
	if err != nil {
		return "", fmt.Errorf("parsing strategy %q: %w", s.Name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("rendering strategy %q: %w", s.Name, err)
	}
	text := strings.Join(strings.Fields(buf.String()), " ")
	if text == "" {
		return "", fmt.Errorf("strategy %q rendered an empty query", s.Name)
	}
	return text, nil
}

// BuildQueries renders every strategy for r in order. Strategy names must be
// unique.
func BuildQueries(r types.Restaurant, strategies []Strategy) ([]Query, error) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("restaurant name is required")
	}
	if len(strategies) == 0 {
		return nil, fmt.Errorf("no query strategies configured")
	}

	seen := make(map[string]bool, len(strategies))
	queries := make([]Query, 0, len(strategies))
	for i, s := range strategies {
		if s.Name == "" {
			return nil, fmt.Errorf("strategy %d has no name", i+1)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate strategy name %q", s.Name)
		}
		seen[s.Name] = true

		text, err := s.Render(r)
		if err != nil {
			return nil, err
		}
		queries = append(queries, Query{
			Restaurant:  r.Name,
			Strategy:    s.Name,
			Description: s.Description,
			Text:        text,
		})
	}
	return queries, nil
}
