// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds HTTP settings for the search client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "menuprobe/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is how many times a rate-limited (HTTP 429) request is
	// retried. Zero means a single attempt.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// Restaurant identifies the restaurant whose menu the probe looks for.
type Restaurant struct {
	Name     string `json:"name" yaml:"name"`
	Location string `json:"location" yaml:"location"`
	Zip      string `json:"zip,omitempty" yaml:"zip,omitempty"`
	Address  string `json:"address,omitempty" yaml:"address,omitempty"`
}

// ProbeConfig holds settings for one probe run.
type ProbeConfig struct {
	HTTPConfig `yaml:",inline"`

	// Depth is the search tier requested for every query (default basic).
	Depth SearchDepth `json:"depth" yaml:"depth"`

	// MaxResults is the number of results requested per query (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Pause is the fixed delay after each query (default 1s).
	Pause time.Duration `json:"pause" yaml:"pause"`

	// ExcerptLimit is the number of content characters printed per result
	// before truncating (default 500).
	ExcerptLimit int `json:"excerpt_limit" yaml:"excerpt_limit"`

	// Keywords is the fixed keyword set checked against each result's content.
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Defaults for ProbeConfig fields left at their zero value.
const (
	DefaultMaxResults   = 5
	DefaultPause        = 1 * time.Second
	DefaultExcerptLimit = 500
	DefaultTimeout      = 60 * time.Second
	DefaultUserAgent    = "menuprobe/0.1"
)

// DefaultKeywords is the menu keyword set checked in result content.
var DefaultKeywords = []string{"menu", "price", "$", "calories", "dish", "appetizer", "entree"}

// DefaultRestaurant is the restaurant probed when no plan overrides it.
var DefaultRestaurant = Restaurant{
	Name:     "The Bite",
	Location: "San Francisco",
	Zip:      "94109",
	Address:  "996 Mission St",
}

// WithDefaults returns a copy of c with zero-valued fields filled in. Pause
// is kept as given so callers can disable it; a negative pause becomes zero.
func (c ProbeConfig) WithDefaults() ProbeConfig {
	if c.Depth == "" {
		c.Depth = DepthBasic
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.Pause < 0 {
		c.Pause = 0
	}
	if c.ExcerptLimit <= 0 {
		c.ExcerptLimit = DefaultExcerptLimit
	}
	if len(c.Keywords) == 0 {
		c.Keywords = append([]string(nil), DefaultKeywords...)
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}
