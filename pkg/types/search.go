// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the menuprobe CLI,
// the probe runner and the search client.
package types

import (
	"fmt"
	"strings"
)

// SearchDepth is the quality/cost tier offered by the search API.
type SearchDepth string

const (
	DepthBasic    SearchDepth = "basic"
	DepthAdvanced SearchDepth = "advanced"
)

// ParseSearchDepth normalizes s and rejects anything other than basic or
// advanced. An empty string yields DepthBasic.
func ParseSearchDepth(s string) (SearchDepth, error) {
	switch SearchDepth(strings.ToLower(strings.TrimSpace(s))) {
	case "", DepthBasic:
		return DepthBasic, nil
	case DepthAdvanced:
		return DepthAdvanced, nil
	default:
		return "", fmt.Errorf("invalid search depth %q: want basic or advanced", s)
	}
}

// Result is one entry in a search response.
type Result struct {
	// Title is the page title. Empty when the API omitted it.
	Title string `json:"title" yaml:"title"`

	// URL is the address of the matched page.
	URL string `json:"url" yaml:"url"`

	// Score is the relevance score assigned by the search API. It is nil
	// when the API did not report one.
	Score *float64 `json:"score,omitempty" yaml:"score,omitempty"`

	// Content is the text body the API extracted for the page.
	Content string `json:"content" yaml:"content"`
}

// Response is a decoded search response. It lives for one print loop.
type Response struct {
	Query        string   `json:"query" yaml:"query"`
	Answer       string   `json:"answer,omitempty" yaml:"answer,omitempty"`
	Results      []Result `json:"results" yaml:"results"`
	ResponseTime float64  `json:"response_time" yaml:"response_time"`
}
