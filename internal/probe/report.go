// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package probe

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/menuprobe/pkg/types"
)

const (
	bannerWidth  = 80
	notAvailable = "N/A"
)

// Reporter renders the progress of a probe run.
type Reporter interface {
	Start(r types.Restaurant, queries []Query)
	Begin(q Query, depth types.SearchDepth)
	Result(q Query, depth types.SearchDepth, resp *types.Response)
	Failure(q Query, err error)
	Finish(s RunSummary)
}

// MatchKeywords returns the keywords that occur in content, compared
// case-insensitively as substrings, in keyword order.
func MatchKeywords(content string, keywords []string) []string {
	lower := strings.ToLower(content)
	var found []string
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

// Excerpt returns the first limit characters of content and the content's
// full length in characters. truncated reports whether anything was cut.
func Excerpt(content string, limit int) (excerpt string, length int, truncated bool) {
	runes := []rune(content)
	if limit <= 0 || len(runes) <= limit {
		return content, len(runes), false
	}
	return string(runes[:limit]), len(runes), true
}

// TextReporter writes the human-readable report.
type TextReporter struct {
	W            io.Writer
	MaxResults   int
	ExcerptLimit int
	Keywords     []string

	started bool
}

// NewTextReporter returns a TextReporter configured from cfg.
func NewTextReporter(w io.Writer, cfg types.ProbeConfig) *TextReporter {
	cfg = cfg.WithDefaults()
	return &TextReporter{
		W:            w,
		MaxResults:   cfg.MaxResults,
		ExcerptLimit: cfg.ExcerptLimit,
		Keywords:     cfg.Keywords,
	}
}

// Start prints the header for one restaurant. A run over several restaurants
// calls it once per restaurant.
func (p *TextReporter) Start(r types.Restaurant, queries []Query) {
	if p.started {
		fmt.Fprintln(p.W)
	}
	p.started = true
	fmt.Fprintln(p.W, "Testing Tavily queries for restaurant menu extraction")
	fmt.Fprintf(p.W, "Restaurant: %s\n", r.Name)
	if r.Zip != "" {
		fmt.Fprintf(p.W, "Location: %s, %s\n", r.Location, r.Zip)
	} else {
		fmt.Fprintf(p.W, "Location: %s\n", r.Location)
	}
}

// Begin prints the banner naming the strategy, the query and its search depth.
func (p *TextReporter) Begin(q Query, depth types.SearchDepth) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(p.W, "\n%s\n", rule)
	switch {
	case q.Strategy != "" && q.Description != "":
		fmt.Fprintf(p.W, "STRATEGY: %s (%s)\n", q.Strategy, q.Description)
	case q.Strategy != "":
		fmt.Fprintf(p.W, "STRATEGY: %s\n", q.Strategy)
	}
	fmt.Fprintf(p.W, "QUERY: %s\nSEARCH DEPTH: %s\n%s\n\n", q.Text, depth, rule)
}

// Result prints the result count and up to MaxResults result blocks.
func (p *TextReporter) Result(q Query, depth types.SearchDepth, resp *types.Response) {
	var results []types.Result
	if resp != nil {
		results = resp.Results
	}
	fmt.Fprintf(p.W, "Results found: %d\n", len(results))

	for i, r := range results {
		if p.MaxResults > 0 && i >= p.MaxResults {
			break
		}
		p.printResult(i+1, r)
	}
}

func (p *TextReporter) printResult(n int, r types.Result) {
	fmt.Fprintf(p.W, "\n--- Result %d ---\n", n)
	fmt.Fprintf(p.W, "Title: %s\n", orNA(r.Title))
	fmt.Fprintf(p.W, "URL: %s\n", orNA(r.URL))
	fmt.Fprintf(p.W, "Score: %s\n", formatScore(r.Score))

	excerpt, length, truncated := Excerpt(r.Content, p.ExcerptLimit)
	fmt.Fprintf(p.W, "\nContent (%d chars):\n%s\n", length, excerpt)
	if truncated {
		fmt.Fprintf(p.W, "\n... (truncated, total %d chars)\n", length)
	}

	if found := MatchKeywords(r.Content, p.Keywords); len(found) > 0 {
		fmt.Fprintf(p.W, "\nFound keywords: %s\n", strings.Join(found, ", "))
	}

	fmt.Fprintf(p.W, "\n%s\n", strings.Repeat("-", bannerWidth))
}

func (p *TextReporter) Failure(q Query, err error) {
	fmt.Fprintf(p.W, "Error with query: %s\n", q.Text)
	fmt.Fprintf(p.W, "Error: %v\n\n", err)
}

func (p *TextReporter) Finish(RunSummary) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(p.W, "\n%s\nTesting complete!\n%s\n", rule, rule)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// formatScore prints a score the way the API's JSON floats read: whole
// numbers keep a trailing ".0".
func formatScore(score *float64) string {
	if score == nil {
		return notAvailable
	}
	v := *score
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !math.IsNaN(v) && !math.IsInf(v, 0) && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// JSONReporter writes one JSON document per query.
type JSONReporter struct {
	W        io.Writer
	Keywords []string
}

// NewJSONReporter returns a JSONReporter configured from cfg.
func NewJSONReporter(w io.Writer, cfg types.ProbeConfig) *JSONReporter {
	cfg = cfg.WithDefaults()
	return &JSONReporter{W: w, Keywords: cfg.Keywords}
}

type jsonRecord struct {
	Restaurant string            `json:"restaurant,omitempty"`
	Strategy   string            `json:"strategy"`
	Query      string            `json:"query"`
	Depth      types.SearchDepth `json:"depth,omitempty"`
	Response   *types.Response   `json:"response,omitempty"`
	Keywords   [][]string        `json:"keywords,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func (p *JSONReporter) Start(types.Restaurant, []Query) {}

func (p *JSONReporter) Begin(Query, types.SearchDepth) {}

func (p *JSONReporter) Result(q Query, depth types.SearchDepth, resp *types.Response) {
	rec := jsonRecord{Restaurant: q.Restaurant, Strategy: q.Strategy, Query: q.Text, Depth: depth, Response: resp}
	if resp != nil && len(resp.Results) > 0 {
		// Keywords[i] lists the matches in Response.Results[i].
		rec.Keywords = make([][]string, len(resp.Results))
		for i, r := range resp.Results {
			rec.Keywords[i] = MatchKeywords(r.Content, p.Keywords)
		}
	}
	p.encode(rec)
}

func (p *JSONReporter) Failure(q Query, err error) {
	p.encode(jsonRecord{Restaurant: q.Restaurant, Strategy: q.Strategy, Query: q.Text, Error: err.Error()})
}

func (p *JSONReporter) Finish(RunSummary) {}

func (p *JSONReporter) encode(rec jsonRecord) {
	enc := json.NewEncoder(p.W)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		fmt.Fprintf(p.W, `{"error":%q}`+"\n", err.Error())
	}
}
