// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--secrets-dir", t.TempDir(), "--env-file", filepath.Join(t.TempDir(), ".env")))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestQueriesCommand(t *testing.T) {
	out, err := execute(t, "queries", "--plan", "")
	require.NoError(t, err)

	assert.Contains(t, out, "Restaurant: The Bite (San Francisco)")
	assert.Contains(t, out, `1. [doordash_store] "The Bite" "San Francisco" site:doordash.com/store`)
	assert.Contains(t, out, "5. [street_address] The Bite 996 Mission St San Francisco menu")
	assert.Contains(t, out, "6 queries")
}

func TestQueriesCommandWritesPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	_, err := execute(t, "queries", "--plan", "", "--write-plan", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: The Bite")
	assert.Contains(t, string(data), "template:")
}

func TestQueriesCommandMultipleRestaurants(t *testing.T) {
	plan := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte(`restaurants:
  - name: The Bite
    location: San Francisco
    address: 996 Mission St
  - name: Kitava
    location: Oakland
`), 0o644))

	out, err := execute(t, "queries", "--plan", plan)
	require.NoError(t, err)

	assert.Contains(t, out, "Restaurant: The Bite (San Francisco)")
	assert.Contains(t, out, "Restaurant: Kitava (Oakland)")
	assert.Contains(t, out, "2. [menu_pdf] Kitava Oakland menu PDF")
	assert.Contains(t, out, "12 queries")
	assert.Less(t, strings.Index(out, "The Bite (San Francisco)"), strings.Index(out, "Kitava (Oakland)"))
}

func TestRunAgainstStubAPI(t *testing.T) {
	var mu sync.Mutex
	var got []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query       string `json:"query"`
			SearchDepth string `json:"search_depth"`
			MaxResults  int    `json:"max_results"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		got = append(got, body.Query)
		n := len(got)
		mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer tvly-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if n == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"detail":"upstream failure"}`)
			return
		}
		fmt.Fprintf(w, `{"query":%q,"results":[{"title":"Menu","url":"https://example.com/menu","content":"menu $9","score":0.5}]}`, body.Query)
	}))
	defer ts.Close()
	t.Setenv("MENUPROBE_TAVILY_ENDPOINT", ts.URL)

	out, err := execute(t, "run", "--plan", "", "--api-key", "tvly-test", "--pause", "0s", "--dry-run=false", "--json=false")
	require.NoError(t, err, "partial failure still exits zero")

	mu.Lock()
	assert.Len(t, got, 6)
	mu.Unlock()

	assert.Equal(t, 6, strings.Count(out, "QUERY: "))
	assert.Equal(t, 5, strings.Count(out, "Results found: 1"))
	assert.Contains(t, out, "Error: Tavily API returned HTTP 500: upstream failure")
	assert.Contains(t, out, "Found keywords: menu, $")
	assert.Contains(t, out, "Testing complete!")
}

func TestRunDryRunNeedsNoKey(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "")
	out, err := execute(t, "run", "--plan", "", "--api-key", "", "--dry-run", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "6 queries")
	assert.NotContains(t, out, "QUERY:")
}

func TestRunMissingKey(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "")
	_, err := execute(t, "run", "--plan", "", "--api-key", "", "--dry-run=false", "--json=false")
	assert.ErrorContains(t, err, "no Tavily API key")
}

func TestRunRejectsBadDepth(t *testing.T) {
	_, err := execute(t, "run", "--plan", "", "--depth", "deep", "--dry-run", "--json=false")
	assert.ErrorContains(t, err, "invalid search depth")

	// Reset for later tests sharing rootCmd.
	_, err = execute(t, "run", "--depth", "basic", "--dry-run")
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "menuprobe dev\n", out)
}
