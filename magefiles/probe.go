//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Probe runs the default probe with the built binary. It needs a Tavily key
// in TAVILY_API_KEY, .env or .secrets/tavily-api-key.
func Probe() error {
	mg.Deps(Build)
	return sh.RunV("bin/menuprobe", "run")
}

// Queries lists the queries a default probe would send, without calling the API.
func Queries() error {
	mg.Deps(Build)
	return sh.RunV("bin/menuprobe", "queries")
}
