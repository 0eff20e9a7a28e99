//go:build mage

// Package main contains Mage build targets for menuprobe developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "menuprobe"
	cmdPkg  = "./cmd/menuprobe"
)

// Default target runs when mage is invoked without arguments.
var Default = Build

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + buildVersion()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints non-blank Go line counts per package, split into production
// and test code, using go list to find each package's files.
func Stats() error {
	pkgs, err := packageStats()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PACKAGE\tPROD\tTEST")
	var prod, test int
	for _, p := range pkgs {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", p.importPath, p.prod, p.test)
		prod += p.prod
		test += p.test
	}
	fmt.Fprintf(tw, "total\t%d\t%d\n", prod, test)
	return tw.Flush()
}

// buildVersion returns the git describe string, or "dev" outside a repo.
func buildVersion() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		return "dev"
	}
	return v
}

type pkgLines struct {
	importPath string
	prod, test int
}

// listFormat prints one tab-separated line per package: import path,
// directory, production files, then in-package and external test files.
const listFormat = `{{.ImportPath}}	{{.Dir}}	{{join .GoFiles ","}}	{{join .TestGoFiles ","}}	{{join .XTestGoFiles ","}}`

func packageStats() ([]pkgLines, error) {
	out, err := sh.Output("go", "list", "-f", listFormat, "./...")
	if err != nil {
		return nil, fmt.Errorf("go list: %w", err)
	}

	var pkgs []pkgLines
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) != 5 {
			continue
		}
		dir := fields[1]
		prod, err := nonBlankLines(dir, fields[2])
		if err != nil {
			return nil, err
		}
		test, err := nonBlankLines(dir, fields[3]+","+fields[4])
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, pkgLines{importPath: fields[0], prod: prod, test: test})
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].importPath < pkgs[j].importPath })
	return pkgs, nil
}

// nonBlankLines sums the non-blank lines of the comma-separated files in dir.
func nonBlankLines(dir, files string) (int, error) {
	n := 0
	for _, name := range strings.Split(files, ",") {
		if name == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", name, err)
		}
		for _, l := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(l) != "" {
				n++
			}
		}
	}
	return n, nil
}
