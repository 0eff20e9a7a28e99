// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the search API key. Keys come from an explicit
// value, the environment (optionally seeded from a .env file), or a directory
// of plain-text files where the filename is the key name and the trimmed
// contents are the value.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	// TavilyKeyFile is the secrets-directory file holding the Tavily key.
	TavilyKeyFile = "tavily-api-key"

	// TavilyKeyEnv is the environment variable holding the Tavily key.
	TavilyKeyEnv = "TAVILY_API_KEY"
)

// ErrNoAPIKey is returned when no source provides a Tavily API key.
var ErrNoAPIKey = errors.New("no Tavily API key: set --api-key, " + TavilyKeyEnv + ", or .secrets/" + TavilyKeyFile)

// Source names where an API key was found.
type Source string

const (
	SourceExplicit Source = "flag/config"
	SourceEnv      Source = "environment"
	SourceFile     Source = "secrets file"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logrus.WithError(err).WithField("secret", entry.Name()).Warn("could not read secret")
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[entry.Name()] = value
		}
	}

	return secrets, nil
}

// LoadDotEnv loads variables from the .env file at path into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// APIKey returns the Tavily API key and where it came from. The explicit
// value wins, then the TAVILY_API_KEY environment variable, then the
// tavily-api-key entry of loaded.
func APIKey(explicit string, loaded map[string]string) (string, Source, error) {
	if v := strings.TrimSpace(explicit); v != "" {
		return v, SourceExplicit, nil
	}
	if v := strings.TrimSpace(os.Getenv(TavilyKeyEnv)); v != "" {
		return v, SourceEnv, nil
	}
	if v := loaded[TavilyKeyFile]; v != "" {
		return v, SourceFile, nil
	}
	return "", "", ErrNoAPIKey
}
