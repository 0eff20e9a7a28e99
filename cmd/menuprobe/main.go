// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the menuprobe CLI. menuprobe sends a
// fixed set of restaurant-menu queries to the Tavily search API and prints
// the raw results for manual inspection.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/menuprobe/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the menuprobe CLI.
var rootCmd = &cobra.Command{
	Use:   "menuprobe",
	Short: "Probe a web-search API for restaurant menu data",
	Long: `menuprobe issues a handful of search queries against the Tavily API to see
whether a restaurant's menu can be found with different phrasings: delivery
site searches, PDF searches and menu aggregator searches.

Results are printed for manual inspection together with a simple menu keyword
check. Nothing is stored, ranked or deduplicated.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(viper.GetString("log_level")); err != nil {
			return err
		}

		if err := secrets.LoadDotEnv(viper.GetString("env_file")); err != nil {
			return err
		}

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logrus.WithField("keys", keys).Debug("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./menuprobe.yaml or ~/.config/menuprobe/config.yaml)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("secrets-dir", ".secrets", "directory of secret files (tavily-api-key)")
	pf.String("env-file", ".env", "dotenv file loaded before reading TAVILY_API_KEY")

	for key, name := range map[string]string{
		"log_level":   "log-level",
		"secrets_dir": "secrets-dir",
		"env_file":    "env-file",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("menuprobe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "menuprobe"))
		}
	}

	viper.SetEnvPrefix("MENUPROBE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogging sends logrus output to stderr so stdout carries only the report.
func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
