// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the litfetch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/litfetch/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// ncbiAPIKey returns the NCBI E-utilities key from .secrets/, if present.
func ncbiAPIKey() string {
	return loadedSecrets["ncbi-api-key"]
}

// rootCmd is the base command for the litfetch CLI.
var rootCmd = &cobra.Command{
	Use:   "litfetch",
	Short: "Fetch PubMed article metadata and full text as flat text documents",
	Long: `litfetch retrieves bibliographic metadata for PubMed identifiers and, where
possible, full article text, then writes one flat text document per identifier.

Full text is best effort: PubMed Central structured records are tried first,
then DOI resolution to publisher pages; when neither yields usable content
the document carries the abstract alone. Companion subcommands search PubMed
for identifier lists and maintain a local full-text index over fetched
documents.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./litfetch.yaml or ~/.config/litfetch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("litfetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "litfetch"))
		}
	}

	viper.SetEnvPrefix("LITFETCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
