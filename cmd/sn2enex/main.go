// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sn2enex CLI.
//
// sn2enex converts a Simplenote JSON export into the ENEX XML format that
// Evernote, Joplin, and other note applications import. A catalog subcommand
// indexes an export into SQLite for inspection before converting.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the sn2enex CLI.
var rootCmd = &cobra.Command{
	Use:   "sn2enex",
	Short: "Convert Simplenote JSON exports to ENEX",
	Long: `sn2enex converts notes exported from Simplenote (simplenote.com) in JSON
format into ENEX, the Evernote XML import/export format also understood by
Joplin and other note-taking applications.

The convert subcommand writes the ENEX document to stdout and diagnostics to
stderr. The catalog subcommand indexes an export into a local SQLite database
for tag audits and note inspection.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sn2enex.yaml or ~/.config/sn2enex/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sn2enex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sn2enex"))
		}
	}

	viper.SetEnvPrefix("SN2ENEX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting resolves a string option: an explicitly set flag wins,
// then a config-file/env value, then the flag default.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// boolSetting resolves a bool option with the same precedence as stringSetting.
func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(flag)
	return v
}

// intSetting resolves an int option with the same precedence as stringSetting.
func intSetting(cmd *cobra.Command, flag, key string) int {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
