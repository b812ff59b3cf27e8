package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmakk0301/aws-console-time-keeper/storage"
	"github.com/jmakk0301/aws-console-time-keeper/storage/sqlite"
)

var cfgFile string

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "timekeeper",
	Short: "Copy time ranges between AWS console pages",
	Long: `timekeeper reads the time window encoded in an AWS console address,
keeps a bounded history of captured windows, and writes a chosen window back
into another console address — even when the two pages use incompatible
URL time-range schemes.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.timekeeper.yaml)")
	rootCmd.PersistentFlags().String("db", "", "capture history database (default: $HOME/.timekeeper.db, \"none\" for in-memory)")
	rootCmd.PersistentFlags().Int("history", storage.DefaultHistoryCapacity, "capture history capacity")
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("history", rootCmd.PersistentFlags().Lookup("history"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".timekeeper")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TIMEKEEPER")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// openStore opens the configured capture store. "none" opts out of
// persistence entirely.
func openStore(ctx context.Context) (storage.Storer, error) {
	path := viper.GetString("db")
	if path == "none" {
		return storage.NewMemoryStore(viper.GetInt("history")), nil
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return storage.NewMemoryStore(viper.GetInt("history")), nil
		}
		path = filepath.Join(home, ".timekeeper.db")
	}
	s, err := sqlite.New(ctx, path, viper.GetInt("history"))
	if err != nil {
		return nil, fmt.Errorf("open capture store: %w", err)
	}
	return s, nil
}
