package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-scorer/internal/config"
	"alfredoptarigan/resume-scorer/internal/logger"
)

const (
	appName = "resumectl"
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "resumectl scores résumés against job descriptions and manages scoring guidelines",
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// setup loads the environment configuration and a logger honouring the global flags.
func setup() (*config.Config, *zap.Logger) {
	cfg := config.Load()

	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug") || cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	if err := cfg.Validate(); err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}

	return cfg, zl
}
