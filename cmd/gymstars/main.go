package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SI1V/GymStars/core/buildinfo"
	corecmd "github.com/SI1V/GymStars/core/cmd"
	coredatabase "github.com/SI1V/GymStars/core/database"
	"github.com/SI1V/GymStars/core/logger"
	"github.com/SI1V/GymStars/internal/app"
	"github.com/SI1V/GymStars/internal/config"
)

const defaultConfigPath = "config.yaml"

var rootCmd = &cobra.Command{
	Use:   "gymstars",
	Short: "Telegram workout tracker bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return corecmd.Run(corecmd.Options{
			ConfigEnvVar:      "CONFIG_PATH",
			DefaultConfigPath: defaultConfigPath,
			LoadConfig:        app.LoadConfig,
			Bootstrap:         app.Bootstrap,
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = defaultConfigPath
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := logger.InitLogger(cfg.CoreConfig()); err != nil {
			return err
		}
		defer func() { _ = logger.Shutdown() }()
		return coredatabase.RunMigrations(cfg.Database)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gymstars %s (%s %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	},
}

func main() {
	rootCmd.AddCommand(migrateCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
