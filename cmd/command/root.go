// Package command содержит CLI сервиса на cobra.
//
//	./parking [serve] [-c config.toml]            # HTTP сервер
//	./parking migrate [-c config.toml]            # применить миграции
//	./parking assign-role <email> <role>          # назначить роль
//	./parking seed-superadmin <email>             # выдать роль superadmin
package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.toml"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "parking",
	Short:         "Parking slot reservation service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServer,
}

// Execute разбирает аргументы и запускает подходящую команду
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
	rootCmd.AddCommand(serveCmd, migrateCmd, assignRoleCmd, seedSuperadminCmd)
}

// fixConfigPath путь к конфигу: флаг, затем CONFIG_FILE, затем значение по умолчанию
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = defaultConfigPath
	}
}
