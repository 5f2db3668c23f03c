package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	serviceName = "university"
	version     = "1.0.0"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configPath string

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Academic records service: courses, groups and students",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".", "directory holding the .env file")
	root.PersistentFlags().String("db-driver", "", "database driver (postgres|sqlite)")
	_ = v.BindPFlag("DB_DRIVER", root.PersistentFlags().Lookup("db-driver"))

	root.AddCommand(newServeCommand(v, &configPath))
	root.AddCommand(newMigrateCommand(v, &configPath))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
