// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/docdrop/pkg/app"
	"github.com/yeisme/docdrop/pkg/configs"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "docdrop",
		Short: "A document sharing service with QR code access links",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmd.RunE(cmd, args)
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp(configPath).Run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose config debug output")

	rootCmd.AddCommand(serveCmd)

	registerConfigsCommands()
	registerDBCommands()
}

// initConfigForCLI 非 serve 子命令也需要配置，按需初始化.
func initConfigForCLI() error {
	if configs.GetViper() != nil {
		return nil
	}

	return configs.InitConfig(configPath)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
