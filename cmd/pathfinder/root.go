package main

import (
	"github.com/alvmarrod/web-pathfinder/internal/config"
	"github.com/alvmarrod/web-pathfinder/internal/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "pathfinder",
		Short:         "Find a hyperlink path between two web pages",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a JSON or YAML config file")

	cmd.AddCommand(newServeCmd(opts), newSearchCmd(opts))
	return cmd
}

// loadConfig loads the configuration and applies its log level
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(cfg.Level())
	return cfg, nil
}
