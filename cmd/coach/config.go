package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the assistant configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = os.Getenv("COACH_CONFIG")
	}
	if path == "" {
		path = defaultConfigPath()
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}

	cmd.Printf("Wrote default config to %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out, err := yaml.Marshal(appConfig)
	if err != nil {
		return err
	}
	cmd.Print(string(out))
	return nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
