package main

import (
	"fmt"

	"github.com/leandrodaf/midicc/internal/config"
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <device name>",
	Short: "Save a device as the preferred output target",
	Args:  cobra.ExactArgs(1),
	RunE:  runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
}

func runUse(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	defer client.Stop()

	if err := cfg.SetPreferredDevice(args[0], client.Devices()); err != nil {
		return err
	}
	if err := config.SaveConfig(configPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "preferred device set to %s in %s\n", args[0], configPath)
	return nil
}
