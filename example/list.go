package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available MIDI output devices",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	defer client.Stop()

	out := cmd.OutOrStdout()
	devices := client.Refresh()
	if len(devices) == 0 {
		fmt.Fprintln(out, "no MIDI output devices")
	}
	for i, d := range devices {
		mark := " "
		if d.Name == cfg.PreferredDevice {
			mark = "*"
		}
		fmt.Fprintf(out, "%s%2d: %s (id %d)\n", mark, i, d.Name, d.UniqueID)
	}
	fmt.Fprintf(out, " %2d: virtual port\n", -1)
	return nil
}
