package main

import (
	"fmt"
	"strconv"

	"github.com/leandrodaf/midicc/sdk/midi"
	"github.com/spf13/cobra"
)

var mapCmd = &cobra.Command{
	Use:   "map <input> [low high]",
	Short: "Rescale a raw 0..1023 reading onto the MIDI range 0..127",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 && len(args) != 3 {
			return fmt.Errorf("expected <input> or <input> <low> <high>, got %d arguments", len(args))
		}
		return nil
	},
	RunE: runMap,
}

func init() {
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	values := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", a, err)
		}
		values[i] = v
	}

	low, high := cfg.Input.Low, cfg.Input.High
	if len(values) == 3 {
		low, high = values[1], values[2]
	}
	fmt.Fprintln(cmd.OutOrStdout(), midi.MapToMIDI(values[0], low, high))
	return nil
}
