package main

import (
	"fmt"

	"github.com/leandrodaf/midicc/sdk/contracts"
	"github.com/leandrodaf/midicc/sdk/midi"
	"github.com/spf13/cobra"
)

var sendFlags struct {
	device     int
	channel    uint8
	controller uint8
	value      uint8
	input      int
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one Control Change message",
	Long: `Send one Control Change message to the configured target.

The value is either given directly with --value or computed from a raw
0..1023 reading with --input, using the configured input range.`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

func init() {
	f := sendCmd.Flags()
	f.IntVarP(&sendFlags.device, "device", "d", 0, "target index from 'list', -1 for the virtual port")
	f.Uint8Var(&sendFlags.channel, "channel", 1, "MIDI channel (1-16)")
	f.Uint8Var(&sendFlags.controller, "controller", 0, "controller number (0-127)")
	f.Uint8Var(&sendFlags.value, "value", 0, "controller value (0-127)")
	f.IntVar(&sendFlags.input, "input", 0, "raw reading (0-1023) mapped onto the value")
	sendCmd.MarkFlagsMutuallyExclusive("value", "input")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	client, mock, err := newClient()
	if err != nil {
		return err
	}
	defer client.Stop()

	index := cfg.ResolveTarget(client.Devices())
	if cmd.Flags().Changed("device") {
		index = sendFlags.device
	}
	if index != client.SelectedIndex() {
		client.SelectTarget(index)
	}

	value := sendFlags.value
	if cmd.Flags().Changed("input") {
		value = midi.MapToMIDI(sendFlags.input, cfg.Input.Low, cfg.Input.High)
	}

	status, err := client.SendControlChange(contracts.ControlChange{
		Channel:    sendFlags.channel,
		Controller: sendFlags.controller,
		Value:      value,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s target %d: channel %d controller %d value %d: status %d\n",
		client.Mode(), client.SelectedIndex(), sendFlags.channel, sendFlags.controller, value, status)
	if mock != nil {
		for _, d := range mock.Deliveries() {
			fmt.Fprintf(out, "dry run: % X -> %s\n", d.Packet.Data, d.Name)
		}
	}
	if !status.OK() {
		return status.Err()
	}
	return nil
}
