//go:build !darwin
// +build !darwin

package mididarwin

import (
	"github.com/leandrodaf/midicc/internal/midi/unsupported"
	"github.com/leandrodaf/midicc/sdk/contracts"
)

// NewHost returns a dummy host on non-macOS systems.
func NewHost(options *contracts.ClientOptions) (contracts.Host, error) {
	options.Logger.Info("Using dummy MIDI host for non-macOS system")
	return unsupported.New(options.Logger, "CoreMIDI"), nil
}
