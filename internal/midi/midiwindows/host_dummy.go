//go:build !windows
// +build !windows

package midiwindows

import (
	"github.com/leandrodaf/midicc/internal/midi/unsupported"
	"github.com/leandrodaf/midicc/sdk/contracts"
)

// NewHost initializes a dummy MIDI host for non-Windows systems.
func NewHost(options *contracts.ClientOptions) (contracts.Host, error) {
	options.Logger.Info("Using dummy MIDI host for non-Windows system")
	return unsupported.New(options.Logger, "winmm"), nil
}
