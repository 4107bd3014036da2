//go:build !linux || !cgo
// +build !linux !cgo

package midirtmidi

import (
	"github.com/leandrodaf/midicc/internal/midi/unsupported"
	"github.com/leandrodaf/midicc/sdk/contracts"
)

// NewHost returns a dummy host where rtmidi cannot be built.
func NewHost(options *contracts.ClientOptions) (contracts.Host, error) {
	options.Logger.Info("Using dummy MIDI host, rtmidi requires Linux with cgo")
	return unsupported.New(options.Logger, "rtmidi"), nil
}
