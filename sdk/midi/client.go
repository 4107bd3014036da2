package midi

import (
	"github.com/leandrodaf/midicc/internal/midi/encoding"
	"github.com/leandrodaf/midicc/internal/midi/session"
	"github.com/leandrodaf/midicc/sdk/contracts"
)

// NewMIDIClient creates a Control-Change output client with the specified options.
// It applies default options, picks the host for the running OS unless one is
// given with contracts.WithHost, lists the devices and selects the initial target.
//
// opts ...contracts.Option: A variadic list of option functions to customize the client configuration.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: An error, if the host could not be created.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	host, err := NewHost(&options)
	if err != nil {
		return nil, err
	}

	return session.New(host, options.Logger, *options.Names, *options.InitialIndex), nil
}

// EncodeControlChange returns the three bytes of a Control Change message.
// The channel is 1-based (1..16); controller and value are 0..127.
func EncodeControlChange(channel, controller, value uint8) ([]byte, error) {
	return encoding.Encode(contracts.ControlChange{Channel: channel, Controller: controller, Value: value})
}

// MapToMIDI rescales a 0..1023 input reading from [low, high] onto 0..127.
func MapToMIDI(input, low, high int) uint8 {
	return encoding.MapToMIDI(input, low, high)
}
