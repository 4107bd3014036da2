// Package encoding builds MIDI Control-Change wire messages and maps
// arbitrary sensor ranges into the 7-bit MIDI value domain.
package encoding

import (
	"errors"
	"fmt"
	"math"

	"github.com/leandrodaf/midicc/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// ControlChangeStatus is the status byte of a Control-Change on channel 1.
const ControlChangeStatus byte = 0xB0

// Input domain accepted by MapToMIDI.
const (
	MinInput = 0
	MaxInput = 1023
)

var (
	ErrInvalidChannel    = errors.New("MIDI channel out of range 1-16")
	ErrInvalidController = errors.New("MIDI controller out of range 0-127")
	ErrInvalidValue      = errors.New("MIDI value out of range 0-127")
)

// Encode returns the 3-byte wire form [0xB0+(channel-1), controller, value].
func Encode(cc contracts.ControlChange) ([]byte, error) {
	if cc.Channel < 1 || cc.Channel > 16 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannel, cc.Channel)
	}
	if cc.Controller > 127 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidController, cc.Controller)
	}
	if cc.Value > 127 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidValue, cc.Value)
	}
	return midi.ControlChange(cc.Channel-1, cc.Controller, cc.Value).Bytes(), nil
}

// Decode parses a Control-Change wire message back into its fields.
func Decode(data []byte) (contracts.ControlChange, bool) {
	var ch, ctl, val uint8
	if !midi.Message(data).GetControlChange(&ch, &ctl, &val) {
		return contracts.ControlChange{}, false
	}
	return contracts.ControlChange{Channel: ch + 1, Controller: ctl, Value: val}, true
}

// MapToMIDI linearly maps input from [low, high] onto 0..127, rounding half
// away from zero. Input outside 0..1023 and an empty range (low == high)
// both yield 0. Results are clamped into 0..127.
func MapToMIDI(input, low, high int) uint8 {
	if input < MinInput || input > MaxInput || low == high {
		return 0
	}
	v := math.Round(127 * float64(input-low) / float64(high-low))
	switch {
	case v < 0:
		return 0
	case v > 127:
		return 127
	}
	return uint8(v)
}
