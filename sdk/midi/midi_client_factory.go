package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midicc/internal/midi/mididarwin"
	"github.com/leandrodaf/midicc/internal/midi/midirtmidi"
	"github.com/leandrodaf/midicc/internal/midi/midiwindows"
	"github.com/leandrodaf/midicc/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no MIDI host.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// hostInitializers maps OS names to the host MIDI service for that OS.
var hostInitializers = map[string]func(*contracts.ClientOptions) (contracts.Host, error){
	"darwin":  mididarwin.NewHost,  // CoreMIDI
	"windows": midiwindows.NewHost, // winmm
	"linux":   midirtmidi.NewHost,  // rtmidi over ALSA
}

// NewHost returns opts.Host when set, otherwise the host for the running OS.
// It returns ErrUnsupportedOS if the OS has none.
func NewHost(opts *contracts.ClientOptions) (contracts.Host, error) {
	if opts.Host != nil {
		return opts.Host, nil
	}
	if initializer, exists := hostInitializers[runtime.GOOS]; exists {
		host, err := initializer(opts)
		if err != nil {
			return nil, fmt.Errorf("create %s MIDI host: %w", runtime.GOOS, err)
		}
		return host, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
