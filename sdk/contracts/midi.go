package contracts

// ControlChange is a MIDI Control-Change message before encoding.
type ControlChange struct {
	Channel    uint8 // Channel, 1-16.
	Controller uint8 // Controller number, 0-127.
	Value      uint8 // Controller value, 0-127.
}

// OutputMode tells which kind of target the session sends to.
type OutputMode int

const (
	// NoOutput is reported before the first selection and after Stop.
	NoOutput OutputMode = iota
	// PhysicalOutput sends through an output port to a host destination.
	PhysicalOutput
	// VirtualOutput injects packets on a virtual source owned by the session.
	VirtualOutput
)

func (m OutputMode) String() string {
	switch m {
	case PhysicalOutput:
		return "physical"
	case VirtualOutput:
		return "virtual"
	default:
		return "none"
	}
}

// ClientMIDI defines the output session operations.
// A ClientMIDI is not safe for concurrent use.
type ClientMIDI interface {
	Refresh() DeviceList                                   // Rescans the host and replaces the cached device list.
	Devices() DeviceList                                   // Returns the cached device list.
	DeviceNames() []string                                 // Returns the cached device names.
	SelectTarget(index int)                                // Selects a device by list position, or the virtual port when negative.
	SelectedIndex() int                                    // Returns the last requested index.
	Mode() OutputMode                                      // Returns the active output mode.
	Send(channel, controller, value uint8) (Status, error) // Sends a Control-Change message.
	SendControlChange(cc ControlChange) (Status, error)    // Sends an already built Control-Change message.
	Stop() error                                           // Releases the active target.
}
