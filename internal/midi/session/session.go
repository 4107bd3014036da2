// Package session implements the MIDI output session: a device directory, a
// single active output target and the Control-Change send path.
package session

import (
	"github.com/leandrodaf/midicc/internal/midi/encoding"
	"github.com/leandrodaf/midicc/sdk/contracts"
)

// DefaultNames are the names registered with the host when none are configured.
var DefaultNames = contracts.SessionNames{
	Client:            "MIDIClient",
	VirtualClient:     "VirtualMIDIClient",
	OutputPort:        "Output",
	VirtualOutputPort: "Output2",
	VirtualSource:     "midicc port",
}

// Session owns at most one output target at a time. Host failures are logged
// and never abort an operation.
//
// A Session is not safe for concurrent use.
type Session struct {
	host      contracts.Host
	logger    contracts.Logger
	names     contracts.SessionNames
	directory *Directory
	target    outputTarget
	selected  int
}

var _ contracts.ClientMIDI = (*Session)(nil)

// New refreshes the device list and selects index (contracts.VirtualPortIndex
// for the virtual port). Empty names fall back to DefaultNames.
func New(host contracts.Host, logger contracts.Logger, names contracts.SessionNames, index int) *Session {
	s := &Session{
		host:      host,
		logger:    logger,
		names:     withDefaults(names),
		directory: NewDirectory(host, logger),
	}
	s.Refresh()
	s.SelectTarget(index)
	return s
}

func withDefaults(n contracts.SessionNames) contracts.SessionNames {
	if n.Client == "" {
		n.Client = DefaultNames.Client
	}
	if n.VirtualClient == "" {
		n.VirtualClient = DefaultNames.VirtualClient
	}
	if n.OutputPort == "" {
		n.OutputPort = DefaultNames.OutputPort
	}
	if n.VirtualOutputPort == "" {
		n.VirtualOutputPort = DefaultNames.VirtualOutputPort
	}
	if n.VirtualSource == "" {
		n.VirtualSource = DefaultNames.VirtualSource
	}
	return n
}

// Refresh rescans the host. Devices plugged in or removed since the last call
// are only seen after calling it again.
func (s *Session) Refresh() contracts.DeviceList {
	devices := s.directory.Refresh()
	s.logger.Info("MIDI devices listed", s.logger.Field().Int("count", len(devices)))
	return devices
}

func (s *Session) Devices() contracts.DeviceList { return s.directory.Devices() }

func (s *Session) DeviceNames() []string { return s.directory.Names() }

func (s *Session) SelectedIndex() int { return s.selected }

func (s *Session) Mode() contracts.OutputMode {
	if s.target == nil {
		return contracts.NoOutput
	}
	return s.target.mode()
}

// SelectTarget releases the current target and opens a new one: the device at
// position index of the device list, or the virtual source when index is
// negative. The index is recorded even when the host reports a failure.
func (s *Session) SelectTarget(index int) {
	s.release()

	var st contracts.Status
	if index >= 0 {
		s.target, st = s.openPhysical(index)
	} else {
		s.target, st = s.openVirtual()
	}
	s.selected = index

	if st != contracts.StatusOK {
		s.logger.Error("Error while selecting MIDI device",
			s.logger.Field().Int("index", index),
			s.logger.Field().Int32("status", int32(st)),
			s.logger.Field().String("mode", s.target.mode().String()))
		return
	}
	name := s.names.VirtualSource
	if p, ok := s.target.(*physicalTarget); ok {
		name = p.name
	}
	s.logger.Info("MIDI device selected",
		s.logger.Field().Int("index", index),
		s.logger.Field().String("device", name),
		s.logger.Field().String("mode", s.target.mode().String()))
}

func (s *Session) openPhysical(index int) (*physicalTarget, contracts.Status) {
	var first contracts.Status
	note := func(st contracts.Status) {
		if first == contracts.StatusOK {
			first = st
		}
	}

	clientRef, st := s.host.CreateClient(s.names.Client)
	note(st)
	client := newHandle(clientRef, st, s.host.DisposeClient)

	portRef, st := s.host.CreateOutputPort(clientRef, s.names.OutputPort)
	note(st)
	port := client.own(newHandle(portRef, st, nil))

	dest, name, ok := s.directory.endpoint(index)
	if !ok {
		note(contracts.StatusObjectNotFound)
	}
	return &physicalTarget{client: client, port: port, destination: dest, name: name}, first
}

func (s *Session) openVirtual() (*virtualTarget, contracts.Status) {
	var first contracts.Status
	note := func(st contracts.Status) {
		if first == contracts.StatusOK {
			first = st
		}
	}

	clientRef, st := s.host.CreateClient(s.names.VirtualClient)
	note(st)
	client := newHandle(clientRef, st, s.host.DisposeClient)

	portRef, st := s.host.CreateOutputPort(clientRef, s.names.VirtualOutputPort)
	note(st)
	port := client.own(newHandle(portRef, st, nil))

	sourceRef, st := s.host.CreateVirtualSource(clientRef, s.names.VirtualSource)
	note(st)
	source := newHandle(sourceRef, st, s.host.DisposeEndpoint)

	return &virtualTarget{client: client, port: port, source: source}, first
}

// Send builds and sends a Control-Change message. The error is non-nil only
// when an argument is outside the MIDI domain; host failures are reported
// through the returned status.
func (s *Session) Send(channel, controller, value uint8) (contracts.Status, error) {
	return s.SendControlChange(contracts.ControlChange{Channel: channel, Controller: controller, Value: value})
}

func (s *Session) SendControlChange(cc contracts.ControlChange) (contracts.Status, error) {
	data, err := encoding.Encode(cc)
	if err != nil {
		return contracts.StatusOK, err
	}
	if s.target == nil {
		return contracts.StatusInvalidPort, nil
	}

	st := s.target.send(s.host, contracts.Packet{Timestamp: 0, Data: data})
	if st != contracts.StatusOK {
		s.logger.Debug("MIDI send returned non-zero status",
			s.logger.Field().Int32("status", int32(st)),
			s.logger.Field().Uint8("channel", cc.Channel),
			s.logger.Field().Uint8("controller", cc.Controller))
	}
	return st, nil
}

// Stop releases the active target. The selected index is kept.
func (s *Session) Stop() error {
	err := s.closeTarget()
	s.logger.Info("MIDI output stopped")
	return err
}

func (s *Session) release() {
	if err := s.closeTarget(); err != nil {
		s.logger.Warn("Failed to release previous MIDI target", s.logger.Field().Error("error", err))
	}
}

func (s *Session) closeTarget() error {
	if s.target == nil {
		return nil
	}
	err := s.target.close()
	s.target = nil
	return err
}
