//go:build linux && cgo
// +build linux,cgo

package midirtmidi

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/midicc/internal/midi/refs"
	"github.com/leandrodaf/midicc/sdk/contracts"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// ErrNoDriver is returned when no rtmidi driver can be created.
var ErrNoDriver = errors.New("rtmidi driver not available")

// Reference ranges. rtmidi identifies outputs by number; clients, ports and
// virtual sources are synthetic.
const (
	destinationBase contracts.ObjectRef = 0x0000_1000
	clientBase      contracts.ObjectRef = 0x0010_0000
	portBase        contracts.ObjectRef = 0x0020_0000
	sourceBase      contracts.ObjectRef = 0x0030_0000
)

type port struct {
	client contracts.ObjectRef
	open   map[int]drivers.Out // output number -> port opened on first send
}

type source struct {
	client contracts.ObjectRef
	out    drivers.Out
}

// Host maps the session's capability set onto rtmidi (ALSA sequencer).
type Host struct {
	logger  contracts.Logger
	driver  *rtmididrv.Driver
	clients *refs.Table[string]
	ports   *refs.Table[*port]
	sources *refs.Table[*source]
}

var _ contracts.Host = (*Host)(nil)

// NewHost uses the rtmidi driver registered with gomidi, creating one if none is.
func NewHost(options *contracts.ClientOptions) (contracts.Host, error) {
	drv, ok := drivers.Get().(*rtmididrv.Driver)
	if !ok {
		var err error
		if drv, err = rtmididrv.New(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoDriver, err)
		}
	}
	options.Logger.Info("rtmidi host created", options.Logger.Field().String("driver", drv.String()))
	return &Host{
		logger:  options.Logger,
		driver:  drv,
		clients: refs.NewTable[string](clientBase),
		ports:   refs.NewTable[*port](portBase),
		sources: refs.NewTable[*source](sourceBase),
	}, nil
}

func (h *Host) CreateClient(name string) (contracts.ObjectRef, contracts.Status) {
	return h.clients.Add(name), contracts.StatusOK
}

func (h *Host) DisposeClient(ref contracts.ObjectRef) contracts.Status {
	if _, ok := h.clients.Remove(ref); !ok {
		return contracts.StatusInvalidClient
	}

	st := contracts.StatusOK
	var ports, sources []contracts.ObjectRef
	h.ports.Each(func(r contracts.ObjectRef, p *port) {
		if p.client == ref {
			ports = append(ports, r)
		}
	})
	h.sources.Each(func(r contracts.ObjectRef, s *source) {
		if s.client == ref {
			sources = append(sources, r)
		}
	})
	for _, r := range ports {
		p, _ := h.ports.Remove(r)
		for _, out := range p.open {
			if err := out.Close(); err != nil {
				h.logger.Error("Failed to close MIDI output", h.logger.Field().String("port", out.String()), h.logger.Field().Error("error", err))
				st = contracts.StatusIOError
			}
		}
	}
	for _, r := range sources {
		if s := h.DisposeEndpoint(r); s != contracts.StatusOK {
			st = s
		}
	}
	return st
}

func (h *Host) CreateOutputPort(client contracts.ObjectRef, _ string) (contracts.ObjectRef, contracts.Status) {
	if _, ok := h.clients.Get(client); !ok {
		return 0, contracts.StatusInvalidClient
	}
	return h.ports.Add(&port{client: client, open: make(map[int]drivers.Out)}), contracts.StatusOK
}

func (h *Host) CreateVirtualSource(client contracts.ObjectRef, name string) (contracts.ObjectRef, contracts.Status) {
	if _, ok := h.clients.Get(client); !ok {
		return 0, contracts.StatusInvalidClient
	}
	out, err := h.driver.OpenVirtualOut(name)
	if err != nil {
		h.logger.Error("Failed to create virtual MIDI port", h.logger.Field().String("name", name), h.logger.Field().Error("error", err))
		return 0, contracts.StatusIOError
	}
	return h.sources.Add(&source{client: client, out: out}), contracts.StatusOK
}

func (h *Host) DisposeEndpoint(endpoint contracts.ObjectRef) contracts.Status {
	s, ok := h.sources.Remove(endpoint)
	if !ok {
		return contracts.StatusUnknownEndpoint
	}
	if err := s.out.Close(); err != nil {
		h.logger.Error("Failed to close virtual MIDI port", h.logger.Field().Error("error", err))
		return contracts.StatusIOError
	}
	return contracts.StatusOK
}

// rtmidi exposes no device tree; every output is a standalone destination.
func (h *Host) NumberOfDevices() int { return 0 }
func (h *Host) Device(int) contracts.ObjectRef { return 0 }
func (h *Host) NumberOfEntities(contracts.ObjectRef) int { return 0 }
func (h *Host) Entity(contracts.ObjectRef, int) contracts.ObjectRef { return 0 }
func (h *Host) NumberOfEntityDestinations(contracts.ObjectRef) int { return 0 }
func (h *Host) EntityDestination(contracts.ObjectRef, int) contracts.ObjectRef { return 0 }

func (h *Host) outs() []drivers.Out {
	outs, err := h.driver.Outs()
	if err != nil {
		h.logger.Error("Failed to list MIDI outputs", h.logger.Field().Error("error", err))
		return nil
	}
	return outs
}

func (h *Host) NumberOfDestinations() int { return len(h.outs()) }

func (h *Host) Destination(index int) contracts.ObjectRef {
	if index < 0 || index >= len(h.outs()) {
		return 0
	}
	return destinationBase + contracts.ObjectRef(index)
}

// output resolves a destination reference against a fresh enumeration.
func (h *Host) output(ref contracts.ObjectRef) (drivers.Out, []drivers.Out, bool) {
	if ref < destinationBase || ref >= clientBase {
		return nil, nil, false
	}
	outs := h.outs()
	i := int(ref - destinationBase)
	if i >= len(outs) {
		return nil, nil, false
	}
	return outs[i], outs, true
}

func uniqueID(out drivers.Out, outs []drivers.Out) int32 {
	names := make([]string, 0, len(outs))
	for _, o := range outs {
		names = append(names, o.String())
		if o.Number() == out.Number() {
			break
		}
	}
	occ := refs.Occurrences(names)
	return refs.StableID(out.String(), occ[len(occ)-1])
}

func (h *Host) IntegerProperty(obj contracts.ObjectRef, key string) (int32, contracts.Status) {
	out, outs, ok := h.output(obj)
	if !ok {
		return 0, contracts.StatusObjectNotFound
	}
	switch key {
	case contracts.PropertyOffline:
		return 0, contracts.StatusOK
	case contracts.PropertyUniqueID:
		return uniqueID(out, outs), contracts.StatusOK
	}
	return 0, contracts.StatusObjectNotFound
}

func (h *Host) Properties(obj contracts.ObjectRef) (contracts.PropertyList, contracts.Status) {
	out, outs, ok := h.output(obj)
	if !ok {
		return nil, contracts.StatusObjectNotFound
	}
	return contracts.PropertyList{
		contracts.PropertyName:     out.String(),
		contracts.PropertyUniqueID: uniqueID(out, outs),
	}, contracts.StatusOK
}

func (h *Host) Send(portRef, destination contracts.ObjectRef, packet contracts.Packet) contracts.Status {
	p, ok := h.ports.Get(portRef)
	if !ok {
		return contracts.StatusInvalidPort
	}
	out, _, ok := h.output(destination)
	if !ok {
		return contracts.StatusUnknownEndpoint
	}

	if opened, ok := p.open[out.Number()]; ok {
		out = opened
	} else {
		if err := out.Open(); err != nil {
			h.logger.Error("Failed to open MIDI output", h.logger.Field().String("port", out.String()), h.logger.Field().Error("error", err))
			return contracts.StatusIOError
		}
		p.open[out.Number()] = out
	}

	if err := out.Send(packet.Data); err != nil {
		h.logger.Debug("MIDI send failed", h.logger.Field().Error("error", err))
		return contracts.StatusIOError
	}
	return contracts.StatusOK
}

func (h *Host) Received(src contracts.ObjectRef, packet contracts.Packet) contracts.Status {
	s, ok := h.sources.Get(src)
	if !ok {
		return contracts.StatusUnknownEndpoint
	}
	if err := s.out.Send(packet.Data); err != nil {
		h.logger.Debug("MIDI send failed", h.logger.Field().Error("error", err))
		return contracts.StatusIOError
	}
	return contracts.StatusOK
}
