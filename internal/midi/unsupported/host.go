// Package unsupported provides the host used on platforms without a MIDI
// backend. It enumerates nothing and rejects every create or send call.
package unsupported

import "github.com/leandrodaf/midicc/sdk/contracts"

// Host answers every call with contracts.StatusUnsupported.
type Host struct {
	logger  contracts.Logger
	backend string
}

var _ contracts.Host = (*Host)(nil)

// New returns a host that logs a warning naming the unavailable backend.
func New(logger contracts.Logger, backend string) *Host {
	return &Host{logger: logger, backend: backend}
}

func (h *Host) warn(call string) {
	h.logger.Warn(call+" called on dummy MIDI host",
		h.logger.Field().String("backend", h.backend))
}

func (h *Host) CreateClient(string) (contracts.ObjectRef, contracts.Status) {
	h.warn("CreateClient")
	return 0, contracts.StatusUnsupported
}

func (h *Host) DisposeClient(contracts.ObjectRef) contracts.Status {
	return contracts.StatusInvalidClient
}

func (h *Host) CreateOutputPort(contracts.ObjectRef, string) (contracts.ObjectRef, contracts.Status) {
	return 0, contracts.StatusUnsupported
}

func (h *Host) CreateVirtualSource(contracts.ObjectRef, string) (contracts.ObjectRef, contracts.Status) {
	h.warn("CreateVirtualSource")
	return 0, contracts.StatusUnsupported
}

func (h *Host) DisposeEndpoint(contracts.ObjectRef) contracts.Status {
	return contracts.StatusUnknownEndpoint
}

func (h *Host) NumberOfDevices() int { return 0 }
func (h *Host) Device(int) contracts.ObjectRef { return 0 }
func (h *Host) NumberOfEntities(contracts.ObjectRef) int { return 0 }
func (h *Host) Entity(contracts.ObjectRef, int) contracts.ObjectRef { return 0 }
func (h *Host) NumberOfEntityDestinations(contracts.ObjectRef) int { return 0 }
func (h *Host) EntityDestination(contracts.ObjectRef, int) contracts.ObjectRef { return 0 }
func (h *Host) NumberOfDestinations() int { return 0 }
func (h *Host) Destination(int) contracts.ObjectRef { return 0 }

func (h *Host) IntegerProperty(contracts.ObjectRef, string) (int32, contracts.Status) {
	return 0, contracts.StatusObjectNotFound
}

func (h *Host) Properties(contracts.ObjectRef) (contracts.PropertyList, contracts.Status) {
	return nil, contracts.StatusObjectNotFound
}

func (h *Host) Send(contracts.ObjectRef, contracts.ObjectRef, contracts.Packet) contracts.Status {
	return contracts.StatusUnsupported
}

func (h *Host) Received(contracts.ObjectRef, contracts.Packet) contracts.Status {
	return contracts.StatusUnsupported
}
