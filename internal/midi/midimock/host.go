// Package midimock provides an in-memory contracts.Host. It models the
// device/entity/endpoint tree of a real MIDI service, records every packet it
// is asked to deliver and can be scripted to fail specific calls.
package midimock

import (
	"bytes"

	"github.com/leandrodaf/midicc/internal/midi/refs"
	"github.com/leandrodaf/midicc/sdk/contracts"
)

// Call names a Host operation that can be scripted to fail.
type Call string

const (
	CallCreateClient        Call = "CreateClient"
	CallDisposeClient       Call = "DisposeClient"
	CallCreateOutputPort    Call = "CreateOutputPort"
	CallCreateVirtualSource Call = "CreateVirtualSource"
	CallDisposeEndpoint     Call = "DisposeEndpoint"
	CallProperties          Call = "Properties"
	CallSend                Call = "Send"
	CallReceived            Call = "Received"
)

// Device describes a hardware or driver device with its entities.
type Device struct {
	Name     string
	Offline  bool
	Entities []Entity
}

// Entity is a sub-component of a device grouping endpoints.
type Entity struct {
	Name         string
	UniqueID     int32
	Offline      bool
	Destinations []Endpoint
}

// Endpoint is a destination. Unnamed endpoints have no "name" property.
type Endpoint struct {
	Name     string
	UniqueID int32
	Offline  bool
	Unnamed  bool
}

// Delivery is a packet accepted by Send or Received.
type Delivery struct {
	Port        contracts.ObjectRef // Zero for injected packets.
	Endpoint    contracts.ObjectRef // Destination for Send, virtual source for Received.
	Name        string              // Name of Endpoint.
	Packet      contracts.Packet
	ClientName  string
	WasInjected bool
}

type kind int

const (
	kindDevice kind = iota
	kindEntity
	kindDestination
	kindClient
	kindPort
	kindSource
)

type object struct {
	kind     kind
	name     string
	unnamed  bool
	uniqueID int32
	offline  bool
	owner    contracts.ObjectRef
	children []contracts.ObjectRef
}

var _ contracts.Host = (*Host)(nil)

// Host is an in-memory contracts.Host. The zero value is not usable; call New.
type Host struct {
	objects      *refs.Table[*object]
	devices      []contracts.ObjectRef
	destinations []contracts.ObjectRef
	failures     map[Call]contracts.Status
	deliveries   []Delivery
	nextID       int32
}

// New returns an empty host.
func New() *Host {
	return &Host{
		objects:  refs.NewTable[*object](1),
		failures: make(map[Call]contracts.Status),
		nextID:   0x7000_0000,
	}
}

// AddDevice registers a device. Its entity destinations are also appended to
// the flat destination enumeration, in order.
func (h *Host) AddDevice(d Device) contracts.ObjectRef {
	dev := &object{kind: kindDevice, name: d.Name, offline: d.Offline}
	devRef := h.objects.Add(dev)
	for _, e := range d.Entities {
		ent := &object{kind: kindEntity, name: e.Name, uniqueID: e.UniqueID, offline: e.Offline, owner: devRef}
		entRef := h.objects.Add(ent)
		for _, ep := range e.Destinations {
			epRef := h.addEndpoint(ep, entRef)
			ent.children = append(ent.children, epRef)
		}
		dev.children = append(dev.children, entRef)
	}
	h.devices = append(h.devices, devRef)
	return devRef
}

// AddDestination registers a destination not attached to any device.
func (h *Host) AddDestination(ep Endpoint) contracts.ObjectRef {
	return h.addEndpoint(ep, 0)
}

func (h *Host) addEndpoint(ep Endpoint, owner contracts.ObjectRef) contracts.ObjectRef {
	ref := h.objects.Add(&object{
		kind:     kindDestination,
		name:     ep.Name,
		unnamed:  ep.Unnamed,
		uniqueID: ep.UniqueID,
		offline:  ep.Offline,
		owner:    owner,
	})
	h.destinations = append(h.destinations, ref)
	return ref
}

// Fail makes every later call of c return status. StatusOK clears it.
func (h *Host) Fail(c Call, status contracts.Status) {
	if status == contracts.StatusOK {
		delete(h.failures, c)
		return
	}
	h.failures[c] = status
}

// Deliveries returns every packet accepted so far.
func (h *Host) Deliveries() []Delivery {
	out := make([]Delivery, len(h.deliveries))
	copy(out, h.deliveries)
	return out
}

// Reset forgets recorded deliveries.
func (h *Host) Reset() { h.deliveries = nil }

// LiveClients returns the number of clients not yet disposed.
func (h *Host) LiveClients() int { return h.count(kindClient) }

// LiveSources returns the names of virtual sources not yet disposed.
func (h *Host) LiveSources() []string {
	var names []string
	h.objects.Each(func(_ contracts.ObjectRef, o *object) {
		if o.kind == kindSource {
			names = append(names, o.name)
		}
	})
	return names
}

func (h *Host) count(k kind) int {
	n := 0
	h.objects.Each(func(_ contracts.ObjectRef, o *object) {
		if o.kind == k {
			n++
		}
	})
	return n
}

func (h *Host) failure(c Call) contracts.Status {
	return h.failures[c]
}

func (h *Host) lookup(ref contracts.ObjectRef, k kind) (*object, bool) {
	o, ok := h.objects.Get(ref)
	if !ok || o.kind != k {
		return nil, false
	}
	return o, true
}

func (h *Host) CreateClient(name string) (contracts.ObjectRef, contracts.Status) {
	if st := h.failure(CallCreateClient); st != contracts.StatusOK {
		return 0, st
	}
	return h.objects.Add(&object{kind: kindClient, name: name}), contracts.StatusOK
}

func (h *Host) DisposeClient(client contracts.ObjectRef) contracts.Status {
	if _, ok := h.lookup(client, kindClient); !ok {
		return contracts.StatusInvalidClient
	}
	if st := h.failure(CallDisposeClient); st != contracts.StatusOK {
		return st
	}
	var owned []contracts.ObjectRef
	h.objects.Each(func(ref contracts.ObjectRef, o *object) {
		if (o.kind == kindPort || o.kind == kindSource) && o.owner == client {
			owned = append(owned, ref)
		}
	})
	for _, ref := range owned {
		h.objects.Remove(ref)
	}
	h.objects.Remove(client)
	return contracts.StatusOK
}

func (h *Host) CreateOutputPort(client contracts.ObjectRef, name string) (contracts.ObjectRef, contracts.Status) {
	if st := h.failure(CallCreateOutputPort); st != contracts.StatusOK {
		return 0, st
	}
	if _, ok := h.lookup(client, kindClient); !ok {
		return 0, contracts.StatusInvalidClient
	}
	return h.objects.Add(&object{kind: kindPort, name: name, owner: client}), contracts.StatusOK
}

func (h *Host) CreateVirtualSource(client contracts.ObjectRef, name string) (contracts.ObjectRef, contracts.Status) {
	if st := h.failure(CallCreateVirtualSource); st != contracts.StatusOK {
		return 0, st
	}
	if _, ok := h.lookup(client, kindClient); !ok {
		return 0, contracts.StatusInvalidClient
	}
	h.nextID++
	return h.objects.Add(&object{kind: kindSource, name: name, owner: client, uniqueID: h.nextID}), contracts.StatusOK
}

func (h *Host) DisposeEndpoint(endpoint contracts.ObjectRef) contracts.Status {
	if _, ok := h.lookup(endpoint, kindSource); !ok {
		return contracts.StatusUnknownEndpoint
	}
	if st := h.failure(CallDisposeEndpoint); st != contracts.StatusOK {
		return st
	}
	h.objects.Remove(endpoint)
	return contracts.StatusOK
}

func (h *Host) NumberOfDevices() int { return len(h.devices) }

func (h *Host) Device(index int) contracts.ObjectRef {
	if index < 0 || index >= len(h.devices) {
		return 0
	}
	return h.devices[index]
}

func (h *Host) NumberOfEntities(device contracts.ObjectRef) int {
	if o, ok := h.lookup(device, kindDevice); ok {
		return len(o.children)
	}
	return 0
}

func (h *Host) Entity(device contracts.ObjectRef, index int) contracts.ObjectRef {
	o, ok := h.lookup(device, kindDevice)
	if !ok || index < 0 || index >= len(o.children) {
		return 0
	}
	return o.children[index]
}

func (h *Host) NumberOfEntityDestinations(entity contracts.ObjectRef) int {
	if o, ok := h.lookup(entity, kindEntity); ok {
		return len(o.children)
	}
	return 0
}

func (h *Host) EntityDestination(entity contracts.ObjectRef, index int) contracts.ObjectRef {
	o, ok := h.lookup(entity, kindEntity)
	if !ok || index < 0 || index >= len(o.children) {
		return 0
	}
	return o.children[index]
}

func (h *Host) NumberOfDestinations() int { return len(h.destinations) }

func (h *Host) Destination(index int) contracts.ObjectRef {
	if index < 0 || index >= len(h.destinations) {
		return 0
	}
	return h.destinations[index]
}

func (h *Host) IntegerProperty(obj contracts.ObjectRef, key string) (int32, contracts.Status) {
	o, ok := h.objects.Get(obj)
	if !ok {
		return 0, contracts.StatusObjectNotFound
	}
	switch key {
	case contracts.PropertyOffline:
		if o.offline {
			return 1, contracts.StatusOK
		}
		return 0, contracts.StatusOK
	case contracts.PropertyUniqueID:
		if o.kind == kindDevice || o.kind == kindClient || o.kind == kindPort {
			return 0, contracts.StatusObjectNotFound
		}
		return o.uniqueID, contracts.StatusOK
	}
	return 0, contracts.StatusObjectNotFound
}

func (h *Host) Properties(obj contracts.ObjectRef) (contracts.PropertyList, contracts.Status) {
	if st := h.failure(CallProperties); st != contracts.StatusOK {
		return nil, st
	}
	o, ok := h.objects.Get(obj)
	if !ok {
		return nil, contracts.StatusObjectNotFound
	}
	props := contracts.PropertyList{}
	if !o.unnamed {
		props[contracts.PropertyName] = o.name
	}
	if o.kind == kindEntity || o.kind == kindDestination || o.kind == kindSource {
		props[contracts.PropertyUniqueID] = o.uniqueID
	}
	return props, contracts.StatusOK
}

func (h *Host) Send(port, destination contracts.ObjectRef, packet contracts.Packet) contracts.Status {
	p, ok := h.lookup(port, kindPort)
	if !ok {
		return contracts.StatusInvalidPort
	}
	d, ok := h.objects.Get(destination)
	if !ok {
		return contracts.StatusUnknownEndpoint
	}
	if d.kind != kindDestination {
		return contracts.StatusWrongEndpointType
	}
	if st := h.failure(CallSend); st != contracts.StatusOK {
		return st
	}
	h.deliveries = append(h.deliveries, Delivery{
		Port:       port,
		Endpoint:   destination,
		Name:       d.name,
		Packet:     clonePacket(packet),
		ClientName: h.ownerName(p),
	})
	return contracts.StatusOK
}

func (h *Host) Received(source contracts.ObjectRef, packet contracts.Packet) contracts.Status {
	s, ok := h.objects.Get(source)
	if !ok {
		return contracts.StatusUnknownEndpoint
	}
	if s.kind != kindSource {
		return contracts.StatusWrongEndpointType
	}
	if st := h.failure(CallReceived); st != contracts.StatusOK {
		return st
	}
	h.deliveries = append(h.deliveries, Delivery{
		Endpoint:    source,
		Name:        s.name,
		Packet:      clonePacket(packet),
		ClientName:  h.ownerName(s),
		WasInjected: true,
	})
	return contracts.StatusOK
}

func (h *Host) ownerName(o *object) string {
	if c, ok := h.lookup(o.owner, kindClient); ok {
		return c.name
	}
	return ""
}

func clonePacket(p contracts.Packet) contracts.Packet {
	return contracts.Packet{Timestamp: p.Timestamp, Data: bytes.Clone(p.Data)}
}
