package contracts

import "fmt"

// ObjectRef is an opaque reference to a resource owned by the host MIDI service
// (client, port, device, entity or endpoint). The zero value never refers to a
// live object.
type ObjectRef uint32

// Status is the raw status code returned by a host MIDI call. Zero means success.
type Status int32

// Well-known host status codes. They follow the CoreMIDI error space so that
// every host reports failures with the same numbers.
const (
	StatusOK                Status = 0
	StatusUnsupported       Status = -4     // The host cannot perform the operation.
	StatusIOError           Status = -36    // Generic transport failure.
	StatusInvalidClient     Status = -10830 // The client reference is not valid.
	StatusInvalidPort       Status = -10831 // The port reference is not valid.
	StatusWrongEndpointType Status = -10832 // A source was used where a destination was expected, or vice versa.
	StatusUnknownEndpoint   Status = -10834 // The endpoint reference is not valid.
	StatusObjectNotFound    Status = -10842 // No object exists at the requested index.
)

// OK reports whether the status signals success.
func (s Status) OK() bool { return s == StatusOK }

// Err converts a non-zero status into an error. It returns nil for StatusOK.
func (s Status) Err() error {
	if s == StatusOK {
		return nil
	}
	return &StatusError{Status: s}
}

// StatusError wraps a failed host status.
type StatusError struct {
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("MIDI host call failed with status %d", int32(e.Status))
}

// Property names understood by Host.IntegerProperty and present in PropertyList.
const (
	PropertyName     = "name"
	PropertyUniqueID = "uniqueID"
	PropertyOffline  = "offline"
)

// PropertyList is the generic property bag returned by Host.Properties.
// Values are strings or integers depending on the key.
type PropertyList map[string]any

// String returns the string stored under key, if any.
func (p PropertyList) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// Int32 returns the integer stored under key, accepting any Go integer type.
func (p PropertyList) Int32(key string) (int32, bool) {
	switch v := p[key].(type) {
	case int32:
		return v, true
	case int:
		return int32(v), true
	case int64:
		return int32(v), true
	case uint32:
		return int32(v), true
	default:
		return 0, false
	}
}

// Packet is a single timestamped MIDI packet. A zero Timestamp means "now".
type Packet struct {
	Timestamp uint64
	Data      []byte
}

// Host is the capability set consumed from the operating system's MIDI service.
// Implementations are thin call-throughs; they report failures through Status
// and never panic on stale references.
type Host interface {
	CreateClient(name string) (ObjectRef, Status)
	// DisposeClient releases the client and every port created on it.
	DisposeClient(client ObjectRef) Status
	CreateOutputPort(client ObjectRef, name string) (ObjectRef, Status)
	// CreateVirtualSource advertises a software source named name that other
	// applications can subscribe to.
	CreateVirtualSource(client ObjectRef, name string) (ObjectRef, Status)
	DisposeEndpoint(endpoint ObjectRef) Status

	NumberOfDevices() int
	Device(index int) ObjectRef
	NumberOfEntities(device ObjectRef) int
	Entity(device ObjectRef, index int) ObjectRef
	NumberOfEntityDestinations(entity ObjectRef) int
	EntityDestination(entity ObjectRef, index int) ObjectRef
	NumberOfDestinations() int
	Destination(index int) ObjectRef

	IntegerProperty(object ObjectRef, key string) (int32, Status)
	Properties(object ObjectRef) (PropertyList, Status)

	// Send transmits packet out of port towards destination.
	Send(port, destination ObjectRef, packet Packet) Status
	// Received injects packet as if it had arrived on the virtual source.
	Received(source ObjectRef, packet Packet) Status
}
