//go:build darwin
// +build darwin

package mididarwin

/*
#cgo LDFLAGS: -framework CoreMIDI
#cgo LDFLAGS: -framework CoreFoundation
#include <CoreMIDI/CoreMIDI.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>

#define PACKET_BUFFER_SIZE 512

// send_packet wraps data in a single-packet list and either sends it out of
// port to endpoint, or injects it on endpoint when received is non-zero.
static OSStatus send_packet(MIDIPortRef port, MIDIEndpointRef endpoint, MIDITimeStamp ts,
                            const Byte *data, ByteCount length, int received) {
	Byte buffer[PACKET_BUFFER_SIZE];
	MIDIPacketList *list = (MIDIPacketList *)buffer;
	MIDIPacket *pkt = MIDIPacketListInit(list);
	pkt = MIDIPacketListAdd(list, sizeof(buffer), pkt, ts, length, data);
	if (pkt == NULL) {
		return -50; // paramErr
	}
	if (received) {
		return MIDIReceived(endpoint, list);
	}
	return MIDISend(port, endpoint, list);
}

// copy_string returns a malloc'd UTF-8 copy of s, or NULL.
static char *copy_string(CFStringRef s) {
	CFIndex size = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
	char *buf = malloc(size);
	if (buf == NULL) {
		return NULL;
	}
	if (!CFStringGetCString(s, buf, size, kCFStringEncodingUTF8)) {
		free(buf);
		return NULL;
	}
	return buf;
}
*/
import "C"
import (
	"unsafe"

	"github.com/leandrodaf/midicc/sdk/contracts"
)

// Host is a call-through to CoreMIDI. References are the native MIDIObjectRef
// values, so they stay valid exactly as long as CoreMIDI keeps them.
type Host struct {
	logger contracts.Logger
}

var _ contracts.Host = (*Host)(nil)

// NewHost returns the CoreMIDI host.
func NewHost(options *contracts.ClientOptions) (contracts.Host, error) {
	options.Logger.Info("CoreMIDI host created")
	return &Host{logger: options.Logger}, nil
}

func (h *Host) CreateClient(name string) (contracts.ObjectRef, contracts.Status) {
	cfname, free := cfstr(name)
	defer free()

	var ref C.MIDIClientRef
	st := C.MIDIClientCreate(cfname, nil, nil, &ref)
	return contracts.ObjectRef(ref), contracts.Status(st)
}

func (h *Host) DisposeClient(client contracts.ObjectRef) contracts.Status {
	return contracts.Status(C.MIDIClientDispose(C.MIDIClientRef(client)))
}

func (h *Host) CreateOutputPort(client contracts.ObjectRef, name string) (contracts.ObjectRef, contracts.Status) {
	cfname, free := cfstr(name)
	defer free()

	var ref C.MIDIPortRef
	st := C.MIDIOutputPortCreate(C.MIDIClientRef(client), cfname, &ref)
	return contracts.ObjectRef(ref), contracts.Status(st)
}

func (h *Host) CreateVirtualSource(client contracts.ObjectRef, name string) (contracts.ObjectRef, contracts.Status) {
	cfname, free := cfstr(name)
	defer free()

	var ref C.MIDIEndpointRef
	st := C.MIDISourceCreate(C.MIDIClientRef(client), cfname, &ref)
	return contracts.ObjectRef(ref), contracts.Status(st)
}

func (h *Host) DisposeEndpoint(endpoint contracts.ObjectRef) contracts.Status {
	return contracts.Status(C.MIDIEndpointDispose(C.MIDIEndpointRef(endpoint)))
}

func (h *Host) NumberOfDevices() int {
	return int(C.MIDIGetNumberOfDevices())
}

func (h *Host) Device(index int) contracts.ObjectRef {
	return contracts.ObjectRef(C.MIDIGetDevice(C.ItemCount(index)))
}

func (h *Host) NumberOfEntities(device contracts.ObjectRef) int {
	return int(C.MIDIDeviceGetNumberOfEntities(C.MIDIDeviceRef(device)))
}

func (h *Host) Entity(device contracts.ObjectRef, index int) contracts.ObjectRef {
	return contracts.ObjectRef(C.MIDIDeviceGetEntity(C.MIDIDeviceRef(device), C.ItemCount(index)))
}

func (h *Host) NumberOfEntityDestinations(entity contracts.ObjectRef) int {
	return int(C.MIDIEntityGetNumberOfDestinations(C.MIDIEntityRef(entity)))
}

func (h *Host) EntityDestination(entity contracts.ObjectRef, index int) contracts.ObjectRef {
	return contracts.ObjectRef(C.MIDIEntityGetDestination(C.MIDIEntityRef(entity), C.ItemCount(index)))
}

func (h *Host) NumberOfDestinations() int {
	return int(C.MIDIGetNumberOfDestinations())
}

func (h *Host) Destination(index int) contracts.ObjectRef {
	return contracts.ObjectRef(C.MIDIGetDestination(C.ItemCount(index)))
}

func (h *Host) IntegerProperty(obj contracts.ObjectRef, key string) (int32, contracts.Status) {
	var prop C.CFStringRef
	switch key {
	case contracts.PropertyOffline:
		prop = C.kMIDIPropertyOffline
	case contracts.PropertyUniqueID:
		prop = C.kMIDIPropertyUniqueID
	default:
		return 0, contracts.StatusObjectNotFound
	}

	var v C.SInt32
	st := C.MIDIObjectGetIntegerProperty(C.MIDIObjectRef(obj), prop, &v)
	return int32(v), contracts.Status(st)
}

// Properties collects the name and unique id of obj. A missing name is not an
// error; the list simply lacks the "name" key.
func (h *Host) Properties(obj contracts.ObjectRef) (contracts.PropertyList, contracts.Status) {
	id, st := h.IntegerProperty(obj, contracts.PropertyUniqueID)
	if st != contracts.StatusOK {
		return nil, st
	}
	props := contracts.PropertyList{contracts.PropertyUniqueID: id}

	var cfs C.CFStringRef
	if C.MIDIObjectGetStringProperty(C.MIDIObjectRef(obj), C.kMIDIPropertyName, &cfs) == C.noErr {
		defer C.CFRelease(C.CFTypeRef(cfs))
		if s := C.copy_string(cfs); s != nil {
			props[contracts.PropertyName] = C.GoString(s)
			C.free(unsafe.Pointer(s))
		}
	}
	return props, contracts.StatusOK
}

func (h *Host) Send(port, destination contracts.ObjectRef, packet contracts.Packet) contracts.Status {
	return h.send(port, destination, packet, false)
}

func (h *Host) Received(source contracts.ObjectRef, packet contracts.Packet) contracts.Status {
	return h.send(0, source, packet, true)
}

func (h *Host) send(port, endpoint contracts.ObjectRef, packet contracts.Packet, received bool) contracts.Status {
	if len(packet.Data) == 0 {
		return contracts.StatusOK
	}
	flag := C.int(0)
	if received {
		flag = 1
	}
	data := C.CBytes(packet.Data)
	defer C.free(data)

	st := C.send_packet(
		C.MIDIPortRef(port),
		C.MIDIEndpointRef(endpoint),
		C.MIDITimeStamp(packet.Timestamp),
		(*C.Byte)(data),
		C.ByteCount(len(packet.Data)),
		flag,
	)
	return contracts.Status(st)
}

func cfstr(str string) (C.CFStringRef, func()) {
	c := C.CString(str)
	defer C.free(unsafe.Pointer(c))
	cf := C.CFStringCreateWithCString(
		C.kCFAllocatorDefault,
		c,
		C.kCFStringEncodingUTF8,
	)
	return cf, func() { C.CFRelease(C.CFTypeRef(cf)) }
}
