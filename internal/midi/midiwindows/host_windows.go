//go:build windows
// +build windows

package midiwindows

import (
	"fmt"
	"unsafe"

	"github.com/leandrodaf/midicc/internal/midi/refs"
	"github.com/leandrodaf/midicc/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIOUT windows.Handle

// Constants for midiOutOpen
const (
	CALLBACK_NULL = 0x00000000 // No callback
)

// Reference ranges. winmm has no handle for clients or ports, so those are
// synthetic; destinations are winmm device ids offset by destinationBase.
const (
	destinationBase contracts.ObjectRef = 0x0000_1000
	clientBase      contracts.ObjectRef = 0x0010_0000
	portBase        contracts.ObjectRef = 0x0020_0000
)

// Struct representing MIDI output device capabilities
type midiOutCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	wTechnology    uint16
	wVoices        uint16
	wNotes         uint16
	wChannelMask   uint16
	dwSupport      uint32
}

// Load the winmm.dll library and required functions
var (
	winmm                 = windows.NewLazySystemDLL("winmm.dll")
	procMidiOutGetNumDevs = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps = winmm.NewProc("midiOutGetDevCapsW")
	procMidiOutOpen       = winmm.NewProc("midiOutOpen")
	procMidiOutShortMsg   = winmm.NewProc("midiOutShortMsg")
	procMidiOutClose      = winmm.NewProc("midiOutClose")
)

type client struct {
	name string
}

type port struct {
	client contracts.ObjectRef
	name   string
	open   map[uint32]HMIDIOUT // device id -> handle opened on first send
}

// Host maps the session's capability set onto winmm. Devices are opened
// lazily on the first packet sent to them and closed with their client.
type Host struct {
	logger  contracts.Logger
	clients *refs.Table[*client]
	ports   *refs.Table[*port]
}

var _ contracts.Host = (*Host)(nil)

// NewHost creates the winmm host
func NewHost(options *contracts.ClientOptions) (contracts.Host, error) {
	options.Logger.Info("MIDI host created for Windows")
	return &Host{
		logger:  options.Logger,
		clients: refs.NewTable[*client](clientBase),
		ports:   refs.NewTable[*port](portBase),
	}, nil
}

func (h *Host) CreateClient(name string) (contracts.ObjectRef, contracts.Status) {
	return h.clients.Add(&client{name: name}), contracts.StatusOK
}

func (h *Host) DisposeClient(ref contracts.ObjectRef) contracts.Status {
	if _, ok := h.clients.Remove(ref); !ok {
		return contracts.StatusInvalidClient
	}
	var owned []contracts.ObjectRef
	h.ports.Each(func(pr contracts.ObjectRef, p *port) {
		if p.client == ref {
			owned = append(owned, pr)
		}
	})

	st := contracts.StatusOK
	for _, pr := range owned {
		p, _ := h.ports.Remove(pr)
		for id, hmo := range p.open {
			if r, _, _ := procMidiOutClose.Call(uintptr(hmo)); r != 0 {
				h.logger.Error(fmt.Sprintf("Failed to close MIDI device %d", id))
				st = contracts.Status(r)
			}
		}
	}
	return st
}

func (h *Host) CreateOutputPort(clientRef contracts.ObjectRef, name string) (contracts.ObjectRef, contracts.Status) {
	if _, ok := h.clients.Get(clientRef); !ok {
		return 0, contracts.StatusInvalidClient
	}
	return h.ports.Add(&port{client: clientRef, name: name, open: make(map[uint32]HMIDIOUT)}), contracts.StatusOK
}

// CreateVirtualSource is not available: winmm cannot publish ports.
func (h *Host) CreateVirtualSource(contracts.ObjectRef, string) (contracts.ObjectRef, contracts.Status) {
	h.logger.Warn("Virtual MIDI ports are not supported by winmm")
	return 0, contracts.StatusUnsupported
}

func (h *Host) DisposeEndpoint(contracts.ObjectRef) contracts.Status {
	return contracts.StatusUnknownEndpoint
}

// winmm has no device tree; every output is a standalone destination.
func (h *Host) NumberOfDevices() int { return 0 }
func (h *Host) Device(int) contracts.ObjectRef { return 0 }
func (h *Host) NumberOfEntities(contracts.ObjectRef) int { return 0 }
func (h *Host) Entity(contracts.ObjectRef, int) contracts.ObjectRef { return 0 }
func (h *Host) NumberOfEntityDestinations(contracts.ObjectRef) int { return 0 }
func (h *Host) EntityDestination(contracts.ObjectRef, int) contracts.ObjectRef { return 0 }

func (h *Host) NumberOfDestinations() int {
	r0, _, _ := procMidiOutGetNumDevs.Call()
	return int(uint32(r0))
}

func (h *Host) Destination(index int) contracts.ObjectRef {
	if index < 0 || index >= h.NumberOfDestinations() {
		return 0
	}
	return destinationBase + contracts.ObjectRef(index)
}

func (h *Host) deviceID(ref contracts.ObjectRef) (uint32, bool) {
	if ref < destinationBase || ref >= clientBase {
		return 0, false
	}
	id := uint32(ref - destinationBase)
	return id, int(id) < h.NumberOfDestinations()
}

func (h *Host) caps(id uint32) (midiOutCaps, contracts.Status) {
	var caps midiOutCaps
	r1, _, _ := procMidiOutGetDevCaps.Call(
		uintptr(id),
		uintptr(unsafe.Pointer(&caps)),
		unsafe.Sizeof(caps),
	)
	return caps, contracts.Status(r1)
}

func describe(caps midiOutCaps) string {
	return fmt.Sprintf("%d:%d:%s", caps.wMid, caps.wPid, windows.UTF16ToString(caps.szPname[:]))
}

// uniqueID hashes the device description and its position among devices
// with the same description.
func (h *Host) uniqueID(id uint32) (int32, contracts.Status) {
	descriptions := make([]string, id+1)
	for i := uint32(0); i <= id; i++ {
		caps, st := h.caps(i)
		if st != contracts.StatusOK {
			if i == id {
				return 0, st
			}
			continue
		}
		descriptions[i] = describe(caps)
	}
	return refs.StableID(descriptions[id], refs.Occurrences(descriptions)[id]), contracts.StatusOK
}

func (h *Host) IntegerProperty(obj contracts.ObjectRef, key string) (int32, contracts.Status) {
	id, ok := h.deviceID(obj)
	if !ok {
		return 0, contracts.StatusObjectNotFound
	}
	switch key {
	case contracts.PropertyOffline:
		if _, st := h.caps(id); st != contracts.StatusOK {
			return 1, contracts.StatusOK
		}
		return 0, contracts.StatusOK
	case contracts.PropertyUniqueID:
		return h.uniqueID(id)
	}
	return 0, contracts.StatusObjectNotFound
}

func (h *Host) Properties(obj contracts.ObjectRef) (contracts.PropertyList, contracts.Status) {
	id, ok := h.deviceID(obj)
	if !ok {
		return nil, contracts.StatusObjectNotFound
	}
	caps, st := h.caps(id)
	if st != contracts.StatusOK {
		h.logger.Warn(fmt.Sprintf("Failed to get information for MIDI device %d", id))
		return nil, st
	}
	uid, st := h.uniqueID(id)
	if st != contracts.StatusOK {
		return nil, st
	}
	return contracts.PropertyList{
		contracts.PropertyName:     windows.UTF16ToString(caps.szPname[:]),
		contracts.PropertyUniqueID: uid,
	}, contracts.StatusOK
}

// Send packs up to three bytes into a short message. Longer packets need
// midiOutLongMsg, which Control-Change output never does.
func (h *Host) Send(portRef, destination contracts.ObjectRef, packet contracts.Packet) contracts.Status {
	p, ok := h.ports.Get(portRef)
	if !ok {
		return contracts.StatusInvalidPort
	}
	id, ok := h.deviceID(destination)
	if !ok {
		return contracts.StatusUnknownEndpoint
	}
	if len(packet.Data) == 0 || len(packet.Data) > 3 {
		return contracts.StatusUnsupported
	}

	hmo, ok := p.open[id]
	if !ok {
		r1, _, err := procMidiOutOpen.Call(
			uintptr(unsafe.Pointer(&hmo)),
			uintptr(id),
			0,
			0,
			CALLBACK_NULL,
		)
		if r1 != 0 {
			h.logger.Error(fmt.Sprintf("Failed to open MIDI device %d: %v", id, err))
			return contracts.Status(r1)
		}
		p.open[id] = hmo
		h.logger.Info(fmt.Sprintf("MIDI device %d opened", id))
	}

	var msg uint32
	for i, b := range packet.Data {
		msg |= uint32(b) << (8 * i)
	}
	r1, _, _ := procMidiOutShortMsg.Call(uintptr(hmo), uintptr(msg))
	return contracts.Status(r1)
}

func (h *Host) Received(contracts.ObjectRef, contracts.Packet) contracts.Status {
	return contracts.StatusUnsupported
}
