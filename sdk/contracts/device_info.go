package contracts

// VirtualPortIndex is the selection index of the virtual source port.
// Any negative index selects it.
const VirtualPortIndex = -1

// Device is a MIDI destination discovered by a directory refresh.
type Device struct {
	Name     string // Display name, informational only.
	UniqueID int32  // Host-assigned identifier; the device identity.
}

// DeviceList is the ordered result of a directory refresh. Order is discovery
// order and no two entries share a UniqueID.
type DeviceList []Device

// Names returns the display names in list order.
func (l DeviceList) Names() []string {
	names := make([]string, len(l))
	for i, d := range l {
		names[i] = d.Name
	}
	return names
}

// IndexOf returns the position of the device with the given id, or -1.
func (l DeviceList) IndexOf(uniqueID int32) int {
	for i, d := range l {
		if d.UniqueID == uniqueID {
			return i
		}
	}
	return -1
}
