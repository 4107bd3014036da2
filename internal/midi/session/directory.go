package session

import "github.com/leandrodaf/midicc/sdk/contracts"

type entry struct {
	device   contracts.Device
	endpoint contracts.ObjectRef // destination used when the entry is selected
}

// Directory lists the online MIDI destinations known to the host.
//
// It scans the device/entity tree first and the flat destination list second,
// keeping the first entry seen for each unique id. Entries remember the
// destination they were found through, so selecting an index resolves
// against this list rather than the host's own destination order.
type Directory struct {
	host    contracts.Host
	logger  contracts.Logger
	entries []entry
}

// NewDirectory returns an empty directory; call Refresh to populate it.
func NewDirectory(host contracts.Host, logger contracts.Logger) *Directory {
	return &Directory{host: host, logger: logger}
}

// Refresh rebuilds the device list from the host and returns it.
// Finding no device is not an error.
func (d *Directory) Refresh() contracts.DeviceList {
	entries := make([]entry, 0, d.host.NumberOfDestinations())
	seen := make(map[int32]struct{})
	add := func(e entry) {
		if _, dup := seen[e.device.UniqueID]; dup {
			return
		}
		seen[e.device.UniqueID] = struct{}{}
		entries = append(entries, e)
	}

	for i := 0; i < d.host.NumberOfDevices(); i++ {
		device := d.host.Device(i)
		if !d.online(device) {
			continue
		}
		for j := 0; j < d.host.NumberOfEntities(device); j++ {
			entity := d.host.Entity(device, j)
			if d.host.NumberOfEntityDestinations(entity) == 0 || !d.online(entity) {
				continue
			}
			name, id, ok := d.describe(entity)
			if !ok {
				d.logger.Debug("Skipping MIDI entity without metadata", d.logger.Field().Int("device", i), d.logger.Field().Int("entity", j))
				continue
			}
			dest := d.host.EntityDestination(entity, 0)
			// Identify the entity by its destination so the flat scan below
			// collapses onto the same entry.
			if destID, ok := d.uniqueID(dest, nil); ok {
				id = destID
			}
			add(entry{device: contracts.Device{Name: name, UniqueID: id}, endpoint: dest})
		}
	}

	for i := 0; i < d.host.NumberOfDestinations(); i++ {
		dest := d.host.Destination(i)
		if !d.online(dest) {
			continue
		}
		name, id, ok := d.describe(dest)
		if !ok {
			d.logger.Debug("Skipping MIDI destination without metadata", d.logger.Field().Int("destination", i))
			continue
		}
		add(entry{device: contracts.Device{Name: name, UniqueID: id}, endpoint: dest})
	}

	d.entries = entries
	d.logger.Debug("MIDI device list refreshed", d.logger.Field().Strings("devices", d.Names()))
	return d.Devices()
}

// Devices returns the list built by the last Refresh.
func (d *Directory) Devices() contracts.DeviceList {
	list := make(contracts.DeviceList, len(d.entries))
	for i, e := range d.entries {
		list[i] = e.device
	}
	return list
}

// Names returns the display names of the last Refresh.
func (d *Directory) Names() []string {
	return d.Devices().Names()
}

// endpoint resolves a list position to the destination it was found through.
func (d *Directory) endpoint(index int) (contracts.ObjectRef, string, bool) {
	if index < 0 || index >= len(d.entries) {
		return 0, "", false
	}
	e := d.entries[index]
	return e.endpoint, e.device.Name, true
}

// online treats an unreadable offline flag as online.
func (d *Directory) online(obj contracts.ObjectRef) bool {
	offline, st := d.host.IntegerProperty(obj, contracts.PropertyOffline)
	if st != contracts.StatusOK {
		return true
	}
	return offline != 1
}

// describe reads the name from the property list and the unique id from the
// property list or, failing that, the integer property.
func (d *Directory) describe(obj contracts.ObjectRef) (string, int32, bool) {
	props, st := d.host.Properties(obj)
	if st != contracts.StatusOK {
		return "", 0, false
	}
	name, ok := props.String(contracts.PropertyName)
	if !ok {
		return "", 0, false
	}
	id, ok := d.uniqueID(obj, props)
	if !ok {
		return "", 0, false
	}
	return name, id, true
}

func (d *Directory) uniqueID(obj contracts.ObjectRef, props contracts.PropertyList) (int32, bool) {
	if obj == 0 {
		return 0, false
	}
	if id, ok := props.Int32(contracts.PropertyUniqueID); ok {
		return id, true
	}
	id, st := d.host.IntegerProperty(obj, contracts.PropertyUniqueID)
	return id, st == contracts.StatusOK
}
