package session

import (
	"fmt"

	"github.com/leandrodaf/midicc/sdk/contracts"
	"go.uber.org/multierr"
)

// outputTarget is the active send path of a session: either a physical
// destination reached through an output port, or a virtual source.
type outputTarget interface {
	mode() contracts.OutputMode
	send(host contracts.Host, packet contracts.Packet) contracts.Status
	close() error
}

type physicalTarget struct {
	client      *handle
	port        *handle
	destination contracts.ObjectRef // owned by the host, not by the session
	name        string
}

func (t *physicalTarget) mode() contracts.OutputMode { return contracts.PhysicalOutput }

func (t *physicalTarget) send(host contracts.Host, packet contracts.Packet) contracts.Status {
	port, ok := t.port.Ref()
	if !ok {
		return contracts.StatusInvalidPort
	}
	if t.destination == 0 {
		return contracts.StatusUnknownEndpoint
	}
	return host.Send(port, t.destination, packet)
}

func (t *physicalTarget) close() error {
	if err := t.client.Close().Err(); err != nil {
		return fmt.Errorf("dispose output client: %w", err)
	}
	return nil
}

type virtualTarget struct {
	client *handle
	port   *handle
	source *handle
}

func (t *virtualTarget) mode() contracts.OutputMode { return contracts.VirtualOutput }

func (t *virtualTarget) send(host contracts.Host, packet contracts.Packet) contracts.Status {
	source, ok := t.source.Ref()
	if !ok {
		return contracts.StatusUnknownEndpoint
	}
	return host.Received(source, packet)
}

// close disposes the virtual source before its client so the endpoint
// disappears from other applications even if client disposal fails.
func (t *virtualTarget) close() error {
	var err error
	if e := t.source.Close().Err(); e != nil {
		err = multierr.Append(err, fmt.Errorf("dispose virtual source: %w", e))
	}
	if e := t.client.Close().Err(); e != nil {
		err = multierr.Append(err, fmt.Errorf("dispose virtual client: %w", e))
	}
	return err
}
