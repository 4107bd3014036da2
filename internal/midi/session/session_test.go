package session

import (
	"bytes"
	"errors"
	"testing"

	"github.com/leandrodaf/midicc/internal/midi/encoding"
	"github.com/leandrodaf/midicc/internal/midi/midimock"
	"github.com/leandrodaf/midicc/sdk/contracts"
	"go.uber.org/multierr"
)

func TestNewDefaultsToVirtualPort(t *testing.T) {
	log, _ := newTestLogger(t)
	h := newStudioHost()

	s := New(h, log, contracts.SessionNames{}, contracts.VirtualPortIndex)

	if s.SelectedIndex() != -1 || s.Mode() != contracts.VirtualOutput {
		t.Fatalf("selected %d mode %v, want -1 virtual", s.SelectedIndex(), s.Mode())
	}
	if len(s.Devices()) != 2 {
		t.Errorf("construction did not refresh: %+v", s.Devices())
	}
	if srcs := h.LiveSources(); len(srcs) != 1 || srcs[0] != DefaultNames.VirtualSource {
		t.Errorf("live sources = %v", srcs)
	}
}

func TestSendDispatchesOnMode(t *testing.T) {
	log, _ := newTestLogger(t)
	h := newStudioHost()
	s := New(h, log, contracts.SessionNames{VirtualSource: "test port"}, contracts.VirtualPortIndex)

	st, err := s.Send(1, 7, 100)
	if err != nil || st != contracts.StatusOK {
		t.Fatalf("virtual Send = %v, %v", st, err)
	}

	s.SelectTarget(0)
	if s.Mode() != contracts.PhysicalOutput {
		t.Fatalf("mode after SelectTarget(0) = %v", s.Mode())
	}
	st, err = s.Send(16, 0, 0)
	if err != nil || st != contracts.StatusOK {
		t.Fatalf("physical Send = %v, %v", st, err)
	}

	got := h.Deliveries()
	if len(got) != 2 {
		t.Fatalf("deliveries = %+v", got)
	}

	virt := got[0]
	if !virt.WasInjected || virt.Name != "test port" || virt.ClientName != DefaultNames.VirtualClient {
		t.Errorf("virtual delivery = %+v", virt)
	}
	if !bytes.Equal(virt.Packet.Data, []byte{0xB0, 7, 100}) || virt.Packet.Timestamp != 0 {
		t.Errorf("virtual packet = %+v", virt.Packet)
	}

	phys := got[1]
	if phys.WasInjected || phys.Name != "Synth Port 1" || phys.ClientName != DefaultNames.Client {
		t.Errorf("physical delivery = %+v", phys)
	}
	if !bytes.Equal(phys.Packet.Data, []byte{0xBF, 0, 0}) {
		t.Errorf("physical packet = % X", phys.Packet.Data)
	}
}

func TestSelectTargetIndexesMergedList(t *testing.T) {
	log, _ := newTestLogger(t)
	h := newStudioHost()
	s := New(h, log, contracts.SessionNames{}, 1)

	if _, err := s.Send(2, 1, 64); err != nil {
		t.Fatal(err)
	}
	got := h.Deliveries()
	if len(got) != 1 || got[0].Name != "IAC Bus 1" {
		t.Errorf("deliveries = %+v, want IAC Bus 1", got)
	}
}

func TestSelectTargetReleasesPreviousTarget(t *testing.T) {
	log, _ := newTestLogger(t)
	h := newStudioHost()
	s := New(h, log, contracts.SessionNames{}, contracts.VirtualPortIndex)

	s.SelectTarget(0)
	if n := h.LiveClients(); n != 1 {
		t.Errorf("live clients after switch = %d, want 1", n)
	}
	if srcs := h.LiveSources(); len(srcs) != 0 {
		t.Errorf("virtual source survived switch: %v", srcs)
	}

	s.SelectTarget(1)
	s.SelectTarget(contracts.VirtualPortIndex)
	if n := h.LiveClients(); n != 1 {
		t.Errorf("live clients after three switches = %d, want 1", n)
	}
}

func TestSelectTargetFailOpen(t *testing.T) {
	log, logs := newTestLogger(t)
	h := newStudioHost()
	s := New(h, log, contracts.SessionNames{}, contracts.VirtualPortIndex)

	h.Fail(midimock.CallCreateClient, contracts.StatusInvalidClient)
	s.SelectTarget(0)

	if s.SelectedIndex() != 0 {
		t.Errorf("SelectedIndex() = %d after failed selection, want 0", s.SelectedIndex())
	}
	entries := logs.FilterMessage("Error while selecting MIDI device").All()
	if len(entries) != 1 {
		t.Fatalf("error log entries = %d, want 1", len(entries))
	}
	if entries[0].ContextMap()["status"] != int32(contracts.StatusInvalidClient) {
		t.Errorf("logged status = %v", entries[0].ContextMap()["status"])
	}

	st, err := s.Send(1, 1, 1)
	if err != nil || st != contracts.StatusInvalidPort {
		t.Errorf("Send through failed target = %v, %v", st, err)
	}
	if len(h.Deliveries()) != 0 {
		t.Error("packet delivered through a failed target")
	}
}

func TestSelectTargetPastEndOfList(t *testing.T) {
	log, logs := newTestLogger(t)
	h := newStudioHost()
	s := New(h, log, contracts.SessionNames{}, 5)

	if s.SelectedIndex() != 5 || s.Mode() != contracts.PhysicalOutput {
		t.Fatalf("selected %d mode %v", s.SelectedIndex(), s.Mode())
	}
	if logs.FilterMessage("Error while selecting MIDI device").Len() != 1 {
		t.Error("missing destination was not logged")
	}
	if st, _ := s.Send(1, 1, 1); st != contracts.StatusUnknownEndpoint {
		t.Errorf("Send = %v, want %v", st, contracts.StatusUnknownEndpoint)
	}
}

func TestVirtualSourceUnsupported(t *testing.T) {
	log, _ := newTestLogger(t)
	h := newStudioHost()
	h.Fail(midimock.CallCreateVirtualSource, contracts.StatusUnsupported)

	s := New(h, log, contracts.SessionNames{}, contracts.VirtualPortIndex)
	if s.SelectedIndex() != -1 || s.Mode() != contracts.VirtualOutput {
		t.Fatalf("selected %d mode %v", s.SelectedIndex(), s.Mode())
	}
	if st, _ := s.Send(1, 1, 1); st != contracts.StatusUnknownEndpoint {
		t.Errorf("Send = %v", st)
	}
}

func TestSendReturnsHostStatus(t *testing.T) {
	log, _ := newTestLogger(t)
	h := newStudioHost()
	s := New(h, log, contracts.SessionNames{}, 0)

	h.Fail(midimock.CallSend, contracts.StatusIOError)
	st, err := s.Send(1, 7, 100)
	if err != nil || st != contracts.StatusIOError {
		t.Errorf("Send = %v, %v; want %v, nil", st, err, contracts.StatusIOError)
	}
}

func TestSendRejectsInvalidArguments(t *testing.T) {
	log, _ := newTestLogger(t)
	h := newStudioHost()
	s := New(h, log, contracts.SessionNames{}, 0)

	if _, err := s.Send(0, 7, 100); !errors.Is(err, encoding.ErrInvalidChannel) {
		t.Errorf("Send(0, ...) error = %v", err)
	}
	if _, err := s.SendControlChange(contracts.ControlChange{Channel: 1, Controller: 200}); !errors.Is(err, encoding.ErrInvalidController) {
		t.Errorf("SendControlChange error = %v", err)
	}
	if len(h.Deliveries()) != 0 {
		t.Error("invalid message delivered")
	}
}

func TestStop(t *testing.T) {
	log, _ := newTestLogger(t)
	h := newStudioHost()
	s := New(h, log, contracts.SessionNames{}, contracts.VirtualPortIndex)

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if s.Mode() != contracts.NoOutput || s.SelectedIndex() != -1 {
		t.Errorf("after Stop mode %v selected %d", s.Mode(), s.SelectedIndex())
	}
	if h.LiveClients() != 0 || len(h.LiveSources()) != 0 {
		t.Error("Stop left host resources allocated")
	}
	if st, _ := s.Send(1, 1, 1); st != contracts.StatusInvalidPort {
		t.Errorf("Send after Stop = %v", st)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestStopAggregatesTeardownErrors(t *testing.T) {
	log, _ := newTestLogger(t)
	h := newStudioHost()
	s := New(h, log, contracts.SessionNames{}, contracts.VirtualPortIndex)

	h.Fail(midimock.CallDisposeEndpoint, contracts.StatusIOError)
	h.Fail(midimock.CallDisposeClient, contracts.StatusInvalidClient)

	err := s.Stop()
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("Stop error %v has %d parts, want 2", err, got)
	}
	var se *contracts.StatusError
	if !errors.As(err, &se) || se.Status != contracts.StatusIOError {
		t.Errorf("first teardown error = %v", err)
	}
}

func TestSessionsDoNotShareVirtualPortNames(t *testing.T) {
	log, _ := newTestLogger(t)
	h := newStudioHost()

	a := New(h, log, contracts.SessionNames{VirtualSource: "deck A"}, contracts.VirtualPortIndex)
	b := New(h, log, contracts.SessionNames{VirtualSource: "deck B"}, contracts.VirtualPortIndex)

	if _, err := a.Send(1, 1, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Send(1, 1, 20); err != nil {
		t.Fatal(err)
	}
	got := h.Deliveries()
	if len(got) != 2 || got[0].Name != "deck A" || got[1].Name != "deck B" {
		t.Errorf("deliveries = %+v", got)
	}
}
