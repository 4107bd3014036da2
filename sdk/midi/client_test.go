package midi

import (
	"bytes"
	"testing"

	"github.com/leandrodaf/midicc/internal/logger"
	"github.com/leandrodaf/midicc/internal/midi/midimock"
	"github.com/leandrodaf/midicc/internal/midi/session"
	"github.com/leandrodaf/midicc/sdk/contracts"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*logger.ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.NewZapLoggerWithCore(core), logs
}

func TestNewMIDIClientDefaults(t *testing.T) {
	log, logs := newObservedLogger()
	h := midimock.New()
	h.AddDestination(midimock.Endpoint{Name: "Synth", UniqueID: 7})

	client, err := NewMIDIClient(contracts.WithHost(h), contracts.WithLogger(log))
	if err != nil {
		t.Fatalf("NewMIDIClient: %v", err)
	}
	defer client.Stop()

	if client.Mode() != contracts.VirtualOutput || client.SelectedIndex() != contracts.VirtualPortIndex {
		t.Errorf("mode %v index %d, want virtual -1", client.Mode(), client.SelectedIndex())
	}
	if names := client.DeviceNames(); len(names) != 1 || names[0] != "Synth" {
		t.Errorf("DeviceNames() = %v", names)
	}
	if srcs := h.LiveSources(); len(srcs) != 1 || srcs[0] != session.DefaultNames.VirtualSource {
		t.Errorf("live sources = %v", srcs)
	}
	if logs.FilterMessage("MIDI device selected").Len() != 1 {
		t.Error("selection was not logged")
	}
	if logs.FilterLevelExact(zapcore.DebugLevel).Len() != 0 {
		t.Error("debug entries written at the default Info level")
	}
}

func TestNewMIDIClientOptions(t *testing.T) {
	log, _ := newObservedLogger()
	h := midimock.New()
	h.AddDestination(midimock.Endpoint{Name: "Synth", UniqueID: 7})

	client, err := NewMIDIClient(
		contracts.WithHost(h),
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.DebugLevel),
		contracts.WithInitialIndex(0),
		contracts.WithSessionNames(contracts.SessionNames{Client: "Knobs"}),
	)
	if err != nil {
		t.Fatalf("NewMIDIClient: %v", err)
	}
	defer client.Stop()

	if client.Mode() != contracts.PhysicalOutput {
		t.Fatalf("mode = %v, want physical", client.Mode())
	}
	if _, err := client.Send(1, 74, 90); err != nil {
		t.Fatal(err)
	}
	got := h.Deliveries()
	if len(got) != 1 || got[0].ClientName != "Knobs" || got[0].Name != "Synth" {
		t.Fatalf("deliveries = %+v", got)
	}
	if !bytes.Equal(got[0].Packet.Data, []byte{0xB0, 74, 90}) {
		t.Errorf("packet = % X", got[0].Packet.Data)
	}
}

func TestApplyDefaultOptionsKeepsPartialNames(t *testing.T) {
	log, _ := newObservedLogger()
	opts, err := applyDefaultOptions(
		contracts.WithLogger(log),
		contracts.WithSessionNames(contracts.SessionNames{VirtualSource: "Pedals"}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Names.VirtualSource != "Pedals" || *opts.InitialIndex != contracts.VirtualPortIndex {
		t.Errorf("options = %+v names %+v", opts, *opts.Names)
	}
}

func TestNewHostPrefersInjectedHost(t *testing.T) {
	h := midimock.New()
	got, err := NewHost(&contracts.ClientOptions{Host: h})
	if err != nil || got != h {
		t.Errorf("NewHost = %v, %v", got, err)
	}
}

func TestPublicEncoding(t *testing.T) {
	b, err := EncodeControlChange(10, 1, 127)
	if err != nil || !bytes.Equal(b, []byte{0xB9, 1, 127}) {
		t.Errorf("EncodeControlChange = % X, %v", b, err)
	}
	if _, err := EncodeControlChange(0, 1, 1); err == nil {
		t.Error("channel 0 accepted")
	}
	if v := MapToMIDI(1023, 0, 1023); v != 127 {
		t.Errorf("MapToMIDI(1023, 0, 1023) = %d", v)
	}
}
