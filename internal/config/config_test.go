package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leandrodaf/midicc/sdk/contracts"
)

func apply(t *testing.T, cfg *Config) contracts.ClientOptions {
	t.Helper()
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	var o contracts.ClientOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "info" || cfg.Input.High != 1023 || cfg.Target != nil {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "midicc.yaml")
	data := "log_level: debug\ntarget: 2\nnames:\n  virtual_source: Pedals\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Input.High != 1023 {
		t.Errorf("input range default lost: %+v", cfg.Input)
	}

	o := apply(t, cfg)
	if o.LogLevel != contracts.DebugLevel {
		t.Errorf("LogLevel = %v", o.LogLevel)
	}
	if o.InitialIndex == nil || *o.InitialIndex != 2 {
		t.Errorf("InitialIndex = %v", o.InitialIndex)
	}
	if o.Names == nil || o.Names.VirtualSource != "Pedals" || o.Names.Client != "" {
		t.Errorf("Names = %+v", o.Names)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("target: [1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed file accepted")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "midicc.yaml")
	cfg := DefaultConfig()
	cfg.PreferredDevice = "IAC Bus 1"
	cfg.Input = InputRange{Low: 40, High: 980}

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.PreferredDevice != "IAC Bus 1" || got.Input != cfg.Input {
		t.Errorf("LoadConfig() = %+v", got)
	}
}

func TestOptionsUnknownLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	if _, err := cfg.Options(); err == nil {
		t.Error("unknown log level accepted")
	}
}

func TestDefaultOptionsLeaveClientDefaults(t *testing.T) {
	o := apply(t, DefaultConfig())
	if o.InitialIndex != nil || o.Names != nil || o.LogFilePath != "" {
		t.Errorf("options = %+v", o)
	}
}

func TestResolveTarget(t *testing.T) {
	devices := contracts.DeviceList{{Name: "Synth", UniqueID: 1}, {Name: "IAC Bus 1", UniqueID: 2}}
	zero := 0

	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"nothing configured", Config{}, contracts.VirtualPortIndex},
		{"index", Config{Target: &zero}, 0},
		{"preferred wins", Config{Target: &zero, PreferredDevice: "IAC Bus 1"}, 1},
		{"preferred absent", Config{PreferredDevice: "Gone"}, contracts.VirtualPortIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ResolveTarget(devices); got != tt.want {
				t.Errorf("ResolveTarget() = %d, want %d", got, tt.want)
			}
		})
	}

	var cfg Config
	if err := cfg.SetPreferredDevice("Gone", devices); err == nil {
		t.Error("unknown device accepted")
	}
	if err := cfg.SetPreferredDevice("Synth", devices); err != nil || cfg.PreferredDevice != "Synth" {
		t.Errorf("SetPreferredDevice = %v, %q", err, cfg.PreferredDevice)
	}
}
