package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leandrodaf/midicc/sdk/contracts"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLoggerWithCore(core)

	log.Error("host call failed",
		log.Field().Int32("status", -10830),
		log.Field().Int("index", 2),
		log.Field().Error("error", errors.New("boom")),
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["status"] != int32(-10830) {
		t.Errorf("status field = %v", ctx["status"])
	}
	if ctx["index"] != int64(2) {
		t.Errorf("index field = %v", ctx["index"])
	}
	if ctx["error"] != "boom" {
		t.Errorf("error field = %v", ctx["error"])
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Errorf("level = %v", entries[0].Level)
	}
}

func TestZapLoggerSetLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLoggerWithCore(core)

	log.Debug("hidden")
	if logs.Len() != 0 {
		t.Fatalf("debug entry written at info level")
	}

	log.SetLevel(contracts.DebugLevel)
	log.Debug("shown")
	if logs.Len() != 1 {
		t.Fatalf("debug entry not written after SetLevel(Debug)")
	}

	log.SetLevel(contracts.ErrorLevel)
	log.Warn("hidden")
	log.Info("hidden")
	if logs.Len() != 1 {
		t.Fatalf("entries below error written: %d", logs.Len())
	}
}

func TestZapLoggerFileDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "midicc.log")

	log := NewStandardLogger().(*ZapLogger)
	log.SetDestination(contracts.FileLog, path)
	log.Info("written to file", log.Field().String("device", "IAC Bus 1"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") || !strings.Contains(string(data), "IAC Bus 1") {
		t.Errorf("log file content = %q", data)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name string
		want contracts.LogLevel
		ok   bool
	}{
		{"debug", contracts.DebugLevel, true},
		{"", contracts.InfoLevel, true},
		{"warning", contracts.WarnLevel, true},
		{"error", contracts.ErrorLevel, true},
		{"loud", contracts.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := contracts.ParseLogLevel(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLogLevel(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
