package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "midicc.yaml")))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("midicc %v: %v", args, err)
	}
	return out.String()
}

func TestMapCommand(t *testing.T) {
	if got := strings.TrimSpace(execute(t, "map", "511")); got != "63" {
		t.Errorf("map 511 = %q, want 63", got)
	}
	if got := strings.TrimSpace(execute(t, "map", "100", "0", "200")); got != "64" {
		t.Errorf("map 100 0 200 = %q, want 64", got)
	}
}

func TestSendCommandDryRun(t *testing.T) {
	got := execute(t, "send", "--dry-run", "--log-level", "error", "--device", "0", "--controller", "7", "--value", "100")
	if !strings.Contains(got, "dry run: B0 07 64 -> Dry Run Synth") {
		t.Errorf("send output = %q", got)
	}
	if !strings.Contains(got, "physical target 0") {
		t.Errorf("send output = %q", got)
	}
}

func TestListCommandDryRun(t *testing.T) {
	got := execute(t, "list", "--dry-run", "--log-level", "error")
	if !strings.Contains(got, " 0: Dry Run Synth (id 1)") {
		t.Errorf("list output = %q", got)
	}
}
