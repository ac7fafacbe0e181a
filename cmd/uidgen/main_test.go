package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateHex(t *testing.T) {
	out, _, err := runCommand(t, "generate", "-n", "5", "-s", "24", "--node", "a1a2a3a4a5a6")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	prev := ""
	for _, line := range lines {
		b, err := hex.DecodeString(line)
		if err != nil {
			t.Fatalf("line %q is not hex: %v", line, err)
		}
		if len(b) != 24 {
			t.Fatalf("expected 24 bytes, got %d", len(b))
		}
		if line[12:24] != "a1a2a3a4a5a6" {
			t.Fatalf("node mismatch in %s", line)
		}
		if prev != "" && line <= prev {
			t.Fatalf("ids not increasing: %s <= %s", line, prev)
		}
		prev = line
	}
}

func TestGenerateRaw(t *testing.T) {
	out, _, err := runCommand(t, "generate", "-n", "3", "-s", "32", "-o", "raw")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(out) != 3*32 {
		t.Fatalf("expected %d raw bytes, got %d", 3*32, len(out))
	}
}

func TestGenerateInvalidSize(t *testing.T) {
	_, stderr, err := runCommand(t, "generate", "-s", "40")
	if err == nil {
		t.Fatalf("expected error for size 40")
	}
	if !strings.Contains(stderr, "Size") {
		t.Fatalf("expected size error on stderr, got %q", stderr)
	}
}

func TestGenerateDebugLog(t *testing.T) {
	_, stderr, err := runCommand(t, "generate", "--log-level", "debug", "--log-format", "json", "--node", "000000000001")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(stderr, `"msg":"generator ready"`) || !strings.Contains(stderr, `"node":"000000000001"`) {
		t.Fatalf("expected json debug log, got %q", stderr)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "uid ") {
		t.Fatalf("unexpected version output %q", out)
	}
}
