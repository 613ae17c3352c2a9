package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	previous := isTerminal
	isTerminal = func(io.Writer) bool { return tty }
	t.Cleanup(func() { isTerminal = previous })
}

func TestResolveUIModeAuto(t *testing.T) {
	var out bytes.Buffer

	stubTerminal(t, true)
	decision, err := resolveUIMode("auto", false, &out)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !decision.useLive {
		t.Fatalf("auto on a TTY must enable the live UI")
	}

	stubTerminal(t, false)
	decision, err = resolveUIMode("auto", false, &out)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.useLive {
		t.Fatalf("auto without a TTY must disable the live UI")
	}
}

func TestResolveUIModeLiveFallback(t *testing.T) {
	stubTerminal(t, false)
	decision, err := resolveUIMode("live", false, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.useLive {
		t.Fatalf("live without a TTY must fall back")
	}
	if !strings.Contains(decision.warning, "not a TTY") {
		t.Fatalf("expected fallback warning, got %q", decision.warning)
	}
}

func TestResolveUIModePlain(t *testing.T) {
	stubTerminal(t, true)
	decision, err := resolveUIMode("plain", false, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.useLive || decision.warning != "" {
		t.Fatalf("plain must disable the live UI without warnings: %+v", decision)
	}
}

func TestResolveUIModeQuietWins(t *testing.T) {
	stubTerminal(t, true)
	decision, err := resolveUIMode("live", true, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.useLive {
		t.Fatalf("quiet must suppress the live UI")
	}
}

func TestResolveUIModeInvalid(t *testing.T) {
	if _, err := resolveUIMode("fancy", false, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for invalid mode")
	}
}

func TestDefaultIsTerminal(t *testing.T) {
	if defaultIsTerminal(nil) {
		t.Fatalf("nil writer is not a terminal")
	}
	if defaultIsTerminal(&bytes.Buffer{}) {
		t.Fatalf("a buffer is not a terminal")
	}
}
