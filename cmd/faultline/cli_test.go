package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// helpText calls the help function and returns the output as a string.
func helpText() string {
	var sb strings.Builder
	printUsage(&sb)
	return sb.String()
}

// longHelpText returns the long help for a named command.
func longHelpText(name string) string {
	var sb strings.Builder
	printCommandHelp(&sb, name)
	return sb.String()
}

// TestHelpContainsAllCommands verifies that the help listing is derived from
// the commands slice: every registered command name appears in the output.
func TestHelpContainsAllCommands(t *testing.T) {
	help := helpText()
	for _, cmd := range commands {
		if !strings.Contains(help, cmd.name) {
			t.Errorf("help output missing command %q", cmd.name)
		}
		if !strings.Contains(help, cmd.short) {
			t.Errorf("help output missing short description for %q", cmd.short)
		}
	}
}

func TestLongHelpForKnownCommands(t *testing.T) {
	for _, cmd := range commands {
		t.Run(cmd.name, func(t *testing.T) {
			out := longHelpText(cmd.name)
			if !strings.Contains(out, cmd.usage) {
				t.Errorf("long help for %q missing usage line %q\ngot: %s", cmd.name, cmd.usage, out)
			}
		})
	}
}

func TestLongHelpUnknownCommand(t *testing.T) {
	out := longHelpText("no-such-command")
	if !strings.Contains(out, "unknown") {
		t.Errorf("expected unknown-command message, got: %s", out)
	}
}

func TestDispatchNoArgs(t *testing.T) {
	if err := dispatch([]string{}); err != nil {
		t.Errorf("dispatch() with no args returned error: %v", err)
	}
}

func TestDispatchHelpFlag(t *testing.T) {
	for _, flag := range []string{"--help", "-h"} {
		t.Run(flag, func(t *testing.T) {
			if err := dispatch([]string{flag}); err != nil {
				t.Errorf("dispatch(%q) returned error: %v", flag, err)
			}
		})
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	err := dispatch([]string{"no-such-command"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("dispatch = %v, want unknown command error", err)
	}
}

// TestDispatchKnownSubcommand verifies that dispatch routes a known name to
// its run func: analyze with no arguments returns its own usage error, not
// "unknown command".
func TestDispatchKnownSubcommand(t *testing.T) {
	err := dispatch([]string{"analyze"})
	if err == nil {
		t.Fatal("expected error for analyze with no file, got nil")
	}
	if strings.Contains(err.Error(), "unknown command") {
		t.Errorf("got 'unknown command' error for known subcommand: %v", err)
	}
}

const analyzeSample = `- time_unit: h

Event: motor_seized
- label: Motor seized
- rate: 3e-5

Event: valve_stuck
- probability: 0.01

Gate: pump_fails
- label: Pump fails
- type: AND
- inputs: motor_seized, valve_stuck
`

func TestRunAnalyze(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pump.txt")
	if err := os.WriteFile(path, []byte(analyzeSample), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runAnalyze([]string{path}); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}

	out := path + ".out"
	for _, name := range []string{
		"events.tsv",
		"gates.tsv",
		filepath.Join("cut-sets", "pump_fails.tsv"),
		filepath.Join("contributions", "pump_fails.tsv"),
		filepath.Join("figures", "pump_fails.svg"),
		filepath.Join("figures", "index.html"),
	} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}

// TestRunAnalyzeReplacesStaleOutput verifies that a leftover output
// directory from a previous run is wiped, not merged into.
func TestRunAnalyzeReplacesStaleOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pump.txt")
	if err := os.WriteFile(path, []byte(analyzeSample), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(path+".out", "cut-sets", "gone.tsv")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runAnalyze([]string{path}); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale artifact survived re-analysis")
	}
}

func TestRunAnalyzeErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		err := runAnalyze([]string{filepath.Join(dir, "absent.txt")})
		if err == nil || !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("error = %v, want missing-file message", err)
		}
	})

	t.Run("directory argument", func(t *testing.T) {
		err := runAnalyze([]string{dir})
		if err == nil || !strings.Contains(err.Error(), "is a directory") {
			t.Errorf("error = %v, want directory message", err)
		}
	})

	t.Run("document violation carries line", func(t *testing.T) {
		path := filepath.Join(dir, "bad.txt")
		if err := os.WriteFile(path, []byte("Event: A\n- probability: 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		err := runAnalyze([]string{path})
		if err == nil || !strings.Contains(err.Error(), "at line 2") {
			t.Errorf("error = %v, want line 2 mentioned", err)
		}
	})
}
