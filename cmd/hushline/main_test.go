package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	flags "github.com/jessevdk/go-flags"
	"github.com/terraincognita07/hushline/internal/config"
	"github.com/terraincognita07/hushline/internal/prompt"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type lineConsole struct {
	input   *strings.Reader
	written bytes.Buffer
	closed  bool
}

func (console *lineConsole) Read(p []byte) (int, error)  { return console.input.Read(p) }
func (console *lineConsole) Write(p []byte) (int, error) { return console.written.Write(p) }
func (console *lineConsole) IsTerminal() bool            { return true }

func (console *lineConsole) MaskEcho() (func() error, error) {
	return func() error { return nil }, nil
}

type testApp struct {
	*application
	consoles []*lineConsole
	out      bytes.Buffer
}

func newTestApp(t *testing.T) (*testApp, string) {
	t.Helper()

	harness := &testApp{}
	harness.application = &application{
		out:    &harness.out,
		errOut: &bytes.Buffer{},
		openConsole: func() (prompt.Console, func() error, error) {
			if len(harness.consoles) == 0 {
				return nil, nil, prompt.ErrUnsupportedDevice
			}
			console := harness.consoles[0]
			harness.consoles = harness.consoles[1:]
			return console, func() error {
				console.closed = true
				return nil
			}, nil
		},
	}
	return harness, filepath.Join(t.TempDir(), "hushline.db")
}

func (harness *testApp) queueConsole(lines ...string) *lineConsole {
	console := &lineConsole{input: strings.NewReader(strings.Join(lines, ""))}
	harness.consoles = append(harness.consoles, console)
	return console
}

func (harness *testApp) run(args ...string) error {
	harness.out.Reset()
	harness.opts = config.Options{}
	return run(args, harness.application)
}

func TestRunSetLoginVerify(t *testing.T) {
	harness, dbPath := newTestApp(t)

	setConsole := harness.queueConsole("S3cretPass\n", "S3cretPass\n")
	if err := harness.run("--db", dbPath, "set", "backup"); err != nil {
		t.Fatalf("set returned error: %v", err)
	}
	if !setConsole.closed {
		t.Fatal("expected console to be closed after set")
	}

	harness.queueConsole("S3cretPass\n")
	if err := harness.run("--db", dbPath, "--secret-key", testSecretKey, "login", "backup"); err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	token := strings.TrimSpace(harness.out.String())
	if token == "" {
		t.Fatal("expected login to print a token")
	}

	if err := harness.run("--db", dbPath, "--secret-key", testSecretKey, "verify-token", token); err != nil {
		t.Fatalf("verify-token returned error: %v", err)
	}
	if !strings.Contains(harness.out.String(), "Token valid for backup") {
		t.Fatalf("verify-token output = %q", harness.out.String())
	}
}

func TestRunLoginRequiresSecretKeyBeforePrompting(t *testing.T) {
	t.Setenv("HUSHLINE_SECRET_KEY", "change_me_in_production")
	harness, dbPath := newTestApp(t)
	console := harness.queueConsole("S3cretPass\n")

	err := harness.run("--db", dbPath, "login", "backup")
	if !errors.Is(err, config.ErrSecretKeyPlaceholder) {
		t.Fatalf("expected ErrSecretKeyPlaceholder, got %v", err)
	}
	if console.written.Len() != 0 {
		t.Fatalf("prompts = %q, want none", console.written.String())
	}
}

func TestRunLoginReportsExhaustedAttempts(t *testing.T) {
	harness, dbPath := newTestApp(t)

	harness.queueConsole("S3cretPass\n", "S3cretPass\n")
	if err := harness.run("--db", dbPath, "set", "backup"); err != nil {
		t.Fatalf("set returned error: %v", err)
	}

	harness.queueConsole("a\n", "b\n")
	err := harness.run("--db", dbPath, "--secret-key", testSecretKey, "--attempts", "2", "login", "backup")
	if !errors.Is(err, prompt.ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}
	if err.Error() != "too many failed attempts" {
		t.Fatalf("error text = %q, want %q", err.Error(), "too many failed attempts")
	}
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	harness, dbPath := newTestApp(t)

	if err := harness.run("--db", dbPath, "--attempts", "0", "reset", "backup"); err == nil {
		t.Fatal("expected zero attempts to be rejected")
	}
	if err := harness.run("--db", dbPath, "set"); err == nil {
		t.Fatal("expected missing credential name to be rejected")
	}
}

func TestRunHelp(t *testing.T) {
	harness, _ := newTestApp(t)

	err := harness.run("--help")
	var flagsErr *flags.Error
	if !errors.As(err, &flagsErr) || flagsErr.Type != flags.ErrHelp {
		t.Fatalf("expected help error, got %v", err)
	}
	if !strings.Contains(flagsErr.Message, "verify-token") {
		t.Fatalf("help output does not list commands: %q", flagsErr.Message)
	}
}
