package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeConsole struct {
	input    io.Reader
	terminal bool
	echo     bool

	maskErr    error
	restoreErr error

	maskCalls         int
	restoreCalls      int
	readsWhileEchoing int

	output bytes.Buffer
}

func newFakeConsole(input string) *fakeConsole {
	return &fakeConsole{
		input:    strings.NewReader(input),
		terminal: true,
		echo:     true,
	}
}

func (console *fakeConsole) Read(p []byte) (int, error) {
	if console.echo {
		console.readsWhileEchoing++
	}
	return console.input.Read(p)
}

func (console *fakeConsole) Write(p []byte) (int, error) {
	return console.output.Write(p)
}

func (console *fakeConsole) IsTerminal() bool {
	return console.terminal
}

func (console *fakeConsole) MaskEcho() (func() error, error) {
	console.maskCalls++
	if console.maskErr != nil {
		return nil, console.maskErr
	}

	previous := console.echo
	console.echo = false
	return func() error {
		console.restoreCalls++
		console.echo = previous
		return console.restoreErr
	}, nil
}

// chunkReader replays a fixed list of reads, then reports io.EOF.
type chunkReader struct {
	steps []readStep
}

type readStep struct {
	data string
	err  error
}

func (reader *chunkReader) Read(p []byte) (int, error) {
	if len(reader.steps) == 0 {
		return 0, io.EOF
	}
	step := &reader.steps[0]
	if step.data == "" {
		reader.steps = reader.steps[1:]
		return 0, step.err
	}

	n := copy(p, step.data)
	step.data = step.data[n:]
	if step.data == "" {
		err := step.err
		reader.steps = reader.steps[1:]
		return n, err
	}
	return n, nil
}

// recordWipes keeps a reference to every buffer handed to the erase
// primitive so tests can check it was really zeroed.
func recordWipes(t *testing.T) *[][]byte {
	t.Helper()

	original := wipe
	wiped := make([][]byte, 0)
	wipe = func(b []byte) {
		wiped = append(wiped, b)
		original(b)
	}
	t.Cleanup(func() {
		wipe = original
	})
	return &wiped
}

func assertZeroed(t *testing.T, label string, b []byte) {
	t.Helper()

	for index, value := range b {
		if value != 0 {
			t.Fatalf("%s byte %d = %#x, want 0", label, index, value)
		}
	}
}

func assertEchoRestored(t *testing.T, console *fakeConsole) {
	t.Helper()

	if !console.echo {
		t.Fatal("expected echo to be restored")
	}
	if console.restoreCalls != console.maskCalls {
		t.Fatalf("restore calls = %d, want %d (one per mask)", console.restoreCalls, console.maskCalls)
	}
	if console.readsWhileEchoing != 0 {
		t.Fatalf("reads while echoing = %d, want 0", console.readsWhileEchoing)
	}
}

var errBrokenPipe = errors.New("broken pipe")
