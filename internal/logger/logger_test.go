package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{input: "", want: zapcore.WarnLevel},
		{input: "debug", want: zapcore.DebugLevel},
		{input: " INFO ", want: zapcore.InfoLevel},
		{input: "error", want: zapcore.ErrorLevel},
	}

	for _, test := range tests {
		test := test
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()

			logger, err := New(test.input)
			if err != nil {
				t.Fatalf("New(%q) returned error: %v", test.input, err)
			}
			if !logger.Core().Enabled(test.want) {
				t.Fatalf("New(%q) does not enable %s", test.input, test.want)
			}
			if test.want > zapcore.DebugLevel && logger.Core().Enabled(test.want-1) {
				t.Fatalf("New(%q) enables %s, want minimum %s", test.input, test.want-1, test.want)
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	if _, err := New("loud"); err == nil {
		t.Fatal("expected unknown level to fail")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "", want: zapcore.WarnLevel},
		{input: " Debug ", want: zapcore.DebugLevel},
		{input: "ERROR", want: zapcore.ErrorLevel},
		{input: "chatty", wantErr: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(test.input)
			if test.wantErr {
				if err == nil {
					t.Fatalf("ParseLevel(%q) = %s, want error", test.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) returned error: %v", test.input, err)
			}
			if got != test.want {
				t.Fatalf("ParseLevel(%q) = %s, want %s", test.input, got, test.want)
			}
		})
	}
}
