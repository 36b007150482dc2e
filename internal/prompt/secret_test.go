package prompt

import (
	"fmt"
	"strings"
	"testing"
)

func TestSecretFormattingIsRedacted(t *testing.T) {
	t.Parallel()

	secret := NewSecret([]byte("hunter2"))
	defer secret.Wipe()

	for _, verb := range []string{"%v", "%s", "%q", "%x", "%#v", "%+v"} {
		if got := fmt.Sprintf(verb, secret); strings.Contains(got, "hunter2") || strings.Contains(got, "68756e74657232") {
			t.Fatalf("fmt.Sprintf(%q) leaked secret: %q", verb, got)
		}
	}
	if got := secret.String(); got != redacted {
		t.Fatalf("String() = %q, want %q", got, redacted)
	}
}

func TestSecretValueFormattingIsRedacted(t *testing.T) {
	t.Parallel()

	secret := NewSecret([]byte("hunter2"))
	defer secret.Wipe()

	tests := []struct {
		name  string
		value any
	}{
		{name: "value", value: *secret},
		{name: "struct field", value: struct{ Password Secret }{Password: *secret}},
		{name: "slice", value: []Secret{*secret}},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			for _, verb := range []string{"%v", "%+v", "%#v", "%s", "%x"} {
				got := fmt.Sprintf(verb, test.value)
				if strings.Contains(got, "hunter2") || strings.Contains(got, "68756e74657232") || strings.Contains(got, "104") {
					t.Fatalf("fmt.Sprintf(%q) = %q, leaked secret", verb, got)
				}
				if !strings.Contains(got, redacted) {
					t.Fatalf("fmt.Sprintf(%q) = %q, want %q", verb, got, redacted)
				}
			}
		})
	}
}

func TestNilSecretFormatting(t *testing.T) {
	t.Parallel()

	var secret *Secret
	if got := fmt.Sprintf("%v", secret); got != "<nil>" {
		t.Fatalf("fmt.Sprintf(%%v) = %q, want %q", got, "<nil>")
	}
}

func TestSecretWipeIsIdempotent(t *testing.T) {
	t.Parallel()

	backing := []byte("hunter2")
	secret := NewSecret(backing)

	secret.Wipe()
	secret.Wipe()

	assertZeroed(t, "backing", backing)
	if secret.Len() != 0 || secret.Bytes() != nil {
		t.Fatalf("wiped secret still exposes %d bytes", secret.Len())
	}
}

func TestNilSecret(t *testing.T) {
	t.Parallel()

	var secret *Secret
	secret.Wipe()
	if secret.Len() != 0 {
		t.Fatalf("nil secret Len = %d, want 0", secret.Len())
	}
	if secret.Bytes() != nil {
		t.Fatal("expected nil secret to expose no bytes")
	}
}

func TestSecretDiscardAndTrim(t *testing.T) {
	t.Parallel()

	secret := newSecretBuffer()
	defer secret.Wipe()

	for _, c := range []byte("typo") {
		secret.appendByte(c)
	}
	view := secret.Bytes()
	secret.discard()
	assertZeroed(t, "discarded bytes", view)

	for _, c := range []byte("ok\r") {
		secret.appendByte(c)
	}
	secret.trimSuffix('\r')
	secret.trimSuffix('\r')
	if got := string(secret.Bytes()); got != "ok" {
		t.Fatalf("secret = %q, want %q", got, "ok")
	}
}
