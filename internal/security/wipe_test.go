package security

import "testing"

func TestWipe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "nil", input: nil},
		{name: "empty", input: []byte{}},
		{name: "ascii", input: []byte("hunter2")},
		{name: "utf8", input: []byte("пароль-密码")},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			Wipe(test.input)
			for index, value := range test.input {
				if value != 0 {
					t.Fatalf("Wipe left byte %d = %#x, want 0", index, value)
				}
			}
		})
	}
}

func TestWipeOnlyTouchesSliceWindow(t *testing.T) {
	t.Parallel()

	backing := []byte("abcdef")
	Wipe(backing[2:4])

	if got := string(backing[:2]); got != "ab" {
		t.Fatalf("prefix = %q, want %q", got, "ab")
	}
	if got := string(backing[4:]); got != "ef" {
		t.Fatalf("suffix = %q, want %q", got, "ef")
	}
	if backing[2] != 0 || backing[3] != 0 {
		t.Fatalf("window = %v, want zeroes", backing[2:4])
	}
}
