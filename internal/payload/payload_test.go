package payload

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"double quoted string", `"hello"`, "hello"},
		{"single quoted string", `'hi'`, "hi"},
		{"surrounding whitespace", `  "x"  `, "x"},
		{"key value pairs kept", `"a": "b"`, `"a": "b"`},
		{"brace json kept", `{"a": 1}`, `{"a": 1}`},
		{"plain text kept", `plain`, `plain`},
		{"quoted with colon kept", `"has:colon"`, `"has:colon"`},
		{"empty", ``, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{
			name: "brace json",
			raw:  `{"type": "ok"}`,
			want: map[string]any{"type": "ok"},
		},
		{
			name: "bracket display form",
			raw:  `"type": "ok", "n": 2`,
			want: map[string]any{"type": "ok", "n": float64(2)},
		},
		{
			name: "json array",
			raw:  `[1, 2]`,
			want: []any{float64(1), float64(2)},
		},
		{
			name: "bare scalar",
			raw:  `42`,
			want: float64(42),
		},
		{
			name: "unescaped backslash path",
			raw:  `"dir": "C:\x"`,
			want: map[string]any{"dir": `C:\x`},
		},
		{
			name: "plain word",
			raw:  `hello`,
			want: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.raw)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.raw, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecodeError(t *testing.T) {
	_, err := Decode(`::bad::`)
	if err == nil {
		t.Fatal("Decode() expected error")
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error = %T, want *DecodeError", err)
	}
	if de.Raw != `::bad::` {
		t.Errorf("Raw = %q, want %q", de.Raw, `::bad::`)
	}
	if de.Unwrap() == nil {
		t.Error("Unwrap() = nil, want underlying JSON error")
	}
}

func TestDecodeNormalizedRoundTrip(t *testing.T) {
	// A payload that Normalize stripped quotes from must still decode.
	text := Normalize(`"hello"`)
	got, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode(%q) error = %v", text, err)
	}
	if got != "hello" {
		t.Errorf("Decode(%q) = %v, want %q", text, got, "hello")
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"keys sorted", `"b": 1, "a": 2`, `{"a":2,"b":1}`},
		{"nested object", `{"z": {"y": 1, "x": 2}}`, `{"z":{"x":2,"y":1}}`},
		{"plain word", `hello`, `"hello"`},
		{"array", `[3, 1]`, `[3,1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonical(tt.raw)
			if err != nil {
				t.Fatalf("Canonical(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCanonicalError(t *testing.T) {
	if _, err := Canonical(`::bad::`); err == nil {
		t.Fatal("Canonical() expected error")
	}
}
