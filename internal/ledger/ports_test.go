package ledger

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-03-15T13:45:00Z", true},
		{"2024-03-15 13:45:00", true},
		{"2024-03-15", true},
		{"15/03/2024", false},
		{"not a date", false},
		{"", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil {
				t.Errorf("%q: unexpected error %v", tc.in, err)
			} else if got.Year() != 2024 || int(got.Month()) != 3 || got.Day() != 15 {
				t.Errorf("%q parsed to %v", tc.in, got)
			}
		} else if err == nil {
			t.Errorf("%q: expected error", tc.in)
		}
	}
}

func TestLoadErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &LoadError{Source: "csv", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("LoadError must unwrap to its cause")
	}
	var le *LoadError
	if !errors.As(error(err), &le) {
		t.Error("errors.As must find LoadError")
	}
}
