package id

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestGenerateLength(t *testing.T) {
	for _, length := range []int{1, 8, DefaultLength, 32} {
		got, err := Generate(length)
		if err != nil {
			t.Fatalf("Generate(%d) returned error: %v", length, err)
		}
		if len(got) != length {
			t.Errorf("Generate(%d) returned %q with length %d", length, got, len(got))
		}
	}
}

func TestNewTicketNumber(t *testing.T) {
	number, err := NewTicketNumber()
	if err != nil {
		t.Fatalf("NewTicketNumber returned error: %v", err)
	}
	if !strings.HasPrefix(number, TicketNumberPrefix+"-") {
		t.Errorf("ticket number %q missing %s- prefix", number, TicketNumberPrefix)
	}
	if number != strings.ToUpper(number) {
		t.Errorf("ticket number %q is not uppercase", number)
	}
}

// FuzzParsePrefixedID tests the ParsePrefixedID function with random inputs
func FuzzParsePrefixedID(f *testing.F) {
	seeds := []string{
		"tk_xK9mP2vL3nQ",
		"st_abc123",
		"sess_user123",
		"",
		"nounderscore",
		"_leadingunderscore",
		"trailing_",
		"multiple_under_scores_here",
		"a_b",
		"*_special",
		strings.Repeat("a", 1000) + "_" + strings.Repeat("b", 1000),
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			return
		}

		prefix, shortID, err := ParsePrefixedID(input)
		if err != nil {
			if strings.Contains(input, "_") {
				t.Errorf("ParsePrefixedID(%q) returned error for input containing underscore: %v", input, err)
			}
			return
		}

		reconstructed := prefix + "_" + shortID
		if reconstructed != input {
			t.Errorf("ParsePrefixedID(%q) = (%q, %q), reconstruction %q does not match input", input, prefix, shortID, reconstructed)
		}
	})
}
