package models

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTitle_Cleaning(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  Buy milk  ", "Buy milk"},
		{"strips forbidden characters", `Buy <milk>`, "Buy milk"},
		{"strips all forbidden characters", `a<b>c&d"e'f`, "abcdef"},
		{"collapses whitespace runs", "Buy   milk\t\tnow", "Buy milk now"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := v.ValidateTitle(tc.input)
			if err != nil {
				t.Fatalf("ValidateTitle(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ValidateTitle(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestValidateTitle_EmptyRejected(t *testing.T) {
	v := NewValidator()

	for _, input := range []string{"", "   ", "\t\n"} {
		if _, err := v.ValidateTitle(input); !errors.Is(err, ErrInvalidTitle) {
			t.Errorf("ValidateTitle(%q) error = %v, want ErrInvalidTitle", input, err)
		}
	}
}

func TestValidateTitle_LongTitleTruncated(t *testing.T) {
	v := NewValidator()

	long := strings.Repeat("a", MaxTitleLength+50)
	got, err := v.ValidateTitle(long)
	if err != nil {
		t.Fatalf("ValidateTitle failed: %v", err)
	}
	if len(got) != MaxTitleLength {
		t.Errorf("Truncated length = %d, want %d", len(got), MaxTitleLength)
	}
}

func TestValidateIndex(t *testing.T) {
	v := NewValidator()

	if err := v.ValidateIndex(0, 3); err != nil {
		t.Errorf("ValidateIndex(0, 3) failed: %v", err)
	}
	if err := v.ValidateIndex(2, 3); err != nil {
		t.Errorf("ValidateIndex(2, 3) failed: %v", err)
	}

	for _, idx := range []int{-1, 3, 10} {
		if err := v.ValidateIndex(idx, 3); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("ValidateIndex(%d, 3) error = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
	if err := v.ValidateIndex(0, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ValidateIndex on empty collection error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestCheckIntegrity(t *testing.T) {
	valid := TaskList{{Title: "A"}, {Title: "B", Done: true}}
	if err := CheckIntegrity(valid); err != nil {
		t.Errorf("CheckIntegrity on valid list failed: %v", err)
	}

	invalid := TaskList{{Title: "A"}, {Title: ""}}
	if err := CheckIntegrity(invalid); err == nil {
		t.Error("CheckIntegrity should reject a task with an empty title")
	}
}
