package money_test

import (
	"testing"

	"cherrybud/internal/money"
)

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"$12.50", 1250},
		{"7", 700},
		{" $0.99 ", 99},
		{"10.00", 1000},
		{"$3", 300},
	}
	for _, tc := range cases {
		got, err := money.ParseCents(tc.in)
		if err != nil {
			t.Fatalf("ParseCents(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseCentsRejectsMalformed(t *testing.T) {
	for _, in := range []string{"abc", "", "$", "12.345"} {
		if _, err := money.ParseCents(in); err == nil {
			t.Fatalf("ParseCents(%q) should fail", in)
		}
	}
}

func TestFormatCents(t *testing.T) {
	if got := money.FormatCents(1250); got != "$12.50" {
		t.Fatalf("FormatCents(1250) = %q", got)
	}
	if got := money.FormatCents(700); got != "$7.00" {
		t.Fatalf("FormatCents(700) = %q", got)
	}
}
