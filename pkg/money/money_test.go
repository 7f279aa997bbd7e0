package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound_HalfEven(t *testing.T) {
	cases := map[string]string{
		"1005.7786": "1005.78",
		"65.7986":   "65.8",
		"0.125":     "0.12",
		"0.135":     "0.14",
		"2.005":     "2",
	}
	for in, want := range cases {
		got := Round(decimal.RequireFromString(in))
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("Round(%s)=%s want=%s", in, got, want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(decimal.RequireFromString("1005.7786")); got != "$1005.78" {
		t.Fatalf("got %q", got)
	}
	if got := Format(decimal.Zero); got != "$0.00" {
		t.Fatalf("got %q", got)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("$499.99")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !d.Equal(decimal.RequireFromString("499.99")) {
		t.Fatalf("got %s", d)
	}
	if _, err := Parse("abc"); err == nil {
		t.Fatalf("expected error")
	}
}
