package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"12.5", 1250, true},
		{"0.01", 1, true},
		{"12.345", 1235, true}, // half-up rounding
		{"12.344", 1234, true},
		{" 2.50 ", 250, true},
		{"-3", -300, true},
		{"+4.2", 420, true},
		{"0", 0, true},
		{"1,23", 0, false},
		{"1e3", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{".5", 0, false},
		{"", 0, false},
		{"9999999999.99", MaxCents, true},
		{"-9999999999.99", -MaxCents, true},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err != ErrInvalidAmountFormat {
				t.Fatalf("%q expected ErrInvalidAmountFormat, got %v", tc.in, err)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := map[int64]string{
		0:      "0.00",
		5:      "0.05",
		1250:   "12.50",
		300000: "3000.00",
		-500:   "-5.00",
	}
	for cents, want := range cases {
		if got := (Money{Cents: cents}).String(); got != want {
			t.Fatalf("%d: expected %q, got %q", cents, want, got)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err != ErrNonPositiveAmount {
		t.Fatalf("expected ErrNonPositiveAmount for zero, got %v", err)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 1000}
	b := Money{Cents: 1500}
	if got := a.Sub(b); got.Cents != -500 || !got.IsNegative() {
		t.Fatalf("unexpected difference %v", got)
	}
	if got := a.Add(b); got.Cents != 2500 {
		t.Fatalf("unexpected sum %v", got)
	}
}

func TestParseAmountRejectsOversizedValues(t *testing.T) {
	for _, in := range []string{"10000000000", "-10000000000", "99999999999999999999", "9999999999.995"} {
		if _, err := ParseAmount(in); err != ErrAmountTooLarge {
			t.Fatalf("%q expected ErrAmountTooLarge, got %v", in, err)
		}
	}
}

func TestMaxAmountsSumWithoutOverflow(t *testing.T) {
	a, err := ParseAmount("9999999999.99")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total := a.Add(a)
	if total.IsNegative() || total.String() != "19999999999.98" {
		t.Fatalf("unexpected total %v", total)
	}
	if err := (Money{Cents: MaxCents + 1}).Validate(); err != ErrAmountTooLarge {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}
