package coinledger

import "testing"

func TestMoneyString(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency Asset
		want     string
	}{
		{"usd", "1234.5", "USD", "$1,234.50"},
		{"usd negative", "-5", "USD", "-$5.00"},
		{"crypto falls back to raw decimal", "0.12345678", "eip155:1/erc20:0xdead", "0.12345678 eip155:1/erc20:0xdead"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewMoney(dec(tc.amount), tc.currency).String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMoneySignedString(t *testing.T) {
	if got := NewMoney(dec("0"), "USD").SignedString(); got != "-" {
		t.Errorf("zero = %q, want -", got)
	}
	if got := NewMoney(dec("1"), "USD").SignedString(); got != "+$1.00" {
		t.Errorf("positive = %q", got)
	}
}
