package core

import (
	"errors"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"integer", "100", "100", nil},
		{"two decimals", "9.99", "9.99", nil},
		{"trailing zero dropped", "9.50", "9.5", nil},
		{"leading dot", ".5", "0.5", nil},
		{"explicit plus", "+12.25", "12.25", nil},
		{"surrounding spaces", "  42.10 ", "42.1", nil},
		{"blank", "", "", ErrNotANumber},
		{"whitespace only", "   ", "", ErrNotANumber},
		{"zero", "0", "0", nil},
		{"negative", "-1", "", ErrNegative},
		{"letters", "abc", "", ErrNotANumber},
		{"currency symbol", "$9.99", "", ErrNotANumber},
		{"thousands separator", "1,000", "", ErrNotANumber},
		{"exponent", "1e3", "", ErrNotANumber},
		{"two dots", "1.2.3", "", ErrNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseMoney(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseMoney(%q) = %s, want %s", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr error
	}{
		{"integer", "10", 10, nil},
		{"zero", "0", 0, nil},
		{"blank", "", 0, ErrNotANumber},
		{"surrounding spaces", " 7 ", 7, nil},
		{"explicit plus", "+3", 3, nil},
		{"fraction", "10.5", 0, ErrNotInteger},
		{"whole fraction", "10.0", 0, ErrNotInteger},
		{"negative", "-4", 0, ErrNegative},
		{"letters", "ten", 0, ErrNotANumber},
		{"exponent", "1e2", 0, ErrNotANumber},
		{"overflow", "99999999999999999999", 0, ErrNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuantity(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseQuantity(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuantity(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseQuantity(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	for _, in := range []string{"9.99", "7.99", "0", "1234.5"} {
		d, err := ParseMoney(in)
		if err != nil {
			t.Fatalf("ParseMoney(%q): %v", in, err)
		}
		if got := FormatMoney(d); got != in {
			t.Errorf("FormatMoney(ParseMoney(%q)) = %q", in, got)
		}
	}
}
