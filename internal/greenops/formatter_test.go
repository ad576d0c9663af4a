package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{name: "small number no separators", n: 123, want: "123"},
		{name: "four digits with separator", n: 1234, want: "1,234"},
		{name: "millions", n: 1234567, want: "1,234,567"},
		{name: "zero", n: 0, want: "0"},
		{name: "negative number", n: -1234, want: "-1,234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.n))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		f         float64
		precision int
		want      string
	}{
		{name: "round to integer", f: 18248.56, precision: 0, want: "18,249"},
		{name: "one decimal place", f: 781.25, precision: 1, want: "781.3"},
		{name: "two decimal places with separator", f: 1234.567, precision: 2, want: "1,234.57"},
		{name: "small value", f: 0.5, precision: 2, want: "0.50"},
		{name: "negative", f: -1234.5, precision: 2, want: "-1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.f, tt.precision))
		})
	}
}

func TestFormatKg(t *testing.T) {
	assert.Equal(t, "0.00", FormatKg(0))
	assert.Equal(t, "18.00", FormatKg(18))
	assert.Equal(t, "2,500.00", FormatKg(2500))
}

func TestFormatLarge(t *testing.T) {
	tests := []struct {
		name string
		n    float64
		want string
	}{
		{name: "below million", n: 999999, want: "999,999"},
		{name: "exactly million", n: 1_000_000, want: "~1.0 million"},
		{name: "millions", n: 5_208_333, want: "~5.2 million"},
		{name: "billions", n: 1_500_000_000, want: "~1.5 billion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLarge(tt.n))
		})
	}
}
