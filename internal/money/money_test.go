package money

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"whole", 100, 100},
		{"already two decimals", 12.34, 12.34},
		{"rounds up at half", 1.235, 1.24},
		{"rounds down below half", 1.2349, 1.23},
		{"fee on thousand", 1000*0.01 + 1000, 1010},
		{"zero", 0, 0},
		{"negative truncates toward zero", -1.234, -1.22},
		{"small negative", -0.004, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.in); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRound2NegativeDrift(t *testing.T) {
	// Truncation of 100*x+0.5 pulls already-rounded negatives one cent toward zero.
	if got := Round2(-1.22); got != -1.21 {
		t.Errorf("expected -1.21, got %v", got)
	}
}

func TestProperty_Round2Idempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("round2(round2(x)) == round2(x) for non-negative amounts", prop.ForAll(
		func(x float64) bool {
			once := Round2(x)
			return Round2(once) == once
		},
		gen.Float64Range(0, 1e7),
	))

	properties.Property("round2 stays within half a cent", prop.ForAll(
		func(x float64) bool {
			d := Round2(x) - x
			return d <= 0.005+1e-9 && d >= -0.005-1e-9
		},
		gen.Float64Range(0, 1e6),
	))

	properties.TestingRun(t)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8990, "8990.00"},
		{12.5, "12.50"},
		{-3.07, "-3.07"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}

	if got := FormatSigned(2.5); got != "+2.50" {
		t.Errorf("expected +2.50, got %q", got)
	}
	if got := FormatSigned(-2.5); got != "-2.50" {
		t.Errorf("expected -2.50, got %q", got)
	}
	if got := FormatSigned(0); got != "0.00" {
		t.Errorf("expected 0.00, got %q", got)
	}
}
