package analytics

import "testing"

func TestPipInfoClassification(t *testing.T) {
	tests := []struct {
		symbol  string
		pipSize float64
		dynamic bool
	}{
		{"USDJPY", 0.01, true},
		{"usd/jpy", 0.01, true},
		{"JPYCHF", 0.01, true},
		{"XAUUSD", 0.1, false},
		{"xau/usd", 0.1, false},
		{"EURUSD", 0.0001, false},
		{"GBPAUD", 0.0001, false},
		// Unknown symbols fall through to the forex default, no error.
		{"BANANAS", 0.0001, false},
		{"", 0.0001, false},
	}
	for _, tt := range tests {
		spec := PipInfo(tt.symbol)
		if spec.PipSize != tt.pipSize {
			t.Fatalf("PipInfo(%q).PipSize = %v, want %v", tt.symbol, spec.PipSize, tt.pipSize)
		}
		if spec.DynamicValue != tt.dynamic {
			t.Fatalf("PipInfo(%q).DynamicValue = %v, want %v", tt.symbol, spec.DynamicValue, tt.dynamic)
		}
	}
}

func TestPipValueFixed(t *testing.T) {
	spec := PipInfo("EURUSD")
	if got := spec.PipValue(1.1, 2); got != 20 {
		t.Fatalf("pip value = %v, want 20", got)
	}
}

func TestPipValueDynamicJPY(t *testing.T) {
	spec := PipInfo("USDJPY")
	// 0.01 / 145 * 100000 * 1 ≈ 6.8966 dollars per pip.
	got := spec.PipValue(145, 1)
	if !almostEqual(got, 0.01/145*100000) {
		t.Fatalf("pip value = %v, want %v", got, 0.01/145*100000)
	}
}

func TestPipValueDynamicZeroEntry(t *testing.T) {
	spec := PipInfo("USDJPY")
	if got := spec.PipValue(0, 1); got != 0 {
		t.Fatalf("pip value with zero entry = %v, want 0", got)
	}
}
