package pngopt

import "testing"

func TestOptimizeResultSavingsRatio(t *testing.T) {
	tests := []struct {
		name     string
		original int64
		newSize  int64
		want     float64
	}{
		{"halved", 1000, 500, 0.5},
		{"unchanged", 1000, 1000, 0},
		{"unknown original", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &OptimizeResult{OriginalSize: tt.original, NewSize: tt.newSize}
			if got := r.SavingsRatio(); got != tt.want {
				t.Errorf("SavingsRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}
