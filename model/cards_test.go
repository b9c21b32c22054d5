package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeCards(t *testing.T) {
	cases := make([]TestCase, 10)

	latest := &RunRecord{Summary: Summary{Pass: 3, Fail: 1, Error: 0}}
	got := ComputeCards(latest, cases)
	require.Equal(t, Cards{Total: 10, Pass: 3, Fail: 1, New: 10, Rate: 75}, got)
}

func TestComputeCards_RoundsHalfToEven(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    int
	}{
		{name: "12.5 rounds down to even", summary: Summary{Pass: 1, Fail: 7}, want: 12},
		{name: "37.5 rounds up to even", summary: Summary{Pass: 3, Fail: 5}, want: 38},
		{name: "62.5 rounds down to even", summary: Summary{Pass: 5, Fail: 3}, want: 62},
		{name: "two thirds", summary: Summary{Pass: 2, Fail: 1}, want: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCards(&RunRecord{Summary: tt.summary}, nil)
			require.Equal(t, tt.want, got.Rate)
		})
	}
}

func TestComputeCards_NoRuns(t *testing.T) {
	got := ComputeCards(nil, []TestCase{{ID: "a"}})
	require.Equal(t, Cards{Total: 1, New: 1, Rate: 0}, got)
}

func TestComputeCards_EmptySummary(t *testing.T) {
	// Zero denominator must not divide
	got := ComputeCards(&RunRecord{}, nil)
	require.Equal(t, Cards{}, got)
}
