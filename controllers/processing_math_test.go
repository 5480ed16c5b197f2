package controllers

import (
	"math"
	"testing"
)

func TestComputeYield(t *testing.T) {
	cases := []struct {
		export, total, expected float64
	}{
		{500, 600, 500.0 / 600.0},
		{0, 600, 0},
		{600, 600, 1},
		{500, 0, 0}, // guarded: no input weight
	}
	for _, tc := range cases {
		if got := ComputeYield(tc.export, tc.total); math.Abs(got-tc.expected) > 1e-9 {
			t.Fatalf("ComputeYield(%.1f, %.1f) = %f, expected %f", tc.export, tc.total, got, tc.expected)
		}
	}
}

func TestComputeBagsUsed(t *testing.T) {
	cases := []struct {
		export, capacity float64
		expected         int
	}{
		{500, 60, 9}, // partial ninth bag still counts
		{480, 60, 8},
		{1, 85, 1},
		{0, 60, 0},
		{85, 85, 1},
		{86, 85, 2},
	}
	for _, tc := range cases {
		if got := ComputeBagsUsed(tc.export, tc.capacity); got != tc.expected {
			t.Fatalf("ComputeBagsUsed(%.1f, %.1f) = %d, expected %d", tc.export, tc.capacity, got, tc.expected)
		}
	}
}

func TestStartRunInput_NormalizeLegacyShape(t *testing.T) {
	in := StartRunInput{BatchRef: "BTH-123-456", WeightKg: 600}
	if err := in.normalize(); err != nil {
		t.Fatalf("normalize legacy shape: %v", err)
	}
	if len(in.Inputs) != 1 || in.Inputs[0].BatchRef != "BTH-123-456" || in.Inputs[0].WeightKg != 600 {
		t.Fatalf("legacy shape not normalized: %+v", in.Inputs)
	}
}

func TestStartRunInput_NormalizeRejectsEmpty(t *testing.T) {
	var in StartRunInput
	if err := in.normalize(); err == nil {
		t.Fatal("expected error for empty input set")
	}
}

func TestStartRunInput_NormalizeRejectsBadWeight(t *testing.T) {
	in := StartRunInput{Inputs: []RunInputSpec{{BatchRef: "BTH-1", WeightKg: 0}}}
	if err := in.normalize(); err == nil {
		t.Fatal("expected error for zero weight input")
	}
}

// Scenario from the processing flow: consume 600 kg, complete with export=500
// reject=50 in 60 kg bags.
func TestCompletionScenario(t *testing.T) {
	totalInput := 600.0
	export := 500.0
	reject := 50.0

	waste := totalInput - export - reject
	if math.Abs(waste-50) > 1e-9 {
		t.Fatalf("waste = %f, expected 50", waste)
	}
	yield := ComputeYield(export, totalInput)
	if math.Abs(yield-0.833333333) > 1e-6 {
		t.Fatalf("yield = %f, expected 0.8333", yield)
	}
	if bags := ComputeBagsUsed(export, 60); bags != 9 {
		t.Fatalf("bags = %d, expected 9", bags)
	}

	// output exceeding input must be rejected by the completion guard
	if export, reject := 700.0, 50.0; export+reject <= totalInput {
		t.Fatal("expected 700+50 to exceed 600")
	}
}
