package models

import (
	"math"
	"testing"
)

func uniformCheck(score float64) QualityCheck {
	return QualityCheck{
		Fragrance: score, Flavor: score, Aftertaste: score, Acidity: score,
		Body: score, Balance: score, Sweetness: score, Uniformity: score,
		CleanCup: score, Overall: score,
	}
}

func TestQualityCheck_SubScoresSum(t *testing.T) {
	q := uniformCheck(8.5)
	var total float64
	for _, s := range q.SubScores() {
		total += s
	}
	if math.Abs(total-85.0) > 1e-9 {
		t.Fatalf("expected sub-scores to sum to 85.0, got %f", total)
	}
}

func TestQualityCheck_Passed(t *testing.T) {
	cases := []struct {
		total    float64
		expected bool
	}{
		{85.0, true},
		{80.0, true}, // threshold is inclusive
		{79.99, false},
		{0, false},
		{100, true},
	}
	for _, tc := range cases {
		q := QualityCheck{TotalScore: tc.total}
		if q.Passed() != tc.expected {
			t.Fatalf("Passed() with total %.2f: expected %v", tc.total, tc.expected)
		}
	}
}

func TestBagCapacities(t *testing.T) {
	for _, size := range []int{30, 50, 60, 85} {
		if !ValidBagSize(size) {
			t.Fatalf("expected %d to be a valid bag size", size)
		}
		if BagCapacities[size] != float64(size) {
			t.Fatalf("expected capacity of size %d to be %d kg", size, size)
		}
	}
	for _, size := range []int{0, 25, 40, 100} {
		if ValidBagSize(size) {
			t.Fatalf("expected %d to be rejected", size)
		}
	}
}

func TestJuteBagLowStock(t *testing.T) {
	cases := []struct {
		qty, threshold int
		expected       bool
	}{
		{100, 50, false},
		{50, 50, true},
		{0, 50, true},
		{-3, 50, true}, // stock can go negative, still low
	}
	for _, tc := range cases {
		j := JuteBagInventory{Quantity: tc.qty, LowStockThreshold: tc.threshold}
		if j.LowStock() != tc.expected {
			t.Fatalf("LowStock() with qty=%d threshold=%d: expected %v", tc.qty, tc.threshold, tc.expected)
		}
	}
}

func TestRunTotalInputWeight(t *testing.T) {
	run := ProcessingRun{Inputs: []ProcessingRunInput{
		{WeightKg: 600},
		{WeightKg: 250.5},
		{WeightKg: 149.5},
	}}
	if got := run.TotalInputWeight(); math.Abs(got-1000) > 1e-9 {
		t.Fatalf("expected total input 1000, got %f", got)
	}
	empty := ProcessingRun{}
	if got := empty.TotalInputWeight(); got != 0 {
		t.Fatalf("expected empty run total 0, got %f", got)
	}
}
