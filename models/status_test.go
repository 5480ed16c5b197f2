package models

import "testing"

func TestCanTransition_HappyPath(t *testing.T) {
	path := []BatchStatus{
		StatusOrdered, StatusAtGate, StatusAtWarehouse, StatusStored, StatusProcessed,
	}
	for i := 0; i < len(path)-1; i++ {
		if !CanTransition(path[i], path[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", path[i], path[i+1])
		}
	}
}

func TestCanTransition_Disallowed(t *testing.T) {
	cases := []struct {
		from, to BatchStatus
	}{
		{StatusOrdered, StatusStored},
		{StatusOrdered, StatusProcessed},
		{StatusAtGate, StatusOrdered},
		{StatusStored, StatusAtWarehouse},
		{StatusProcessed, StatusStored},
		{StatusShipped, StatusInTransit},
		{StatusRejected, StatusStored},
	}
	for _, tc := range cases {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	for _, terminal := range []BatchStatus{StatusProcessed, StatusShipped} {
		if nexts := AllowedTransitions[terminal]; len(nexts) != 0 {
			t.Fatalf("expected %s to be terminal, allows %v", terminal, nexts)
		}
	}
}

func TestCanTransition_ExportAndRejectPaths(t *testing.T) {
	cases := []struct {
		from, to BatchStatus
	}{
		{StatusAtGate, StatusRejected},
		{StatusAtGate, StatusExportReady},
		{StatusAtWarehouse, StatusRejected},
		{StatusStored, StatusExportReady},
		{StatusStored, StatusReprocessing},
		{StatusRejected, StatusReprocessing},
		{StatusReprocessing, StatusStored},
		{StatusExportReady, StatusInTransit},
		{StatusInTransit, StatusShipped},
	}
	for _, tc := range cases {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}
}

func TestBatchDepleted(t *testing.T) {
	cases := []struct {
		qty      float64
		expected bool
	}{
		{0, true},
		{0.01, true},
		{0.009, true},
		{0.02, false},
		{400, false},
	}
	for _, tc := range cases {
		b := Batch{CurrentQuantityKg: tc.qty}
		if b.Depleted() != tc.expected {
			t.Fatalf("Depleted() with %.3f kg: expected %v", tc.qty, tc.expected)
		}
	}
}
