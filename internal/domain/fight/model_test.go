package fight

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestParseMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Method
	}{
		{raw: "KO/TKO", want: MethodKOTKO},
		{raw: "ko_tko", want: MethodKOTKO},
		{raw: "SUBMISSION", want: MethodSubmission},
		{raw: " Decision ", want: MethodDecision},
		{raw: "NO_CONTEST", want: MethodNoResult},
		{raw: "", want: MethodUnknown},
	}
	for _, tc := range tests {
		got, err := ParseMethod(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("unexpected method for %q: got=%q want=%q", tc.raw, got, tc.want)
		}
	}

	if _, err := ParseMethod("DQ-ish"); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("expected ErrInvalidOutcome, got %v", err)
	}
}

func TestNewOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		winner    string
		method    Method
		round     *int
		decided   bool
		wantError bool
	}{
		{name: "ko winner", winner: "f1", method: MethodKOTKO, round: intPtr(1), decided: true},
		{name: "decision without round", winner: "f1", method: MethodDecision, decided: true},
		{name: "draw", method: MethodDecision, round: intPtr(3)},
		{name: "no contest", method: MethodNoResult},
		{name: "pending", method: MethodUnknown},
		{name: "finish without winner", method: MethodSubmission, wantError: true},
		{name: "no result with winner", winner: "f1", method: MethodNoResult, wantError: true},
		{name: "zero round", winner: "f1", method: MethodKOTKO, round: intPtr(0), wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := NewOutcome(tc.winner, tc.method, tc.round)
			if tc.wantError {
				if !errors.Is(err, ErrInvalidOutcome) {
					t.Fatalf("expected ErrInvalidOutcome, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, isDecided := out.(Decided)
			if isDecided != tc.decided {
				t.Fatalf("unexpected variant: %T", out)
			}
		})
	}
}

func TestFightValidate(t *testing.T) {
	t.Parallel()

	base := Fight{ID: "fight-1", EventID: "ev-1", Fighter1ID: "a", Fighter2ID: "b", Outcome: Decided{WinnerID: "a", Method: MethodDecision}}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid fight, got %v", err)
	}

	stranger := base
	stranger.Outcome = Decided{WinnerID: "c", Method: MethodDecision}
	if err := stranger.Validate(); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("expected winner mismatch error, got %v", err)
	}

	sameSide := base
	sameSide.Fighter2ID = "a"
	if err := sameSide.Validate(); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("expected same fighter error, got %v", err)
	}

	missing := base
	missing.Outcome = nil
	if err := missing.Validate(); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("expected missing outcome error, got %v", err)
	}
}
