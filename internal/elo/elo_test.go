package elo

import (
	"math"
	"testing"
)

func TestProbabilityCorrect_EqualRatingAndDifficulty(t *testing.T) {
	for _, v := range []float64{400, 800, 1000, 1600} {
		got := ProbabilityCorrect(v, v, 400)
		if math.Abs(got-0.5) > 1e-12 {
			t.Errorf("ProbabilityCorrect(%v, %v) = %v, want 0.5", v, v, got)
		}
	}
}

func TestProbabilityCorrect_Monotonic(t *testing.T) {
	easy := ProbabilityCorrect(1000, 800, 400)
	hard := ProbabilityCorrect(1000, 1200, 400)
	if easy <= 0.5 {
		t.Errorf("easier question should have P > 0.5, got %v", easy)
	}
	if hard >= 0.5 {
		t.Errorf("harder question should have P < 0.5, got %v", hard)
	}
}

func TestTargetDifficulty_EightyPercent(t *testing.T) {
	// D = 1000 + 400*log10(0.25) ≈ 759.18
	got := TargetDifficulty(1000, 0.8, 400)
	if math.Abs(got-759.18) > 0.01 {
		t.Errorf("TargetDifficulty(1000, 0.8) = %v, want ≈759.18", got)
	}
}

func TestTargetDifficulty_FailsClosed(t *testing.T) {
	for _, p := range []float64{0, 1, -0.5, 1.5} {
		if got := TargetDifficulty(900, p, 400); got != 900 {
			t.Errorf("TargetDifficulty(900, %v) = %v, want 900", p, got)
		}
	}
}

func TestUpdateSkill_Directions(t *testing.T) {
	p := DefaultParams()

	up, _ := UpdateSkill(800, 350, 800, true, p)
	if up <= 800 {
		t.Errorf("correct answer should raise rating, got %v", up)
	}

	down, _ := UpdateSkill(800, 350, 800, false, p)
	if down >= 800 {
		t.Errorf("wrong answer should lower rating, got %v", down)
	}
}

func TestUpdateSkill_UncertaintyDecaysToFloor(t *testing.T) {
	p := DefaultParams()
	u := p.InitialUncertainty
	for i := 0; i < 100; i++ {
		prev := u
		_, u = UpdateSkill(800, u, 750, true, p)
		if u > prev {
			t.Fatalf("uncertainty increased: %v -> %v", prev, u)
		}
		if u < p.UncertaintyFloor {
			t.Fatalf("uncertainty fell below floor: %v", u)
		}
	}
	if u != p.UncertaintyFloor {
		t.Errorf("uncertainty should settle at floor %v, got %v", p.UncertaintyFloor, u)
	}
}

func TestKFactor_ScalesWithUncertainty(t *testing.T) {
	if got := KFactor(350, 32, 350); got != 32 {
		t.Errorf("full uncertainty should yield baseK, got %v", got)
	}
	if got := KFactor(175, 32, 350); got != 16 {
		t.Errorf("half uncertainty should halve K, got %v", got)
	}
}

func TestComputeMastery(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		rating   float64
		accuracy float64
		want     float64
	}{
		{400, 0, 0},
		{1600, 1, 1},
		{1000, 0.5, 0.6*0.5 + 0.4*0.5},
		// Ratings outside 400-1600 clamp silently.
		{100, 1, 0.4},
		{2500, 0, 0.6},
	}
	for _, tt := range tests {
		got := ComputeMastery(tt.rating, tt.accuracy, p)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ComputeMastery(%v, %v) = %v, want %v", tt.rating, tt.accuracy, got, tt.want)
		}
	}
}

func TestIsMastered(t *testing.T) {
	if IsMastered(0.74, 0.75) {
		t.Error("0.74 should not be mastered at threshold 0.75")
	}
	if !IsMastered(0.75, 0.75) {
		t.Error("0.75 should be mastered at threshold 0.75")
	}
}

func TestCalibrate_InsufficientSignal(t *testing.T) {
	p := DefaultParams()
	for _, results := range [][]bool{nil, {true}, {true, false}} {
		if got := Calibrate(600, results, p); got != 600 {
			t.Errorf("Calibrate with %d results = %v, want 600 unchanged", len(results), got)
		}
	}
}

func TestCalibrate_Direction(t *testing.T) {
	p := DefaultParams()

	hot := Calibrate(600, []bool{true, true, true, true, true}, p)
	if hot <= 600 {
		t.Errorf("accuracy above target should raise difficulty, got %v", hot)
	}

	cold := Calibrate(600, []bool{false, false, false, true, true}, p)
	if cold >= 600 {
		t.Errorf("accuracy below target should lower difficulty, got %v", cold)
	}
}

func TestCalibrate_Magnitude(t *testing.T) {
	p := DefaultParams()
	// Accuracy 1.0 against target 0.8 → +0.2 * 500 = +100.
	got := Calibrate(600, []bool{true, true, true, true}, p)
	if math.Abs(got-700) > 1e-9 {
		t.Errorf("Calibrate = %v, want 700", got)
	}
}
