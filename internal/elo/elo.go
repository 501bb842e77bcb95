// Package elo implements the Elo-like skill model with decaying
// uncertainty that drives adaptive question difficulty.
//
// Core formulas:
//
//	P(correct) = 1 / (1 + 10^((D - S) / scale))
//	target difficulty = S + scale * log10(1/P_target - 1)
//	delta = K * (actual - expected), K = baseK * (uncertainty / initial)
package elo

import "math"

// ProbabilityCorrect returns the modeled probability of a correct answer
// given a skill rating and a question difficulty.
func ProbabilityCorrect(rating, difficulty, scale float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (difficulty-rating)/scale))
}

// TargetDifficulty computes the difficulty D at which the learner's
// success probability equals targetP. For targetP = 0.8 this sits about
// 241 points below the rating. Out-of-range targetP fails closed and
// returns the rating unchanged.
func TargetDifficulty(rating, targetP, scale float64) float64 {
	if targetP <= 0 || targetP >= 1 {
		return rating
	}
	return rating + scale*math.Log10(1.0/targetP-1.0)
}

// KFactor returns the dynamic K-factor: aggressive while uncertain,
// conservative once the estimate has settled.
func KFactor(uncertainty, baseK, initialUncertainty float64) float64 {
	return baseK * (uncertainty / initialUncertainty)
}

// UpdateSkill applies one attempt outcome to a (rating, uncertainty)
// pair and returns the new values. Uncertainty decays 5% per attempt
// down to the floor.
func UpdateSkill(rating, uncertainty, difficulty float64, isCorrect bool, p Params) (newRating, newUncertainty float64) {
	expected := ProbabilityCorrect(rating, difficulty, p.Scale)
	actual := 0.0
	if isCorrect {
		actual = 1.0
	}
	k := KFactor(uncertainty, p.BaseK, p.InitialUncertainty)

	newRating = rating + k*(actual-expected)
	newUncertainty = math.Max(uncertainty*0.95, p.UncertaintyFloor)
	return newRating, newUncertainty
}

// ComputeMastery blends the normalized rating (400-1600 clamps to 0-1)
// with recent accuracy into a [0,1] mastery level.
func ComputeMastery(rating, recentAccuracy float64, p Params) float64 {
	normalized := clamp01((rating - 400) / 1200)
	return p.WeightSkill*normalized + p.WeightRecent*recentAccuracy
}

// IsMastered reports whether a mastery level crosses the threshold.
func IsMastered(mastery, threshold float64) bool {
	return mastery >= threshold
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
