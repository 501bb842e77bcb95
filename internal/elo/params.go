package elo

// Params holds the tunable constants for the skill model and the
// difficulty calibrator. All consumers should start from DefaultParams
// and override individual fields rather than hardcoding literals.
type Params struct {
	// InitialRating is the skill rating assigned on first reference.
	InitialRating float64

	// InitialUncertainty is the starting uncertainty for a new skill state.
	InitialUncertainty float64

	// UncertaintyFloor is the minimum uncertainty after decay.
	UncertaintyFloor float64

	// BaseK is the base K-factor scaled by relative uncertainty.
	BaseK float64

	// Scale is the Elo logistic scale factor.
	Scale float64

	// TargetSuccessRate is the success probability questions are tuned to.
	TargetSuccessRate float64

	// MasteryThreshold is the mastery level at which a concept counts as
	// mastered.
	MasteryThreshold float64

	// WeightSkill and WeightRecent blend normalized rating and recent
	// accuracy into the mastery level.
	WeightSkill  float64
	WeightRecent float64

	// CalibrationGain converts accuracy error into an Elo adjustment.
	// Tuned so that calibration converges within roughly ten items.
	CalibrationGain float64

	// CalibrationMinResults is the minimum number of recent results
	// required before calibration adjusts anything.
	CalibrationMinResults int

	// RecentWindow is the number of recent attempts considered by the
	// calibrator and the selector.
	RecentWindow int
}

// DefaultParams returns the standard model parameters.
func DefaultParams() Params {
	return Params{
		InitialRating:         800.0,
		InitialUncertainty:    350.0,
		UncertaintyFloor:      50.0,
		BaseK:                 32.0,
		Scale:                 400.0,
		TargetSuccessRate:     0.80,
		MasteryThreshold:      0.75,
		WeightSkill:           0.6,
		WeightRecent:          0.4,
		CalibrationGain:       500.0,
		CalibrationMinResults: 3,
		RecentWindow:          30,
	}
}
