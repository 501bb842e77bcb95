package elo

// Calibrate nudges a base target difficulty from recent results. With
// fewer than CalibrationMinResults the signal is too thin and the base
// is returned unchanged. Otherwise the accuracy error against the
// target success rate is scaled by CalibrationGain.
//
// This is a one-shot proportional controller: it is recomputed from the
// caller's rolling window on every call and accumulates no state.
func Calibrate(baseDifficulty float64, recentResults []bool, p Params) float64 {
	if len(recentResults) < p.CalibrationMinResults {
		return baseDifficulty
	}

	correct := 0
	for _, r := range recentResults {
		if r {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(recentResults))

	err := accuracy - p.TargetSuccessRate
	return baseDifficulty + err*p.CalibrationGain
}
