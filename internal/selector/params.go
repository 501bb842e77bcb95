package selector

import (
	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/elo"
)

// QuestionParams is what the generation layer targets for the next
// question on a concept.
type QuestionParams struct {
	ConceptID string

	// RatingUsed is the skill rating the target was derived from,
	// possibly warm-started for a fresh concept.
	RatingUsed float64

	// TargetDifficulty is the calibrated difficulty to request.
	TargetDifficulty float64

	Type content.QuestionType
}

// ComputeQuestionParams derives the difficulty target and
// presentation type for the next question on conceptID.
//
// A concept with no attempts warm-starts its rating from the mean of
// concepts the learner has real signal on, so a skilled learner is
// not dropped back to beginner questions on every new concept. The
// target is then calibrated against concept-local results when there
// are enough, otherwise against the whole window.
func ComputeQuestionParams(conceptID string, states map[string]content.SkillState, analysis Analysis, ep elo.Params, p Params) QuestionParams {
	state, ok := states[conceptID]
	if !ok {
		state = content.SkillState{
			ConceptID:   conceptID,
			Rating:      ep.InitialRating,
			Uncertainty: ep.InitialUncertainty,
		}
	}

	rating := state.Rating
	if state.TotalAttempts == 0 {
		rating = warmStartRating(conceptID, states, ep, p)
	}

	target := elo.TargetDifficulty(rating, ep.TargetSuccessRate, ep.Scale)

	local := analysis.Concepts[conceptID].Results
	switch {
	case len(local) >= ep.CalibrationMinResults:
		target = elo.Calibrate(target, local, ep)
	case len(analysis.Global) >= ep.CalibrationMinResults:
		target = elo.Calibrate(target, analysis.Global, ep)
	}

	qType := content.TypeMultipleChoice
	if state.Mastery >= p.ShortAnswerMastery {
		qType = content.TypeShortAnswer
	}

	return QuestionParams{
		ConceptID:        conceptID,
		RatingUsed:       rating,
		TargetDifficulty: target,
		Type:             qType,
	}
}

func warmStartRating(conceptID string, states map[string]content.SkillState, ep elo.Params, p Params) float64 {
	sum, n := 0.0, 0
	for id, s := range states {
		if id == conceptID || s.TotalAttempts < p.WarmStartMinAttempts {
			continue
		}
		sum += s.Rating
		n++
	}
	if n == 0 {
		return ep.InitialRating
	}
	return sum / float64(n)
}
