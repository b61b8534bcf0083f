package service

import (
	"math"

	"github.com/lshigami/schooltest/internal/apperr"
)

type ScoreConverterService interface {
	// Validate rejects negative scores, scores above a positive maximum and
	// positive scores on an ungraded (max 0) submission.
	Validate(score, maxScore float64) error
	// Percentage is round(score/max*100, 2), or nil when max is 0 (ungraded).
	Percentage(score, maxScore float64) *float64
}

type scoreConverterServiceImpl struct{}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{}
}

func (s *scoreConverterServiceImpl) Validate(score, maxScore float64) error {
	const op = "ValidateScore"
	switch {
	case math.IsNaN(score) || math.IsNaN(maxScore) || math.IsInf(score, 0) || math.IsInf(maxScore, 0):
		return apperr.New(apperr.KindInvalidArgument, op, "score and max_score must be finite")
	case score < 0:
		return apperr.New(apperr.KindInvalidArgument, op, "score %.2f is negative", score)
	case maxScore < 0:
		return apperr.New(apperr.KindInvalidArgument, op, "max_score %.2f is negative", maxScore)
	case maxScore == 0 && score > 0:
		return apperr.New(apperr.KindInvalidArgument, op, "score %.2f given without a max_score", score)
	case maxScore > 0 && score > maxScore:
		return apperr.New(apperr.KindInvalidArgument, op, "score %.2f exceeds max_score %.2f", score, maxScore)
	}
	return nil
}

func (s *scoreConverterServiceImpl) Percentage(score, maxScore float64) *float64 {
	if maxScore <= 0 {
		return nil
	}
	p := math.Round(score/maxScore*100*100) / 100
	return &p
}
