package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/schooltest/internal/auth"
	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/model"
	"github.com/lshigami/schooltest/internal/repository"
	"github.com/rs/zerolog/log"
)

type AttemptRecorder interface {
	// RecordAttempt upserts on (student, test, attempt number) and returns the stored row.
	RecordAttempt(dbc dbctx.Context, attempt *model.Attempt) (*model.Attempt, error)
	// NextAttemptNumberHint is one past the highest attempt number that is
	// either logged or reserved by a retest of the test.
	NextAttemptNumberHint(dbc dbctx.Context, studentID, testID string) (int, error)
	ListAttempts(ctx context.Context, p auth.Principal, studentID, testID string) ([]dto.AttemptResponseDTO, error)
}

type attemptRecorder struct {
	attemptRepo repository.AttemptRepository
	targetRepo  repository.RetestTargetRepository
}

func NewAttemptRecorder(attemptRepo repository.AttemptRepository, targetRepo repository.RetestTargetRepository) AttemptRecorder {
	return &attemptRecorder{attemptRepo: attemptRepo, targetRepo: targetRepo}
}

func (s *attemptRecorder) RecordAttempt(dbc dbctx.Context, attempt *model.Attempt) (*model.Attempt, error) {
	if err := s.attemptRepo.Upsert(dbc, attempt); err != nil {
		return nil, fmt.Errorf("record attempt %d for student %s: %w", attempt.AttemptNumber, attempt.StudentID, err)
	}
	// On conflict the generated ID is discarded, so reload by key.
	stored, err := s.attemptRepo.FindByKey(dbc, attempt.StudentID, attempt.TestID, attempt.AttemptNumber)
	if err != nil {
		return nil, fmt.Errorf("reload attempt: %w", err)
	}
	return stored, nil
}

func (s *attemptRecorder) NextAttemptNumberHint(dbc dbctx.Context, studentID, testID string) (int, error) {
	logged, err := s.attemptRepo.MaxAttemptNumber(dbc, studentID, testID)
	if err != nil {
		return 0, err
	}
	reserved, err := s.targetRepo.MaxReservedAttemptNumber(dbc, studentID, testID)
	if err != nil {
		return 0, err
	}
	if reserved > logged {
		return reserved + 1, nil
	}
	return logged + 1, nil
}

func (s *attemptRecorder) ListAttempts(ctx context.Context, p auth.Principal, studentID, testID string) ([]dto.AttemptResponseDTO, error) {
	const op = "ListAttempts"
	if err := requireSelfOrStaff(p, studentID, op); err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.ListByStudentAndTest(dbctx.Context{Ctx: ctx}, studentID, testID)
	if err != nil {
		log.Error().Err(err).Str("studentID", studentID).Str("testID", testID).Msg("ListAttempts: repository error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var resp []dto.AttemptResponseDTO
	if err := copier.Copy(&resp, &attempts); err != nil {
		return nil, fmt.Errorf("map attempts: %w", err)
	}
	if resp == nil {
		resp = []dto.AttemptResponseDTO{}
	}
	return resp, nil
}
