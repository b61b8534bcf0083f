package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/lshigami/schooltest/config"
	"github.com/lshigami/schooltest/internal/apperr"
	"github.com/lshigami/schooltest/internal/auth"
	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/model"
	"github.com/lshigami/schooltest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// errConcurrentUpdate aborts a submit transaction whose target row was
// advanced by another submission after it was read.
var errConcurrentUpdate = errors.New("retest target changed concurrently")

type SubmissionService interface {
	Submit(ctx context.Context, p auth.Principal, req dto.SubmissionDTO) (*dto.SubmissionResultDTO, error)
}

type submissionService struct {
	db             *gorm.DB
	testRepo       repository.TestRepository
	assignmentRepo repository.RetestAssignmentRepository
	targetRepo     repository.RetestTargetRepository
	attemptRepo    repository.AttemptRepository
	recorder       AttemptRecorder
	best           BestAttemptService
	scores         ScoreConverterService
	clock          Clock
	txTimeout      time.Duration
	maxRetries     int
}

func NewSubmissionService(
	db *gorm.DB,
	cfg *config.Config,
	testRepo repository.TestRepository,
	assignmentRepo repository.RetestAssignmentRepository,
	targetRepo repository.RetestTargetRepository,
	attemptRepo repository.AttemptRepository,
	recorder AttemptRecorder,
	best BestAttemptService,
	scores ScoreConverterService,
	clock Clock,
) SubmissionService {
	return &submissionService{
		db:             db,
		testRepo:       testRepo,
		assignmentRepo: assignmentRepo,
		targetRepo:     targetRepo,
		attemptRepo:    attemptRepo,
		recorder:       recorder,
		best:           best,
		scores:         scores,
		clock:          clock,
		txTimeout:      cfg.Database.TxTimeout,
		maxRetries:     cfg.Retest.SubmitMaxRetries,
	}
}

// Submit records one graded submission. Retest submissions go through the
// eligibility gate and advance the student's target; the attempt, target and
// best-attempt projection commit or roll back together.
func (s *submissionService) Submit(ctx context.Context, p auth.Principal, req dto.SubmissionDTO) (*dto.SubmissionResultDTO, error) {
	const op = "Submit"
	if p.Role != auth.RoleStudent {
		return nil, apperr.New(apperr.KindPermissionDenied, op, "only students submit attempts")
	}
	req.TestID = strings.TrimSpace(req.TestID)
	req.StudentID = strings.TrimSpace(req.StudentID)
	if req.StudentID == "" {
		req.StudentID = p.SubjectID
	}
	if req.StudentID != p.SubjectID {
		return nil, apperr.New(apperr.KindPermissionDenied, op, "student %s may not submit for %s", p.SubjectID, req.StudentID)
	}
	if req.TestID == "" {
		return nil, apperr.New(apperr.KindInvalidArgument, op, "test_id is required")
	}
	if req.RetestAssignmentID != nil && strings.TrimSpace(*req.RetestAssignmentID) == "" {
		req.RetestAssignmentID = nil
	}
	if req.SubmissionKey != nil && strings.TrimSpace(*req.SubmissionKey) == "" {
		req.SubmissionKey = nil
	}
	if err := s.scores.Validate(req.Score, req.MaxScore); err != nil {
		return nil, err
	}

	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	var (
		result *dto.SubmissionResultDTO
		best   *model.BestAttempt
	)
	for try := 0; ; try++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			result, best, err = s.submitTx(dbctx.Context{Ctx: ctx, Tx: tx}, req)
			return err
		})
		if errors.Is(err, errConcurrentUpdate) {
			if try < s.maxRetries {
				log.Debug().Str("studentID", req.StudentID).Int("try", try+1).Msg("Submit: target changed concurrently, retrying")
				continue
			}
			return nil, apperr.Wrap(apperr.KindConflict, op, err)
		}
		if err != nil {
			if apperr.KindOf(err) == apperr.KindIntegrityFault {
				log.Error().Err(err).Bool("defect", true).Str("studentID", req.StudentID).Str("testID", req.TestID).Msg("Submit: integrity fault")
			}
			return nil, err
		}
		break
	}

	if best != nil {
		s.best.Publish(ctx, req.StudentID, req.TestID, best)
	}
	log.Info().
		Str("studentID", req.StudentID).
		Str("testID", req.TestID).
		Int("attemptNumber", result.AttemptNumber).
		Bool("passed", result.Passed).
		Bool("retry", result.Retry).
		Msg("Submission recorded")
	return result, nil
}

// submitTx returns the refreshed best-attempt projection alongside the
// result; it is nil when nothing was written.
func (s *submissionService) submitTx(dbc dbctx.Context, req dto.SubmissionDTO) (*dto.SubmissionResultDTO, *model.BestAttempt, error) {
	const op = "Submit"
	test, err := s.testRepo.FindByID(dbc, req.TestID)
	if err != nil {
		return nil, nil, notFoundOr(err, op, "test %s not found", req.TestID)
	}
	now := s.clock()
	percentage := s.scores.Percentage(req.Score, req.MaxScore)
	attempt := &model.Attempt{
		StudentID:     req.StudentID,
		TestID:        req.TestID,
		SubmissionKey: req.SubmissionKey,
		Score:         req.Score,
		MaxScore:      req.MaxScore,
		Percentage:    percentage,
		Answers:       datatypes.JSON(req.Answers),
		SubmittedAt:   now,
		TestName:      test.Name,
		TestType:      test.Type,
		TeacherID:     test.TeacherID,
		Subject:       test.Subject,
		Grade:         test.Grade,
		Class:         test.Class,
		StudentName:   req.StudentName,
		StudentNumber: req.StudentNumber,
	}

	if req.SubmissionKey != nil {
		prev, err := s.attemptRepo.FindBySubmissionKey(dbc, req.StudentID, req.TestID, *req.SubmissionKey)
		if err == nil {
			return s.replay(dbc, req.RetestAssignmentID, prev, attempt, now)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
	}

	if req.RetestAssignmentID == nil {
		return s.submitRegular(dbc, attempt, req.Completed)
	}
	return s.submitRetest(dbc, *req.RetestAssignmentID, attempt, now)
}

func (s *submissionService) submitRegular(dbc dbctx.Context, attempt *model.Attempt, completed bool) (*dto.SubmissionResultDTO, *model.BestAttempt, error) {
	n, err := s.recorder.NextAttemptNumberHint(dbc, attempt.StudentID, attempt.TestID)
	if err != nil {
		return nil, nil, err
	}
	attempt.AttemptNumber = n
	attempt.Passed = IsPassing(attempt.Percentage, model.DefaultPassingThreshold)
	attempt.Completed = completed

	stored, best, err := s.record(dbc, attempt)
	if err != nil {
		return nil, nil, err
	}
	return &dto.SubmissionResultDTO{
		AttemptID:        stored.ID,
		AttemptNumber:    stored.AttemptNumber,
		LogAttemptNumber: stored.AttemptNumber,
		Passed:           stored.Passed,
		Completed:        stored.Completed,
		Percentage:       stored.Percentage,
	}, best, nil
}

func (s *submissionService) submitRetest(dbc dbctx.Context, assignmentID string, attempt *model.Attempt, now time.Time) (*dto.SubmissionResultDTO, *model.BestAttempt, error) {
	const op = "Submit"
	assignment, target, err := s.loadTarget(dbc, assignmentID, attempt.StudentID, attempt.TestID)
	if err != nil {
		return nil, nil, err
	}

	tr, err := Advance(target, assignment, attempt.Percentage, now)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.targetRepo.ApplyTransition(dbc, repository.TargetTransition{
		AssignmentID:          assignmentID,
		StudentID:             attempt.StudentID,
		ExpectedAttemptNumber: target.AttemptNumber,
		AttemptNumber:         tr.NextAttemptNumber,
		Status:                tr.Status,
		Passed:                tr.Passed,
		Completed:             tr.Completed,
		At:                    now,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("update retest target: %w", err)
	}
	if rows == 0 {
		if _, err := s.targetRepo.FindByAssignmentAndStudent(dbc, assignmentID, attempt.StudentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, apperr.New(apperr.KindIntegrityFault, op, "retest target %s/%s vanished during update", assignmentID, attempt.StudentID)
			}
			return nil, nil, err
		}
		return nil, nil, errConcurrentUpdate
	}

	retestNumber := tr.NextAttemptNumber
	attempt.AttemptNumber = target.AttemptLogNumber(retestNumber)
	attempt.RetestAttemptNumber = &retestNumber
	attempt.RetestAssignmentID = &assignment.ID
	attempt.Passed = tr.Passed
	attempt.Completed = tr.Completed

	stored, best, err := s.record(dbc, attempt)
	if err != nil {
		return nil, nil, err
	}
	return &dto.SubmissionResultDTO{
		AttemptID:        stored.ID,
		AttemptNumber:    retestNumber,
		LogAttemptNumber: stored.AttemptNumber,
		Passed:           tr.Passed,
		Completed:        tr.Completed,
		Status:           string(tr.Status),
		Percentage:       stored.Percentage,
	}, best, nil
}

func (s *submissionService) loadTarget(dbc dbctx.Context, assignmentID, studentID, testID string) (*model.RetestAssignment, *model.RetestTarget, error) {
	const op = "Submit"
	assignment, err := s.assignmentRepo.FindByID(dbc, assignmentID)
	if err != nil {
		return nil, nil, notFoundOr(err, op, "retest assignment %s not found", assignmentID)
	}
	if assignment.OriginalTestID != testID {
		return nil, nil, apperr.New(apperr.KindInvalidArgument, op, "retest %s belongs to test %s, not %s", assignmentID, assignment.OriginalTestID, testID)
	}
	target, err := s.targetRepo.FindByAssignmentAndStudent(dbc, assignmentID, studentID)
	if err != nil {
		return nil, nil, notFoundOr(err, op, "student %s is not a target of retest %s", studentID, assignmentID)
	}
	return assignment, target, nil
}

// replay handles a resubmission carrying a known submission key. The target
// never moves and the stored pass/fail outcome must hold for the new payload.
// A retest replay is refused once the window has closed, and a completed
// target accepts only an identical payload.
func (s *submissionService) replay(dbc dbctx.Context, reqAssignmentID *string, prev *model.Attempt, attempt *model.Attempt, now time.Time) (*dto.SubmissionResultDTO, *model.BestAttempt, error) {
	const op = "Submit"
	key := *attempt.SubmissionKey
	if !sameID(reqAssignmentID, prev.RetestAssignmentID) {
		return nil, nil, apperr.New(apperr.KindInvalidArgument, op, "submission key %s belongs to a different retest", key)
	}

	threshold := model.DefaultPassingThreshold
	var target *model.RetestTarget
	if prev.RetestAssignmentID != nil {
		assignment, t, err := s.loadTarget(dbc, *prev.RetestAssignmentID, prev.StudentID, prev.TestID)
		if err != nil {
			return nil, nil, err
		}
		if !assignment.InWindow(now) {
			return nil, nil, apperr.New(apperr.KindWindowClosed, op, "retest %s is not open at %s", assignment.ID, now.Format(time.RFC3339))
		}
		threshold = assignment.PassingThreshold
		target = t
	}

	unchanged := samePayload(prev, attempt)
	if target != nil && target.IsCompleted && !unchanged {
		return nil, nil, apperr.New(apperr.KindAlreadyCompleted, op, "retest already %s, submission %s can no longer change", target.Status, key)
	}
	if IsPassing(attempt.Percentage, threshold) != prev.Passed {
		return nil, nil, apperr.New(apperr.KindInvalidArgument, op, "resubmitting %s would change its pass/fail outcome", key)
	}

	stored := prev
	var best *model.BestAttempt
	if !unchanged {
		attempt.ID = prev.ID
		attempt.AttemptNumber = prev.AttemptNumber
		attempt.RetestAttemptNumber = prev.RetestAttemptNumber
		attempt.RetestAssignmentID = prev.RetestAssignmentID
		attempt.Passed = prev.Passed
		attempt.Completed = prev.Completed
		var err error
		if stored, best, err = s.record(dbc, attempt); err != nil {
			return nil, nil, err
		}
	}

	result := &dto.SubmissionResultDTO{
		AttemptID:        stored.ID,
		AttemptNumber:    stored.AttemptNumber,
		LogAttemptNumber: stored.AttemptNumber,
		Passed:           stored.Passed,
		Completed:        stored.Completed,
		Percentage:       stored.Percentage,
		Retry:            true,
	}
	if target != nil && prev.RetestAttemptNumber != nil {
		result.AttemptNumber = *prev.RetestAttemptNumber
		result.Status = string(target.Status)
	}
	return result, best, nil
}

func (s *submissionService) record(dbc dbctx.Context, attempt *model.Attempt) (*model.Attempt, *model.BestAttempt, error) {
	stored, err := s.recorder.RecordAttempt(dbc, attempt)
	if err != nil {
		return nil, nil, err
	}
	best, err := s.best.RefreshBest(dbc, stored.StudentID, stored.TestID)
	if err != nil {
		return nil, nil, err
	}
	return stored, best, nil
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// samePayload compares the graded payload. Answers compare as decoded JSON;
// jsonb does not keep the submitted formatting.
func samePayload(prev, next *model.Attempt) bool {
	if prev.Score != next.Score || prev.MaxScore != next.MaxScore {
		return false
	}
	return sameJSON(prev.Answers, next.Answers)
}

func sameJSON(a, b datatypes.JSON) bool {
	va, errA := decodeJSON(a)
	vb, errB := decodeJSON(b)
	if errA != nil || errB != nil {
		return bytes.Equal(a, b)
	}
	return reflect.DeepEqual(va, vb)
}

func decodeJSON(raw datatypes.JSON) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var v any
	err := json.Unmarshal(raw, &v)
	return v, err
}
