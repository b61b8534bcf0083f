package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/schooltest/internal/apperr"
	"github.com/lshigami/schooltest/internal/auth"
	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/model"
	"github.com/lshigami/schooltest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RetestAssignmentService interface {
	CreateAssignment(ctx context.Context, p auth.Principal, req dto.RetestAssignmentCreateDTO) (*dto.RetestAssignmentResponseDTO, error)
	// CancelAssignment closes the window now; targets are left untouched.
	CancelAssignment(ctx context.Context, p auth.Principal, assignmentID string) (*dto.RetestAssignmentResponseDTO, error)
	GetAssignment(ctx context.Context, p auth.Principal, assignmentID string) (*dto.RetestAssignmentResponseDTO, error)
	GetTarget(ctx context.Context, p auth.Principal, assignmentID, studentID string) (*dto.RetestTargetDetailDTO, error)
	GetTargetsForAssignment(ctx context.Context, p auth.Principal, assignmentID string) ([]dto.RetestTargetResponseDTO, error)
	// ExpireTargets marks every open target EXPIRED once the window has closed.
	ExpireTargets(ctx context.Context, p auth.Principal, assignmentID string) (int64, error)
}

type retestAssignmentService struct {
	db             *gorm.DB
	testRepo       repository.TestRepository
	assignmentRepo repository.RetestAssignmentRepository
	targetRepo     repository.RetestTargetRepository
	resultStores   repository.TestResultStores
	recorder       AttemptRecorder
	clock          Clock
}

func NewRetestAssignmentService(
	db *gorm.DB,
	testRepo repository.TestRepository,
	assignmentRepo repository.RetestAssignmentRepository,
	targetRepo repository.RetestTargetRepository,
	resultStores repository.TestResultStores,
	recorder AttemptRecorder,
	clock Clock,
) RetestAssignmentService {
	return &retestAssignmentService{
		db:             db,
		testRepo:       testRepo,
		assignmentRepo: assignmentRepo,
		targetRepo:     targetRepo,
		resultStores:   resultStores,
		recorder:       recorder,
		clock:          clock,
	}
}

func (s *retestAssignmentService) CreateAssignment(ctx context.Context, p auth.Principal, req dto.RetestAssignmentCreateDTO) (*dto.RetestAssignmentResponseDTO, error) {
	const op = "CreateAssignment"
	if err := requireStaff(p, op); err != nil {
		return nil, err
	}
	assignment, studentIDs, err := s.buildAssignment(p, req)
	if err != nil {
		return nil, err
	}

	var targetCount int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		test, err := s.testRepo.FindByID(dbc, assignment.OriginalTestID)
		if err != nil {
			return notFoundOr(err, op, "original test %s not found", assignment.OriginalTestID)
		}
		if assignment.OriginalTestType != test.Type {
			return apperr.New(apperr.KindInvalidArgument, op, "test %s is of type %s, not %s", test.ID, test.Type, assignment.OriginalTestType)
		}

		created, err := s.assignmentRepo.Create(dbc, assignment)
		if err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
		if !created {
			existing, err := s.assignmentRepo.FindByID(dbc, assignment.ID)
			if err != nil {
				return fmt.Errorf("load existing assignment: %w", err)
			}
			if existing.OriginalTestID != assignment.OriginalTestID {
				return apperr.New(apperr.KindInvalidArgument, op, "assignment %s already exists for test %s", existing.ID, existing.OriginalTestID)
			}
			*assignment = *existing
		}

		targets := make([]*model.RetestTarget, 0, len(studentIDs))
		for _, studentID := range studentIDs {
			if _, err := s.targetRepo.FindByAssignmentAndStudent(dbc, assignment.ID, studentID); err == nil {
				continue
			}
			next, err := s.recorder.NextAttemptNumberHint(dbc, studentID, assignment.OriginalTestID)
			if err != nil {
				return err
			}
			targets = append(targets, &model.RetestTarget{
				ID:           uuid.NewString(),
				AssignmentID: assignment.ID,
				StudentID:    studentID,
				MaxAttempts:  assignment.MaxAttempts,
				AttemptBase:  next - 1,
				Status:       model.TargetStatusPending,
			})
		}
		if _, err := s.targetRepo.CreateMissing(dbc, targets); err != nil {
			return fmt.Errorf("insert targets: %w", err)
		}

		for _, store := range s.resultStores {
			for _, studentID := range studentIDs {
				if _, err := store.FlagRetestOffered(dbc, studentID, assignment.OriginalTestID); err != nil {
					return fmt.Errorf("flag %s: %w", store.Table(), err)
				}
				if _, err := store.StampRetestReference(dbc, studentID, assignment.OriginalTestID, assignment.ID); err != nil {
					return fmt.Errorf("stamp %s: %w", store.Table(), err)
				}
			}
		}

		all, err := s.targetRepo.ListByAssignment(dbc, assignment.ID)
		if err != nil {
			return err
		}
		targetCount = len(all)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("assignmentID", assignment.ID).Str("testID", assignment.OriginalTestID).Msg("CreateAssignment failed")
		return nil, err
	}

	log.Info().
		Str("assignmentID", assignment.ID).
		Str("testID", assignment.OriginalTestID).
		Int("targets", targetCount).
		Msg("Retest assignment created")
	resp, err := toAssignmentResponse(assignment)
	if err != nil {
		return nil, err
	}
	resp.TargetCount = targetCount
	return resp, nil
}

// buildAssignment validates the request and returns the assignment with the
// distinct, non-empty student IDs in request order.
func (s *retestAssignmentService) buildAssignment(p auth.Principal, req dto.RetestAssignmentCreateDTO) (*model.RetestAssignment, []string, error) {
	const op = "CreateAssignment"
	seen := make(map[string]bool, len(req.StudentIDs))
	studentIDs := make([]string, 0, len(req.StudentIDs))
	for _, id := range req.StudentIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		studentIDs = append(studentIDs, id)
	}
	if len(studentIDs) == 0 {
		return nil, nil, apperr.New(apperr.KindInvalidArgument, op, "at least one student is required")
	}

	threshold := model.DefaultPassingThreshold
	if req.PassingThreshold != nil {
		threshold = *req.PassingThreshold
	}
	if threshold <= 0 || threshold > 100 {
		return nil, nil, apperr.New(apperr.KindInvalidArgument, op, "passing threshold %.2f must be in (0, 100]", threshold)
	}
	if req.MaxAttempts < 1 {
		return nil, nil, apperr.New(apperr.KindInvalidArgument, op, "max_attempts must be at least 1")
	}
	if req.WindowEnd.Before(req.WindowStart) {
		return nil, nil, apperr.New(apperr.KindInvalidArgument, op, "window_start must not be after window_end")
	}
	policy := model.ScoringPolicy(strings.ToUpper(strings.TrimSpace(req.ScoringPolicy)))
	switch policy {
	case "":
		policy = model.ScoringPolicyBest
	case model.ScoringPolicyBest, model.ScoringPolicyLatest:
	default:
		return nil, nil, apperr.New(apperr.KindInvalidArgument, op, "unknown scoring policy %q", req.ScoringPolicy)
	}
	if strings.TrimSpace(req.OriginalTestID) == "" {
		return nil, nil, apperr.New(apperr.KindInvalidArgument, op, "original_test_id is required")
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return &model.RetestAssignment{
		ID:               id,
		Title:            req.Title,
		OriginalTestType: strings.TrimSpace(req.OriginalTestType),
		OriginalTestID:   strings.TrimSpace(req.OriginalTestID),
		TeacherID:        p.SubjectID,
		Grade:            req.Grade,
		Class:            req.Class,
		Subject:          req.Subject,
		PassingThreshold: threshold,
		ScoringPolicy:    policy,
		MaxAttempts:      req.MaxAttempts,
		WindowStart:      req.WindowStart.UTC(),
		WindowEnd:        req.WindowEnd.UTC(),
	}, studentIDs, nil
}

func (s *retestAssignmentService) CancelAssignment(ctx context.Context, p auth.Principal, assignmentID string) (*dto.RetestAssignmentResponseDTO, error) {
	const op = "CancelAssignment"
	if err := requireStaff(p, op); err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	if err := s.assignmentRepo.ShortenWindow(dbc, assignmentID, s.clock()); err != nil {
		return nil, notFoundOr(err, op, "retest assignment %s not found", assignmentID)
	}
	assignment, err := s.assignmentRepo.FindByID(dbc, assignmentID)
	if err != nil {
		return nil, notFoundOr(err, op, "retest assignment %s not found", assignmentID)
	}
	log.Info().Str("assignmentID", assignmentID).Time("windowEnd", assignment.WindowEnd).Msg("Retest assignment cancelled")
	return toAssignmentResponse(assignment)
}

func (s *retestAssignmentService) GetAssignment(ctx context.Context, p auth.Principal, assignmentID string) (*dto.RetestAssignmentResponseDTO, error) {
	const op = "GetAssignment"
	if err := requireStaff(p, op); err != nil {
		return nil, err
	}
	assignment, err := s.assignmentRepo.FindByID(dbctx.Context{Ctx: ctx}, assignmentID)
	if err != nil {
		return nil, notFoundOr(err, op, "retest assignment %s not found", assignmentID)
	}
	return toAssignmentResponse(assignment)
}

func (s *retestAssignmentService) GetTarget(ctx context.Context, p auth.Principal, assignmentID, studentID string) (*dto.RetestTargetDetailDTO, error) {
	const op = "GetTarget"
	if err := requireSelfOrStaff(p, studentID, op); err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	assignment, err := s.assignmentRepo.FindByID(dbc, assignmentID)
	if err != nil {
		return nil, notFoundOr(err, op, "retest assignment %s not found", assignmentID)
	}
	target, err := s.targetRepo.FindByAssignmentAndStudent(dbc, assignmentID, studentID)
	if err != nil {
		return nil, notFoundOr(err, op, "student %s is not a target of retest %s", studentID, assignmentID)
	}
	var resp dto.RetestTargetDetailDTO
	if err := copier.Copy(&resp.Target, target); err != nil {
		return nil, fmt.Errorf("map target: %w", err)
	}
	a, err := toAssignmentResponse(assignment)
	if err != nil {
		return nil, err
	}
	resp.Assignment = *a
	return &resp, nil
}

func (s *retestAssignmentService) GetTargetsForAssignment(ctx context.Context, p auth.Principal, assignmentID string) ([]dto.RetestTargetResponseDTO, error) {
	const op = "GetTargetsForAssignment"
	if err := requireStaff(p, op); err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := s.assignmentRepo.FindByID(dbc, assignmentID); err != nil {
		return nil, notFoundOr(err, op, "retest assignment %s not found", assignmentID)
	}
	targets, err := s.targetRepo.ListByAssignment(dbc, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	resp := []dto.RetestTargetResponseDTO{}
	if err := copier.Copy(&resp, &targets); err != nil {
		return nil, fmt.Errorf("map targets: %w", err)
	}
	return resp, nil
}

func (s *retestAssignmentService) ExpireTargets(ctx context.Context, p auth.Principal, assignmentID string) (int64, error) {
	const op = "ExpireTargets"
	if err := requireStaff(p, op); err != nil {
		return 0, err
	}
	now := s.clock()
	var expired int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		assignment, err := s.assignmentRepo.FindByID(dbc, assignmentID)
		if err != nil {
			return notFoundOr(err, op, "retest assignment %s not found", assignmentID)
		}
		if !now.After(assignment.WindowEnd) {
			return apperr.New(apperr.KindInvalidArgument, op, "window still open until %s", assignment.WindowEnd.Format(time.RFC3339))
		}
		expired, err = s.targetRepo.ExpireOpen(dbc, assignmentID, now)
		return err
	})
	if err != nil {
		return 0, err
	}
	log.Info().Str("assignmentID", assignmentID).Int64("expired", expired).Msg("Retest targets expired")
	return expired, nil
}

func toAssignmentResponse(a *model.RetestAssignment) (*dto.RetestAssignmentResponseDTO, error) {
	var resp dto.RetestAssignmentResponseDTO
	if err := copier.Copy(&resp, a); err != nil {
		return nil, fmt.Errorf("map assignment: %w", err)
	}
	return &resp, nil
}
