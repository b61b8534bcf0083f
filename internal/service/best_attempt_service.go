package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/schooltest/internal/apperr"
	"github.com/lshigami/schooltest/internal/auth"
	"github.com/lshigami/schooltest/internal/cache"
	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/model"
	"github.com/lshigami/schooltest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type BestAttemptService interface {
	// RefreshBest recomputes the projection inside the caller's transaction.
	// It returns nil when the student has no attempts for the test.
	RefreshBest(dbc dbctx.Context, studentID, testID string) (*model.BestAttempt, error)
	Refresh(ctx context.Context, p auth.Principal, studentID, testID string) (*dto.BestAttemptResponseDTO, error)
	GetBest(ctx context.Context, p auth.Principal, studentID, testID string) (*dto.BestAttemptResponseDTO, error)
	// Publish pushes a committed projection into the cache; nil drops the
	// entry. Call it after commit.
	Publish(ctx context.Context, studentID, testID string, best *model.BestAttempt)
}

type bestAttemptService struct {
	db          *gorm.DB
	attemptRepo repository.AttemptRepository
	bestRepo    repository.BestAttemptRepository
	cache       cache.BestAttemptCache
	clock       Clock
}

func NewBestAttemptService(
	db *gorm.DB,
	attemptRepo repository.AttemptRepository,
	bestRepo repository.BestAttemptRepository,
	bestCache cache.BestAttemptCache,
	clock Clock,
) BestAttemptService {
	return &bestAttemptService{db: db, attemptRepo: attemptRepo, bestRepo: bestRepo, cache: bestCache, clock: clock}
}

func (s *bestAttemptService) RefreshBest(dbc dbctx.Context, studentID, testID string) (*model.BestAttempt, error) {
	top, err := s.attemptRepo.FindBest(dbc, studentID, testID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.bestRepo.Delete(dbc, studentID, testID)
	}
	if err != nil {
		return nil, fmt.Errorf("find best attempt: %w", err)
	}
	best := &model.BestAttempt{
		StudentID:          studentID,
		TestID:             testID,
		AttemptID:          top.ID,
		AttemptNumber:      top.AttemptNumber,
		Score:              top.Score,
		MaxScore:           top.MaxScore,
		Percentage:         top.Percentage,
		RetestAssignmentID: top.RetestAssignmentID,
		Policy:             model.ScoringPolicyBest,
		RefreshedAt:        s.clock(),
	}
	if err := s.bestRepo.Upsert(dbc, best); err != nil {
		return nil, fmt.Errorf("upsert best attempt: %w", err)
	}
	return best, nil
}

func (s *bestAttemptService) Refresh(ctx context.Context, p auth.Principal, studentID, testID string) (*dto.BestAttemptResponseDTO, error) {
	const op = "RefreshBest"
	if err := requireStaff(p, op); err != nil {
		return nil, err
	}
	var best *model.BestAttempt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		best, err = s.RefreshBest(dbctx.Context{Ctx: ctx, Tx: tx}, studentID, testID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.Publish(ctx, studentID, testID, best)
	if best == nil {
		return nil, apperr.New(apperr.KindNotFound, op, "no attempts for student %s on test %s", studentID, testID)
	}
	return toBestResponse(best)
}

func (s *bestAttemptService) GetBest(ctx context.Context, p auth.Principal, studentID, testID string) (*dto.BestAttemptResponseDTO, error) {
	const op = "GetBest"
	if err := requireSelfOrStaff(p, studentID, op); err != nil {
		return nil, err
	}
	cached, err := s.cache.Get(ctx, studentID, testID)
	if err != nil {
		log.Warn().Err(err).Str("studentID", studentID).Str("testID", testID).Msg("GetBest: cache read failed")
	}
	if cached != nil {
		return toBestResponse(cached)
	}
	best, err := s.bestRepo.Find(dbctx.Context{Ctx: ctx}, studentID, testID)
	if err != nil {
		return nil, notFoundOr(err, op, "no best attempt for student %s on test %s", studentID, testID)
	}
	if err := s.cache.Set(ctx, best); err != nil {
		log.Warn().Err(err).Str("studentID", studentID).Str("testID", testID).Msg("GetBest: cache write failed")
	}
	return toBestResponse(best)
}

// Publish failures are logged only; a stale entry expires with the TTL.
func (s *bestAttemptService) Publish(ctx context.Context, studentID, testID string, best *model.BestAttempt) {
	if best != nil {
		err := s.cache.Set(ctx, best)
		if err == nil {
			return
		}
		log.Warn().Err(err).Str("studentID", studentID).Str("testID", testID).Msg("Best-attempt cache write failed, invalidating")
	}
	if err := s.cache.Invalidate(ctx, studentID, testID); err != nil {
		log.Warn().Err(err).Str("studentID", studentID).Str("testID", testID).Msg("Best-attempt cache invalidation failed")
	}
}

func toBestResponse(best *model.BestAttempt) (*dto.BestAttemptResponseDTO, error) {
	var resp dto.BestAttemptResponseDTO
	if err := copier.Copy(&resp, best); err != nil {
		return nil, fmt.Errorf("map best attempt: %w", err)
	}
	return &resp, nil
}
