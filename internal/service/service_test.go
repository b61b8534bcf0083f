package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/schooltest/internal/auth"
	"github.com/lshigami/schooltest/internal/cache"
	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/model"
	"github.com/lshigami/schooltest/internal/repository"
	"github.com/lshigami/schooltest/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	teacher  = auth.Principal{SubjectID: "teacher-1", Role: auth.RoleTeacher}
	windowT0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	windowT1 = windowT0.Add(7 * 24 * time.Hour)
)

func student(id string) auth.Principal {
	return auth.Principal{SubjectID: id, Role: auth.RoleStudent}
}

type fixture struct {
	db          *gorm.DB
	clock       *testutil.Clock
	targetRepo  repository.RetestTargetRepository
	attemptRepo repository.AttemptRepository
	recorder    AttemptRecorder
	best        BestAttemptService
	assignments RetestAssignmentService
	submissions SubmissionService
}

// fixtureOptions swaps the collaborators seen by Submit.
type fixtureOptions struct {
	targets  func(repository.RetestTargetRepository) repository.RetestTargetRepository
	attempts func(repository.AttemptRepository) repository.AttemptRepository
	bests    func(repository.BestAttemptRepository) repository.BestAttemptRepository
	cache    cache.BestAttemptCache
}

// newFixture wires the services over a fresh SQLite database. wrap, when set,
// replaces the target repository seen by Submit.
func newFixture(t *testing.T, wrap func(repository.RetestTargetRepository) repository.RetestTargetRepository) *fixture {
	return newFixtureWith(t, fixtureOptions{targets: wrap})
}

func newFixtureWith(t *testing.T, opts fixtureOptions) *fixture {
	t.Helper()
	db := testutil.DB(t)
	cfg := testutil.Config()
	clock := testutil.NewClock(windowT0.Add(time.Hour))

	testRepo := repository.NewTestRepository(db)
	assignmentRepo := repository.NewRetestAssignmentRepository(db)
	targetRepo := repository.NewRetestTargetRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	bestRepo := repository.NewBestAttemptRepository(db)
	stores, err := repository.NewTestResultStores(db, cfg.ResultTables)
	require.NoError(t, err)

	submitTargets, submitAttempts, submitBests := targetRepo, attemptRepo, bestRepo
	if opts.targets != nil {
		submitTargets = opts.targets(targetRepo)
	}
	if opts.attempts != nil {
		submitAttempts = opts.attempts(attemptRepo)
	}
	if opts.bests != nil {
		submitBests = opts.bests(bestRepo)
	}
	bestCache := opts.cache
	if bestCache == nil {
		bestCache = cache.NoopCache{}
	}

	recorder := NewAttemptRecorder(submitAttempts, targetRepo)
	best := NewBestAttemptService(db, attemptRepo, submitBests, bestCache, clock.Now)
	return &fixture{
		db:          db,
		clock:       clock,
		targetRepo:  targetRepo,
		attemptRepo: attemptRepo,
		recorder:    recorder,
		best:        best,
		assignments: NewRetestAssignmentService(db, testRepo, assignmentRepo, targetRepo, stores, recorder, clock.Now),
		submissions: NewSubmissionService(db, cfg, testRepo, assignmentRepo, submitTargets, attemptRepo, recorder, best, NewScoreConverterService(), clock.Now),
	}
}

func (f *fixture) createRetest(t *testing.T, testID string, maxAttempts int, students ...string) *dto.RetestAssignmentResponseDTO {
	t.Helper()
	resp, err := f.assignments.CreateAssignment(context.Background(), teacher, dto.RetestAssignmentCreateDTO{
		OriginalTestType: "quiz",
		OriginalTestID:   testID,
		MaxAttempts:      maxAttempts,
		WindowStart:      windowT0,
		WindowEnd:        windowT1,
		StudentIDs:       students,
	})
	require.NoError(t, err)
	return resp
}

func (f *fixture) target(t *testing.T, assignmentID, studentID string) *model.RetestTarget {
	t.Helper()
	target, err := f.targetRepo.FindByAssignmentAndStudent(dbctx.Context{}, assignmentID, studentID)
	require.NoError(t, err)
	return target
}

func retestSubmission(testID, assignmentID string, score float64) dto.SubmissionDTO {
	return dto.SubmissionDTO{TestID: testID, RetestAssignmentID: &assignmentID, Score: score, MaxScore: 100, Completed: true}
}
