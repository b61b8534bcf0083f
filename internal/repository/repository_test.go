package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/model"
	"github.com/lshigami/schooltest/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	windowStart = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	windowEnd   = windowStart.Add(48 * time.Hour)
)

func seedAssignment(t *testing.T, db *gorm.DB, testID string, maxAttempts int) *model.RetestAssignment {
	t.Helper()
	a := &model.RetestAssignment{
		ID:               uuid.NewString(),
		OriginalTestType: "quiz",
		OriginalTestID:   testID,
		TeacherID:        "teacher-1",
		PassingThreshold: 50,
		ScoringPolicy:    model.ScoringPolicyBest,
		MaxAttempts:      maxAttempts,
		WindowStart:      windowStart,
		WindowEnd:        windowEnd,
	}
	created, err := NewRetestAssignmentRepository(db).Create(dbctx.Context{Ctx: context.Background()}, a)
	require.NoError(t, err)
	require.True(t, created)
	return a
}

func TestRetestAssignmentCreateIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	testutil.SeedTest(t, db, "quiz-1", "quiz")
	a := seedAssignment(t, db, "quiz-1", 3)

	repo := NewRetestAssignmentRepository(db)
	dup := *a
	dup.Title = "changed"
	created, err := repo.Create(dbctx.Context{}, &dup)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.FindByID(dbctx.Context{}, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Title)
}

func TestRetestAssignmentShortenWindow(t *testing.T) {
	db := testutil.DB(t)
	a := seedAssignment(t, db, "quiz-1", 3)
	repo := NewRetestAssignmentRepository(db)

	early := windowStart.Add(time.Hour)
	require.NoError(t, repo.ShortenWindow(dbctx.Context{}, a.ID, early))
	got, err := repo.FindByID(dbctx.Context{}, a.ID)
	require.NoError(t, err)
	assert.True(t, got.WindowEnd.Equal(early))

	// A later cancellation never extends the window.
	require.NoError(t, repo.ShortenWindow(dbctx.Context{}, a.ID, windowEnd.Add(time.Hour)))
	got, err = repo.FindByID(dbctx.Context{}, a.ID)
	require.NoError(t, err)
	assert.True(t, got.WindowEnd.Equal(early))

	assert.ErrorIs(t, repo.ShortenWindow(dbctx.Context{}, "missing", early), gorm.ErrRecordNotFound)
}

func TestRetestAssignmentShortenWindowBeforeStart(t *testing.T) {
	db := testutil.DB(t)
	a := seedAssignment(t, db, "quiz-1", 3)
	repo := NewRetestAssignmentRepository(db)

	require.NoError(t, repo.ShortenWindow(dbctx.Context{}, a.ID, windowStart.Add(-24*time.Hour)))
	got, err := repo.FindByID(dbctx.Context{}, a.ID)
	require.NoError(t, err)
	assert.True(t, got.WindowEnd.Equal(windowStart), "window_end never precedes window_start")
	assert.False(t, got.WindowEnd.Before(got.WindowStart))
}

func TestRetestTargetCreateMissingSkipsExisting(t *testing.T) {
	db := testutil.DB(t)
	a := seedAssignment(t, db, "quiz-1", 3)
	repo := NewRetestTargetRepository(db)
	dbc := dbctx.Context{}

	n, err := repo.CreateMissing(dbc, []*model.RetestTarget{
		{ID: uuid.NewString(), AssignmentID: a.ID, StudentID: "s1", MaxAttempts: 3, Status: model.TargetStatusPending},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.CreateMissing(dbc, []*model.RetestTarget{
		{ID: uuid.NewString(), AssignmentID: a.ID, StudentID: "s1", MaxAttempts: 9, Status: model.TargetStatusPending},
		{ID: uuid.NewString(), AssignmentID: a.ID, StudentID: "s2", MaxAttempts: 3, Status: model.TargetStatusPending},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	targets, err := repo.ListByAssignment(dbc, a.ID)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "s1", targets[0].StudentID)
	assert.Equal(t, 3, targets[0].MaxAttempts)
}

func TestRetestTargetApplyTransitionGuard(t *testing.T) {
	db := testutil.DB(t)
	a := seedAssignment(t, db, "quiz-1", 2)
	repo := NewRetestTargetRepository(db)
	dbc := dbctx.Context{}
	_, err := repo.CreateMissing(dbc, []*model.RetestTarget{
		{ID: uuid.NewString(), AssignmentID: a.ID, StudentID: "s1", MaxAttempts: 2, Status: model.TargetStatusPending},
	})
	require.NoError(t, err)

	first := windowStart.Add(time.Hour)
	rows, err := repo.ApplyTransition(dbc, TargetTransition{
		AssignmentID: a.ID, StudentID: "s1", ExpectedAttemptNumber: 0,
		AttemptNumber: 1, Status: model.TargetStatusInProgress, At: first,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	// Stale expectation loses.
	rows, err = repo.ApplyTransition(dbc, TargetTransition{
		AssignmentID: a.ID, StudentID: "s1", ExpectedAttemptNumber: 0,
		AttemptNumber: 1, Status: model.TargetStatusInProgress, At: first,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)

	done := first.Add(time.Hour)
	rows, err = repo.ApplyTransition(dbc, TargetTransition{
		AssignmentID: a.ID, StudentID: "s1", ExpectedAttemptNumber: 1,
		AttemptNumber: 2, Status: model.TargetStatusFailed, Completed: true, At: done,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	target, err := repo.FindByAssignmentAndStudent(dbc, a.ID, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, target.AttemptNumber)
	assert.True(t, target.IsCompleted)
	require.NotNil(t, target.CompletedAt)
	assert.True(t, target.CompletedAt.Equal(done))

	// Completed targets are not writable any more, and completed_at is kept on expiry.
	n, err := repo.ExpireOpen(dbc, a.ID, done.Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	rows, err = repo.ApplyTransition(dbc, TargetTransition{AssignmentID: "missing", StudentID: "s1", At: done})
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestRetestTargetExpireOpen(t *testing.T) {
	db := testutil.DB(t)
	a := seedAssignment(t, db, "quiz-1", 3)
	repo := NewRetestTargetRepository(db)
	dbc := dbctx.Context{}
	_, err := repo.CreateMissing(dbc, []*model.RetestTarget{
		{ID: uuid.NewString(), AssignmentID: a.ID, StudentID: "s1", MaxAttempts: 3, Status: model.TargetStatusPending},
		{ID: uuid.NewString(), AssignmentID: a.ID, StudentID: "s2", MaxAttempts: 3, Status: model.TargetStatusPending},
	})
	require.NoError(t, err)

	at := windowEnd.Add(time.Minute)
	n, err := repo.ExpireOpen(dbc, a.ID, at)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	target, err := repo.FindByAssignmentAndStudent(dbc, a.ID, "s2")
	require.NoError(t, err)
	assert.Equal(t, model.TargetStatusExpired, target.Status)
	assert.True(t, target.IsCompleted)
	require.NotNil(t, target.CompletedAt)
	assert.True(t, target.CompletedAt.Equal(at))
}

func TestMaxReservedAttemptNumber(t *testing.T) {
	db := testutil.DB(t)
	a := seedAssignment(t, db, "quiz-1", 3)
	other := seedAssignment(t, db, "quiz-2", 5)
	repo := NewRetestTargetRepository(db)
	dbc := dbctx.Context{}

	reserved, err := repo.MaxReservedAttemptNumber(dbc, "s1", "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, 0, reserved)

	_, err = repo.CreateMissing(dbc, []*model.RetestTarget{
		{ID: uuid.NewString(), AssignmentID: a.ID, StudentID: "s1", MaxAttempts: 3, AttemptBase: 1, Status: model.TargetStatusPending},
		{ID: uuid.NewString(), AssignmentID: other.ID, StudentID: "s1", MaxAttempts: 5, AttemptBase: 1, Status: model.TargetStatusPending},
	})
	require.NoError(t, err)

	reserved, err = repo.MaxReservedAttemptNumber(dbc, "s1", "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, 4, reserved)
}

func TestAttemptUpsertAndBest(t *testing.T) {
	db := testutil.DB(t)
	repo := NewAttemptRepository(db)
	dbc := dbctx.Context{}

	first := &model.Attempt{StudentID: "s1", TestID: "quiz-1", AttemptNumber: 1, Score: 40, MaxScore: 100, Percentage: testutil.Float(40), SubmittedAt: windowStart}
	require.NoError(t, repo.Upsert(dbc, first))
	firstID := first.ID

	again := &model.Attempt{StudentID: "s1", TestID: "quiz-1", AttemptNumber: 1, Score: 70, MaxScore: 100, Percentage: testutil.Float(70), SubmittedAt: windowStart}
	require.NoError(t, repo.Upsert(dbc, again))

	stored, err := repo.FindByKey(dbc, "s1", "quiz-1", 1)
	require.NoError(t, err)
	assert.Equal(t, firstID, stored.ID, "upsert keeps the original row")
	assert.Equal(t, 70.0, stored.Score)

	require.NoError(t, repo.Upsert(dbc, &model.Attempt{StudentID: "s1", TestID: "quiz-1", AttemptNumber: 2, MaxScore: 0, SubmittedAt: windowStart}))
	require.NoError(t, repo.Upsert(dbc, &model.Attempt{StudentID: "s1", TestID: "quiz-1", AttemptNumber: 3, Score: 70, MaxScore: 100, Percentage: testutil.Float(70), SubmittedAt: windowStart}))

	all, err := repo.ListByStudentAndTest(dbc, "s1", "quiz-1")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	maxNumber, err := repo.MaxAttemptNumber(dbc, "s1", "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, 3, maxNumber)

	best, err := repo.FindBest(dbc, "s1", "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, 1, best.AttemptNumber, "ties go to the earliest attempt, ungraded ranks last")

	_, err = repo.FindBest(dbc, "s2", "quiz-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAttemptFindBySubmissionKey(t *testing.T) {
	db := testutil.DB(t)
	repo := NewAttemptRepository(db)
	key := "client-key-1"
	require.NoError(t, repo.Upsert(dbctx.Context{}, &model.Attempt{StudentID: "s1", TestID: "quiz-1", AttemptNumber: 1, SubmissionKey: &key, SubmittedAt: windowStart}))

	got, err := repo.FindBySubmissionKey(dbctx.Context{}, "s1", "quiz-1", key)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AttemptNumber)

	_, err = repo.FindBySubmissionKey(dbctx.Context{}, "s2", "quiz-1", key)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBestAttemptRepository(t *testing.T) {
	db := testutil.DB(t)
	repo := NewBestAttemptRepository(db)
	dbc := dbctx.Context{}

	require.NoError(t, repo.Upsert(dbc, &model.BestAttempt{StudentID: "s1", TestID: "quiz-1", AttemptID: "a1", AttemptNumber: 1, Policy: model.ScoringPolicyBest, RefreshedAt: windowStart}))
	require.NoError(t, repo.Upsert(dbc, &model.BestAttempt{StudentID: "s1", TestID: "quiz-1", AttemptID: "a2", AttemptNumber: 2, Policy: model.ScoringPolicyBest, RefreshedAt: windowStart}))

	got, err := repo.Find(dbc, "s1", "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, "a2", got.AttemptID)

	require.NoError(t, repo.Delete(dbc, "s1", "quiz-1"))
	_, err = repo.Find(dbc, "s1", "quiz-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTestResultStores(t *testing.T) {
	db := testutil.DB(t)
	_, err := NewTestResultStores(db, []string{"quiz_results; DROP TABLE tests"})
	assert.Error(t, err)

	stores, err := NewTestResultStores(db, testutil.ResultTables)
	require.NoError(t, err)
	require.Len(t, stores, 2)

	older := testutil.SeedResult(t, db, "quiz_results", "s1", "quiz-1", 30, windowStart)
	newer := testutil.SeedResult(t, db, "quiz_results", "s1", "quiz-1", 35, windowStart.Add(time.Hour))
	otherStudent := testutil.SeedResult(t, db, "quiz_results", "s2", "quiz-1", 20, windowStart)

	dbc := dbctx.Context{}
	n, err := stores[0].FlagRetestOffered(dbc, "s1", "quiz-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = stores[0].StampRetestReference(dbc, "s1", "quiz-1", "asg-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// No rows in the drawing table is not an error.
	n, err = stores[1].FlagRetestOffered(dbc, "s1", "quiz-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	assert.False(t, testutil.LoadResult(t, db, "quiz_results", older.ID).RetestOffered)
	got := testutil.LoadResult(t, db, "quiz_results", newer.ID)
	assert.True(t, got.RetestOffered)
	require.NotNil(t, got.RetestAssignmentID)
	assert.Equal(t, "asg-1", *got.RetestAssignmentID)
	assert.Nil(t, testutil.LoadResult(t, db, "quiz_results", otherStudent.ID).RetestAssignmentID)
}
