package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/schooltest/internal/auth"
	"github.com/lshigami/schooltest/internal/cache"
	adminctrl "github.com/lshigami/schooltest/internal/controller/admin"
	userctrl "github.com/lshigami/schooltest/internal/controller/user"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/repository"
	"github.com/lshigami/schooltest/internal/service"
	"github.com/lshigami/schooltest/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type api struct {
	t      *testing.T
	engine *gin.Engine
	auth   *auth.AuthService
}

func newAPI(t *testing.T, now time.Time) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	cfg := testutil.Config()
	clock := testutil.NewClock(now)

	testRepo := repository.NewTestRepository(db)
	assignmentRepo := repository.NewRetestAssignmentRepository(db)
	targetRepo := repository.NewRetestTargetRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	bestRepo := repository.NewBestAttemptRepository(db)
	stores, err := repository.NewTestResultStores(db, cfg.ResultTables)
	require.NoError(t, err)

	recorder := service.NewAttemptRecorder(attemptRepo, targetRepo)
	best := service.NewBestAttemptService(db, attemptRepo, bestRepo, cache.NewBestAttemptCache(cfg), clock.Now)
	retests := service.NewRetestAssignmentService(db, testRepo, assignmentRepo, targetRepo, stores, recorder, clock.Now)
	submissions := service.NewSubmissionService(db, cfg, testRepo, assignmentRepo, targetRepo, attemptRepo, recorder, best, service.NewScoreConverterService(), clock.Now)

	authService := auth.NewAuthService(cfg)
	engine := gin.New()
	Register(engine, authService, Controllers{
		AdminTest:  adminctrl.NewAdminTestController(service.NewAdminTestService(testRepo)),
		Retest:     adminctrl.NewRetestController(retests, best),
		UserTest:   userctrl.NewUserTestController(service.NewUserTestService(testRepo), recorder, best),
		Submission: userctrl.NewSubmissionController(submissions, retests),
	})
	return &api{t: t, engine: engine, auth: authService}
}

func (a *api) token(p auth.Principal) string {
	tok, err := a.auth.IssueJWT(p, time.Hour)
	require.NoError(a.t, err)
	return tok
}

func (a *api) do(method, path, token string, body any, out any) int {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	if out != nil {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestRetestFlowOverHTTP(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	a := newAPI(t, start.Add(time.Hour))
	teacherTok := a.token(auth.Principal{SubjectID: "teacher-1", Role: auth.RoleTeacher})
	studentTok := a.token(auth.Principal{SubjectID: "s1", Role: auth.RoleStudent})

	var test dto.TestResponseDTO
	code := a.do(http.MethodPost, "/api/v1/admin/tests", teacherTok, dto.TestCreateDTO{ID: "quiz-1", Type: "quiz", Name: "Fractions"}, &test)
	require.Equal(t, http.StatusCreated, code)

	var details dto.TestResponseDTO
	code = a.do(http.MethodGet, "/api/v1/tests/quiz-1", studentTok, nil, &details)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Fractions", details.Name)

	var asg dto.RetestAssignmentResponseDTO
	code = a.do(http.MethodPost, "/api/v1/admin/retests", teacherTok, dto.RetestAssignmentCreateDTO{
		OriginalTestType: "quiz",
		OriginalTestID:   "quiz-1",
		MaxAttempts:      2,
		WindowStart:      start,
		WindowEnd:        start.Add(24 * time.Hour),
		StudentIDs:       []string{"s1"},
	}, &asg)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 1, asg.TargetCount)

	submit := dto.SubmissionDTO{TestID: "quiz-1", RetestAssignmentID: &asg.ID, Score: 3, MaxScore: 10, Answers: json.RawMessage(`{"q1":"b"}`)}
	for i := 1; i <= 2; i++ {
		var res dto.SubmissionResultDTO
		code = a.do(http.MethodPost, "/api/v1/submissions", studentTok, submit, &res)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, i, res.AttemptNumber)
	}

	var errResp dto.ErrorResponse
	code = a.do(http.MethodPost, "/api/v1/submissions", studentTok, submit, &errResp)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "attempts_exhausted", errResp.Code)

	var detail dto.RetestTargetDetailDTO
	code = a.do(http.MethodGet, "/api/v1/retests/"+asg.ID+"/target", studentTok, nil, &detail)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "FAILED", detail.Target.Status)

	var attempts []dto.AttemptResponseDTO
	code = a.do(http.MethodGet, "/api/v1/tests/quiz-1/attempts", studentTok, nil, &attempts)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, attempts, 2)
	assert.JSONEq(t, `{"q1":"b"}`, string(attempts[0].Answers))

	var best dto.BestAttemptResponseDTO
	code = a.do(http.MethodGet, "/api/v1/tests/quiz-1/best", studentTok, nil, &best)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, best.AttemptNumber)

	var targets []dto.RetestTargetResponseDTO
	code = a.do(http.MethodGet, "/api/v1/admin/retests/"+asg.ID+"/targets", teacherTok, nil, &targets)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, targets, 1)

	code = a.do(http.MethodPost, "/api/v1/admin/retests/"+asg.ID+"/expire", teacherTok, nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_argument", errResp.Code)

	var cancelled dto.RetestAssignmentResponseDTO
	code = a.do(http.MethodPost, "/api/v1/admin/retests/"+asg.ID+"/cancel", teacherTok, nil, &cancelled)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, cancelled.WindowEnd.Equal(start.Add(time.Hour)))
}

func TestRoutesEnforceRoles(t *testing.T) {
	a := newAPI(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	teacherTok := a.token(auth.Principal{SubjectID: "teacher-1", Role: auth.RoleTeacher})
	studentTok := a.token(auth.Principal{SubjectID: "s1", Role: auth.RoleStudent})

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/v1/tests", "", nil, nil))
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/v1/tests", studentTok, nil, nil))
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/api/v1/admin/retests", studentTok, dto.RetestAssignmentCreateDTO{}, nil))
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/api/v1/submissions", teacherTok, dto.SubmissionDTO{TestID: "x"}, nil))

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/v1/admin/retests", teacherTok, map[string]any{"max_attempts": 0}, &errResp))
	assert.Equal(t, "invalid_argument", errResp.Code)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/v1/admin/retests/missing", teacherTok, nil, &errResp))
	assert.Equal(t, "not_found", errResp.Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/v1/tests/missing", studentTok, nil, &errResp))
}
