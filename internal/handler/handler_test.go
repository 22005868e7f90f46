package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"coachtrack/internal/middleware"
	"coachtrack/internal/model"
	"coachtrack/internal/progress"
	"coachtrack/internal/service"
	"coachtrack/internal/store"
)

// stubBackend backs the handler tests with fixed data: one course started
// four weeks ago, one member, one admin.
type stubBackend struct {
	course  model.Course
	user    model.Profile
	admin   model.Profile
	weekly  []model.WeeklyRecord
	updated *model.UpdateCellRequest
}

func newStubBackend() *stubBackend {
	start := time.Now().AddDate(0, 0, -28)
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	s := &stubBackend{
		course: model.Course{ID: "c1", StartDate: start, Weeks: model.CourseWeeks},
		user: model.Profile{ID: "u1", Username: "amy", Email: "amy@example.com",
			PasswordHash: string(hash), FirstName: "Amy", LastName: "Pond", Role: "user"},
		admin: model.Profile{ID: "u2", Username: "boss", Email: "boss@example.com",
			PasswordHash: string(hash), Role: "admin"},
	}
	s.weekly = make([]model.WeeklyRecord, model.CourseWeeks)
	for i := range s.weekly {
		s.weekly[i].WeekStart = progress.WeekStart(start, i).Format("2006-01-02")
	}
	s.weekly[0].Asks = 5
	return s
}

func (s *stubBackend) Courses(ctx context.Context) ([]model.Course, error) {
	return []model.Course{s.course}, nil
}

func (s *stubBackend) Course(ctx context.Context, id string) (*model.Course, error) {
	if id != s.course.ID {
		return nil, store.ErrNotFound
	}
	return &s.course, nil
}

func (s *stubBackend) LatestCourse(ctx context.Context) (*model.Course, error) {
	return &s.course, nil
}

func (s *stubBackend) TaskTypes(ctx context.Context) ([]model.TaskType, error) {
	return []model.TaskType{{ID: 1, Name: "asks", Label: "Asks", MinimalAmount: 70}}, nil
}

func (s *stubBackend) TaskType(ctx context.Context, id int) (*model.TaskType, error) {
	if id != 1 {
		return nil, store.ErrNotFound
	}
	return &model.TaskType{ID: 1, Name: "asks", MinimalAmount: 70}, nil
}

func (s *stubBackend) WeeklyCounts(ctx context.Context, course *model.Course, userID string) ([]model.WeeklyRecord, error) {
	out := make([]model.WeeklyRecord, len(s.weekly))
	copy(out, s.weekly)
	return out, nil
}

func (s *stubBackend) PipelineClients(ctx context.Context, userID string) ([]model.Client, error) {
	return nil, nil
}

func (s *stubBackend) RecentTaskTotal(ctx context.Context, courseID, userID string, taskTypeID int, since time.Time) (float64, error) {
	return 140, nil
}

func (s *stubBackend) HasRecentActivity(ctx context.Context, courseID, userID string, since time.Time) (bool, error) {
	return true, nil
}

func (s *stubBackend) TotalGrossRevenue(ctx context.Context, userID string) (float64, error) {
	return 0, nil
}

func (s *stubBackend) DailyCounts(ctx context.Context, courseID, userID string, start, end time.Time) ([]model.DailyCounts, error) {
	return nil, nil
}

func (s *stubBackend) SetWeeklyTotal(ctx context.Context, courseID, userID string, taskTypeID int, weekStart time.Time, newTotal int) error {
	s.updated = &model.UpdateCellRequest{CourseID: courseID, UserID: userID,
		TaskTypeID: taskTypeID, NewTotal: newTotal}
	return nil
}

func (s *stubBackend) Members(ctx context.Context, courseID string) ([]model.CourseMember, error) {
	return []model.CourseMember{{CourseID: courseID, UserID: s.user.ID, IsActive: true}}, nil
}

func (s *stubBackend) ProfilesByIDs(ctx context.Context, ids []string, role string) ([]model.Profile, error) {
	return []model.Profile{s.user}, nil
}

func (s *stubBackend) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	switch id {
	case s.user.ID:
		return &s.user, nil
	case s.admin.ID:
		return &s.admin, nil
	}
	return nil, store.ErrNotFound
}

func (s *stubBackend) ProfileByLogin(ctx context.Context, login string) (*model.Profile, error) {
	switch login {
	case s.user.Username, s.user.Email:
		return &s.user, nil
	case s.admin.Username, s.admin.Email:
		return &s.admin, nil
	}
	return nil, store.ErrNotFound
}

func testRouter(t *testing.T, backend *stubBackend) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := middleware.NewAuth("test-secret", time.Hour)
	authH := NewAuthHandler(service.NewAuthService(backend, nil), tokens)
	dashH := NewDashboardHandler(service.NewDashboardService(backend))
	adminH := NewAdminHandler(service.NewAdminService(backend))

	r := gin.New()
	r.POST("/api/login", authH.Login)
	api := r.Group("/api", tokens.Middleware())
	api.GET("/me", authH.Me)
	api.GET("/dashboard/overview", dashH.Overview)
	admin := api.Group("/admin", middleware.RequireRole("admin", service.RoleSuperadmin))
	admin.GET("/grid", adminH.Grid)
	admin.PUT("/grid/cell", adminH.UpdateCell)
	return r
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(r, "POST", "/api/login", "", `{"username":"`+username+`","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginEndpoint(t *testing.T) {
	r := testRouter(t, newStubBackend())

	token := login(t, r, "amy")
	w := doJSON(r, "GET", "/api/me", token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "POST", "/api/login", "", `{"username":"amy","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGridAuthz(t *testing.T) {
	r := testRouter(t, newStubBackend())

	w := doJSON(r, "GET", "/api/admin/grid", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "no token")

	w = doJSON(r, "GET", "/api/admin/grid", login(t, r, "amy"), "")
	assert.Equal(t, http.StatusForbidden, w.Code, "user role rejected")

	w = doJSON(r, "GET", "/api/admin/grid?task_type_id=1", login(t, r, "boss"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.GridResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "u1", resp.Rows[0].ID)
	assert.Equal(t, model.StatusExcellent, resp.Rows[0].Status)
	assert.Equal(t, model.TotalsRowID, resp.Rows[1].ID)
	assert.Equal(t, 5, resp.Rows[1].Weeks[0])
	assert.Equal(t, 5, resp.Rows[1].Weeks[11], "totals row is cumulative")
}

func TestUpdateCellGuardsTotalsRow(t *testing.T) {
	backend := newStubBackend()
	r := testRouter(t, backend)
	token := login(t, r, "boss")

	w := doJSON(r, "PUT", "/api/admin/grid/cell", token,
		`{"course_id":"c1","user_id":"totals","task_type_id":1,"week":5,"new_total":7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, backend.updated)

	w = doJSON(r, "PUT", "/api/admin/grid/cell", token,
		`{"course_id":"c1","user_id":"u1","task_type_id":1,"week":5,"new_total":7}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, backend.updated)
	assert.Equal(t, 7, backend.updated.NewTotal)
}
