package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "ginraidee/analytics-svc/internal/api/http"
	"ginraidee/analytics-svc/internal/domain"
	"ginraidee/analytics-svc/internal/mocks"
	"ginraidee/analytics-svc/internal/service"
	"ginraidee/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success         bool            `json:"success"`
	Data            json.RawMessage `json:"data"`
	Error           string          `json:"error"`
	Token           string          `json:"token"`
	IsAuthenticated bool            `json:"isAuthenticated"`
	Pagination      json.RawMessage `json:"pagination"`
}

type handlerFixture struct {
	router  http.Handler
	repo    *mocks.AnalyticsRepository
	catalog *mocks.CatalogReader
	auth    *mocks.AuthInterface
	token   string
}

func newHandlerFixture(t *testing.T) handlerFixture {
	t.Helper()
	jwtManager := newJWT(t)
	token, err := jwtManager.GenerateToken("admin", auth.RoleAdmin)
	require.NoError(t, err)

	f := handlerFixture{
		repo:    mocks.NewAnalyticsRepository(t),
		catalog: mocks.NewCatalogReader(t),
		auth:    mocks.NewAuthInterface(t),
		token:   token,
	}
	analytics := service.NewAnalyticsService(f.repo, nil, f.catalog)
	handler := httpapi.NewHandler(analytics, f.auth, jwtManager.RequireRole(auth.RoleAdmin))
	f.router = httpapi.NewRouter(handler, []string{"*"})
	return f
}

func (f handlerFixture) do(t *testing.T, method, target string, body interface{}, authorized bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if authorized {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	var env envelope
	if rr.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

func TestHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		setup      func(a *mocks.AuthInterface)
		wantStatus int
		wantError  string
	}{
		{
			name: "valid credentials",
			body: map[string]string{"username": "admin", "password": "admin123"},
			setup: func(a *mocks.AuthInterface) {
				a.On("Login", mock.Anything, "admin", "admin123").Return("signed-token", nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			body: map[string]string{"username": "admin", "password": "nope"},
			setup: func(a *mocks.AuthInterface) {
				a.On("Login", mock.Anything, "admin", "nope").Return("", domain.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid credentials",
		},
		{
			name:       "missing password",
			body:       map[string]string{"username": "admin"},
			setup:      func(a *mocks.AuthInterface) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "password is required",
		},
		{
			name: "repository failure",
			body: map[string]string{"username": "admin", "password": "admin123"},
			setup: func(a *mocks.AuthInterface) {
				a.On("Login", mock.Anything, "admin", "admin123").Return("", errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			testCase.setup(f.auth)

			rr, env := f.do(t, http.MethodPost, "/api/admin/login", testCase.body, false)

			assert.Equal(t, testCase.wantStatus, rr.Code)
			assert.Equal(t, testCase.wantError, env.Error)
			if testCase.wantStatus == http.StatusOK {
				assert.True(t, env.Success)
				assert.Equal(t, "signed-token", env.Token)
			}
		})
	}
}

func TestHandler_LoginRejectsBadJSON(t *testing.T) {
	f := newHandlerFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_LogoutAndAuthCheck(t *testing.T) {
	f := newHandlerFixture(t)

	rr, env := f.do(t, http.MethodPost, "/api/admin/logout", nil, false)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)

	rr, env = f.do(t, http.MethodGet, "/api/admin/auth", nil, true)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.IsAuthenticated)

	rr, env = f.do(t, http.MethodGet, "/api/admin/auth", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "no token provided", env.Error)
}

func TestHandler_AdminRoutesRequireToken(t *testing.T) {
	f := newHandlerFixture(t)
	for _, target := range []string{
		"/api/admin/stats",
		"/api/admin/popular-menus",
		"/api/admin/category-stats",
		"/api/admin/top-today",
		"/api/admin/top-alltime",
		"/api/admin/feedback-summary",
		"/api/admin/recent-users",
		"/api/admin/users",
		"/api/admin/users/user-1",
	} {
		rr, _ := f.do(t, http.MethodGet, target, nil, false)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, target)
	}
}

func TestHandler_NilAdminAuthRejects(t *testing.T) {
	handler := httpapi.NewHandler(nil, nil, nil)
	router := httpapi.NewRouter(handler, []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandler_Stats(t *testing.T) {
	f := newHandlerFixture(t)
	f.repo.On("Dashboard", mock.Anything).Return(domain.DashboardStats{
		TotalUsers:      5,
		UsersByDay:      []domain.DailyCount{},
		SelectionsByDay: []domain.DailyCount{{Date: "2026-03-14", Count: 2}},
	}, nil)

	rr, env := f.do(t, http.MethodGet, "/api/admin/stats", nil, true)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats domain.DashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 5, stats.TotalUsers)
	assert.Len(t, stats.SelectionsByDay, 1)
}

func TestHandler_PopularMenusDefaultsAndParams(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantDays  int
		wantLimit int
	}{
		{name: "defaults", target: "/api/admin/popular-menus", wantDays: 30, wantLimit: 10},
		{name: "explicit", target: "/api/admin/popular-menus?days=7&limit=3", wantDays: 7, wantLimit: 3},
		{name: "garbage falls back", target: "/api/admin/popular-menus?days=-1&limit=abc", wantDays: 30, wantLimit: 10},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.repo.On("PopularFoods", mock.Anything, testCase.wantDays, testCase.wantLimit).
				Return([]domain.FoodCount{{FoodID: 1, Score: 6}}, nil)
			f.catalog.On("Catalog", mock.Anything).Return(testCatalog(), nil)

			rr, env := f.do(t, http.MethodGet, testCase.target, nil, true)
			require.Equal(t, http.StatusOK, rr.Code)

			var foods []domain.RankedFood
			require.NoError(t, json.Unmarshal(env.Data, &foods))
			require.Len(t, foods, 1)
			assert.Equal(t, "Pad Kra Pao", foods[0].Food.NameEn)
		})
	}
}

func TestHandler_Leaderboards(t *testing.T) {
	f := newHandlerFixture(t)
	f.catalog.On("Catalog", mock.Anything).Return(testCatalog(), nil)
	f.repo.On("TopSelectedToday", mock.Anything, 10).Return([]domain.FoodCount{{FoodID: 3, Score: 2}}, nil)
	f.repo.On("TopSelectedAllTime", mock.Anything, 10).Return([]domain.FoodCount{}, nil)
	f.repo.On("SelectionCounts", mock.Anything).Return([]domain.FoodCount{{FoodID: 3, Score: 2}}, nil)
	f.repo.On("FeedbackTotals", mock.Anything).Return(1, 0, nil)
	f.repo.On("TopFeedback", mock.Anything, mock.Anything, 10).Return([]domain.FoodCount{}, nil)

	for _, target := range []string{
		"/api/admin/top-today",
		"/api/admin/top-alltime",
		"/api/admin/category-stats",
		"/api/admin/feedback-summary",
	} {
		rr, env := f.do(t, http.MethodGet, target, nil, true)
		assert.Equal(t, http.StatusOK, rr.Code, target)
		assert.True(t, env.Success, target)
	}
}

func TestHandler_LeaderboardFailure(t *testing.T) {
	f := newHandlerFixture(t)
	f.repo.On("TopSelectedAllTime", mock.Anything, 10).Return(nil, errors.New("db down"))

	rr, env := f.do(t, http.MethodGet, "/api/admin/top-alltime", nil, true)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.False(t, env.Success)
}

func TestHandler_Users(t *testing.T) {
	f := newHandlerFixture(t)
	f.repo.On("RecentUsers", mock.Anything, 20).Return([]domain.User{{ID: "user-1"}}, nil)
	f.repo.On("ListUsers", mock.Anything, 10, 10).Return([]domain.User{{ID: "user-2"}}, 11, nil)

	rr, env := f.do(t, http.MethodGet, "/api/admin/recent-users", nil, true)
	require.Equal(t, http.StatusOK, rr.Code)
	var recent []domain.User
	require.NoError(t, json.Unmarshal(env.Data, &recent))
	assert.Equal(t, "user-1", recent[0].ID)

	rr, env = f.do(t, http.MethodGet, "/api/admin/users?page=2&limit=10", nil, true)
	require.Equal(t, http.StatusOK, rr.Code)
	var pagination domain.Pagination
	require.NoError(t, json.Unmarshal(env.Pagination, &pagination))
	assert.Equal(t, domain.Pagination{Page: 2, Limit: 10, Total: 11, TotalPages: 2}, pagination)
}

func TestHandler_UserDetail(t *testing.T) {
	f := newHandlerFixture(t)
	f.repo.On("GetUser", mock.Anything, "user-1").Return(&domain.User{ID: "user-1", VisitCount: 2}, nil)
	f.repo.On("UserSelections", mock.Anything, "user-1", 50).Return([]domain.UserSelection{{FoodID: 1}}, nil)
	f.repo.On("GetUser", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)
	f.catalog.On("Catalog", mock.Anything).Return(testCatalog(), nil)

	rr, env := f.do(t, http.MethodGet, "/api/admin/users/user-1", nil, true)
	require.Equal(t, http.StatusOK, rr.Code)
	var detail domain.UserDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, 2, detail.VisitCount)
	require.Len(t, detail.Selections, 1)
	assert.Equal(t, "Pad Kra Pao", detail.Selections[0].Food.NameEn)

	rr, env = f.do(t, http.MethodGet, "/api/admin/users/ghost", nil, true)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "user not found", env.Error)
}

func TestHandler_DeleteUser(t *testing.T) {
	f := newHandlerFixture(t)
	f.repo.On("DeleteUser", mock.Anything, "user-1").Return(nil)
	f.repo.On("DeleteUser", mock.Anything, "ghost").Return(domain.ErrUserNotFound)

	rr, env := f.do(t, http.MethodDelete, "/api/admin/users/user-1", nil, true)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)

	rr, _ = f.do(t, http.MethodDelete, "/api/admin/users/ghost", nil, true)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_Health(t *testing.T) {
	f := newHandlerFixture(t)
	rr, _ := f.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "analytics-svc")
}

