package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ginraidee/analytics-svc/internal/domain"
	"ginraidee/analytics-svc/internal/service"
	"ginraidee/logging"
	"ginraidee/validation"

	"github.com/gorilla/mux"
)

type Handler struct {
	Analytics service.AnalyticsInterface
	Auth      service.AuthInterface
	// AdminAuth guards everything except login and logout; nil rejects every admin request.
	AdminAuth mux.MiddlewareFunc
}

func NewHandler(analytics service.AnalyticsInterface, authSvc service.AuthInterface, adminAuth mux.MiddlewareFunc) *Handler {
	return &Handler{Analytics: analytics, Auth: authSvc, AdminAuth: adminAuth}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/admin/login", h.login).Methods("POST")
	r.HandleFunc("/api/admin/logout", h.logout).Methods("POST")
	r.Handle("/api/admin/auth", h.admin(h.checkAuth)).Methods("GET")

	r.Handle("/api/admin/stats", h.admin(h.getStats)).Methods("GET")
	r.Handle("/api/admin/popular-menus", h.admin(h.getPopularMenus)).Methods("GET")
	r.Handle("/api/admin/category-stats", h.admin(h.getCategoryStats)).Methods("GET")
	r.Handle("/api/admin/top-today", h.admin(h.getTopToday)).Methods("GET")
	r.Handle("/api/admin/top-alltime", h.admin(h.getTopAllTime)).Methods("GET")
	r.Handle("/api/admin/feedback-summary", h.admin(h.getFeedbackSummary)).Methods("GET")
	r.Handle("/api/admin/recent-users", h.admin(h.getRecentUsers)).Methods("GET")
	r.Handle("/api/admin/users", h.admin(h.listUsers)).Methods("GET")
	r.Handle("/api/admin/users/{id}", h.admin(h.getUser)).Methods("GET")
	r.Handle("/api/admin/users/{id}", h.admin(h.deleteUser)).Methods("DELETE")
}

func (h *Handler) admin(fn http.HandlerFunc) http.Handler {
	if h.AdminAuth == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusUnauthorized, "admin authentication not configured")
		})
	}
	return h.AdminAuth(fn)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "analytics-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		logging.Ctx(r.Context()).Warn().Str("username", req.Username).Msg("admin login rejected")
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}

// logout is a no-op for stateless tokens; clients drop theirs.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "logged out",
	})
}

func (h *Handler) checkAuth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"isAuthenticated": true,
	})
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.Dashboard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (h *Handler) getPopularMenus(w http.ResponseWriter, r *http.Request) {
	foods, err := h.Analytics.PopularMenus(r.Context(), queryInt(r, "days", 30), queryInt(r, "limit", 10))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, foods)
}

func (h *Handler) getCategoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.CategoryStats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (h *Handler) getTopToday(w http.ResponseWriter, r *http.Request) {
	foods, err := h.Analytics.TopToday(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, foods)
}

func (h *Handler) getTopAllTime(w http.ResponseWriter, r *http.Request) {
	foods, err := h.Analytics.TopAllTime(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, foods)
}

func (h *Handler) getFeedbackSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Analytics.FeedbackSummary(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, summary)
}

func (h *Handler) getRecentUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Analytics.RecentUsers(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, users)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.Analytics.Users(r.Context(), queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       page.Users,
		"pagination": page.Pagination,
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Analytics.UserDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, detail)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Analytics.DeleteUser(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "user deleted",
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal server error")
}
