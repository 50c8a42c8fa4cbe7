package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"ginraidee/food-svc/internal/domain"
	"ginraidee/food-svc/internal/service"
	"ginraidee/logging"
	"ginraidee/validation"

	"github.com/gorilla/mux"
)

type Handler struct {
	Foods    service.FoodServiceInterface
	Feedback service.FeedbackServiceInterface
	Users    service.UserServiceInterface
	Menus    service.MenuServiceInterface
	// AdminAuth guards /api/admin/menus; nil rejects every admin request.
	AdminAuth mux.MiddlewareFunc
}

func NewHandler(foods service.FoodServiceInterface, feedback service.FeedbackServiceInterface, users service.UserServiceInterface, menus service.MenuServiceInterface, adminAuth mux.MiddlewareFunc) *Handler {
	return &Handler{
		Foods:     foods,
		Feedback:  feedback,
		Users:     users,
		Menus:     menus,
		AdminAuth: adminAuth,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/foods", h.listFoods).Methods("GET")
	r.HandleFunc("/api/foods/action/random", h.randomFood).Methods("GET")
	r.HandleFunc("/api/foods/feedback", h.submitFeedback).Methods("POST")
	r.HandleFunc("/api/foods/meta/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/api/foods/meta/price-ranges", h.getPriceRanges).Methods("GET")
	r.HandleFunc("/api/foods/meta/catalog", h.getCatalog).Methods("GET")
	r.HandleFunc("/api/foods/{id:[0-9]+}", h.getFood).Methods("GET")
	r.HandleFunc("/api/foods/{id:[0-9]+}/feedback", h.submitItemFeedback).Methods("POST")
	r.HandleFunc("/api/foods/{id:[0-9]+}/stats", h.getFoodStats).Methods("GET")
	r.HandleFunc("/api/foods/{id:[0-9]+}/qrcode", h.getFoodQRCode).Methods("GET")

	r.HandleFunc("/api/users/init", h.initUser).Methods("POST")
	r.HandleFunc("/api/users/select", h.recordSelection).Methods("POST")
	r.HandleFunc("/api/users/pageview", h.recordPageView).Methods("POST")
	r.HandleFunc("/api/users/{userId}/history", h.getHistory).Methods("GET")

	r.Handle("/api/admin/menus", h.admin(h.listMenus)).Methods("GET")
	r.Handle("/api/admin/menus", h.admin(h.createMenu)).Methods("POST")
	r.Handle("/api/admin/menus/{id:[0-9]+}", h.admin(h.updateMenu)).Methods("PUT")
	r.Handle("/api/admin/menus/{id:[0-9]+}", h.admin(h.deleteMenu)).Methods("DELETE")
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
		"service":   "food-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) listFoods(w http.ResponseWriter, r *http.Request) {
	result := h.Foods.List(parseListQuery(r.URL.Query()))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"count":      len(result.Items),
		"pagination": result.Pagination,
		"data":       result.Items,
	})
}

func (h *Handler) getFood(w http.ResponseWriter, r *http.Request) {
	item, err := h.Foods.Get(pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

func (h *Handler) randomFood(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	item, err := h.Foods.Random(r.Context(), parseFilterSpec(q), q.Get("userId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.Foods.Categories())
}

func (h *Handler) getPriceRanges(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.Foods.PriceRanges())
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.Foods.Catalog())
}

func (h *Handler) getFoodStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Foods.Stats(r.Context(), pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (h *Handler) getFoodQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Foods.QRCode(pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !decode(w, r, &req) {
		return
	}
	rec := &domain.FeedbackRecord{UserID: req.UserID, FoodID: req.FoodID, Action: domain.FeedbackAction(req.Feedback)}
	if err := h.Feedback.RecordFeedback(r.Context(), rec); err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *Handler) submitItemFeedback(w http.ResponseWriter, r *http.Request) {
	var req ItemFeedbackRequest
	if !decode(w, r, &req) {
		return
	}
	rec := &domain.FeedbackRecord{UserID: req.UserID, FoodID: pathID(r), Action: domain.FeedbackAction(req.Action)}
	if err := h.Feedback.RecordFeedback(r.Context(), rec); err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *Handler) recordSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if !decode(w, r, &req) {
		return
	}
	rec := &domain.SelectionRecord{UserID: req.UserID, FoodID: req.FoodID}
	if err := h.Feedback.RecordSelection(r.Context(), rec); err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *Handler) initUser(w http.ResponseWriter, r *http.Request) {
	var req InitUserRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	user, isNew, err := h.Users.Init(r.Context(), req.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"user":      user,
		"isNewUser": isNew,
	})
}

// recordPageView never fails the caller; page views are best-effort.
func (h *Handler) recordPageView(w http.ResponseWriter, r *http.Request) {
	var req PageViewRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Users.PageView(r.Context(), &domain.PageView{UserID: req.UserID, Page: req.Page}); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("page", req.Page).Msg("page view not recorded")
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	history, err := h.Users.History(r.Context(), mux.Vars(r)["userId"], limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, history)
}

func (h *Handler) listMenus(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.Menus.List())
}

func (h *Handler) createMenu(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuRequest
	if !decode(w, r, &req) {
		return
	}
	item, err := h.Menus.Create(req.toItem())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, item)
}

func (h *Handler) updateMenu(w http.ResponseWriter, r *http.Request) {
	var req UpdateMenuRequest
	if !decode(w, r, &req) {
		return
	}
	item, err := h.Menus.Update(pathID(r), req.toPatch())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

func (h *Handler) deleteMenu(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menus.Delete(pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNoCandidates):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrFoodNotFound):
		writeError(w, http.StatusNotFound, "food not found")
	case errors.Is(err, service.ErrInvalidFeedback), errors.Is(err, service.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decode reads a JSON body into dst and validates it, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := validation.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}
