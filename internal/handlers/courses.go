package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"coursedeck/internal/apperr"
	"coursedeck/internal/auth"
	"coursedeck/internal/middleware"
	"coursedeck/internal/models"
	"coursedeck/internal/store"
	"coursedeck/internal/utils"
)

type CourseHandler struct {
	Courses store.CourseStore
	Log     *zap.Logger
}

func NewCourseHandler(courses store.CourseStore, log *zap.Logger) *CourseHandler {
	return &CourseHandler{Courses: courses, Log: log}
}

type courseReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Price       *float64 `json:"price"`
}

func (c courseReq) validate() []utils.FieldError {
	var errs []utils.FieldError
	if len(c.Title) < 3 {
		errs = append(errs, fieldErr("title", "Title must be at least 3 characters"))
	}
	if len(c.Description) < 10 {
		errs = append(errs, fieldErr("description", "Description must be at least 10 characters"))
	}
	if c.Price == nil {
		errs = append(errs, fieldErr("price", "Price is required"))
	} else if *c.Price < 0 {
		errs = append(errs, fieldErr("price", "Price cannot be negative"))
	}
	return errs
}

// courseUpdateReq carries optional fields; absent ones keep their stored
// values.
type courseUpdateReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Price       *float64 `json:"price"`
}

func (c courseUpdateReq) validate() []utils.FieldError {
	var errs []utils.FieldError
	if c.Title != nil && len(*c.Title) < 3 {
		errs = append(errs, fieldErr("title", "Title must be at least 3 characters"))
	}
	if c.Description != nil && len(*c.Description) < 10 {
		errs = append(errs, fieldErr("description", "Description must be at least 10 characters"))
	}
	if c.Price != nil && *c.Price < 0 {
		errs = append(errs, fieldErr("price", "Price cannot be negative"))
	}
	return errs
}

// ---------------------- CREATE ----------------------

// Create relies on the route-level admin gate; authorship is not re-checked
// here, so an admin-created course later passes CanMutate for that admin.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req courseReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		utils.JSONFieldErrors(w, errs)
		return
	}

	course := &models.Course{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Price:       *req.Price,
		AuthorID:    identity.ID,
	}

	if err := h.Courses.Create(r.Context(), course); err != nil {
		h.Log.Error("create course", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]any{
		"message": "Course created successfully",
		"course":  course,
	})
}

// ---------------------- LIST ----------------------

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Courses.List(r.Context())
	if err != nil {
		h.Log.Error("list courses", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"courses": courses})
}

// ---------------------- GET ONE ----------------------

func (h *CourseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	course, err := h.Courses.GetDetail(r.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Course not found")
		return
	}
	if err != nil {
		h.Log.Error("get course", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"course": course})
}

// ---------------------- UPDATE ----------------------

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req courseUpdateReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		utils.JSONFieldErrors(w, errs)
		return
	}

	course, err := h.Courses.Get(r.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Course not found")
		return
	}
	if err != nil {
		h.Log.Error("get course", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if !auth.CanMutate(identity, course.AuthorID) {
		utils.JSONError(w, http.StatusForbidden, "Not authorized to update this course")
		return
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Thumbnail != nil {
		course.Thumbnail = req.Thumbnail
	}
	if req.Price != nil {
		course.Price = *req.Price
	}

	if err := h.Courses.Update(r.Context(), course); err != nil {
		h.Log.Error("update course", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"message": "Course updated successfully",
		"course":  course,
	})
}

// ---------------------- DELETE ----------------------

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	course, err := h.Courses.Get(r.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Course not found")
		return
	}
	if err != nil {
		h.Log.Error("get course", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if !auth.CanMutate(identity, course.AuthorID) {
		utils.JSONError(w, http.StatusForbidden, "Not authorized to delete this course")
		return
	}

	// Child videos go first, inside one transaction with the course row.
	if err := h.Courses.DeleteCascade(r.Context(), id); err != nil {
		h.Log.Error("delete course", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"message": "Course deleted successfully",
	})
}
