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
	"coursedeck/internal/storage"
	"coursedeck/internal/store"
	"coursedeck/internal/utils"
)

// MaxUploadSize caps a single video upload at 100 MiB.
const MaxUploadSize = 100 << 20

type VideoHandler struct {
	Videos   store.VideoStore
	Courses  store.CourseStore
	Uploader storage.Uploader
	Log      *zap.Logger

	// MaxUpload caps the upload request body; defaults to MaxUploadSize.
	MaxUpload int64
}

func NewVideoHandler(videos store.VideoStore, courses store.CourseStore,
	uploader storage.Uploader, log *zap.Logger) *VideoHandler {
	return &VideoHandler{
		Videos:    videos,
		Courses:   courses,
		Uploader:  uploader,
		Log:       log,
		MaxUpload: MaxUploadSize,
	}
}

type videoReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	CourseID    string `json:"courseId"`
}

func (v videoReq) validate() []utils.FieldError {
	var errs []utils.FieldError
	if len(v.Title) < 3 {
		errs = append(errs, fieldErr("title", "Title must be at least 3 characters"))
	}
	if len(v.Description) < 10 {
		errs = append(errs, fieldErr("description", "Description must be at least 10 characters"))
	}
	if !validURL(v.VideoURL) {
		errs = append(errs, fieldErr("videoUrl", "Invalid video URL"))
	}
	if !validUUID(v.CourseID) {
		errs = append(errs, fieldErr("courseId", "Invalid course ID"))
	}
	return errs
}

type videoUpdateReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (v videoUpdateReq) validate() []utils.FieldError {
	var errs []utils.FieldError
	if v.Title != nil && len(*v.Title) < 3 {
		errs = append(errs, fieldErr("title", "Title must be at least 3 characters"))
	}
	if v.Description != nil && len(*v.Description) < 10 {
		errs = append(errs, fieldErr("description", "Description must be at least 10 characters"))
	}
	return errs
}

// ---------------------- UPLOAD ----------------------

// Upload streams the binary to object storage and returns the public URL.
// It deliberately writes no video row; clients follow up with a metadata
// create carrying the returned URL.
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)

	file, header, err := r.FormFile("video")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			utils.JSONError(w, http.StatusBadRequest, "Video file exceeds the 100MB limit")
			return
		}
		utils.JSONError(w, http.StatusBadRequest, "No video file provided")
		return
	}
	defer file.Close()

	key := storage.ObjectKey(header.Filename)
	videoURL, err := h.Uploader.Put(r.Context(), key, file, header.Header.Get("Content-Type"))
	if err != nil {
		h.Log.Error("upload video", zap.String("key", key), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"message":  "Video uploaded successfully",
		"videoUrl": videoURL,
	})
}

// ---------------------- CREATE ----------------------

func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req videoReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		utils.JSONFieldErrors(w, errs)
		return
	}

	course, err := h.Courses.Get(r.Context(), req.CourseID)
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
		utils.JSONError(w, http.StatusForbidden, "Not authorized to add videos to this course")
		return
	}

	video := &models.Video{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		CourseID:    req.CourseID,
	}

	if err := h.Videos.Create(r.Context(), video); err != nil {
		h.Log.Error("create video", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]any{
		"message": "Video created successfully",
		"video":   video,
	})
}

// ---------------------- LIST BY COURSE ----------------------

func (h *VideoHandler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")

	videos, err := h.Videos.ListByCourse(r.Context(), courseID)
	if err != nil {
		h.Log.Error("list videos", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"videos": videos})
}

// ---------------------- GET ONE ----------------------

func (h *VideoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	video, err := h.Videos.Get(r.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Video not found")
		return
	}
	if err != nil {
		h.Log.Error("get video", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"video": video})
}

// ---------------------- UPDATE ----------------------

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req videoUpdateReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		utils.JSONFieldErrors(w, errs)
		return
	}

	existing, err := h.Videos.Get(r.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Video not found")
		return
	}
	if err != nil {
		h.Log.Error("get video", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	// Ownership resolves through the parent course's author.
	if !auth.CanMutate(identity, existing.Course.AuthorID) {
		utils.JSONError(w, http.StatusForbidden, "Not authorized to update this video")
		return
	}

	video := existing.Video
	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Description != nil {
		video.Description = *req.Description
	}

	if err := h.Videos.Update(r.Context(), &video); err != nil {
		h.Log.Error("update video", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"message": "Video updated successfully",
		"video":   video,
	})
}

// ---------------------- DELETE ----------------------

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	existing, err := h.Videos.Get(r.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Video not found")
		return
	}
	if err != nil {
		h.Log.Error("get video", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if !auth.CanMutate(identity, existing.Course.AuthorID) {
		utils.JSONError(w, http.StatusForbidden, "Not authorized to delete this video")
		return
	}

	if err := h.Videos.Delete(r.Context(), id); err != nil {
		h.Log.Error("delete video", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"message": "Video deleted successfully",
	})
}
