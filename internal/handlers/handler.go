package handlers

import (
	"go.uber.org/zap"

	"coursedeck/internal/storage"
	"coursedeck/internal/store"
)

type Handler struct {
	Auth    *AuthHandler
	Courses *CourseHandler
	Videos  *VideoHandler
}

func New(users store.UserStore, courses store.CourseStore, videos store.VideoStore,
	uploader storage.Uploader, jwtSecret string, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(users, jwtSecret, log),
		Courses: NewCourseHandler(courses, log),
		Videos:  NewVideoHandler(videos, courses, uploader, log),
	}
}
