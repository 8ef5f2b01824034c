// Package store provides the persistence layer: one interface per aggregate
// with a PostgreSQL implementation backed by sqlx. Handlers depend on the
// interfaces so they can be tested against in-memory fakes.
package store

import (
	"context"

	"coursedeck/internal/models"
)

type UserStore interface {
	// Create inserts a user, failing with apperr.ErrEmailTaken when the
	// email is already registered.
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type CourseStore interface {
	Create(ctx context.Context, c *models.Course) error
	// Get returns the bare course row; used for ownership checks.
	Get(ctx context.Context, id string) (*models.Course, error)
	// GetDetail joins the author summary and child videos.
	GetDetail(ctx context.Context, id string) (*models.CourseDetail, error)
	List(ctx context.Context) ([]models.CourseWithAuthor, error)
	Update(ctx context.Context, c *models.Course) error
	// DeleteCascade removes the course's videos and then the course itself
	// in a single transaction.
	DeleteCascade(ctx context.Context, id string) error
}

type VideoStore interface {
	Create(ctx context.Context, v *models.Video) error
	// Get joins the parent course summary, through which ownership resolves.
	Get(ctx context.Context, id string) (*models.VideoWithCourse, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Video, error)
	Update(ctx context.Context, v *models.Video) error
	Delete(ctx context.Context, id string) error
}
