package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"coursedeck/internal/apperr"
	"coursedeck/internal/models"
)

type PgCourseStore struct {
	DB *sqlx.DB
}

func NewPgCourseStore(db *sqlx.DB) *PgCourseStore {
	return &PgCourseStore{DB: db}
}

// courseAuthorRow flattens the course/author join for sqlx scanning.
type courseAuthorRow struct {
	models.Course
	AuthorName  string `db:"author_name"`
	AuthorEmail string `db:"author_email"`
}

func (r courseAuthorRow) withAuthor() models.CourseWithAuthor {
	return models.CourseWithAuthor{
		Course: r.Course,
		Author: models.AuthorSummary{
			ID:    r.AuthorID,
			Name:  r.AuthorName,
			Email: r.AuthorEmail,
		},
	}
}

func (s *PgCourseStore) Create(ctx context.Context, c *models.Course) error {
	return s.DB.QueryRowxContext(ctx, `
		INSERT INTO courses (id, title, description, thumbnail, price, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, c.ID, c.Title, c.Description, c.Thumbnail, c.Price, c.AuthorID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (s *PgCourseStore) Get(ctx context.Context, id string) (*models.Course, error) {
	var c models.Course
	err := s.DB.GetContext(ctx, &c, `
		SELECT id, title, description, thumbnail, price, author_id, created_at, updated_at
		FROM courses
		WHERE id=$1
	`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PgCourseStore) GetDetail(ctx context.Context, id string) (*models.CourseDetail, error) {
	var row courseAuthorRow
	err := s.DB.GetContext(ctx, &row, `
		SELECT c.id, c.title, c.description, c.thumbnail, c.price, c.author_id,
		       c.created_at, c.updated_at,
		       u.name AS author_name, u.email AS author_email
		FROM courses c
		JOIN users u ON u.id = c.author_id
		WHERE c.id=$1
	`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	videos := []models.Video{}
	err = s.DB.SelectContext(ctx, &videos, `
		SELECT id, title, description, video_url, course_id, created_at, updated_at
		FROM videos
		WHERE course_id=$1
		ORDER BY created_at
	`, id)
	if err != nil {
		return nil, err
	}

	return &models.CourseDetail{
		CourseWithAuthor: row.withAuthor(),
		Videos:           videos,
	}, nil
}

func (s *PgCourseStore) List(ctx context.Context) ([]models.CourseWithAuthor, error) {
	var rows []courseAuthorRow
	err := s.DB.SelectContext(ctx, &rows, `
		SELECT c.id, c.title, c.description, c.thumbnail, c.price, c.author_id,
		       c.created_at, c.updated_at,
		       u.name AS author_name, u.email AS author_email
		FROM courses c
		JOIN users u ON u.id = c.author_id
		ORDER BY c.created_at DESC
	`)
	if err != nil {
		return nil, err
	}

	courses := make([]models.CourseWithAuthor, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.withAuthor())
	}
	return courses, nil
}

func (s *PgCourseStore) Update(ctx context.Context, c *models.Course) error {
	return s.DB.QueryRowxContext(ctx, `
		UPDATE courses
		SET title=$1, description=$2, thumbnail=$3, price=$4, updated_at=now()
		WHERE id=$5
		RETURNING updated_at
	`, c.Title, c.Description, c.Thumbnail, c.Price, c.ID).Scan(&c.UpdatedAt)
}

// DeleteCascade removes child videos first, then the course, in one
// transaction so a failed video delete cannot leave a dangling course.
func (s *PgCourseStore) DeleteCascade(ctx context.Context, id string) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE course_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id=$1`, id); err != nil {
		return err
	}

	return tx.Commit()
}
