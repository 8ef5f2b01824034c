package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"coursedeck/internal/apperr"
	"coursedeck/internal/models"
)

type PgVideoStore struct {
	DB *sqlx.DB
}

func NewPgVideoStore(db *sqlx.DB) *PgVideoStore {
	return &PgVideoStore{DB: db}
}

type videoCourseRow struct {
	models.Video
	CourseTitle    string `db:"course_title"`
	CourseAuthorID string `db:"course_author_id"`
}

func (s *PgVideoStore) Create(ctx context.Context, v *models.Video) error {
	return s.DB.QueryRowxContext(ctx, `
		INSERT INTO videos (id, title, description, video_url, course_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, v.ID, v.Title, v.Description, v.VideoURL, v.CourseID).
		Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (s *PgVideoStore) Get(ctx context.Context, id string) (*models.VideoWithCourse, error) {
	var row videoCourseRow
	err := s.DB.GetContext(ctx, &row, `
		SELECT v.id, v.title, v.description, v.video_url, v.course_id,
		       v.created_at, v.updated_at,
		       c.title AS course_title, c.author_id AS course_author_id
		FROM videos v
		JOIN courses c ON c.id = v.course_id
		WHERE v.id=$1
	`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &models.VideoWithCourse{
		Video: row.Video,
		Course: models.CourseSummary{
			ID:       row.CourseID,
			Title:    row.CourseTitle,
			AuthorID: row.CourseAuthorID,
		},
	}, nil
}

func (s *PgVideoStore) ListByCourse(ctx context.Context, courseID string) ([]models.Video, error) {
	videos := []models.Video{}
	err := s.DB.SelectContext(ctx, &videos, `
		SELECT id, title, description, video_url, course_id, created_at, updated_at
		FROM videos
		WHERE course_id=$1
		ORDER BY created_at
	`, courseID)
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (s *PgVideoStore) Update(ctx context.Context, v *models.Video) error {
	return s.DB.QueryRowxContext(ctx, `
		UPDATE videos
		SET title=$1, description=$2, updated_at=now()
		WHERE id=$3
		RETURNING updated_at
	`, v.Title, v.Description, v.ID).Scan(&v.UpdatedAt)
}

func (s *PgVideoStore) Delete(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM videos WHERE id=$1`, id)
	return err
}
