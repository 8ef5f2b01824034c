package models

import "time"

type Video struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	VideoURL    string    `db:"video_url" json:"videoUrl"`
	CourseID    string    `db:"course_id" json:"courseId"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CourseSummary is the parent-course slice embedded in single video lookups.
// Ownership checks on a video always go through AuthorID here; videos have no
// author of their own.
type CourseSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	AuthorID string `json:"authorId"`
}

// VideoWithCourse joins a video with its parent course summary.
type VideoWithCourse struct {
	Video
	Course CourseSummary `json:"course"`
}
