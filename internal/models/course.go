package models

import "time"

type Course struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Thumbnail   *string   `db:"thumbnail" json:"thumbnail,omitempty"`
	Price       float64   `db:"price" json:"price"`
	AuthorID    string    `db:"author_id" json:"authorId"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CourseWithAuthor joins a course with its author summary for listings.
type CourseWithAuthor struct {
	Course
	Author AuthorSummary `json:"author"`
}

// CourseDetail additionally carries the course's videos for single lookups.
type CourseDetail struct {
	CourseWithAuthor
	Videos []Video `json:"videos"`
}
