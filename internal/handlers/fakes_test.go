package handlers

import (
	"context"
	"io"
	"net/http"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coursedeck/internal/apperr"
	"coursedeck/internal/auth"
	"coursedeck/internal/middleware"
	"coursedeck/internal/models"
)

const testSecret = "handler-test-secret"

// memStore is an in-memory stand-in for all three Postgres stores so handler
// tests run without a database.
type memStore struct {
	users   map[string]models.User // keyed by email
	courses map[string]models.Course
	videos  map[string]models.Video
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]models.User{},
		courses: map[string]models.Course{},
		videos:  map[string]models.Video{},
	}
}

// --- UserStore ---

func (s *memStore) Create(ctx context.Context, u *models.User) error {
	if _, exists := s.users[u.Email]; exists {
		return apperr.ErrEmailTaken
	}
	s.users[u.Email] = *u
	return nil
}

func (s *memStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) userByID(id string) (models.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// courseStoreView / videoStoreView adapt memStore to the per-aggregate
// interfaces, sidestepping the method-name collision on Create.

type courseStoreView struct{ *memStore }

func (s courseStoreView) Create(ctx context.Context, c *models.Course) error {
	s.courses[c.ID] = *c
	return nil
}

func (s courseStoreView) Get(ctx context.Context, id string) (*models.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &c, nil
}

func (s courseStoreView) GetDetail(ctx context.Context, id string) (*models.CourseDetail, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &models.CourseDetail{
		CourseWithAuthor: s.withAuthor(c),
		Videos:           s.videosOf(id),
	}, nil
}

func (s courseStoreView) List(ctx context.Context) ([]models.CourseWithAuthor, error) {
	out := []models.CourseWithAuthor{}
	for _, c := range s.courses {
		out = append(out, s.withAuthor(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s courseStoreView) Update(ctx context.Context, c *models.Course) error {
	if _, ok := s.courses[c.ID]; !ok {
		return apperr.ErrNotFound
	}
	s.courses[c.ID] = *c
	return nil
}

func (s courseStoreView) DeleteCascade(ctx context.Context, id string) error {
	for vid, v := range s.videos {
		if v.CourseID == id {
			delete(s.videos, vid)
		}
	}
	delete(s.courses, id)
	return nil
}

func (s courseStoreView) withAuthor(c models.Course) models.CourseWithAuthor {
	author := models.AuthorSummary{ID: c.AuthorID}
	if u, ok := s.userByID(c.AuthorID); ok {
		author.Name = u.Name
		author.Email = u.Email
	}
	return models.CourseWithAuthor{Course: c, Author: author}
}

func (s courseStoreView) videosOf(courseID string) []models.Video {
	out := []models.Video{}
	for _, v := range s.videos {
		if v.CourseID == courseID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type videoStoreView struct{ *memStore }

func (s videoStoreView) Create(ctx context.Context, v *models.Video) error {
	s.videos[v.ID] = *v
	return nil
}

func (s videoStoreView) Get(ctx context.Context, id string) (*models.VideoWithCourse, error) {
	v, ok := s.videos[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	c := s.courses[v.CourseID]
	return &models.VideoWithCourse{
		Video: v,
		Course: models.CourseSummary{
			ID:       c.ID,
			Title:    c.Title,
			AuthorID: c.AuthorID,
		},
	}, nil
}

func (s videoStoreView) ListByCourse(ctx context.Context, courseID string) ([]models.Video, error) {
	return courseStoreView{s.memStore}.videosOf(courseID), nil
}

func (s videoStoreView) Update(ctx context.Context, v *models.Video) error {
	if _, ok := s.videos[v.ID]; !ok {
		return apperr.ErrNotFound
	}
	s.videos[v.ID] = *v
	return nil
}

func (s videoStoreView) Delete(ctx context.Context, id string) error {
	delete(s.videos, id)
	return nil
}

// fakeUploader records the last put and returns a canned URL.
type fakeUploader struct {
	lastKey         string
	lastContentType string
	lastSize        int64
	err             error
}

func (f *fakeUploader) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	n, _ := io.Copy(io.Discard, body)
	f.lastKey = key
	f.lastContentType = contentType
	f.lastSize = n
	return "https://bucket.s3.us-east-1.amazonaws.com/" + key, nil
}

// newTestRouter wires the handlers behind the same route table as cmd/api.
func newTestRouter(t *testing.T, st *memStore, up *fakeUploader) http.Handler {
	t.Helper()

	h := New(st, courseStoreView{st}, videoStoreView{st}, up, testSecret, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.Courses.List)
			r.Get("/{id}", h.Courses.GetByID)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(testSecret))
				r.With(middleware.RequireAdmin).Post("/", h.Courses.Create)
				r.Put("/{id}", h.Courses.Update)
				r.Delete("/{id}", h.Courses.Delete)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/course/{courseId}", h.Videos.ListByCourse)
			r.Get("/{id}", h.Videos.GetByID)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(testSecret))
				r.Post("/upload", h.Videos.Upload)
				r.Post("/", h.Videos.Create)
				r.Put("/{id}", h.Videos.Update)
				r.Delete("/{id}", h.Videos.Delete)
			})
		})
	})
	return r
}

// seedUser inserts a user directly and returns a valid token for it.
func seedUser(t *testing.T, st *memStore, id, email string, role models.Role) string {
	t.Helper()

	st.users[email] = models.User{
		ID:    id,
		Email: email,
		Name:  "Seeded " + id,
		Role:  role,
	}

	token, err := auth.IssueToken(auth.Identity{
		ID:    id,
		Email: email,
		Name:  "Seeded " + id,
		Role:  role,
	}, testSecret)
	require.NoError(t, err)
	return token
}
