package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursedeck/internal/models"
)

func seedCourse(st *memStore, id, authorID string) models.Course {
	c := models.Course{
		ID:          id,
		Title:       "Intro to Go",
		Description: "A course about writing Go services.",
		Price:       49.99,
		AuthorID:    authorID,
	}
	st.courses[id] = c
	return c
}

func seedVideo(st *memStore, id, courseID string) models.Video {
	v := models.Video{
		ID:          id,
		Title:       "Lesson " + id,
		Description: "A lesson in the course, recorded on video.",
		VideoURL:    "https://cdn.example.com/" + id + ".mp4",
		CourseID:    courseID,
	}
	st.videos[id] = v
	return v
}

func TestCreateCourse_Success(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})
	adminToken := seedUser(t, st, "admin-1", "admin@x.com", models.RoleAdmin)

	rec := doJSON(t, router, http.MethodPost, "/api/courses", adminToken, map[string]any{
		"title":       "Intro to Go",
		"description": "A course about writing Go services.",
		"price":       49.99,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	course := decodeBody(t, rec)["course"].(map[string]any)
	assert.Equal(t, "admin-1", course["authorId"], "author is the acting identity")
	assert.NotEmpty(t, course["id"])
}

func TestCreateCourse_RequiresAdmin(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})
	userToken := seedUser(t, st, "user-1", "user@x.com", models.RoleUser)

	rec := doJSON(t, router, http.MethodPost, "/api/courses", userToken, map[string]any{
		"title":       "Intro to Go",
		"description": "A course about writing Go services.",
		"price":       10,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, st.courses)
}

func TestCreateCourse_RequiresAuth(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})

	rec := doJSON(t, router, http.MethodPost, "/api/courses", "", map[string]any{
		"title":       "Intro to Go",
		"description": "A course about writing Go services.",
		"price":       10,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateCourse_NegativePrice(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})
	adminToken := seedUser(t, st, "admin-1", "admin@x.com", models.RoleAdmin)

	rec := doJSON(t, router, http.MethodPost, "/api/courses", adminToken, map[string]any{
		"title":       "Intro to Go",
		"description": "A course about writing Go services.",
		"price":       -5,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := decodeBody(t, rec)["errors"].([]any)
	first := errs[0].(map[string]any)
	assert.Equal(t, "price", first["field"])
}

func TestListCourses_IncludesAuthorSummary(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})
	seedUser(t, st, "author-1", "author@x.com", models.RoleUser)
	seedCourse(st, "c1", "author-1")

	rec := doJSON(t, router, http.MethodGet, "/api/courses", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	courses := decodeBody(t, rec)["courses"].([]any)
	require.Len(t, courses, 1)

	author := courses[0].(map[string]any)["author"].(map[string]any)
	assert.Equal(t, "author-1", author["id"])
	assert.Equal(t, "author@x.com", author["email"])
}

func TestGetCourse_NotFound(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})

	rec := doJSON(t, router, http.MethodGet, "/api/courses/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCourse_IncludesVideos(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})
	seedUser(t, st, "author-1", "author@x.com", models.RoleUser)
	seedCourse(st, "c1", "author-1")
	seedVideo(st, "v1", "c1")
	seedVideo(st, "v2", "c1")

	rec := doJSON(t, router, http.MethodGet, "/api/courses/c1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	course := decodeBody(t, rec)["course"].(map[string]any)
	assert.Len(t, course["videos"].([]any), 2)
}

func TestUpdateCourse_OwnerPartialUpdate(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})
	token := seedUser(t, st, "author-1", "author@x.com", models.RoleUser)
	seedCourse(st, "c1", "author-1")

	rec := doJSON(t, router, http.MethodPut, "/api/courses/c1", token, map[string]any{
		"title": "Advanced Go",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := st.courses["c1"]
	assert.Equal(t, "Advanced Go", got.Title)
	assert.Equal(t, "A course about writing Go services.", got.Description, "absent fields keep prior values")
	assert.Equal(t, 49.99, got.Price)
}

func TestUpdateCourse_AdminNonOwner(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})
	seedUser(t, st, "author-1", "author@x.com", models.RoleUser)
	adminToken := seedUser(t, st, "admin-1", "admin@x.com", models.RoleAdmin)
	seedCourse(st, "c1", "author-1")

	rec := doJSON(t, router, http.MethodPut, "/api/courses/c1", adminToken, map[string]any{
		"price": 0.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, st.courses["c1"].Price)
}

func TestUpdateCourse_Forbidden(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})
	seedUser(t, st, "author-1", "author@x.com", models.RoleUser)
	otherToken := seedUser(t, st, "other-1", "other@x.com", models.RoleUser)
	original := seedCourse(st, "c1", "author-1")

	rec := doJSON(t, router, http.MethodPut, "/api/courses/c1", otherToken, map[string]any{
		"title": "Hijacked",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, original, st.courses["c1"], "course left unchanged")
}

func TestUpdateCourse_NotFound(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})
	token := seedUser(t, st, "author-1", "author@x.com", models.RoleUser)

	rec := doJSON(t, router, http.MethodPut, "/api/courses/"+uuid.NewString(), token, map[string]any{
		"title": "Whatever",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCourse_CascadesVideos(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 5} {
		st := newMemStore()
		router := newTestRouter(t, st, &fakeUploader{})
		token := seedUser(t, st, "author-1", "author@x.com", models.RoleUser)
		seedCourse(st, "c1", "author-1")
		for i := 0; i < n; i++ {
			seedVideo(st, uuid.NewString(), "c1")
		}

		rec := doJSON(t, router, http.MethodDelete, "/api/courses/c1", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, "n=%d", n)

		assert.NotContains(t, st.courses, "c1")
		for _, v := range st.videos {
			assert.NotEqual(t, "c1", v.CourseID, "no video may still reference the course")
		}
	}
}

func TestDeleteCourse_Forbidden(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})
	seedUser(t, st, "author-1", "author@x.com", models.RoleUser)
	otherToken := seedUser(t, st, "other-1", "other@x.com", models.RoleUser)
	seedCourse(st, "c1", "author-1")
	seedVideo(st, "v1", "c1")

	rec := doJSON(t, router, http.MethodDelete, "/api/courses/c1", otherToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, st.courses, "c1")
	assert.Contains(t, st.videos, "v1")
}

func TestDeleteCourse_RequiresAuth(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	router := newTestRouter(t, st, &fakeUploader{})
	seedUser(t, st, "author-1", "author@x.com", models.RoleUser)
	seedCourse(st, "c1", "author-1")

	rec := doJSON(t, router, http.MethodDelete, "/api/courses/c1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, st.courses, "c1")
}
