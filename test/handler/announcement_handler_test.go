package handler_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusmitra/portal/internal/model"
)

func TestAnnouncementLifecycle(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()
	teacher := env.seedUser(t, "teacher-1", "t1@example.edu", "teacher")
	student := env.seedUser(t, "student-1", "s1@example.edu", "student")

	// Students cannot post.
	resp := env.do(t, http.MethodPost, "/api/v1/announcements", student, map[string]interface{}{
		"title": "x", "content": "y",
	})
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = env.do(t, http.MethodPost, "/api/v1/announcements", teacher, map[string]interface{}{
		"title":    "Exam schedule",
		"content":  "Mid-term exams start on **October 10**.",
		"category": "exams",
		"pinned":   true,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	var created model.Announcement
	decodeData(t, resp, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, 1, created.Pinned)

	resp = env.do(t, http.MethodGet, "/api/v1/announcements/"+created.ID, student, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var fetched model.Announcement
	decodeData(t, resp, &fetched)
	require.Contains(t, fetched.ContentHTML, "<strong>October 10</strong>")

	resp = env.do(t, http.MethodGet, "/api/v1/announcements?category=exams", student, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var list []model.Announcement
	decodeData(t, resp, &list)
	require.Len(t, list, 1)

	resp = env.do(t, http.MethodPut, "/api/v1/announcements/"+created.ID, teacher, map[string]interface{}{
		"title":    "Exam schedule (updated)",
		"content":  "Mid-term exams start on October 12.",
		"category": "exams",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	// A different teacher cannot edit someone else's post.
	other := env.seedUser(t, "teacher-2", "t2@example.edu", "teacher")
	resp = env.do(t, http.MethodPut, "/api/v1/announcements/"+created.ID, other, map[string]interface{}{
		"title": "hijack", "content": "x",
	})
	require.Equal(t, http.StatusForbidden, resp.Code)

	// Admin can.
	admin := env.seedUser(t, "admin-1", "a1@example.edu", "admin")
	resp = env.do(t, http.MethodDelete, "/api/v1/announcements/"+created.ID, admin, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodGet, "/api/v1/announcements/"+created.ID, student, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestFileUploadAndDownload(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()
	teacher := env.seedUser(t, "teacher-1", "t1@example.edu", "teacher")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "notice.txt")
	require.NoError(t, err)
	_, err = io.WriteString(part, "exam hall allocation attached")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+teacher)
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var uploaded struct {
		URL  string `json:"url"`
		Name string `json:"name"`
	}
	decodeData(t, resp, &uploaded)
	require.Equal(t, "notice.txt", uploaded.Name)
	require.Contains(t, uploaded.URL, "/api/v1/files/")

	key := path.Base(uploaded.URL)
	getResp := env.do(t, http.MethodGet, "/api/v1/files/"+key, "", nil)
	require.Equal(t, http.StatusOK, getResp.Code)
	require.Equal(t, "exam hall allocation attached", getResp.Body.String())
}
