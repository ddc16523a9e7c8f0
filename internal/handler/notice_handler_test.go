package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somang-church/website-api/internal/models"
)

func newNoticeRouter(repo *fakeNoticeRepo) *gin.Engine {
	h := NewNoticeHandler(repo)
	router := gin.New()
	router.GET("/api/admin/notices", h.ListNotices)
	router.POST("/api/admin/notices", h.CreateNotice)
	router.PUT("/api/admin/notices", h.UpdateNotice)
	router.DELETE("/api/admin/notices", h.DeleteNotice)
	router.GET("/api/notices", h.ListPublicNotices)
	router.GET("/api/notices/:id", h.GetNotice)
	return router
}

func TestCreateNotice(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantAuthor string
	}{
		{
			name:       "full notice",
			body:       `{"title": "Retreat", "content": "Sign up by Friday", "author": "Pastor Kim", "is_pinned": true}`,
			wantStatus: http.StatusCreated,
			wantAuthor: "Pastor Kim",
		},
		{
			name:       "author defaults",
			body:       `{"title": "Retreat", "content": "Sign up by Friday"}`,
			wantStatus: http.StatusCreated,
			wantAuthor: "Admin",
		},
		{
			name:       "blank title",
			body:       `{"title": "  ", "content": "Sign up by Friday"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing content",
			body:       `{"title": "Retreat"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newNoticeRouter(newFakeNoticeRepo())

			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/admin/notices", tt.body))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusCreated {
				var notice models.Notice
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notice))
				assert.Equal(t, tt.wantAuthor, notice.Author)
			}
		})
	}
}

func TestUpdateNotice_PartialFields(t *testing.T) {
	repo := newFakeNoticeRepo()
	router := newNoticeRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/admin/notices",
		`{"title": "Retreat", "content": "Sign up by Friday", "is_pinned": true}`))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Notice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPut, "/api/admin/notices",
		fmt.Sprintf(`{"id": %q, "content": "Deadline extended"}`, created.ID)))

	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Notice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))

	// Only the fields present in the body change.
	assert.Equal(t, "Deadline extended", updated.Content)
	assert.Equal(t, "Retreat", updated.Title)
	assert.True(t, updated.IsPinned)
}

func TestUpdateNotice_UnknownID(t *testing.T) {
	router := newNoticeRouter(newFakeNoticeRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPut, "/api/admin/notices",
		`{"id": "7f0183c0-8b2d-4f11-9a3e-111111111111", "title": "Nope"}`))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetNotice(t *testing.T) {
	repo := newFakeNoticeRepo()
	router := newNoticeRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/admin/notices",
		`{"title": "Retreat", "content": "Sign up by Friday"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Notice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notices/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notices/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteNotice(t *testing.T) {
	repo := newFakeNoticeRepo()
	router := newNoticeRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/admin/notices",
		`{"title": "Retreat", "content": "Sign up by Friday"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Notice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodDelete, "/api/admin/notices",
		fmt.Sprintf(`{"id": %q}`, created.ID)))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, repo.byID)
}
