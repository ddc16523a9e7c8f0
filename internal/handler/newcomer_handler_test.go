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

func newNewcomerRouter(repo *fakeInquiryRepo) *gin.Engine {
	h := NewNewcomerHandler(repo)
	router := gin.New()
	router.POST("/api/newcomer", h.CreateInquiry)
	router.GET("/api/admin/newcomer", h.ListInquiries)
	router.PUT("/api/admin/newcomer", h.UpdateInquiryStatus)
	return router
}

func TestCreateInquiry(t *testing.T) {
	repo := newFakeInquiryRepo()
	router := newNewcomerRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/newcomer",
		`{"name": "Jamie", "phone": "010-1234-5678", "message": "First visit next Sunday"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.byID, 1)

	for _, inquiry := range repo.byID {
		assert.Equal(t, models.InquiryStatusNew, inquiry.Status)
		assert.Nil(t, inquiry.Email)
		require.NotNil(t, inquiry.Phone)
		assert.Equal(t, "010-1234-5678", *inquiry.Phone)
	}
}

func TestCreateInquiry_NameRequired(t *testing.T) {
	router := newNewcomerRouter(newFakeInquiryRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/newcomer", `{"message": "anonymous"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateInquiryStatus(t *testing.T) {
	repo := newFakeInquiryRepo()
	router := newNewcomerRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/newcomer", `{"name": "Jamie"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	var id string
	for _, inquiry := range repo.byID {
		id = inquiry.ID.String()
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPut, "/api/admin/newcomer",
		fmt.Sprintf(`{"id": %q, "status": "contacted"}`, id)))

	require.Equal(t, http.StatusOK, w.Code)

	var updated models.NewcomerInquiry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.InquiryStatusContacted, updated.Status)
}

func TestUpdateInquiryStatus_InvalidStatus(t *testing.T) {
	router := newNewcomerRouter(newFakeInquiryRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPut, "/api/admin/newcomer",
		`{"id": "7f0183c0-8b2d-4f11-9a3e-111111111111", "status": "archived"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
