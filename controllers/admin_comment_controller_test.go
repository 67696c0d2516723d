package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkwell/models"
	"inkwell/repository"
)

func newAdminCommentRouter(comments *mockCommentStore) *gin.Engine {
	cc := NewAdminCommentController(comments)
	router := gin.New()
	admin := router.Group("/api/v1/admin", authAs(1))
	admin.GET("/comments", cc.Index)
	admin.GET("/comments/:id", cc.Show)
	admin.PUT("/comments/:id", cc.Update)
	admin.DELETE("/comments/:id", cc.Destroy)
	return router
}

func TestAdminCommentIndexWithStats(t *testing.T) {
	setupTest(t)

	comments := new(mockCommentStore)
	comments.On("ListAdmin", mock.MatchedBy(func(f repository.CommentFilter) bool {
		return f.Status == "pending" && f.Search == "spammy"
	})).Return(&repository.CommentPage{
		Items:      []models.Comment{{ID: 1, Status: models.CommentStatusPending}},
		Pagination: repository.Pagination{Page: 1, PerPage: 15, Total: 1, TotalPages: 1},
	}, nil)
	comments.On("Stats").Return(repository.ModerationStats{Pending: 4, Approved: 10, Spam: 2}, nil)

	router := newAdminCommentRouter(comments)
	w, env := doJSON(t, router, "GET", "/api/v1/admin/comments?status=pending&search=spammy", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	stats, ok := env.Data["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 4, stats["pending"])
	assert.EqualValues(t, 10, stats["approved"])
	assert.EqualValues(t, 2, stats["spam"])
}

func TestAdminCommentIndexRejectsBadStatus(t *testing.T) {
	setupTest(t)

	comments := new(mockCommentStore)
	router := newAdminCommentRouter(comments)
	w, _ := doJSON(t, router, "GET", "/api/v1/admin/comments?status=bogus", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	comments.AssertNotCalled(t, "ListAdmin", mock.Anything)
}

func TestAdminCommentUpdateStatus(t *testing.T) {
	setupTest(t)

	t.Run("approve", func(t *testing.T) {
		comments := new(mockCommentStore)
		comments.On("UpdateStatus", uint(5), models.CommentStatusApproved).
			Return(&models.Comment{ID: 5, Status: models.CommentStatusApproved}, nil)

		router := newAdminCommentRouter(comments)
		w, _ := doJSON(t, router, "PUT", "/api/v1/admin/comments/5", gin.H{"status": "approved"})

		assert.Equal(t, http.StatusOK, w.Code)
		comments.AssertExpectations(t)
	})

	t.Run("approved back to spam is allowed", func(t *testing.T) {
		comments := new(mockCommentStore)
		comments.On("UpdateStatus", uint(5), models.CommentStatusSpam).
			Return(&models.Comment{ID: 5, Status: models.CommentStatusSpam}, nil)

		router := newAdminCommentRouter(comments)
		w, _ := doJSON(t, router, "PUT", "/api/v1/admin/comments/5", gin.H{"status": "spam"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		comments := new(mockCommentStore)
		router := newAdminCommentRouter(comments)
		w, env := doJSON(t, router, "PUT", "/api/v1/admin/comments/5", gin.H{"status": "deleted"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		fields := env.Data["fields"].(map[string]interface{})
		assert.Contains(t, fields, "status")
		comments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("missing comment is 404", func(t *testing.T) {
		comments := new(mockCommentStore)
		comments.On("UpdateStatus", uint(77), models.CommentStatusApproved).
			Return(nil, repository.ErrNotFound)

		router := newAdminCommentRouter(comments)
		w, env := doJSON(t, router, "PUT", "/api/v1/admin/comments/77", gin.H{"status": "approved"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, 40403, env.Code)
	})
}

func TestAdminCommentDestroy(t *testing.T) {
	setupTest(t)

	comments := new(mockCommentStore)
	comments.On("Delete", uint(6)).Return(nil)

	router := newAdminCommentRouter(comments)
	w, _ := doJSON(t, router, "DELETE", "/api/v1/admin/comments/6", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	comments.AssertExpectations(t)
}
