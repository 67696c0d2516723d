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

func newCommentRouter(posts *mockPostStore, comments *mockCommentStore) *gin.Engine {
	cc := NewCommentController(posts, comments)
	router := gin.New()
	router.POST("/api/v1/posts/:slug/comments", cc.Store)
	return router
}

func publishedPost(id uint, slug string) *models.Post {
	return &models.Post{ID: id, Slug: slug, Status: models.PostStatusPublished, CategoryID: 1}
}

func TestCommentStoreForcesPending(t *testing.T) {
	setupTest(t)

	posts := new(mockPostStore)
	comments := new(mockCommentStore)
	posts.On("GetBySlug", "hello", mock.Anything).Return(publishedPost(3, "hello"), nil)

	var saved models.Comment
	comments.On("Create", mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) {
			saved = *args.Get(0).(*models.Comment)
		}).
		Return(nil)

	router := newCommentRouter(posts, comments)
	w, env := doJSON(t, router, "POST", "/api/v1/posts/hello/comments", gin.H{
		"content":      "Nice write-up",
		"author_name":  "Alex",
		"author_email": "alex@example.com",
		// a submitted status must be ignored
		"status": "approved",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.CommentStatusPending, saved.Status)
	assert.Equal(t, uint(3), saved.PostID)
	assert.Nil(t, saved.ParentID)
	// request metadata is captured server-side
	assert.NotEmpty(t, saved.AuthorIP)
	assert.Equal(t, "test-agent/1.0", saved.UserAgent)

	data := env.Data
	assert.Equal(t, models.CommentStatusPending, data["status"])
}

func TestCommentStoreValidation(t *testing.T) {
	setupTest(t)

	posts := new(mockPostStore)
	comments := new(mockCommentStore)
	posts.On("GetBySlug", "hello", mock.Anything).Return(publishedPost(3, "hello"), nil)

	router := newCommentRouter(posts, comments)
	w, env := doJSON(t, router, "POST", "/api/v1/posts/hello/comments", gin.H{
		"content":      "",
		"author_name":  "Alex",
		"author_email": "not-an-email",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	fields, ok := env.Data["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "content")
	assert.Contains(t, fields, "author_email")
	comments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCommentStoreOnUnpublishedPostIs404(t *testing.T) {
	setupTest(t)

	posts := new(mockPostStore)
	comments := new(mockCommentStore)
	posts.On("GetBySlug", "draft-post", mock.Anything).
		Return(&models.Post{ID: 4, Slug: "draft-post", Status: models.PostStatusDraft}, nil)

	router := newCommentRouter(posts, comments)
	w, env := doJSON(t, router, "POST", "/api/v1/posts/draft-post/comments", gin.H{
		"content":      "hi",
		"author_name":  "Alex",
		"author_email": "alex@example.com",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 40401, env.Code)
	comments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCommentStoreReplyValidation(t *testing.T) {
	setupTest(t)

	t.Run("reply to comment on another post rejected", func(t *testing.T) {
		posts := new(mockPostStore)
		comments := new(mockCommentStore)
		posts.On("GetBySlug", "hello", mock.Anything).Return(publishedPost(3, "hello"), nil)
		comments.On("GetByID", uint(50), false).
			Return(&models.Comment{ID: 50, PostID: 99}, nil)

		router := newCommentRouter(posts, comments)
		w, env := doJSON(t, router, "POST", "/api/v1/posts/hello/comments", gin.H{
			"content":      "me too",
			"author_name":  "Alex",
			"author_email": "alex@example.com",
			"parent_id":    50,
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		fields := env.Data["fields"].(map[string]interface{})
		assert.Contains(t, fields, "parent_id")
		comments.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("reply to missing comment rejected", func(t *testing.T) {
		posts := new(mockPostStore)
		comments := new(mockCommentStore)
		posts.On("GetBySlug", "hello", mock.Anything).Return(publishedPost(3, "hello"), nil)
		comments.On("GetByID", uint(51), false).Return(nil, repository.ErrNotFound)

		router := newCommentRouter(posts, comments)
		w, _ := doJSON(t, router, "POST", "/api/v1/posts/hello/comments", gin.H{
			"content":      "me too",
			"author_name":  "Alex",
			"author_email": "alex@example.com",
			"parent_id":    51,
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("valid reply accepted", func(t *testing.T) {
		posts := new(mockPostStore)
		comments := new(mockCommentStore)
		posts.On("GetBySlug", "hello", mock.Anything).Return(publishedPost(3, "hello"), nil)
		comments.On("GetByID", uint(52), false).
			Return(&models.Comment{ID: 52, PostID: 3}, nil)

		var saved models.Comment
		comments.On("Create", mock.AnythingOfType("*models.Comment")).
			Run(func(args mock.Arguments) { saved = *args.Get(0).(*models.Comment) }).
			Return(nil)

		router := newCommentRouter(posts, comments)
		w, _ := doJSON(t, router, "POST", "/api/v1/posts/hello/comments", gin.H{
			"content":      "me too",
			"author_name":  "Alex",
			"author_email": "alex@example.com",
			"parent_id":    52,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, saved.ParentID)
		assert.Equal(t, uint(52), *saved.ParentID)
	})
}

func TestCommentStoreSanitizesContent(t *testing.T) {
	setupTest(t)

	posts := new(mockPostStore)
	comments := new(mockCommentStore)
	posts.On("GetBySlug", "hello", mock.Anything).Return(publishedPost(3, "hello"), nil)

	var saved models.Comment
	comments.On("Create", mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) { saved = *args.Get(0).(*models.Comment) }).
		Return(nil)

	router := newCommentRouter(posts, comments)
	w, _ := doJSON(t, router, "POST", "/api/v1/posts/hello/comments", gin.H{
		"content":      `hey <script>alert("x")</script>there`,
		"author_name":  "<b>Alex</b>",
		"author_email": "alex@example.com",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, saved.Content, "<script>")
	assert.NotContains(t, saved.AuthorName, "<b>")
}
