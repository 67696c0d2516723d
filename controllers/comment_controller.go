package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/models"
	"inkwell/repository"
	"inkwell/utils"
)

// CommentController handles public comment submission. Everything a visitor
// submits lands in pending, whatever the payload says.
type CommentController struct {
	Posts    repository.PostStore
	Comments repository.CommentStore
}

func NewCommentController(posts repository.PostStore, comments repository.CommentStore) *CommentController {
	return &CommentController{Posts: posts, Comments: comments}
}

// StoreCommentInput is the visitor-facing comment payload. Status is not
// accepted from the client.
type StoreCommentInput struct {
	Content       string `json:"content" binding:"required,max=1000"`
	AuthorName    string `json:"author_name" binding:"required,max=255"`
	AuthorEmail   string `json:"author_email" binding:"required,email,max=255"`
	AuthorWebsite string `json:"author_website" binding:"omitempty,url,max=255"`
	ParentID      *uint  `json:"parent_id"`
}

// Store accepts a comment on a published post. The comment enters moderation
// as pending and is invisible to the public until approved. Replies must
// target an existing comment on the same post.
func (cc *CommentController) Store(ctx *gin.Context) {
	slug := ctx.Param("slug")

	post, err := cc.Posts.GetBySlug(slug, repository.LoadOptions{})
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("load post slug=%s failed: %v", slug, err)
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load post")
		return
	}
	// Unpublished posts do not take comments and do not reveal themselves.
	if post.Status != models.PostStatusPublished {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}

	var input StoreCommentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ValidationError(ctx, 42201, validationFields(input, err))
		return
	}

	if input.ParentID != nil {
		parent, err := cc.Comments.GetByID(*input.ParentID, false)
		if errors.Is(err, repository.ErrNotFound) {
			utils.ValidationError(ctx, 42202, map[string]string{"parent_id": "parent comment does not exist"})
			return
		}
		if err != nil {
			utils.Sugar.Errorf("load parent comment id=%d failed: %v", *input.ParentID, err)
			utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load parent comment")
			return
		}
		if parent.PostID != post.ID {
			utils.ValidationError(ctx, 42203, map[string]string{"parent_id": "parent comment belongs to a different post"})
			return
		}
	}

	comment := models.Comment{
		Content:       utils.SanitizeHTML(input.Content),
		AuthorName:    utils.SanitizePlain(input.AuthorName),
		AuthorEmail:   input.AuthorEmail,
		AuthorWebsite: input.AuthorWebsite,
		AuthorIP:      ctx.ClientIP(),
		UserAgent:     ctx.Request.UserAgent(),
		Status:        models.CommentStatusPending,
		PostID:        post.ID,
		ParentID:      input.ParentID,
	}

	if err := cc.Comments.Create(&comment); err != nil {
		utils.Sugar.Errorf("create comment post=%d failed: %v", post.ID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to save comment")
		return
	}

	utils.Respond(ctx, http.StatusCreated, 0, "comment submitted and awaiting moderation", gin.H{
		"id":     comment.ID,
		"status": comment.Status,
	})
}
