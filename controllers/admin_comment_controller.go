package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/models"
	"inkwell/repository"
	"inkwell/utils"
)

// AdminCommentController is the moderation queue: list, inspect, reclassify
// and delete comments of any status.
type AdminCommentController struct {
	Comments repository.CommentStore
}

func NewAdminCommentController(comments repository.CommentStore) *AdminCommentController {
	return &AdminCommentController{Comments: comments}
}

type UpdateCommentInput struct {
	Status string `json:"status" binding:"required,oneof=pending approved spam rejected"`
}

// Index lists comments newest first with optional status and search filters,
// plus live per-status counts for the queue header.
func (cc *AdminCommentController) Index(ctx *gin.Context) {
	page, perPage := parsePagination(ctx.Query("page"), ctx.Query("per_page"))
	filter := repository.CommentFilter{
		Status:  ctx.Query("status"),
		Search:  ctx.Query("search"),
		Page:    page,
		PerPage: perPage,
	}
	if filter.Status != "" && !models.ValidCommentStatus(filter.Status) {
		utils.ValidationError(ctx, 42231, map[string]string{"status": "must be one of: pending, approved, spam, rejected"})
		return
	}

	commentPage, err := cc.Comments.ListAdmin(filter)
	if err != nil {
		utils.Sugar.Errorf("admin list comments failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load comments")
		return
	}

	stats, err := cc.Comments.Stats()
	if err != nil {
		utils.Sugar.Errorf("comment stats failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load comment stats")
		return
	}

	utils.Success(ctx, gin.H{
		"comments":   commentPage.Items,
		"pagination": commentPage.Pagination,
		"stats":      stats,
	})
}

// Show returns one comment with its post, parent and replies.
func (cc *AdminCommentController) Show(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40403, "comment not found")
		return
	}

	comment, err := cc.Comments.GetByID(id, true)
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40403, "comment not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("admin load comment id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load comment")
		return
	}

	utils.Success(ctx, comment)
}

// Update reclassifies a comment. Approving makes it publicly visible at once;
// moving it anywhere else hides it again. Any status can move to any other.
func (cc *AdminCommentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40403, "comment not found")
		return
	}

	var input UpdateCommentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ValidationError(ctx, 42232, validationFields(input, err))
		return
	}

	comment, err := cc.Comments.UpdateStatus(id, input.Status)
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40403, "comment not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("update comment id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to update comment")
		return
	}

	// Moderation changes what the public thread shows.
	utils.InvalidateByPrefix(postShowCachePrefix)
	utils.Respond(ctx, http.StatusOK, 0, "comment updated", comment)
}

// Destroy deletes a comment and its direct replies.
func (cc *AdminCommentController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40403, "comment not found")
		return
	}

	if err := cc.Comments.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40403, "comment not found")
			return
		}
		utils.Sugar.Errorf("delete comment id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to delete comment")
		return
	}

	utils.InvalidateByPrefix(postShowCachePrefix)
	utils.Respond(ctx, http.StatusOK, 0, "comment deleted", nil)
}
