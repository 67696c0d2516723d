package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/repository"
	"inkwell/utils"
)

// DashboardController serves the admin landing page numbers.
type DashboardController struct {
	Stats    repository.StatsStore
	Posts    repository.PostStore
	Comments repository.CommentStore
}

func NewDashboardController(stats repository.StatsStore, posts repository.PostStore,
	comments repository.CommentStore) *DashboardController {
	return &DashboardController{Stats: stats, Posts: posts, Comments: comments}
}

// Index returns site-wide aggregates plus the latest posts and the newest
// pending comments, all computed live.
func (dc *DashboardController) Index(ctx *gin.Context) {
	stats, err := dc.Stats.Site()
	if err != nil {
		utils.Sugar.Errorf("site stats failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to load stats")
		return
	}

	recentPosts, err := dc.Posts.List(repository.PostFilter{Page: 1, PerPage: 5},
		repository.LoadOptions{Author: true, Category: true})
	if err != nil {
		utils.Sugar.Errorf("recent posts failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to load recent posts")
		return
	}

	pendingComments, err := dc.Comments.ListAdmin(repository.CommentFilter{
		Status:  "pending",
		Page:    1,
		PerPage: 5,
	})
	if err != nil {
		utils.Sugar.Errorf("pending comments failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to load pending comments")
		return
	}

	utils.Success(ctx, gin.H{
		"stats":            stats,
		"recent_posts":     recentPosts.Items,
		"pending_comments": pendingComments.Items,
	})
}
