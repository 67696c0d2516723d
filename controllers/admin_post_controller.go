package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/models"
	"inkwell/repository"
	"inkwell/utils"
)

// AdminPostController is the authoring surface for posts: full CRUD over all
// statuses, with slug management and tag sync.
type AdminPostController struct {
	Posts      repository.PostStore
	Comments   repository.CommentStore
	Categories repository.CategoryStore
}

func NewAdminPostController(posts repository.PostStore, comments repository.CommentStore,
	categories repository.CategoryStore) *AdminPostController {
	return &AdminPostController{Posts: posts, Comments: comments, Categories: categories}
}

type CreatePostInput struct {
	Title         string         `json:"title" binding:"required,max=255"`
	Slug          string         `json:"slug" binding:"omitempty,max=255"`
	Excerpt       string         `json:"excerpt" binding:"omitempty,max=500"`
	Content       string         `json:"content" binding:"required"`
	FeaturedImage string         `json:"featured_image" binding:"omitempty,url,max=255"`
	Type          string         `json:"type" binding:"required,oneof=article news event lecture"`
	Status        string         `json:"status" binding:"required,oneof=draft published archived"`
	PublishedAt   *time.Time     `json:"published_at"`
	MetaData      map[string]any `json:"meta_data"`
	CategoryID    uint           `json:"category_id" binding:"required"`
	TagIDs        []uint         `json:"tag_ids"`
}

// UpdatePostInput mirrors CreatePostInput: status and type must always be
// stated, so an edit can never change either by omission.
type UpdatePostInput struct {
	Title         string         `json:"title" binding:"required,max=255"`
	Slug          string         `json:"slug" binding:"omitempty,max=255"`
	Excerpt       string         `json:"excerpt" binding:"omitempty,max=500"`
	Content       string         `json:"content" binding:"required"`
	FeaturedImage string         `json:"featured_image" binding:"omitempty,url,max=255"`
	Type          string         `json:"type" binding:"required,oneof=article news event lecture"`
	Status        string         `json:"status" binding:"required,oneof=draft published archived"`
	PublishedAt   *time.Time     `json:"published_at"`
	MetaData      map[string]any `json:"meta_data"`
	CategoryID    uint           `json:"category_id" binding:"required"`
	// TagIDs nil leaves the tag set alone; an empty list clears it.
	TagIDs *[]uint `json:"tag_ids"`
}

// Index lists posts of every status for the admin, newest created first.
func (pc *AdminPostController) Index(ctx *gin.Context) {
	page, perPage := parsePagination(ctx.Query("page"), ctx.Query("per_page"))
	filter := repository.PostFilter{
		Status:   ctx.Query("status"),
		Type:     ctx.Query("type"),
		Category: ctx.Query("category"),
		Tag:      ctx.Query("tag"),
		Search:   ctx.Query("search"),
		Page:     page,
		PerPage:  perPage,
	}
	if filter.Status != "" && !models.ValidPostStatus(filter.Status) {
		utils.ValidationError(ctx, 42221, map[string]string{"status": "must be one of: draft, published, archived"})
		return
	}
	if filter.Type != "" && !models.ValidPostType(filter.Type) {
		utils.ValidationError(ctx, 42221, map[string]string{"type": "must be one of: article, news, event, lecture"})
		return
	}

	postPage, err := pc.Posts.List(filter, repository.LoadOptions{Author: true, Category: true, Tags: true})
	if err != nil {
		utils.Sugar.Errorf("admin list posts failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load posts")
		return
	}

	utils.Success(ctx, gin.H{
		"posts":      postPage.Items,
		"pagination": postPage.Pagination,
	})
}

// Show returns one post with every relation plus its full comment list,
// moderated or not.
func (pc *AdminPostController) Show(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
		return
	}

	post, err := pc.Posts.GetByID(id, repository.LoadOptions{Author: true, Category: true, Tags: true})
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("admin load post id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load post")
		return
	}

	comments, err := pc.Comments.ListForPost(id)
	if err != nil {
		utils.Sugar.Errorf("admin load comments post=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to load comments")
		return
	}

	utils.Success(ctx, gin.H{"post": post, "comments": comments})
}

// Store creates a post. A missing slug is derived from the title and made
// unique; a post created directly as published gets its publication time
// stamped unless one was supplied.
func (pc *AdminPostController) Store(ctx *gin.Context) {
	var input CreatePostInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ValidationError(ctx, 42222, validationFields(input, err))
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "not authenticated")
		return
	}

	if _, err := pc.Categories.GetByID(input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.ValidationError(ctx, 42223, map[string]string{"category_id": "category does not exist"})
			return
		}
		utils.Sugar.Errorf("load category id=%d failed: %v", input.CategoryID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to validate category")
		return
	}

	slug, err := pc.resolveSlug(input.Slug, input.Title, 0)
	if err != nil {
		var conflict slugConflictError
		if errors.As(err, &conflict) {
			utils.ValidationError(ctx, 42224, map[string]string{"slug": "slug is already in use"})
			return
		}
		utils.Sugar.Errorf("resolve slug failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to resolve slug")
		return
	}

	post := models.Post{
		Title:         input.Title,
		Slug:          slug,
		Excerpt:       input.Excerpt,
		Content:       utils.SanitizeHTML(input.Content),
		FeaturedImage: input.FeaturedImage,
		Type:          input.Type,
		Status:        input.Status,
		PublishedAt:   models.PublishTimestampOnCreate(input.Status, input.PublishedAt, time.Now()),
		MetaData:      input.MetaData,
		UserID:        userID,
		CategoryID:    input.CategoryID,
	}

	tagIDs := input.TagIDs
	if len(tagIDs) > 0 {
		tagIDs = utils.UniqueUint(tagIDs)
	}
	if err := pc.Posts.Create(&post, tagIDs); err != nil {
		if errors.Is(err, repository.ErrUnknownTag) {
			utils.ValidationError(ctx, 42225, map[string]string{"tag_ids": "one or more tags do not exist"})
			return
		}
		utils.Sugar.Errorf("create post failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50036, "failed to create post")
		return
	}

	invalidatePostCaches()
	utils.Respond(ctx, http.StatusCreated, 0, "post created", post)
}

// Update edits a post. The publication time is refreshed only when the post
// moves into published from another status; staying published keeps the
// original stamp, and an explicit published_at in the payload always wins.
func (pc *AdminPostController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
		return
	}

	post, err := pc.Posts.GetByID(id, repository.LoadOptions{})
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("admin load post id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load post")
		return
	}

	var input UpdatePostInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ValidationError(ctx, 42222, validationFields(input, err))
		return
	}

	if _, err := pc.Categories.GetByID(input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.ValidationError(ctx, 42223, map[string]string{"category_id": "category does not exist"})
			return
		}
		utils.Sugar.Errorf("load category id=%d failed: %v", input.CategoryID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to validate category")
		return
	}

	slug := post.Slug
	if input.Slug != "" && input.Slug != post.Slug {
		slug, err = pc.resolveSlug(input.Slug, input.Title, post.ID)
		if err != nil {
			var conflict slugConflictError
			if errors.As(err, &conflict) {
				utils.ValidationError(ctx, 42224, map[string]string{"slug": "slug is already in use"})
				return
			}
			utils.Sugar.Errorf("resolve slug failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to resolve slug")
			return
		}
	}

	publishedAt := models.PublishTimestampOnUpdate(post.Status, input.Status, post.PublishedAt, time.Now())
	if input.PublishedAt != nil {
		publishedAt = input.PublishedAt
	}

	post.Title = input.Title
	post.Slug = slug
	post.Excerpt = input.Excerpt
	post.Content = utils.SanitizeHTML(input.Content)
	post.FeaturedImage = input.FeaturedImage
	post.Type = input.Type
	post.Status = input.Status
	post.PublishedAt = publishedAt
	post.MetaData = input.MetaData
	post.CategoryID = input.CategoryID

	var tagIDs []uint
	syncTags := input.TagIDs != nil
	if syncTags {
		tagIDs = *input.TagIDs
		if len(tagIDs) > 0 {
			tagIDs = utils.UniqueUint(tagIDs)
		}
	}

	if err := pc.Posts.Update(post, tagIDs, syncTags); err != nil {
		if errors.Is(err, repository.ErrUnknownTag) {
			utils.ValidationError(ctx, 42225, map[string]string{"tag_ids": "one or more tags do not exist"})
			return
		}
		utils.Sugar.Errorf("update post id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50037, "failed to update post")
		return
	}

	invalidatePostCaches()
	utils.Respond(ctx, http.StatusOK, 0, "post updated", post)
}

// Destroy deletes a post together with its comments and tag links.
func (pc *AdminPostController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
		return
	}

	if err := pc.Posts.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
			return
		}
		utils.Sugar.Errorf("delete post id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50038, "failed to delete post")
		return
	}

	invalidatePostCaches()
	utils.Respond(ctx, http.StatusOK, 0, "post deleted", nil)
}

type slugConflictError struct{ slug string }

func (e slugConflictError) Error() string { return "slug already in use: " + e.slug }

// resolveSlug returns the slug to store. An explicit slug must be free; a slug
// derived from the title gets a numeric suffix until it is.
func (pc *AdminPostController) resolveSlug(explicit, title string, excludeID uint) (string, error) {
	if explicit != "" {
		taken, err := pc.Posts.SlugExists(explicit, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", slugConflictError{slug: explicit}
		}
		return explicit, nil
	}

	base := utils.Slugify(title)
	if base == "" {
		base = "post"
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := pc.Posts.SlugExists(slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// invalidatePostCaches drops every cached public listing and post page.
// Author-side writes are rare; a coarse flush keeps moderation and editing
// visible immediately.
func invalidatePostCaches() {
	utils.InvalidateByPrefix(postListCachePrefix)
	utils.InvalidateByPrefix(postShowCachePrefix)
}
