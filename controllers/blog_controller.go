package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/models"
	"inkwell/repository"
	"inkwell/utils"
)

const (
	postListCachePrefix = "cache:posts:"
	postShowCachePrefix = "cache:post:"

	relatedPostLimit = 3
)

// BlogController serves the public read surface: the filtered post index and
// the single-post page with its comment thread and related posts.
type BlogController struct {
	Posts      repository.PostStore
	Comments   repository.CommentStore
	Categories repository.CategoryStore
	Tags       repository.TagStore
	Stats      repository.StatsStore
}

func NewBlogController(posts repository.PostStore, comments repository.CommentStore,
	categories repository.CategoryStore, tags repository.TagStore, stats repository.StatsStore) *BlogController {
	return &BlogController{
		Posts:      posts,
		Comments:   comments,
		Categories: categories,
		Tags:       tags,
		Stats:      stats,
	}
}

// Index lists published posts with optional type/category/tag/search filters,
// alongside the category and tag clouds and the published-post count. The
// full rendered payload is cached per query string.
func (bc *BlogController) Index(ctx *gin.Context) {
	cacheKey := postListCachePrefix + ctx.Request.URL.RawQuery
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	page, perPage := parsePagination(ctx.Query("page"), ctx.Query("per_page"))
	filter := repository.PostFilter{
		Type:     ctx.Query("type"),
		Category: ctx.Query("category"),
		Tag:      ctx.Query("tag"),
		Search:   ctx.Query("search"),
		Page:     page,
		PerPage:  perPage,
		Public:   true,
	}

	postPage, err := bc.Posts.List(filter, repository.LoadOptions{Author: true, Category: true, Tags: true})
	if err != nil {
		utils.Sugar.Errorf("list posts failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to load posts")
		return
	}

	categories, err := bc.Categories.All()
	if err != nil {
		utils.Sugar.Errorf("list categories failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to load categories")
		return
	}

	tags, err := bc.Tags.All()
	if err != nil {
		utils.Sugar.Errorf("list tags failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to load tags")
		return
	}

	published, err := bc.Stats.PublishedPostCount()
	if err != nil {
		utils.Sugar.Errorf("count published posts failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to load stats")
		return
	}

	payload := gin.H{
		"posts":      postPage.Items,
		"pagination": postPage.Pagination,
		"categories": categories,
		"tags":       tags,
		"stats": gin.H{
			"total_posts":      published,
			"total_categories": len(categories),
			"total_tags":       len(tags),
		},
		"filters": gin.H{
			"type":     filter.Type,
			"category": filter.Category,
			"tag":      filter.Tag,
			"search":   filter.Search,
		},
	}

	utils.CacheSetJSON(cacheKey, wrapForCache(payload), 0)
	utils.Success(ctx, payload)
}

// Show renders one published post by slug with its approved comment thread
// and up to three related posts from the same category. Posts in any other
// status are indistinguishable from missing ones. The view counter is bumped
// before the cache is consulted so every hit counts, even if the rendered
// number lags.
func (bc *BlogController) Show(ctx *gin.Context) {
	slug := ctx.Param("slug")

	post, err := bc.Posts.GetBySlug(slug, repository.LoadOptions{Author: true, Category: true, Tags: true})
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("load post slug=%s failed: %v", slug, err)
		utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to load post")
		return
	}
	if post.Status != models.PostStatusPublished {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}

	if err := bc.Posts.IncrementViews(post.ID); err != nil {
		utils.Sugar.Warnf("increment views post=%d failed: %v", post.ID, err)
	}

	cacheKey := postShowCachePrefix + slug
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	thread, err := bc.Comments.Thread(post.ID)
	if err != nil {
		utils.Sugar.Errorf("load comments post=%d failed: %v", post.ID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50006, "failed to load comments")
		return
	}

	related, err := bc.Posts.Related(post.ID, post.CategoryID, relatedPostLimit)
	if err != nil {
		utils.Sugar.Errorf("load related posts post=%d failed: %v", post.ID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50007, "failed to load related posts")
		return
	}

	payload := gin.H{
		"post":          post,
		"comments":      thread,
		"related_posts": related,
	}

	utils.CacheSetJSON(cacheKey, wrapForCache(payload), 0)
	utils.Success(ctx, payload)
}
