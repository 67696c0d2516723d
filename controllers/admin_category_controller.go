package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/models"
	"inkwell/repository"
	"inkwell/utils"
)

// AdminCategoryController manages categories. Deleting one takes its posts
// down with it.
type AdminCategoryController struct {
	Categories repository.CategoryStore
}

func NewAdminCategoryController(categories repository.CategoryStore) *AdminCategoryController {
	return &AdminCategoryController{Categories: categories}
}

type CategoryInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Slug        string `json:"slug" binding:"omitempty,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
}

// Index lists categories with their post counts.
func (ctc *AdminCategoryController) Index(ctx *gin.Context) {
	page, perPage := parsePagination(ctx.Query("page"), ctx.Query("per_page"))
	filter := repository.TaxonomyFilter{
		Search:  ctx.Query("search"),
		Page:    page,
		PerPage: perPage,
	}

	categoryPage, err := ctc.Categories.List(filter)
	if err != nil {
		utils.Sugar.Errorf("admin list categories failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load categories")
		return
	}

	utils.Success(ctx, gin.H{
		"categories": categoryPage.Items,
		"pagination": categoryPage.Pagination,
	})
}

func (ctc *AdminCategoryController) Show(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40404, "category not found")
		return
	}

	category, err := ctc.Categories.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40404, "category not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("admin load category id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load category")
		return
	}

	utils.Success(ctx, category)
}

// Store creates a category; the slug falls back to a slugified name and must
// be unique either way.
func (ctc *AdminCategoryController) Store(ctx *gin.Context) {
	var input CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ValidationError(ctx, 42241, validationFields(input, err))
		return
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}
	taken, err := ctc.Categories.SlugExists(slug, 0)
	if err != nil {
		utils.Sugar.Errorf("check category slug failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to validate slug")
		return
	}
	if taken {
		utils.ValidationError(ctx, 42242, map[string]string{"slug": "slug is already in use"})
		return
	}

	category := models.Category{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Color:       input.Color,
	}
	if err := ctc.Categories.Create(&category); err != nil {
		utils.Sugar.Errorf("create category failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to create category")
		return
	}

	invalidatePostCaches()
	utils.Respond(ctx, http.StatusCreated, 0, "category created", category)
}

func (ctc *AdminCategoryController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40404, "category not found")
		return
	}

	category, err := ctc.Categories.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40404, "category not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("admin load category id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load category")
		return
	}

	var input CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ValidationError(ctx, 42241, validationFields(input, err))
		return
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}
	taken, err := ctc.Categories.SlugExists(slug, id)
	if err != nil {
		utils.Sugar.Errorf("check category slug failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to validate slug")
		return
	}
	if taken {
		utils.ValidationError(ctx, 42242, map[string]string{"slug": "slug is already in use"})
		return
	}

	category.Name = input.Name
	category.Slug = slug
	category.Description = input.Description
	category.Color = input.Color

	if err := ctc.Categories.Update(category); err != nil {
		utils.Sugar.Errorf("update category id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50055, "failed to update category")
		return
	}

	invalidatePostCaches()
	utils.Respond(ctx, http.StatusOK, 0, "category updated", category)
}

// Destroy deletes the category and every post filed under it, together with
// those posts' comments and tag links.
func (ctc *AdminCategoryController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40404, "category not found")
		return
	}

	if err := ctc.Categories.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40404, "category not found")
			return
		}
		utils.Sugar.Errorf("delete category id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50056, "failed to delete category")
		return
	}

	invalidatePostCaches()
	utils.Respond(ctx, http.StatusOK, 0, "category deleted", nil)
}
