package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/models"
	"inkwell/repository"
	"inkwell/utils"
)

const tagRecentPostLimit = 10

// AdminTagController manages tags. Tag names and slugs are both unique;
// deleting a tag detaches it from posts without touching them.
type AdminTagController struct {
	Tags repository.TagStore
}

func NewAdminTagController(tags repository.TagStore) *AdminTagController {
	return &AdminTagController{Tags: tags}
}

type TagInput struct {
	Name  string `json:"name" binding:"required,max=50"`
	Slug  string `json:"slug" binding:"omitempty,max=50"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

// Index lists tags with their post counts.
func (tc *AdminTagController) Index(ctx *gin.Context) {
	page, perPage := parsePagination(ctx.Query("page"), ctx.Query("per_page"))
	filter := repository.TaxonomyFilter{
		Search:  ctx.Query("search"),
		Page:    page,
		PerPage: perPage,
	}

	tagPage, err := tc.Tags.List(filter)
	if err != nil {
		utils.Sugar.Errorf("admin list tags failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load tags")
		return
	}

	utils.Success(ctx, gin.H{
		"tags":       tagPage.Items,
		"pagination": tagPage.Pagination,
	})
}

// Show returns one tag with its ten most recent posts.
func (tc *AdminTagController) Show(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40405, "tag not found")
		return
	}

	tag, posts, err := tc.Tags.GetByID(id, tagRecentPostLimit)
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40405, "tag not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("admin load tag id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to load tag")
		return
	}

	utils.Success(ctx, gin.H{"tag": tag, "recent_posts": posts})
}

func (tc *AdminTagController) Store(ctx *gin.Context) {
	var input TagInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ValidationError(ctx, 42251, validationFields(input, err))
		return
	}

	fields, err := tc.checkUnique(input, 0)
	if err != nil {
		utils.Sugar.Errorf("check tag uniqueness failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to validate tag")
		return
	}
	if len(fields) > 0 {
		utils.ValidationError(ctx, 42252, fields)
		return
	}

	tag := models.Tag{
		Name:  input.Name,
		Slug:  tc.slugFor(input),
		Color: input.Color,
	}
	if err := tc.Tags.Create(&tag); err != nil {
		utils.Sugar.Errorf("create tag failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50064, "failed to create tag")
		return
	}

	invalidatePostCaches()
	utils.Respond(ctx, http.StatusCreated, 0, "tag created", tag)
}

func (tc *AdminTagController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40405, "tag not found")
		return
	}

	tag, _, err := tc.Tags.GetByID(id, 0)
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40405, "tag not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("admin load tag id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to load tag")
		return
	}

	var input TagInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ValidationError(ctx, 42251, validationFields(input, err))
		return
	}

	fields, err := tc.checkUnique(input, id)
	if err != nil {
		utils.Sugar.Errorf("check tag uniqueness failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to validate tag")
		return
	}
	if len(fields) > 0 {
		utils.ValidationError(ctx, 42252, fields)
		return
	}

	tag.Name = input.Name
	tag.Slug = tc.slugFor(input)
	tag.Color = input.Color

	if err := tc.Tags.Update(tag); err != nil {
		utils.Sugar.Errorf("update tag id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50065, "failed to update tag")
		return
	}

	invalidatePostCaches()
	utils.Respond(ctx, http.StatusOK, 0, "tag updated", tag)
}

func (tc *AdminTagController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40405, "tag not found")
		return
	}

	if err := tc.Tags.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40405, "tag not found")
			return
		}
		utils.Sugar.Errorf("delete tag id=%d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50066, "failed to delete tag")
		return
	}

	invalidatePostCaches()
	utils.Respond(ctx, http.StatusOK, 0, "tag deleted", nil)
}

func (tc *AdminTagController) slugFor(input TagInput) string {
	if input.Slug != "" {
		return input.Slug
	}
	return utils.Slugify(input.Name)
}

func (tc *AdminTagController) checkUnique(input TagInput, excludeID uint) (map[string]string, error) {
	fields := map[string]string{}

	taken, err := tc.Tags.NameExists(input.Name, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		fields["name"] = "name is already in use"
	}

	taken, err = tc.Tags.SlugExists(tc.slugFor(input), excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		fields["slug"] = "slug is already in use"
	}

	return fields, nil
}
