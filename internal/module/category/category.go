package category

import (
	"campus-discover/internal/global/database"
	"campus-discover/internal/global/response"
	"campus-discover/internal/global/validate"
	"campus-discover/internal/model"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CreateCategoryReq struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"required,max=200"`
	Color       string `json:"color" binding:"required,hexcolor"`
	Icon        string `json:"icon" binding:"required"`
}

type UpdateCategoryReq struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,min=1,max=200"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	Icon        *string `json:"icon" binding:"omitempty,min=1"`
}

type categoryView struct {
	model.Category
	ActivityCount int64 `json:"activityCount"`
}

// ListCategories is public, ordered by name.
func ListCategories(c *gin.Context) {
	var categories []model.Category
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	views := make([]categoryView, len(categories))
	counts, err := activityCounts()
	if err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}
	for i, cat := range categories {
		views[i] = categoryView{Category: cat, ActivityCount: counts[cat.ID]}
	}

	c.JSON(http.StatusOK, gin.H{"categories": views})
}

func GetCategory(c *gin.Context) {
	id, perr := validate.ParamID(c, "id")
	if perr != nil {
		response.Fail(c, perr)
		return
	}

	var category model.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithMessage("Category not found"))
		} else {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
		}
		return
	}

	count, err := referencingActivities(id)
	if err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": categoryView{Category: category, ActivityCount: count}})
}

// CreateCategory adds a category; names are globally unique.
func CreateCategory(c *gin.Context) {
	var req CreateCategoryReq
	if err := validate.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	if conflict, err := nameTaken(req.Name, 0); err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	} else if conflict {
		response.Fail(c, response.New(http.StatusBadRequest, "Category name already exists"))
		return
	}

	category := model.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		// The unique index closes the window a racing create leaves open.
		if isDuplicateErr(err) {
			response.Fail(c, response.New(http.StatusBadRequest, "Category name already exists"))
			return
		}
		log.Error("create category failed", "error", err, "name", req.Name)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	log.Info("category created", "category_id", category.ID, "name", category.Name)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}

func UpdateCategory(c *gin.Context) {
	id, perr := validate.ParamID(c, "id")
	if perr != nil {
		response.Fail(c, perr)
		return
	}

	var req UpdateCategoryReq
	if err := validate.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	var category model.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithMessage("Category not found"))
		} else {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
		}
		return
	}

	if req.Name != nil && *req.Name != category.Name {
		if conflict, err := nameTaken(*req.Name, category.ID); err != nil {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
			return
		} else if conflict {
			response.Fail(c, response.New(http.StatusBadRequest, "Category name already exists"))
			return
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}

	if err := database.DB.Save(&category).Error; err != nil {
		if isDuplicateErr(err) {
			response.Fail(c, response.New(http.StatusBadRequest, "Category name already exists"))
			return
		}
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory refuses while activities still reference the category,
// checked up front so the foreign key never surfaces as a 500.
func DeleteCategory(c *gin.Context) {
	id, perr := validate.ParamID(c, "id")
	if perr != nil {
		response.Fail(c, perr)
		return
	}

	var category model.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithMessage("Category not found"))
		} else {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
		}
		return
	}

	count, err := referencingActivities(id)
	if err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}
	if count > 0 {
		response.Fail(c, response.New(http.StatusBadRequest, "Cannot delete category with existing activities"))
		return
	}

	// Remove the row outright: a soft-deleted category would keep
	// occupying the unique name index and block re-creating the name.
	if err := database.DB.Unscoped().Delete(&category).Error; err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	log.Info("category deleted", "category_id", id, "name", category.Name)

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func nameTaken(name string, excludeID uint) (bool, error) {
	var n int64
	query := database.DB.Model(&model.Category{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func referencingActivities(categoryID uint) (int64, error) {
	var n int64
	err := database.DB.Model(&model.Activity{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

func activityCounts() (map[uint]int64, error) {
	var rows []struct {
		CategoryID uint
		N          int64
	}
	err := database.DB.Model(&model.Activity{}).
		Select("category_id, COUNT(*) AS n").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.N
	}
	return counts, nil
}

func isDuplicateErr(err error) bool {
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "duplicate") || strings.Contains(text, "unique")
}
