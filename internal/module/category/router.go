package category

import (
	"campus-discover/internal/global/middleware"
	"campus-discover/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleCategory) InitRouter(r *gin.RouterGroup) {
	categoryGroup := r.Group("/categories")

	categoryGroup.GET("", ListCategories)
	categoryGroup.GET("/:id", GetCategory)

	manage := middleware.RequireRoles(model.RoleStudentSenate, model.RoleAdmin)
	categoryGroup.POST("", middleware.Auth(), manage, CreateCategory)
	categoryGroup.PUT("/:id", middleware.Auth(), manage, UpdateCategory)
	categoryGroup.DELETE("/:id", middleware.Auth(), manage, DeleteCategory)
}
