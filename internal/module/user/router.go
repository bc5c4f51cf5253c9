package user

import (
	"campus-discover/internal/global/middleware"
	"campus-discover/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/users")
	userGroup.Use(middleware.Auth())

	admin := middleware.RequireRoles(model.RoleAdmin)
	userGroup.GET("", admin, ListUsers)
	userGroup.GET("/export", admin, ExportUsers)
	userGroup.PATCH("/:id/role", admin, UpdateRole)
	userGroup.PATCH("/:id/deactivate", admin, Deactivate)
	userGroup.PATCH("/:id/activate", admin, Activate)

	// Profile access is checked in the handler: self or privileged.
	userGroup.GET("/:id", GetUser)
}
