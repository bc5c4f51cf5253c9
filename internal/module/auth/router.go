package auth

import (
	"campus-discover/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (a *ModuleAuth) InitRouter(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")

	authGroup.POST("/register", Register)
	authGroup.POST("/login", Login)

	authGroup.GET("/me", middleware.Auth(), Me)
	authGroup.POST("/refresh", middleware.Auth(), Refresh)
}
