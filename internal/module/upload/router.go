package upload

import (
	"campus-discover/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleUpload) InitRouter(r *gin.RouterGroup) {
	uploadGroup := r.Group("/uploads")
	uploadGroup.Use(middleware.Auth())

	uploadGroup.POST("/presign", Presign)
}
