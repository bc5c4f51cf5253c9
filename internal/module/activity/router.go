package activity

import (
	"campus-discover/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleActivity) InitRouter(r *gin.RouterGroup) {
	activityGroup := r.Group("/activities")

	// Browsing is public; a presented token only adds isLiked state.
	activityGroup.GET("", middleware.OptionalAuth(), ListActivities)
	activityGroup.GET("/:id", middleware.OptionalAuth(), GetActivity)

	activityGroup.POST("", middleware.Auth(), CreateActivity)
	activityGroup.PUT("/:id", middleware.Auth(), UpdateActivity)
	activityGroup.DELETE("/:id", middleware.Auth(), DeleteActivity)
	activityGroup.POST("/:id/like", middleware.Auth(), ToggleLike)
	activityGroup.POST("/:id/comments", middleware.Auth(), AddComment)
}
