package activity

import (
	"campus-discover/internal/global/database"
	"campus-discover/internal/global/jwt"
	"campus-discover/internal/global/response"
	"campus-discover/internal/global/validate"
	"campus-discover/internal/model"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CreateCommentReq struct {
	Content string `json:"content" binding:"required,max=500"`
}

// ToggleLike flips the caller's like on an activity and reports the
// resulting state.
func ToggleLike(c *gin.Context) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrTokenRequired)
		return
	}
	id, perr := validate.ParamID(c, "id")
	if perr != nil {
		response.Fail(c, perr)
		return
	}

	if err := activityExists(id); err != nil {
		response.Fail(c, err)
		return
	}

	var like model.Like
	err := database.DB.Where("user_id = ? AND activity_id = ?", payload.ID, id).First(&like).Error
	switch {
	case err == nil:
		if err := database.DB.Delete(&like).Error; err != nil {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Activity unliked", "isLiked": false})
	case errors.Is(err, gorm.ErrRecordNotFound):
		like = model.Like{UserID: payload.ID, ActivityID: id}
		if err := database.DB.Create(&like).Error; err != nil {
			// A racing like already won; the end state is the same.
			if !isDuplicateErr(err) {
				response.Fail(c, response.ErrInternal.WithOrigin(err))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Activity liked", "isLiked": true})
	default:
		response.Fail(c, response.ErrInternal.WithOrigin(err))
	}
}

// AddComment attaches a comment by the caller to an existing activity.
func AddComment(c *gin.Context) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrTokenRequired)
		return
	}
	id, perr := validate.ParamID(c, "id")
	if perr != nil {
		response.Fail(c, perr)
		return
	}

	var req CreateCommentReq
	if err := validate.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	if err := activityExists(id); err != nil {
		response.Fail(c, err)
		return
	}

	comment := model.Comment{
		Content:    req.Content,
		ActivityID: id,
		AuthorID:   payload.ID,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	if err := database.DB.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	log.Info("comment added", "activity_id", id, "author_id", payload.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

func activityExists(id uint) *response.Error {
	var n int64
	err := database.DB.Model(&model.Activity{}).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return response.ErrInternal.WithOrigin(err)
	}
	if n == 0 {
		return response.ErrNotFound.WithMessage("Activity not found")
	}
	return nil
}

func isDuplicateErr(err error) bool {
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "duplicate") || strings.Contains(text, "unique")
}
