package auth

import (
	"campus-discover/internal/global/database"
	"campus-discover/internal/global/jwt"
	"campus-discover/internal/global/response"
	"campus-discover/internal/global/validate"
	"campus-discover/internal/model"
	"campus-discover/tools"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type RegisterReq struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,min=3,max=30"`
	FirstName string `json:"firstName" binding:"required,max=50"`
	LastName  string `json:"lastName" binding:"required,max=50"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new STUDENT account and returns it with a token.
func Register(c *gin.Context) {
	var req RegisterReq
	if err := validate.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	// Pre-check so the caller learns which field conflicted; the unique
	// indexes remain the source of truth under concurrent registration.
	var existing model.User
	err := database.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error
	if err == nil {
		if existing.Email == req.Email {
			response.Fail(c, response.New(http.StatusBadRequest, "Email already registered"))
		} else {
			response.Fail(c, response.New(http.StatusBadRequest, "Username already taken"))
		}
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	user := model.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  tools.PasswordEncrypt(req.Password),
		Role:      model.RoleStudent,
		IsActive:  true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		if msg, dup := duplicateMessage(err); dup {
			response.Fail(c, response.New(http.StatusBadRequest, msg))
			return
		}
		log.Error("create user failed", "error", err, "email", req.Email)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
		"token":   jwt.CreateToken(user.ID),
	})
}

// Login verifies the password for an active account.
func Login(c *gin.Context) {
	var req LoginReq
	if err := validate.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	var user model.User
	err := database.DB.Where("email = ?", req.Email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.New(http.StatusUnauthorized, "Invalid credentials"))
		return
	case err != nil:
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	if !user.IsActive || !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("login rejected", "email", req.Email)
		response.Fail(c, response.New(http.StatusUnauthorized, "Invalid credentials"))
		return
	}

	log.Info("user logged in", "user_id", user.ID, "role", user.Role)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   jwt.CreateToken(user.ID),
	})
}

type userWithCounts struct {
	model.User
	ActivityCount int64 `json:"activityCount"`
	CommentCount  int64 `json:"commentCount"`
	LikeCount     int64 `json:"likeCount"`
}

// Me returns the caller's profile with aggregate engagement counts.
func Me(c *gin.Context) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrTokenRequired)
		return
	}

	var user model.User
	if err := database.DB.First(&user, payload.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithMessage("User not found"))
		} else {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
		}
		return
	}

	out := userWithCounts{User: user}
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&out.ActivityCount, database.DB.Model(&model.Activity{}).Where("author_id = ?", user.ID)},
		{&out.CommentCount, database.DB.Model(&model.Comment{}).Where("author_id = ?", user.ID)},
		{&out.LikeCount, database.DB.Model(&model.Like{}).Where("user_id = ?", user.ID)},
	}
	for _, q := range counts {
		if err := q.query.Count(q.dst).Error; err != nil {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": out})
}

// Refresh issues a fresh token for the already-authenticated caller.
func Refresh(c *gin.Context) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrTokenRequired)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"token":   jwt.CreateToken(payload.ID),
	})
}

// duplicateMessage maps a unique-index violation from a racing insert
// onto the same conflict messages as the pre-check.
func duplicateMessage(err error) (string, bool) {
	text := strings.ToLower(err.Error())
	if !strings.Contains(text, "duplicate") && !strings.Contains(text, "unique") {
		return "", false
	}
	if strings.Contains(text, "username") {
		return "Username already taken", true
	}
	if strings.Contains(text, "email") {
		return "Email already registered", true
	}
	return "Email or username already in use", true
}
