package user

import (
	"campus-discover/internal/global/database"
	"campus-discover/internal/global/jwt"
	"campus-discover/internal/global/response"
	"campus-discover/internal/global/validate"
	"campus-discover/internal/model"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ListUsersReq struct {
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,oneof=STUDENT STUDENT_SENATE ADMIN"`
}

type UpdateRoleReq struct {
	Role string `json:"role"`
}

type userView struct {
	model.User
	ActivityCount int64 `json:"activityCount"`
	CommentCount  int64 `json:"commentCount"`
	LikeCount     int64 `json:"likeCount"`
}

// ListUsers is the admin roster: active users, searchable and
// filterable by role, paginated like the activity listing.
func ListUsers(c *gin.Context) {
	var req ListUsersReq
	if err := validate.BindQuery(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	page := validate.QueryInt(c, "page", 1)
	limit := validate.QueryInt(c, "limit", 20)

	query := rosterQuery(req)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	var users []model.User
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	views, verr := buildUserViews(users)
	if verr != nil {
		response.Fail(c, verr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": views,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

type profileCategory struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type profileActivity struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	StartTime    time.Time       `json:"startTime"`
	Status       string          `json:"status"`
	Category     profileCategory `json:"category"`
	LikeCount    int64           `json:"likeCount"`
	CommentCount int64           `json:"commentCount"`
}

type profileView struct {
	userView
	Activities []profileActivity `json:"activities"`
}

// GetUser returns a profile with the user's 10 most recent activities.
// Callers may only read their own profile unless privileged.
func GetUser(c *gin.Context) {
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

	if id != payload.ID && !model.Privileged(payload.Role) {
		response.Fail(c, response.New(http.StatusForbidden, "Not authorized to view this profile"))
		return
	}

	var u model.User
	if err := database.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithMessage("User not found"))
		} else {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
		}
		return
	}

	views, verr := buildUserViews([]model.User{u})
	if verr != nil {
		response.Fail(c, verr)
		return
	}

	var recent []model.Activity
	err := database.DB.
		Preload("Category").
		Where("author_id = ?", id).
		Order("created_at DESC").
		Limit(10).
		Find(&recent).Error
	if err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	activities := make([]profileActivity, len(recent))
	for i, a := range recent {
		activities[i] = profileActivity{
			ID:        a.ID,
			Title:     a.Title,
			StartTime: a.StartTime,
			Status:    a.Status,
			Category:  profileCategory{Name: a.Category.Name, Color: a.Category.Color},
		}
		if err := database.DB.Model(&model.Like{}).
			Where("activity_id = ?", a.ID).Count(&activities[i].LikeCount).Error; err != nil {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
			return
		}
		if err := database.DB.Model(&model.Comment{}).
			Where("activity_id = ?", a.ID).Count(&activities[i].CommentCount).Error; err != nil {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": profileView{
		userView:   views[0],
		Activities: activities,
	}})
}

// UpdateRole moves a user between privilege tiers.
func UpdateRole(c *gin.Context) {
	id, perr := validate.ParamID(c, "id")
	if perr != nil {
		response.Fail(c, perr)
		return
	}

	var req UpdateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil || !model.ValidRole(req.Role) {
		response.Fail(c, response.New(http.StatusBadRequest, "Invalid role"))
		return
	}

	u, ferr := findUser(id)
	if ferr != nil {
		response.Fail(c, ferr)
		return
	}

	u.Role = req.Role
	if err := database.DB.Save(u).Error; err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	log.Info("user role updated", "user_id", id, "role", req.Role)

	c.JSON(http.StatusOK, gin.H{
		"message": "User role updated successfully",
		"user":    u,
	})
}

// Deactivate flips the active flag off; the next authenticated request
// by that user is rejected by the middleware's re-check.
func Deactivate(c *gin.Context) {
	setActive(c, false,
		"User is already deactivated",
		"User deactivated successfully")
}

func Activate(c *gin.Context) {
	setActive(c, true,
		"User is already active",
		"User activated successfully")
}

func setActive(c *gin.Context, active bool, alreadyMsg, okMsg string) {
	id, perr := validate.ParamID(c, "id")
	if perr != nil {
		response.Fail(c, perr)
		return
	}

	u, ferr := findUser(id)
	if ferr != nil {
		response.Fail(c, ferr)
		return
	}

	if u.IsActive == active {
		response.Fail(c, response.New(http.StatusBadRequest, alreadyMsg))
		return
	}

	u.IsActive = active
	if err := database.DB.Save(u).Error; err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	log.Info("user active flag changed", "user_id", id, "active", active)

	c.JSON(http.StatusOK, gin.H{
		"message": okMsg,
		"user":    u,
	})
}

func findUser(id uint) (*model.User, *response.Error) {
	var u model.User
	if err := database.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrNotFound.WithMessage("User not found")
		}
		return nil, response.ErrInternal.WithOrigin(err)
	}
	return &u, nil
}

func rosterQuery(req ListUsersReq) *gorm.DB {
	query := database.DB.Model(&model.User{}).Where("is_active = ?", true)

	if req.Search != "" {
		pattern := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(username) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	return query
}

func buildUserViews(users []model.User) ([]userView, *response.Error) {
	views := make([]userView, len(users))
	if len(users) == 0 {
		return views, nil
	}

	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
		views[i] = userView{User: u}
	}

	type countRow struct {
		OwnerID uint
		N       int64
	}
	collect := func(m any, column string) (map[uint]int64, *response.Error) {
		var rows []countRow
		err := database.DB.Model(m).
			Select(column + " AS owner_id, COUNT(*) AS n").
			Where(column+" IN ?", ids).
			Group(column).
			Scan(&rows).Error
		if err != nil {
			return nil, response.ErrInternal.WithOrigin(err)
		}
		counts := make(map[uint]int64, len(rows))
		for _, row := range rows {
			counts[row.OwnerID] = row.N
		}
		return counts, nil
	}

	activityCounts, err := collect(&model.Activity{}, "author_id")
	if err != nil {
		return nil, err
	}
	commentCounts, err := collect(&model.Comment{}, "author_id")
	if err != nil {
		return nil, err
	}
	likeCounts, err := collect(&model.Like{}, "user_id")
	if err != nil {
		return nil, err
	}

	for i := range views {
		id := views[i].User.ID
		views[i].ActivityCount = activityCounts[id]
		views[i].CommentCount = commentCounts[id]
		views[i].LikeCount = likeCounts[id]
	}
	return views, nil
}
