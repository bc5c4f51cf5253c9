package activity

import (
	"campus-discover/internal/global/database"
	"campus-discover/internal/global/jwt"
	"campus-discover/internal/global/response"
	"campus-discover/internal/global/validate"
	"campus-discover/internal/model"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ListActivitiesReq struct {
	Category  string   `form:"category"`
	Status    string   `form:"status" binding:"omitempty,oneof=UPCOMING ONGOING COMPLETED CANCELLED"`
	StartDate string   `form:"startDate"`
	EndDate   string   `form:"endDate"`
	Search    string   `form:"search"`
	Tags      []string `form:"tags"`
}

type CreateActivityReq struct {
	Title        string     `json:"title" binding:"required,max=200"`
	Description  string     `json:"description" binding:"required,max=2000"`
	Location     string     `json:"location"`
	StartTime    time.Time  `json:"startTime" binding:"required"`
	EndTime      *time.Time `json:"endTime"`
	CategoryID   uint       `json:"categoryId" binding:"required"`
	ImageURL     string     `json:"imageUrl" binding:"omitempty,url"`
	MaxAttendees *int       `json:"maxAttendees" binding:"omitempty,gt=0"`
	Tags         []string   `json:"tags"`
}

type UpdateActivityReq struct {
	Title        *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string    `json:"description" binding:"omitempty,min=1,max=2000"`
	Location     *string    `json:"location"`
	StartTime    *time.Time `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	Status       *string    `json:"status" binding:"omitempty,oneof=UPCOMING ONGOING COMPLETED CANCELLED"`
	CategoryID   *uint      `json:"categoryId"`
	ImageURL     *string    `json:"imageUrl" binding:"omitempty,url"`
	MaxAttendees *int       `json:"maxAttendees" binding:"omitempty,gt=0"`
	Tags         *[]string  `json:"tags"`
}

// ListActivities returns a filtered, paginated page of activities
// ordered by start time.
func ListActivities(c *gin.Context) {
	var req ListActivitiesReq
	if err := validate.BindQuery(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	page := validate.QueryInt(c, "page", 1)
	limit := validate.QueryInt(c, "limit", 20)

	query := database.DB.Model(&model.Activity{})

	// Cancelled activities are hidden unless asked for explicitly.
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	} else {
		query = query.Where("status <> ?", model.StatusCancelled)
	}

	if req.Category != "" {
		categoryID, err := strconv.ParseUint(req.Category, 10, 0)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithMessage("Validation failed: category: is invalid"))
			return
		}
		query = query.Where("category_id = ?", uint(categoryID))
	}

	if req.StartDate != "" {
		from, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithMessage("Validation failed: startDate: is invalid"))
			return
		}
		query = query.Where("start_time >= ?", from)
	}
	if req.EndDate != "" {
		to, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithMessage("Validation failed: endDate: is invalid"))
			return
		}
		query = query.Where("start_time <= ?", to)
	}

	if req.Search != "" {
		pattern := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if tags := splitTags(req.Tags); len(tags) > 0 {
		// Tags are stored as a JSON array of strings, so an element
		// match is a LIKE on its quoted form.
		cond := database.DB.Where("tags LIKE ? ESCAPE '!'", tagPattern(tags[0]))
		for _, tag := range tags[1:] {
			cond = cond.Or("tags LIKE ? ESCAPE '!'", tagPattern(tag))
		}
		query = query.Where(cond)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	var activities []model.Activity
	err := query.
		Preload("Author").
		Preload("Category").
		Order("start_time ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	viewer, _ := jwt.GetUserPayload(c)
	views, verr := buildViews(activities, viewer)
	if verr != nil {
		response.Fail(c, verr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": views,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// GetActivity returns one activity with its comments, newest first.
func GetActivity(c *gin.Context) {
	id, perr := validate.ParamID(c, "id")
	if perr != nil {
		response.Fail(c, perr)
		return
	}

	var activity model.Activity
	err := database.DB.
		Preload("Author").
		Preload("Category").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.Author").
		First(&activity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithMessage("Activity not found"))
		} else {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
		}
		return
	}

	viewer, _ := jwt.GetUserPayload(c)
	view, verr := buildView(activity, viewer)
	if verr != nil {
		response.Fail(c, verr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": view})
}

// CreateActivity records a new activity with the caller as author.
func CreateActivity(c *gin.Context) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrTokenRequired)
		return
	}

	var req CreateActivityReq
	if err := validate.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	if req.EndTime != nil && !req.EndTime.After(req.StartTime) {
		response.Fail(c, response.New(http.StatusBadRequest, "End time must be after start time"))
		return
	}

	var category model.Category
	if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.New(http.StatusBadRequest, "Invalid category"))
		} else {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
		}
		return
	}

	activity := model.Activity{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       model.StatusUpcoming,
		ImageURL:     req.ImageURL,
		MaxAttendees: req.MaxAttendees,
		Tags:         req.Tags,
		CategoryID:   req.CategoryID,
		AuthorID:     payload.ID,
	}

	if err := database.DB.Create(&activity).Error; err != nil {
		log.Error("create activity failed", "error", err, "title", req.Title)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	log.Info("activity created", "activity_id", activity.ID, "author_id", payload.ID)

	view, verr := reloadView(activity.ID, payload)
	if verr != nil {
		response.Fail(c, verr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Activity created successfully",
		"activity": view,
	})
}

// UpdateActivity applies a partial update; only the author or a
// privileged role may touch an activity.
func UpdateActivity(c *gin.Context) {
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

	var req UpdateActivityReq
	if err := validate.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	var activity model.Activity
	if err := database.DB.First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithMessage("Activity not found"))
		} else {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
		}
		return
	}

	if activity.AuthorID != payload.ID && !model.Privileged(payload.Role) {
		response.Fail(c, response.New(http.StatusForbidden, "Not authorized to update this activity"))
		return
	}

	// Re-validate the effective start/end pair when either moves.
	startTime := activity.StartTime
	if req.StartTime != nil {
		startTime = *req.StartTime
	}
	endTime := activity.EndTime
	if req.EndTime != nil {
		endTime = req.EndTime
	}
	if endTime != nil && !endTime.After(startTime) {
		response.Fail(c, response.New(http.StatusBadRequest, "End time must be after start time"))
		return
	}

	if req.CategoryID != nil && *req.CategoryID != activity.CategoryID {
		var category model.Category
		if err := database.DB.First(&category, *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Fail(c, response.New(http.StatusBadRequest, "Invalid category"))
			} else {
				response.Fail(c, response.ErrInternal.WithOrigin(err))
			}
			return
		}
		activity.CategoryID = *req.CategoryID
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Location != nil {
		activity.Location = *req.Location
	}
	activity.StartTime = startTime
	activity.EndTime = endTime
	if req.Status != nil {
		activity.Status = *req.Status
	}
	if req.ImageURL != nil {
		activity.ImageURL = *req.ImageURL
	}
	if req.MaxAttendees != nil {
		activity.MaxAttendees = req.MaxAttendees
	}
	if req.Tags != nil {
		activity.Tags = *req.Tags
	}

	if err := database.DB.Save(&activity).Error; err != nil {
		log.Error("update activity failed", "error", err, "activity_id", id)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	view, verr := reloadView(activity.ID, payload)
	if verr != nil {
		response.Fail(c, verr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Activity updated successfully",
		"activity": view,
	})
}

// DeleteActivity removes an activity; same authorization as update.
func DeleteActivity(c *gin.Context) {
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

	var activity model.Activity
	if err := database.DB.First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithMessage("Activity not found"))
		} else {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
		}
		return
	}

	if activity.AuthorID != payload.ID && !model.Privileged(payload.Role) {
		response.Fail(c, response.New(http.StatusForbidden, "Not authorized to delete this activity"))
		return
	}

	if err := database.DB.Delete(&activity).Error; err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	log.Info("activity deleted", "activity_id", id, "by", payload.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted successfully"})
}

// reloadView re-reads an activity with its associations for a response.
func reloadView(id uint, viewer *jwt.UserPayload) (*activityView, *response.Error) {
	var activity model.Activity
	err := database.DB.Preload("Author").Preload("Category").First(&activity, id).Error
	if err != nil {
		return nil, response.ErrInternal.WithOrigin(err)
	}
	view, err := buildView(activity, viewer)
	if err != nil {
		return nil, response.ErrInternal.WithOrigin(err)
	}
	return view, nil
}

func splitTags(raw []string) []string {
	var tags []string
	for _, chunk := range raw {
		for _, tag := range strings.Split(chunk, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// likeEscaper neutralizes LIKE metacharacters so a tag value can never
// act as a wildcard. "!" is the escape character in the tag queries; it
// needs no quoting of its own in SQL string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func tagPattern(tag string) string {
	return `%"` + likeEscaper.Replace(tag) + `"%`
}
