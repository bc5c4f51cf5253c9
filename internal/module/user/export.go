package user

import (
	"campus-discover/internal/global/response"
	"campus-discover/internal/global/validate"
	"campus-discover/internal/model"
	"campus-discover/tools"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type exportRow struct {
	ID        uint   `excel:"ID"`
	Email     string `excel:"Email"`
	Username  string `excel:"Username"`
	FirstName string `excel:"First Name"`
	LastName  string `excel:"Last Name"`
	Role      string `excel:"Role"`
	Active    string `excel:"Active"`
	CreatedAt string `excel:"Registered"`
}

// ExportUsers downloads the roster as a workbook, honoring the same
// search and role filters as ListUsers.
func ExportUsers(c *gin.Context) {
	var req ListUsersReq
	if err := validate.BindQuery(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	var users []model.User
	if err := rosterQuery(req).Order("created_at DESC").Find(&users).Error; err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	rows := make([]exportRow, len(users))
	for i, u := range users {
		active := "yes"
		if !u.IsActive {
			active = "no"
		}
		rows[i] = exportRow{
			ID:        u.ID,
			Email:     u.Email,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      u.Role,
			Active:    active,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := tools.ExportToExcel(f, "Users", rows); err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	name := "users-" + time.Now().Format("2006-01-02") + ".xlsx"
	if err := tools.SendExcel(c, f, name); err != nil {
		log.Error("failed to stream roster export", "error", err)
	}
}
