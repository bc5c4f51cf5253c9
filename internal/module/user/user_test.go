package user_test

import (
	"campus-discover/internal/global/database"
	"campus-discover/internal/model"
	"campus-discover/test"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type rosterBody struct {
	Users []struct {
		ID            uint   `json:"id"`
		Username      string `json:"username"`
		Email         string `json:"email"`
		Role          string `json:"role"`
		ActivityCount int64  `json:"activityCount"`
	} `json:"users"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

func TestListUsers(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	admin := test.CreateUser(t, "admin", model.RoleAdmin)
	test.CreateUser(t, "alice", model.RoleStudent)
	inactive := test.CreateUser(t, "bob", model.RoleStudent)
	require.NoError(t, database.DB.Model(inactive).Update("is_active", false).Error)

	w := test.DoRequest(t, r, http.MethodGet, "/api/users", nil, test.Token(admin))
	require.Equal(t, http.StatusOK, w.Code)

	var body rosterBody
	test.Decode(t, w, &body)
	// Deactivated accounts are hidden from the roster.
	require.Equal(t, int64(2), body.Pagination.Total)
	for _, u := range body.Users {
		require.NotEqual(t, inactive.ID, u.ID)
	}
}

func TestListUsersFilters(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	admin := test.CreateUser(t, "admin", model.RoleAdmin)
	alice := test.CreateUser(t, "alice", model.RoleStudent)
	test.CreateUser(t, "senate", model.RoleStudentSenate)

	var body rosterBody

	w := test.DoRequest(t, r, http.MethodGet, "/api/users?search=alice", nil, test.Token(admin))
	test.Decode(t, w, &body)
	require.Len(t, body.Users, 1)
	require.Equal(t, alice.ID, body.Users[0].ID)

	w = test.DoRequest(t, r, http.MethodGet, "/api/users?role=STUDENT_SENATE", nil, test.Token(admin))
	test.Decode(t, w, &body)
	require.Len(t, body.Users, 1)
	require.Equal(t, model.RoleStudentSenate, body.Users[0].Role)

	w = test.DoRequest(t, r, http.MethodGet, "/api/users?role=WIZARD", nil, test.Token(admin))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserProfileAuthorization(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	alice := test.CreateUser(t, "alice", model.RoleStudent)
	bob := test.CreateUser(t, "bob", model.RoleStudent)
	senate := test.CreateUser(t, "senate", model.RoleStudentSenate)
	path := fmt.Sprintf("/api/users/%d", alice.ID)

	// Self.
	w := test.DoRequest(t, r, http.MethodGet, path, nil, test.Token(alice))
	require.Equal(t, http.StatusOK, w.Code)

	// Another student.
	w = test.DoRequest(t, r, http.MethodGet, path, nil, test.Token(bob))
	test.ErrorEqual(t, w, http.StatusForbidden, "Not authorized to view this profile")

	// Privileged role.
	w = test.DoRequest(t, r, http.MethodGet, path, nil, test.Token(senate))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetUserProfileActivities(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	alice := test.CreateUser(t, "alice", model.RoleStudent)

	cat := &model.Category{Name: "Tech", Description: "tech", Color: "#3B82F6", Icon: "cpu"}
	require.NoError(t, database.DB.Create(cat).Error)
	a := &model.Activity{
		Title:       "Hackathon",
		Description: "48 hours",
		StartTime:   time.Now().Add(24 * time.Hour),
		Status:      model.StatusUpcoming,
		CategoryID:  cat.ID,
		AuthorID:    alice.ID,
	}
	require.NoError(t, database.DB.Create(a).Error)

	w := test.DoRequest(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d", alice.ID), nil, test.Token(alice))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		User struct {
			ActivityCount int64 `json:"activityCount"`
			Activities    []struct {
				Title    string `json:"title"`
				Category struct {
					Name  string `json:"name"`
					Color string `json:"color"`
				} `json:"category"`
			} `json:"activities"`
		} `json:"user"`
	}
	test.Decode(t, w, &body)
	require.Equal(t, int64(1), body.User.ActivityCount)
	require.Len(t, body.User.Activities, 1)
	require.Equal(t, "Hackathon", body.User.Activities[0].Title)
	require.Equal(t, "Tech", body.User.Activities[0].Category.Name)
}

func TestUpdateRole(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	admin := test.CreateUser(t, "admin", model.RoleAdmin)
	alice := test.CreateUser(t, "alice", model.RoleStudent)
	path := fmt.Sprintf("/api/users/%d/role", alice.ID)

	w := test.DoRequest(t, r, http.MethodPatch, path, gin.H{"role": "WIZARD"}, test.Token(admin))
	test.ErrorEqual(t, w, http.StatusBadRequest, "Invalid role")

	w = test.DoRequest(t, r, http.MethodPatch, path, gin.H{"role": model.RoleStudentSenate}, test.Token(admin))
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded model.User
	require.NoError(t, database.DB.First(&reloaded, alice.ID).Error)
	require.Equal(t, model.RoleStudentSenate, reloaded.Role)
}

func TestDeactivateAndActivate(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	admin := test.CreateUser(t, "admin", model.RoleAdmin)
	alice := test.CreateUser(t, "alice", model.RoleStudent)

	deactivate := fmt.Sprintf("/api/users/%d/deactivate", alice.ID)
	activate := fmt.Sprintf("/api/users/%d/activate", alice.ID)

	w := test.DoRequest(t, r, http.MethodPatch, deactivate, nil, test.Token(admin))
	require.Equal(t, http.StatusOK, w.Code)

	w = test.DoRequest(t, r, http.MethodPatch, deactivate, nil, test.Token(admin))
	test.ErrorEqual(t, w, http.StatusBadRequest, "User is already deactivated")

	// The deactivated user is locked out immediately.
	w = test.DoRequest(t, r, http.MethodGet, "/api/auth/me", nil, test.Token(alice))
	test.ErrorEqual(t, w, http.StatusForbidden, "Invalid or expired token")

	w = test.DoRequest(t, r, http.MethodPatch, activate, nil, test.Token(admin))
	require.Equal(t, http.StatusOK, w.Code)

	w = test.DoRequest(t, r, http.MethodPatch, activate, nil, test.Token(admin))
	test.ErrorEqual(t, w, http.StatusBadRequest, "User is already active")

	w = test.DoRequest(t, r, http.MethodGet, "/api/auth/me", nil, test.Token(alice))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestExportUsers(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	admin := test.CreateUser(t, "admin", model.RoleAdmin)
	test.CreateUser(t, "alice", model.RoleStudent)

	w := test.DoRequest(t, r, http.MethodGet, "/api/users/export", nil, test.Token(admin))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "users-")
	require.NotEmpty(t, w.Body.Bytes())
}
