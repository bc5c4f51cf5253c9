package activity_test

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

func seedCategory(t *testing.T, name string) *model.Category {
	cat := &model.Category{
		Name:        name,
		Description: name + " activities",
		Color:       "#3B82F6",
		Icon:        "calendar",
	}
	require.NoError(t, database.DB.Create(cat).Error)
	return cat
}

func seedActivity(t *testing.T, author *model.User, cat *model.Category, title, status string, start time.Time) *model.Activity {
	a := &model.Activity{
		Title:       title,
		Description: "about " + title,
		Location:    "Main Hall",
		StartTime:   start,
		Status:      status,
		Tags:        []string{"campus"},
		CategoryID:  cat.ID,
		AuthorID:    author.ID,
	}
	require.NoError(t, database.DB.Create(a).Error)
	return a
}

type listBody struct {
	Activities []struct {
		ID           uint     `json:"id"`
		Title        string   `json:"title"`
		Status       string   `json:"status"`
		Tags         []string `json:"tags"`
		IsLiked      bool     `json:"isLiked"`
		LikeCount    int64    `json:"likeCount"`
		CommentCount int64    `json:"commentCount"`
		Author       struct {
			Username string `json:"username"`
		} `json:"author"`
		Category struct {
			Name string `json:"name"`
		} `json:"category"`
	} `json:"activities"`
	Pagination struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int64 `json:"pages"`
	} `json:"pagination"`
}

func TestListExcludesCancelledByDefault(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	u := test.CreateUser(t, "author", model.RoleStudent)
	cat := seedCategory(t, "Sports")
	now := time.Now()

	seedActivity(t, u, cat, "Football", model.StatusUpcoming, now.Add(24*time.Hour))
	seedActivity(t, u, cat, "Old Run", model.StatusCancelled, now.Add(48*time.Hour))

	w := test.DoRequest(t, r, http.MethodGet, "/api/activities", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body listBody
	test.Decode(t, w, &body)
	require.Len(t, body.Activities, 1)
	require.Equal(t, "Football", body.Activities[0].Title)

	// Cancelled shows up only when asked for explicitly.
	w = test.DoRequest(t, r, http.MethodGet, "/api/activities?status=CANCELLED", nil, "")
	test.Decode(t, w, &body)
	require.Len(t, body.Activities, 1)
	require.Equal(t, "Old Run", body.Activities[0].Title)
}

func TestListPagination(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	u := test.CreateUser(t, "author", model.RoleStudent)
	cat := seedCategory(t, "Music")
	now := time.Now()

	for i := 0; i < 25; i++ {
		seedActivity(t, u, cat, fmt.Sprintf("Concert %02d", i), model.StatusUpcoming,
			now.Add(time.Duration(i)*time.Hour))
	}

	w := test.DoRequest(t, r, http.MethodGet, "/api/activities?page=3&limit=10", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body listBody
	test.Decode(t, w, &body)
	require.Len(t, body.Activities, 5)
	require.Equal(t, int64(25), body.Pagination.Total)
	require.Equal(t, int64(3), body.Pagination.Pages)
	// Ordered by start time, so page 3 starts at the 21st activity.
	require.Equal(t, "Concert 20", body.Activities[0].Title)
}

func TestListFilters(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	u := test.CreateUser(t, "author", model.RoleStudent)
	sports := seedCategory(t, "Sports")
	music := seedCategory(t, "Music")
	now := time.Now()

	seedActivity(t, u, sports, "Basketball Finals", model.StatusUpcoming, now.Add(24*time.Hour))
	concert := seedActivity(t, u, music, "Jazz Night", model.StatusUpcoming, now.Add(72*time.Hour))
	concert.Tags = []string{"jazz", "evening"}
	require.NoError(t, database.DB.Save(concert).Error)

	var body listBody

	w := test.DoRequest(t, r, http.MethodGet, fmt.Sprintf("/api/activities?category=%d", music.ID), nil, "")
	test.Decode(t, w, &body)
	require.Len(t, body.Activities, 1)
	require.Equal(t, "Jazz Night", body.Activities[0].Title)

	w = test.DoRequest(t, r, http.MethodGet, "/api/activities?search=basketball", nil, "")
	test.Decode(t, w, &body)
	require.Len(t, body.Activities, 1)
	require.Equal(t, "Basketball Finals", body.Activities[0].Title)

	w = test.DoRequest(t, r, http.MethodGet, "/api/activities?tags=jazz", nil, "")
	test.Decode(t, w, &body)
	require.Len(t, body.Activities, 1)
	require.Equal(t, "Jazz Night", body.Activities[0].Title)

	// UTC keeps the RFC3339 value free of a "+" offset, which would be
	// decoded as a space in the query string.
	from := now.Add(48 * time.Hour).UTC().Format(time.RFC3339)
	w = test.DoRequest(t, r, http.MethodGet, "/api/activities?startDate="+from, nil, "")
	test.Decode(t, w, &body)
	require.Len(t, body.Activities, 1)
	require.Equal(t, "Jazz Night", body.Activities[0].Title)
}

func TestTagFilterMatchesLiterally(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	u := test.CreateUser(t, "author", model.RoleStudent)
	cat := seedCategory(t, "Music")
	seedActivity(t, u, cat, "Jazz Night", model.StatusUpcoming, time.Now().Add(24*time.Hour))

	var body listBody

	// LIKE metacharacters in a tag value must not act as wildcards.
	w := test.DoRequest(t, r, http.MethodGet, "/api/activities?tags=%25", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	test.Decode(t, w, &body)
	require.Empty(t, body.Activities)

	// "campus" is six characters, so six underscores would match it as
	// a pattern but not as a literal tag.
	w = test.DoRequest(t, r, http.MethodGet, "/api/activities?tags=______", nil, "")
	test.Decode(t, w, &body)
	require.Empty(t, body.Activities)

	w = test.DoRequest(t, r, http.MethodGet, "/api/activities?tags=campus", nil, "")
	test.Decode(t, w, &body)
	require.Len(t, body.Activities, 1)
	require.Equal(t, "Jazz Night", body.Activities[0].Title)
}

func TestListRejectsBadCategory(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)

	w := test.DoRequest(t, r, http.MethodGet, "/api/activities?category=sports", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetActivity(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	u := test.CreateUser(t, "author", model.RoleStudent)
	cat := seedCategory(t, "Tech")
	a := seedActivity(t, u, cat, "Hackathon", model.StatusUpcoming, time.Now().Add(24*time.Hour))

	w := test.DoRequest(t, r, http.MethodGet, fmt.Sprintf("/api/activities/%d", a.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Activity struct {
			Title    string `json:"title"`
			Category struct {
				Name string `json:"name"`
			} `json:"category"`
		} `json:"activity"`
	}
	test.Decode(t, w, &body)
	require.Equal(t, "Hackathon", body.Activity.Title)
	require.Equal(t, "Tech", body.Activity.Category.Name)
}

func TestGetActivityNotFound(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)

	w := test.DoRequest(t, r, http.MethodGet, "/api/activities/999", nil, "")
	test.ErrorEqual(t, w, http.StatusNotFound, "Activity not found")
}

func TestCreateActivity(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	u := test.CreateUser(t, "author", model.RoleStudent)
	cat := seedCategory(t, "Arts")
	start := time.Now().Add(24 * time.Hour)

	w := test.DoRequest(t, r, http.MethodPost, "/api/activities", gin.H{
		"title":       "Painting Workshop",
		"description": "Watercolors for beginners",
		"location":    "Art Building",
		"startTime":   start.Format(time.RFC3339),
		"endTime":     start.Add(2 * time.Hour).Format(time.RFC3339),
		"categoryId":  cat.ID,
		"tags":        []string{"art", "workshop"},
	}, test.Token(u))
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Message  string `json:"message"`
		Activity struct {
			ID       uint     `json:"id"`
			Status   string   `json:"status"`
			Tags     []string `json:"tags"`
			AuthorID uint     `json:"authorId"`
		} `json:"activity"`
	}
	test.Decode(t, w, &body)
	require.Equal(t, "Activity created successfully", body.Message)
	require.Equal(t, model.StatusUpcoming, body.Activity.Status)
	require.Equal(t, []string{"art", "workshop"}, body.Activity.Tags)
	require.Equal(t, u.ID, body.Activity.AuthorID)
}

func TestCreateActivityRejectsBadTimes(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	u := test.CreateUser(t, "author", model.RoleStudent)
	cat := seedCategory(t, "Arts")
	start := time.Now().Add(24 * time.Hour)

	w := test.DoRequest(t, r, http.MethodPost, "/api/activities", gin.H{
		"title":       "Backwards",
		"description": "ends before it starts",
		"startTime":   start.Format(time.RFC3339),
		"endTime":     start.Add(-time.Hour).Format(time.RFC3339),
		"categoryId":  cat.ID,
	}, test.Token(u))
	test.ErrorEqual(t, w, http.StatusBadRequest, "End time must be after start time")
}

func TestCreateActivityRejectsUnknownCategory(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	u := test.CreateUser(t, "author", model.RoleStudent)

	w := test.DoRequest(t, r, http.MethodPost, "/api/activities", gin.H{
		"title":       "Orphan",
		"description": "no category",
		"startTime":   time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"categoryId":  999,
	}, test.Token(u))
	test.ErrorEqual(t, w, http.StatusBadRequest, "Invalid category")
}

func TestUpdateActivityAuthorization(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	author := test.CreateUser(t, "author", model.RoleStudent)
	other := test.CreateUser(t, "other", model.RoleStudent)
	senate := test.CreateUser(t, "senate", model.RoleStudentSenate)
	cat := seedCategory(t, "Tech")
	a := seedActivity(t, author, cat, "Hackathon", model.StatusUpcoming, time.Now().Add(24*time.Hour))
	path := fmt.Sprintf("/api/activities/%d", a.ID)

	w := test.DoRequest(t, r, http.MethodPut, path, gin.H{"title": "Stolen"}, test.Token(other))
	test.ErrorEqual(t, w, http.StatusForbidden, "Not authorized to update this activity")

	w = test.DoRequest(t, r, http.MethodPut, path, gin.H{"title": "Hackathon 2.0"}, test.Token(author))
	require.Equal(t, http.StatusOK, w.Code)

	w = test.DoRequest(t, r, http.MethodPut, path, gin.H{"status": model.StatusCancelled}, test.Token(senate))
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded model.Activity
	require.NoError(t, database.DB.First(&reloaded, a.ID).Error)
	require.Equal(t, "Hackathon 2.0", reloaded.Title)
	require.Equal(t, model.StatusCancelled, reloaded.Status)
}

func TestDeleteActivityAuthorization(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	author := test.CreateUser(t, "author", model.RoleStudent)
	other := test.CreateUser(t, "other", model.RoleStudent)
	cat := seedCategory(t, "Tech")
	a := seedActivity(t, author, cat, "Hackathon", model.StatusUpcoming, time.Now().Add(24*time.Hour))
	path := fmt.Sprintf("/api/activities/%d", a.ID)

	w := test.DoRequest(t, r, http.MethodDelete, path, nil, test.Token(other))
	test.ErrorEqual(t, w, http.StatusForbidden, "Not authorized to delete this activity")

	w = test.DoRequest(t, r, http.MethodDelete, path, nil, test.Token(author))
	require.Equal(t, http.StatusOK, w.Code)

	var n int64
	require.NoError(t, database.DB.Model(&model.Activity{}).Where("id = ?", a.ID).Count(&n).Error)
	require.Zero(t, n)
}

func TestToggleLike(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	author := test.CreateUser(t, "author", model.RoleStudent)
	fan := test.CreateUser(t, "fan", model.RoleStudent)
	cat := seedCategory(t, "Music")
	a := seedActivity(t, author, cat, "Jazz Night", model.StatusUpcoming, time.Now().Add(24*time.Hour))
	path := fmt.Sprintf("/api/activities/%d/like", a.ID)

	var body struct {
		Message string `json:"message"`
		IsLiked bool   `json:"isLiked"`
	}

	w := test.DoRequest(t, r, http.MethodPost, path, nil, test.Token(fan))
	require.Equal(t, http.StatusOK, w.Code)
	test.Decode(t, w, &body)
	require.True(t, body.IsLiked)

	w = test.DoRequest(t, r, http.MethodPost, path, nil, test.Token(fan))
	test.Decode(t, w, &body)
	require.False(t, body.IsLiked)

	w = test.DoRequest(t, r, http.MethodPost, path, nil, test.Token(fan))
	test.Decode(t, w, &body)
	require.True(t, body.IsLiked)
}

func TestIsLikedScopedToViewer(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	author := test.CreateUser(t, "author", model.RoleStudent)
	fan := test.CreateUser(t, "fan", model.RoleStudent)
	bystander := test.CreateUser(t, "bystander", model.RoleStudent)
	cat := seedCategory(t, "Music")
	a := seedActivity(t, author, cat, "Jazz Night", model.StatusUpcoming, time.Now().Add(24*time.Hour))

	w := test.DoRequest(t, r, http.MethodPost, fmt.Sprintf("/api/activities/%d/like", a.ID), nil, test.Token(fan))
	require.Equal(t, http.StatusOK, w.Code)

	var body listBody

	w = test.DoRequest(t, r, http.MethodGet, "/api/activities", nil, test.Token(fan))
	test.Decode(t, w, &body)
	require.True(t, body.Activities[0].IsLiked)
	require.Equal(t, int64(1), body.Activities[0].LikeCount)

	w = test.DoRequest(t, r, http.MethodGet, "/api/activities", nil, test.Token(bystander))
	test.Decode(t, w, &body)
	require.False(t, body.Activities[0].IsLiked)
	require.Equal(t, int64(1), body.Activities[0].LikeCount)

	// Anonymous browsing never reports a like state.
	w = test.DoRequest(t, r, http.MethodGet, "/api/activities", nil, "")
	test.Decode(t, w, &body)
	require.False(t, body.Activities[0].IsLiked)
}

func TestAddComment(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	author := test.CreateUser(t, "author", model.RoleStudent)
	commenter := test.CreateUser(t, "commenter", model.RoleStudent)
	cat := seedCategory(t, "Tech")
	a := seedActivity(t, author, cat, "Hackathon", model.StatusUpcoming, time.Now().Add(24*time.Hour))

	w := test.DoRequest(t, r, http.MethodPost, fmt.Sprintf("/api/activities/%d/comments", a.ID),
		gin.H{"content": "Count me in"}, test.Token(commenter))
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Message string `json:"message"`
		Comment struct {
			Content string `json:"content"`
			Author  struct {
				Username string `json:"username"`
			} `json:"author"`
		} `json:"comment"`
	}
	test.Decode(t, w, &body)
	require.Equal(t, "Comment added successfully", body.Message)
	require.Equal(t, "Count me in", body.Comment.Content)
	require.Equal(t, commenter.Username, body.Comment.Author.Username)
}

func TestAddCommentUnknownActivity(t *testing.T) {
	test.Setup(t)
	r := test.NewEngine(t)
	u := test.CreateUser(t, "commenter", model.RoleStudent)

	w := test.DoRequest(t, r, http.MethodPost, "/api/activities/999/comments",
		gin.H{"content": "echo"}, test.Token(u))
	test.ErrorEqual(t, w, http.StatusNotFound, "Activity not found")
}
