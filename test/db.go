// Package test provides fixtures for route-level tests: a fresh
// in-memory database per test and helpers to seed users and issue
// tokens.
package test

import (
	"campus-discover/config"
	"campus-discover/internal/global/database"
	"campus-discover/internal/global/jwt"
	"campus-discover/internal/global/validate"
	"campus-discover/internal/model"
	"campus-discover/tools"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var setupOnce sync.Once

// Setup initializes config and the validator once, then swaps in a
// fresh in-memory database for this test.
func Setup(t *testing.T) {
	setupOnce.Do(func() {
		os.Setenv("ACCESS_SECRET", "test-secret")
		config.Init()
		gin.SetMode(gin.TestMode)
		validate.Init()
	})

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), database.NewGormConfig())
	require.NoError(t, err)

	// cache=shared keeps the schema visible across pooled connections,
	// but it also shares state across gorm.Open calls. Drop everything
	// before migrating so each test starts clean.
	for _, table := range []string{"like", "comment", "activity", "category", "user"} {
		require.NoError(t, db.Exec(`DROP TABLE IF EXISTS "`+table+`"`).Error)
	}
	require.NoError(t, database.Migrate(db))

	database.DB = db
}

var userSeq int

// CreateUser seeds a user with a bcrypt password of "password123".
// Email and username are derived from the name to stay unique.
func CreateUser(t *testing.T, name, role string) *model.User {
	userSeq++
	u := &model.User{
		Email:     fmt.Sprintf("%s%d@campus.edu", name, userSeq),
		Username:  fmt.Sprintf("%s%d", name, userSeq),
		FirstName: name,
		LastName:  "Tester",
		Password:  tools.PasswordEncrypt("password123"),
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, database.DB.Create(u).Error)
	return u
}

// Token issues a signed access token for the given user.
func Token(u *model.User) string {
	return jwt.CreateToken(u.ID)
}
