package crud

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socialnet/domain"
)

// testDB opens a fresh in-memory database for one test, migrated like the
// real postgres setup. TranslateError is on in both, so unique index
// violations surface identically.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		domain.User{},
		domain.Post{},
		domain.Follow{},
		domain.Like{},
	))
	return db
}

// testUser creates a user directly, skipping the validator chain that the
// user service tests cover on their own.
func testUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user := domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
		RememberHash: "remember-" + username,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// testPost creates a post for the given user with an explicit creation time.
func testPost(t *testing.T, db *gorm.DB, user *domain.User, content string, createdAt time.Time) *domain.Post {
	t.Helper()
	post := domain.Post{
		UserID:    user.ID,
		Content:   content,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&post).Error)
	return &post
}
