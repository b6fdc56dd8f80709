package seed

import (
	"context"
	"strings"
	"testing"

	"labook/internal/auth"
	"labook/internal/config"
	"labook/internal/database"
	"labook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Env:            "test",
		DBSchemaMode:   database.SchemaModeAuto,
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}
	db, err := database.Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.ApplySchema(context.Background(), db, cfg))
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeeder_Seed(t *testing.T) {
	db := setupSQLiteDB(t)
	ctx := context.Background()
	hasher := auth.NewHashManager(bcrypt.MinCost)
	s := NewSeeder(db, hasher, 42)

	opts := Options{
		NumUsers:        6,
		NumPosts:        10,
		FriendsPerUser:  2,
		LikesPerPost:    3,
		CommentsPerPost: 1,
	}
	require.NoError(t, s.Seed(ctx, opts))

	assert.Equal(t, int64(6), count(t, db, &models.User{}))
	assert.Equal(t, int64(10), count(t, db, &models.Post{}))
	assert.Equal(t, int64(10), count(t, db, &models.Comment{}))
	assert.Positive(t, count(t, db, &models.Friendship{}))
	assert.Positive(t, count(t, db, &models.Like{}))

	var friendships []models.Friendship
	require.NoError(t, db.Find(&friendships).Error)
	for _, f := range friendships {
		assert.Less(t, f.UserOneID, f.UserTwoID, "pairs are stored sorted")
	}

	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.True(t, hasher.Compare(DefaultPassword, user.Password))
	assert.True(t, strings.Contains(user.Email, "@"))

	opts.ShouldClean = true
	opts.NumUsers = 2
	opts.NumPosts = 1
	require.NoError(t, NewSeeder(db, hasher, 7).Seed(ctx, opts))
	assert.Equal(t, int64(2), count(t, db, &models.User{}))
	assert.Equal(t, int64(1), count(t, db, &models.Post{}))
}

func TestSeeder_EmptyInputs(t *testing.T) {
	db := setupSQLiteDB(t)
	ctx := context.Background()
	s := NewSeeder(db, auth.NewHashManager(bcrypt.MinCost), 1)

	users, err := s.SeedUsers(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, users)

	n, err := s.SeedFriendships(ctx, []models.User{{ID: "solo"}}, 3)
	require.NoError(t, err)
	assert.Zero(t, n)

	posts, err := s.SeedPosts(ctx, nil, 5)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
