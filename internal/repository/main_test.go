package repository

import (
	"context"
	"testing"
	"time"

	"labook/internal/config"
	"labook/internal/database"
	"labook/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupMockDB backs GORM's postgres dialector with sqlmock for SQL shape tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// setupSQLiteDB returns an in-memory SQLite database with the full schema.
// A single connection keeps every query on the same in-memory database.
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

func createUser(t *testing.T, db *gorm.DB, id, name string) *models.User {
	t.Helper()
	user := models.NewUser(id, name, name+"@example.com", "digest")
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createPost(t *testing.T, db *gorm.DB, id, authorID string, postType models.PostType, createdAt time.Time) *models.Post {
	t.Helper()
	post := models.NewPost(id, "https://img.example.com/"+id+".png", "post "+id, postType, authorID)
	post.CreatedAt = createdAt
	require.NoError(t, NewPostRepository(db).Create(context.Background(), post))
	return post
}
