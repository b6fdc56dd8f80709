// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"labook/internal/idgen"
	"labook/internal/middleware"
	"labook/internal/models"
	"labook/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user can log in with.
const DefaultPassword = "password123"

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	NumPosts        int
	FriendsPerUser  int
	LikesPerPost    int
	CommentsPerPost int
	ShouldClean     bool
}

// Hasher hashes the shared seed password.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// Seeder writes demo data through the repositories.
type Seeder struct {
	db     *gorm.DB
	users  repository.UserRepository
	posts  repository.PostRepository
	hasher Hasher
	ids    idgen.Generator
	faker  *gofakeit.Faker
}

// NewSeeder creates a Seeder over db. A non-zero seed makes the generated
// content reproducible.
func NewSeeder(db *gorm.DB, hasher Hasher, seed int64) *Seeder {
	return &Seeder{
		db:     db,
		users:  repository.NewUserRepository(db),
		posts:  repository.NewPostRepository(db),
		hasher: hasher,
		ids:    idgen.UUID{},
		faker:  gofakeit.New(seed),
	}
}

// Seed runs every step according to opts.
func (s *Seeder) Seed(ctx context.Context, opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(ctx); err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}

	users, err := s.SeedUsers(ctx, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "seeded users", slog.Int("count", len(users)))

	friendships, err := s.SeedFriendships(ctx, users, opts.FriendsPerUser)
	if err != nil {
		return fmt.Errorf("seed friendships: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "seeded friendships", slog.Int("count", friendships))

	posts, err := s.SeedPosts(ctx, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "seeded posts", slog.Int("count", len(posts)))

	likes, comments, err := s.SeedEngagement(ctx, users, posts, opts.LikesPerPost, opts.CommentsPerPost)
	if err != nil {
		return fmt.Errorf("seed engagement: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "seeded engagement",
		slog.Int("likes", likes),
		slog.Int("comments", comments),
	)
	return nil
}

// ClearAll deletes every row, children first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	tx := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Like{},
		&models.Post{},
		&models.Friendship{},
		&models.User{},
	} {
		if err := tx.Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers creates n users sharing DefaultPassword.
func (s *Seeder) SeedUsers(ctx context.Context, n int) ([]models.User, error) {
	if n <= 0 {
		return nil, nil
	}
	hash, err := s.hasher.Hash(DefaultPassword)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		// Index prefix keeps generated emails unique.
		email := fmt.Sprintf("%d.%s", i, s.faker.Email())
		user := models.NewUser(s.ids.Generate(), s.faker.Name(), email, hash)
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

// SeedFriendships befriends each user with up to perUser random others and
// returns the number of friendships created.
func (s *Seeder) SeedFriendships(ctx context.Context, users []models.User, perUser int) (int, error) {
	if len(users) < 2 || perUser <= 0 {
		return 0, nil
	}

	created := 0
	for _, u := range users {
		for i := 0; i < perUser; i++ {
			other := users[s.faker.Number(0, len(users)-1)]
			if other.ID == u.ID {
				continue
			}
			pair := models.NewFriendPair(u.ID, other.ID)
			existing, err := s.users.GetFriendship(ctx, pair)
			if err != nil {
				return created, err
			}
			if existing != nil {
				continue
			}
			if _, err := s.users.ToggleFriendship(ctx, pair); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// SeedPosts creates n posts by random authors. About one in five is an event.
func (s *Seeder) SeedPosts(ctx context.Context, users []models.User, n int) ([]models.Post, error) {
	if len(users) == 0 || n <= 0 {
		return nil, nil
	}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.faker.Number(0, len(users)-1)]
		postType := models.PostTypeNormal
		if s.faker.Number(1, 5) == 1 {
			postType = models.PostTypeEvent
		}
		post := models.NewPost(
			s.ids.Generate(),
			fmt.Sprintf("https://picsum.photos/seed/%s/800/800", s.faker.UUID()),
			s.faker.Paragraph(1, 2, 12, " "),
			postType,
			author.ID,
		)
		if err := s.posts.Create(ctx, post); err != nil {
			return nil, err
		}
		post.AuthorName = author.Name
		posts = append(posts, *post)
	}
	return posts, nil
}

// SeedEngagement adds up to likesPerPost likes and commentsPerPost comments
// to every post and returns how many of each were created.
func (s *Seeder) SeedEngagement(ctx context.Context, users []models.User, posts []models.Post, likesPerPost, commentsPerPost int) (likes, comments int, err error) {
	if len(users) == 0 {
		return 0, 0, nil
	}

	for _, p := range posts {
		for i := 0; i < likesPerPost; i++ {
			liker := users[s.faker.Number(0, len(users)-1)]
			existing, err := s.posts.GetLike(ctx, p.ID, liker.ID)
			if err != nil {
				return likes, comments, err
			}
			if existing != nil {
				continue
			}
			if _, err := s.posts.ToggleLike(ctx, p.ID, liker.ID); err != nil {
				return likes, comments, err
			}
			likes++
		}

		for i := 0; i < commentsPerPost; i++ {
			author := users[s.faker.Number(0, len(users)-1)]
			comment := models.NewComment(s.ids.Generate(), p.ID, author.ID, s.faker.Sentence(8))
			if err := s.posts.CreateComment(ctx, comment); err != nil {
				return likes, comments, err
			}
			comments++
		}
	}
	return likes, comments, nil
}
