// Command seed fills the database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"labook/internal/auth"
	"labook/internal/bootstrap"
	"labook/internal/config"
	"labook/internal/database"
	"labook/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	friends := flag.Int("friends", 4, "Friendships to attempt per user")
	likes := flag.Int("likes", 3, "Likes to attempt per post")
	comments := flag.Int("comments", 2, "Comments per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	seedValue := flag.Int64("seed", 0, "Fake data seed (0 for random)")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, clean=%v", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{ApplySchema: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer func() {
		_ = database.Close(rt.DB)
		if rt.Redis != nil {
			_ = rt.Redis.Close()
		}
		_ = rt.ShutdownTracing(ctx)
	}()

	s := seed.NewSeeder(rt.DB, auth.NewHashManager(cfg.BcryptCost), *seedValue)
	if err := s.Seed(ctx, seed.Options{
		NumUsers:        *numUsers,
		NumPosts:        *numPosts,
		FriendsPerUser:  *friends,
		LikesPerPost:    *likes,
		CommentsPerPost: *comments,
		ShouldClean:     *shouldClean,
	}); err != nil {
		log.Printf("Seeding failed: %v", err)
		return
	}

	log.Printf("All done. Every seeded user has the password: %s", seed.DefaultPassword)
}
