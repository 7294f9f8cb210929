package main

import (
	"context"
	"log"
	"os"

	"gorm.io/gorm"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/service"
)

// Seeds an admin user, a category and a couple of published posts for local
// development. Safe to run repeatedly.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	admin, err := seedAdmin(ctx, gormDB, hasher)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	log.Printf("Admin user ready: %s", admin.Email)

	category, err := seedCategory(gormDB, "general")
	if err != nil {
		log.Fatalf("Failed to seed category: %v", err)
	}

	if err := seedPosts(ctx, gormDB, admin, category); err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	log.Println("Seed completed")
}

func seedAdmin(ctx context.Context, gormDB *gorm.DB, hasher *auth.PasswordHasher) (*model.User, error) {
	email := envOr("ADMIN_EMAIL", "admin@example.com")
	username := envOr("ADMIN_USERNAME", "admin")
	password := envOr("ADMIN_PASSWORD", "admin123")

	users := repository.NewUserRepository(gormDB)

	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}

	hashed, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	admin := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func seedCategory(gormDB *gorm.DB, name string) (*model.Category, error) {
	var category model.Category
	if err := gormDB.Where(model.Category{Name: name}).
		FirstOrCreate(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func seedPosts(ctx context.Context, gormDB *gorm.DB, author *model.User, category *model.Category) error {
	posts := repository.NewPostRepository(gormDB)
	postService := service.NewPostService(posts)

	samples := []service.CreatePostInput{
		{
			Title:      "Welcome to the blog",
			Content:    "This is the first post, seeded for local development.",
			CategoryID: &category.ID,
		},
		{
			Title:      "Writing your first post",
			Content:    "Register an account, grab your token and POST to /api/posts.",
			CategoryID: &category.ID,
		},
	}

	for _, sample := range samples {
		slug := model.Slugify(sample.Title)
		var count int64
		if err := gormDB.Model(&model.Post{}).
			Where("slug = ?", slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		post, err := postService.CreatePost(ctx, author, sample)
		if err != nil {
			return err
		}

		published := true
		if _, err := postService.UpdatePost(ctx, author, post.ID, service.UpdatePostInput{
			Published: &published,
		}); err != nil {
			return err
		}
		log.Printf("Seeded post %q", post.Title)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
