package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/olekh/social-media-api/internal/handlers"
	"github.com/olekh/social-media-api/internal/middleware"
	"github.com/olekh/social-media-api/internal/models"
	"github.com/olekh/social-media-api/internal/repositories"
	"github.com/olekh/social-media-api/internal/scheduler"
	"github.com/olekh/social-media-api/internal/storage"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// Deps carries the repositories and collaborators wired by SetupRoutes,
// so the startup code can reuse them (the scheduler worker shares the
// post repository).
type Deps struct {
	PostRepository repositories.PostRepository
	ScheduledQueue *scheduler.RedisScheduledQueue
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, rdb *redis.Client, jwtSecret, uploadRoot string, log *zap.Logger) (*Deps, error) {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.HashTag{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.UserProfileFollow{},
	)
	if err != nil {
		return nil, err
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories and collaborators ---
	userRepo := repositories.NewPostgresUserRepository(db)
	profileRepo := repositories.NewPostgresUserProfileRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	hashtagRepo := repositories.NewPostgresHashTagRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	queue := scheduler.NewRedisScheduledQueue(rdb)
	mediaStore := storage.NewLocalMediaStore(uploadRoot)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// Read routes accept anonymous requests; the optional middleware
	// still resolves claims so owners see their hidden posts. Write
	// routes require a valid token.
	read := e.Group("/api/v1", middleware.OptionalJWTAuthMiddleware(jwtSecret))
	write := e.Group("/api/v1", middleware.JWTAuthMiddleware(jwtSecret))

	postHandler := handlers.NewPostHandler(postRepo, profileRepo, hashtagRepo, queue, mediaStore, log)
	postHandler.RegisterPostRoutes(read, write)

	profileHandler := handlers.NewUserProfileHandler(profileRepo, followRepo, mediaStore)
	profileHandler.RegisterUserProfileRoutes(read, write)

	hashtagHandler := handlers.NewHashTagHandler(hashtagRepo)
	hashtagHandler.RegisterHashTagRoutes(read, write)

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo)
	likeHandler.RegisterLikeRoutes(read, write)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(read, write)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(read, write)

	log.Info("All routes configured.")

	return &Deps{
		PostRepository: postRepo,
		ScheduledQueue: queue,
	}, nil
}
