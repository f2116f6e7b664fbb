package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"blog-backend/internal/config"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/infrastructure/queue"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared/authz"
	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"

	// Identity
	"blog-backend/internal/domains/identity"
	identityHandler "blog-backend/internal/domains/identity/handler"
	identityJob "blog-backend/internal/domains/identity/job"
	identityRepo "blog-backend/internal/domains/identity/repository"
	identityService "blog-backend/internal/domains/identity/service"

	// Blog
	bpHandler "blog-backend/internal/domains/blogpost/handler"
	bpRepo "blog-backend/internal/domains/blogpost/repository"
	bpService "blog-backend/internal/domains/blogpost/service"
	catHandler "blog-backend/internal/domains/category/handler"
	catRepo "blog-backend/internal/domains/category/repository"
	catService "blog-backend/internal/domains/category/service"
	commentHandler "blog-backend/internal/domains/comment/handler"
	commentRepo "blog-backend/internal/domains/comment/repository"
	commentService "blog-backend/internal/domains/comment/service"
	userHandler "blog-backend/internal/domains/user/handler"
	userRepo "blog-backend/internal/domains/user/repository"
	userService "blog-backend/internal/domains/user/service"

	// Media
	mediaHandler "blog-backend/internal/domains/media/handler"
	mediaService "blog-backend/internal/domains/media/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application (api + worker)
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *queue.Client
	Storage     *storage.MinIOStorage
	Images      *storage.ImageProcessor
	Email       email.EmailService
	Policy      *authz.Policy

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	IdentityRepo identity.Repository
	CategoryRepo catRepo.CategoryRepository
	BlogpostRepo bpRepo.BlogpostRepository
	CommentRepo  commentRepo.CommentRepository
	UserRepo     userRepo.UserRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	GroupAdmin       identity.GroupAdmin
	PostConfirmation *identityJob.PostConfirmationHandler
	IdentityService  identity.Service
	CategoryService  catService.ServiceInterface
	BlogpostService  bpService.ServiceInterface
	CommentService   commentService.ServiceInterface
	UserService      userService.ServiceInterface
	MediaService     mediaService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	IdentityHandler *identityHandler.IdentityHandler
	CategoryHandler *catHandler.CategoryHandler
	BlogpostHandler *bpHandler.BlogpostHandler
	CommentHandler  *commentHandler.CommentHandler
	UserHandler     *userHandler.UserHandler
	MediaHandler    *mediaHandler.MediaHandler

	// Middleware có state
	Auth            *middleware.Auth
	AuthRateLimiter *middleware.RateLimiter
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo toàn bộ dependency graph.
// Thứ tự: Config → Infrastructure → Repositories → Services → Handlers
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE INFRASTRUCTURE
	// ========================================
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 3: REPOSITORIES
	// ========================================
	c.initRepositories()
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 4: SERVICES
	// ========================================
	if err := c.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 5: HANDLERS
	// ========================================
	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	// Database
	log.Println("🗄️  Connecting to PostgreSQL...")
	dbConfig, err := config.LoadDatabaseConfig(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("✅ Database connected")

	// Redis: cache + token revocation + rate counters
	log.Println("🔴 Connecting to Redis...")
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		// Redis failure không critical - log warning và continue
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client, "blog:")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	c.AsynqClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	// Object storage
	log.Println("🪣 Connecting to MinIO...")
	c.Storage, err = storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	c.Images = storage.NewImageProcessor()
	log.Println("✅ MinIO ready")

	c.Email = email.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	c.Policy = authz.NewPolicy(authz.DefaultRules(cfg.Identity.AuthorGroup, cfg.Identity.AllowGuestCategoryCreate)...)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.IdentityRepo = identityRepo.NewPostgresRepository(pool)
	c.CategoryRepo = catRepo.NewPostgresCategoryRepository(pool)
	c.BlogpostRepo = bpRepo.NewPostgresBlogpostRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresCommentRepository(pool)
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
}

func (c *Container) initServices() error {
	cfg := c.Config

	// ----------------------------------------
	// IDENTITY
	// ----------------------------------------
	// Groups của pool phải có trước khi trigger chạy
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.IdentityRepo.EnsureGroups(ctx, cfg.Identity.AuthorGroup, cfg.Identity.ReaderGroup); err != nil {
		return fmt.Errorf("ensure identity groups: %w", err)
	}

	c.GroupAdmin = identityService.NewGroupAdmin(c.IdentityRepo, cfg.Identity)
	c.PostConfirmation = identityJob.NewPostConfirmationHandler(c.GroupAdmin, cfg.Identity.ReaderGroup)
	c.IdentityService = identityService.NewIdentityService(
		c.IdentityRepo,
		c.GroupAdmin,
		c.PostConfirmation,
		c.JWTManager,
		c.Cache,
		c.AsynqClient,
		cfg.Identity,
	)

	// ----------------------------------------
	// BLOG DATA
	// ----------------------------------------
	c.CategoryService = catService.NewCategoryService(c.CategoryRepo, c.Policy, c.Cache)
	c.BlogpostService = bpService.NewBlogpostService(c.BlogpostRepo, c.CategoryService, c.Policy, c.Cache)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.BlogpostService, c.Policy)
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.BlogpostService,
		c.CommentService,
		c.Policy,
		c.Cache,
		c.AsynqClient,
	)

	// ----------------------------------------
	// MEDIA
	// ----------------------------------------
	c.MediaService = mediaService.NewMediaService(c.Storage, c.Images, c.Policy)
	return nil
}

func (c *Container) initHandlers() {
	cfg := c.Config
	secureCookie := cfg.App.Environment == "production"

	c.IdentityHandler = identityHandler.NewIdentityHandler(c.IdentityService, secureCookie)
	c.CategoryHandler = catHandler.NewCategoryHandler(c.CategoryService)
	c.BlogpostHandler = bpHandler.NewBlogpostHandler(c.BlogpostService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.MediaHandler = mediaHandler.NewMediaHandler(c.MediaService)

	c.Auth = middleware.NewAuth(c.JWTManager, c.Cache)
	c.AuthRateLimiter = middleware.NewRateLimiter(
		float64(cfg.RateLimit.AuthRequestsPerSecond),
		cfg.RateLimit.AuthBurst,
	)
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connections closed")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	log.Println("✅ Container cleanup completed")
}
