package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookshelf-backend/internal/config"
	infraCache "bookshelf-backend/internal/infrastructure/cache"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/internal/infrastructure/queue"
	"bookshelf-backend/internal/infrastructure/storage"
	"bookshelf-backend/pkg/cache"

	"bookshelf-backend/internal/domains/author"
	authorHandler "bookshelf-backend/internal/domains/author/handler"
	authorRepo "bookshelf-backend/internal/domains/author/repository"
	authorService "bookshelf-backend/internal/domains/author/service"

	"bookshelf-backend/internal/domains/book"
	bookHandler "bookshelf-backend/internal/domains/book/handler"
	bookRepo "bookshelf-backend/internal/domains/book/repository"
	bookService "bookshelf-backend/internal/domains/book/service"

	"bookshelf-backend/internal/domains/relation"
	relationHandler "bookshelf-backend/internal/domains/relation/handler"
	relationRepo "bookshelf-backend/internal/domains/relation/repository"
	relationService "bookshelf-backend/internal/domains/relation/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is
// a singleton living for the whole process.
type Container struct {
	// Infrastructure, shared across all domains.
	Config    *config.Config
	DB        *database.PostgresDB
	Cache     cache.Cache
	Storage   *storage.MinIOStorage
	Processor *storage.ImageProcessor
	Queue     *queue.Client

	// Data access.
	AuthorRepo   author.Repository
	BookRepo     book.Repository
	RelationRepo relation.Repository

	// Business logic.
	AuthorService   author.Service
	BookService     book.Service
	RelationService relation.Service

	// HTTP layer.
	AuthorHandler   *authorHandler.AuthorHandler
	BookHandler     *bookHandler.BookHandler
	RelationHandler *relationHandler.RelationHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer wires the whole dependency graph. Initialization order
// matters: config, then infrastructure, then repositories, services
// and handlers. A failure at any step aborts startup.
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("✅ Config loaded")

	// ========================================
	// STEP 2: DATABASE + MIGRATIONS
	// ========================================
	log.Info().Msg("🗄️  Connecting to PostgreSQL...")

	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Info().Msg("✅ Database connected")

	// ========================================
	// STEP 3: CACHE
	// ========================================
	log.Info().Msg("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(ctx); err != nil {
		// Repositories fall back to the database on cache errors, so a
		// missing Redis degrades performance, not correctness.
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical)")
	} else {
		log.Info().Msg("✅ Redis connected")
	}
	c.Cache = redisCache

	// ========================================
	// STEP 4: OBJECT STORAGE
	// ========================================
	log.Info().Msg("🪣 Connecting to MinIO...")

	store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store
	c.Processor = storage.NewImageProcessor()
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("✅ Object storage ready")

	// ========================================
	// STEP 5: TASK QUEUE CLIENT
	// ========================================
	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	// ========================================
	// STEP 6: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(pool, c.Cache)
	c.RelationRepo = relationRepo.NewPostgresRepository(pool, c.Cache)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(
		c.AuthorRepo,
		c.Storage,
		c.Processor,
		c.Queue,
	)
	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.Storage,
		c.Processor,
		c.Queue,
	)
	c.RelationService = relationService.NewRelationService(
		c.RelationRepo,
		c.BookRepo,
		c.AuthorRepo,
	)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.RelationHandler = relationHandler.NewRelationHandler(c.RelationService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases container resources. Called during graceful
// shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close queue client")
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
			}
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("✅ Container cleanup completed")
}
