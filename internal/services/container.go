package services

import (
	"context"
	"fmt"

	"github.com/cargolink/nfe-trip-api/internal/config"
	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/cargolink/nfe-trip-api/internal/nfe"
	"github.com/cargolink/nfe-trip-api/internal/partner"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Container holds all service dependencies
type Container struct {
	config      *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	db          *gorm.DB

	IntegrationService IntegrationServiceInterface
	CacheService       CacheServiceInterface
	HistoryStore       HistoryStoreInterface
	BatchProcessor     *nfe.BatchProcessor
	PartnerClient      PartnerClientInterface
}

// NewContainer creates a new service container
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	container := &Container{
		config: cfg,
		logger: logger,
	}

	if err := container.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := container.initRedis(); err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	container.initServices()

	return container, nil
}

// initDatabase opens the SQLite integration history database and
// migrates the schema
func (c *Container) initDatabase() error {
	db, err := gorm.Open(sqlite.Open(c.config.Database.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database at %s: %w", c.config.Database.Path, err)
	}

	if err := db.AutoMigrate(&models.IntegrationRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(c.config.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.config.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(c.config.Database.ConnMaxLifetime)

	c.db = db
	c.logger.WithField("path", c.config.Database.Path).Info("Database connection established")
	return nil
}

// initRedis initializes the Redis client
func (c *Container) initRedis() error {
	c.redisClient = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", c.config.Redis.Host, c.config.Redis.Port),
		Password:     c.config.Redis.Password,
		DB:           c.config.Redis.DB,
		PoolSize:     c.config.Redis.PoolSize,
		DialTimeout:  c.config.Redis.DialTimeout,
		ReadTimeout:  c.config.Redis.ReadTimeout,
		WriteTimeout: c.config.Redis.WriteTimeout,
	})

	// Test Redis connection
	ctx := context.Background()
	if err := c.redisClient.Ping(ctx).Err(); err != nil {
		c.logger.Warn("Redis connection failed, running without cache")
		c.redisClient = nil
	} else {
		c.logger.Info("Redis connection established")
	}

	return nil
}

// initServices initializes all services
func (c *Container) initServices() {
	c.CacheService = NewCacheService(c.redisClient, c.config.Partner.CacheTTL, c.logger)
	c.HistoryStore = NewHistoryStore(c.db, c.logger)
	c.BatchProcessor = nfe.NewBatchProcessor(c.logger)
	c.PartnerClient = partner.NewClient(c.config.Partner, c.logger)
	c.IntegrationService = NewIntegrationService(
		c.HistoryStore,
		c.CacheService,
		c.PartnerClient,
		partner.NewTransformer(c.config.Partner),
		c.logger,
	)
}

// Close closes all service connections
func (c *Container) Close() error {
	var errs []error

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close database: %w", err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}

// Health checks the health of all services
func (c *Container) Health() map[string]interface{} {
	health := make(map[string]interface{})

	if c.redisClient != nil {
		ctx := context.Background()
		if err := c.redisClient.Ping(ctx).Err(); err != nil {
			health["redis"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
		} else {
			health["redis"] = map[string]interface{}{
				"status": "healthy",
			}
		}
	} else {
		health["redis"] = map[string]interface{}{
			"status": "disabled",
		}
	}

	if c.db != nil {
		status := map[string]interface{}{"status": "healthy"}
		if sqlDB, err := c.db.DB(); err != nil {
			status = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
		} else if err := sqlDB.Ping(); err != nil {
			status = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
		}
		health["database"] = status
	}

	return health
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}
