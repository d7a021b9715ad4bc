// Package database opens the configured lesson and order store and owns its
// connection lifecycle.
package database

import (
	"context"
	"log"
	"time"

	"lessonshop/internal/config"
	"lessonshop/internal/models"
	"lessonshop/internal/repositories"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 10 * time.Second

// Stores bundles the repositories backed by one store connection.
type Stores struct {
	Driver  string
	Lessons repositories.LessonRepository
	Orders  repositories.OrderRepository

	close func(ctx context.Context) error
}

// Close releases the underlying connection.
func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the store selected by cfg.Driver.
// A connection failure is returned, never retried.
func Open(ctx context.Context, cfg config.StoreConfig) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryStores(), nil
	case config.DriverSQLite:
		db, err := OpenGORM(sqlite.Open(cfg.DSN))
		if err != nil {
			return nil, err
		}
		return NewGORMStores(db, config.DriverSQLite)
	case config.DriverPostgres:
		db, err := OpenGORM(postgres.Open(cfg.DSN))
		if err != nil {
			return nil, err
		}
		return NewGORMStores(db, config.DriverPostgres)
	case config.DriverMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, errors.Newf("unknown store driver %q", cfg.Driver)
	}
}

// NewMemoryStores returns process-local stores.
func NewMemoryStores() *Stores {
	return &Stores{
		Driver:  config.DriverMemory,
		Lessons: repositories.NewMemoryLessonRepository(),
		Orders:  repositories.NewMemoryOrderRepository(),
	}
}

// OpenGORM opens a GORM connection with SQL logging limited to errors.
func OpenGORM(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", dialector.Name())
	}
	return db, nil
}

// NewGORMStores migrates the schema and wraps db in repositories.
func NewGORMStores(db *gorm.DB, driver string) (*Stores, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to access sql.DB")
	}
	if driver == config.DriverSQLite {
		// sqlite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&models.Lesson{}, &models.Order{}); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}
	return &Stores{
		Driver:  driver,
		Lessons: repositories.NewGORMLessonRepository(db),
		Orders:  repositories.NewGORMOrderRepository(db),
		close: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}

// OpenMongo connects, pings the primary and returns stores over database dbName.
func OpenMongo(ctx context.Context, uri, dbName string) (*Stores, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}
	log.Printf("Connected to MongoDB database %s", dbName)

	db := client.Database(dbName)
	return &Stores{
		Driver:  config.DriverMongo,
		Lessons: repositories.NewMongoLessonRepository(db),
		Orders:  repositories.NewMongoOrderRepository(db),
		close:   client.Disconnect,
	}, nil
}
