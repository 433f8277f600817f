package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB holds the database connection selected by DB_DRIVER.
// Exactly one of SQL and Mongo is set.
type DB struct {
	SQL   *gorm.DB
	Mongo *mongo.Client
}

// InitDB opens and verifies the configured database connection
func InitDB(cfg *Config) (*DB, error) {
	switch cfg.DBDriver {
	case DriverMongo:
		client, err := initMongo(cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		return &DB{Mongo: client}, nil
	default:
		sqlDB, err := OpenSQL(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
		}
		return &DB{SQL: sqlDB}, nil
	}
}

// OpenSQL opens a gorm connection for the sqlite or postgres driver and pings it
func OpenSQL(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Printf("Successfully connected to %s!", driver)
	return db, nil
}

const (
	mongoConnectTimeout = 10 * time.Second
	mongoCloseTimeout   = 5 * time.Second
)

// initMongo connects to MongoDB and waits for a reachable primary
func initMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(mongoConnectTimeout)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")
	return client, nil
}

// CloseDB releases whichever connection InitDB opened
func (db *DB) CloseDB() {
	if db.SQL != nil {
		driver := db.SQL.Dialector.Name()
		sqlDB, err := db.SQL.DB()
		if err != nil {
			log.Printf("Error getting %s handle from GORM: %v", driver, err)
		} else if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing %s connection: %v", driver, err)
		} else {
			log.Printf("%s connection closed.", driver)
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), mongoCloseTimeout)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v", err)
		} else {
			log.Println("MongoDB connection closed.")
		}
	}
}
