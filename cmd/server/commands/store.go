package commands

import (
	"github.com/anonto42/blogcms/internal/repositories"
	"github.com/anonto42/blogcms/pkg/config"
)

func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if portFlag != "" {
		cfg.Port = portFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore connects to the configured database and returns the matching repository
func openStore(cfg *config.Config) (*config.DB, repositories.PostRepository, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	if db.Mongo != nil {
		return db, repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase)), nil
	}
	return db, repositories.NewGormPostRepository(db.SQL), nil
}
