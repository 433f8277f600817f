package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults in development", func(t *testing.T) {
		for _, key := range []string{"PORT", "ENV", "DB_DRIVER", "DATABASE_URL", "SECRET_KEY", "FORM_TOKEN_TTL"} {
			t.Setenv(key, "")
		}

		cfg := Load()

		assert.Equal(t, "5003", cfg.Port)
		assert.Equal(t, DriverSQLite, cfg.DBDriver)
		assert.Equal(t, "posts.db", cfg.DatabaseURL)
		assert.Equal(t, time.Hour, cfg.FormTokenTTL)
		assert.NotEmpty(t, cfg.SecretKey)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("ENV", "production")
		t.Setenv("DB_DRIVER", DriverPostgres)
		t.Setenv("DATABASE_URL", "postgres://blog@localhost/blog")
		t.Setenv("SECRET_KEY", "s3cret")
		t.Setenv("FORM_TOKEN_TTL", "15m")

		cfg := Load()

		assert.Equal(t, "9000", cfg.Port)
		assert.False(t, cfg.IsDevelopment())
		assert.Equal(t, "s3cret", cfg.SecretKey)
		assert.Equal(t, 15*time.Minute, cfg.FormTokenTTL)
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadReportsBadTokenTTL(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("FORM_TOKEN_TTL", "soon")

	err := Load().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORM_TOKEN_TTL")
	assert.Contains(t, err.Error(), `"soon"`)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DBDriver:     DriverSQLite,
			DatabaseURL:  "posts.db",
			SecretKey:    "key",
			FormTokenTTL: time.Hour,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }},
		{"mongo without uri", func(c *Config) { c.DBDriver = DriverMongo }},
		{"missing secret", func(c *Config) { c.SecretKey = "" }},
		{"bad token ttl", func(c *Config) { c.FormTokenTTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestOpenSQLite(t *testing.T) {
	db, err := InitDB(&Config{DBDriver: DriverSQLite, DatabaseURL: filepath.Join(t.TempDir(), "posts.db")})
	require.NoError(t, err)

	assert.NotNil(t, db.SQL)
	assert.Nil(t, db.Mongo)
	assert.Equal(t, DriverSQLite, db.SQL.Dialector.Name())

	sqlDB, err := db.SQL.DB()
	require.NoError(t, err)
	db.CloseDB()
	assert.Error(t, sqlDB.Ping(), "handle should be closed")

	_, err = OpenSQL("oracle", "x")
	assert.Error(t, err)
}
