package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"INKASSO_APP_NAME",
	"INKASSO_APP_ENV",
	"INKASSO_APP_PORT",
	"INKASSO_DATABASE_DRIVER",
	"INKASSO_DATABASE_HOST",
	"INKASSO_DATABASE_PORT",
	"INKASSO_DATABASE_USER",
	"INKASSO_DATABASE_PASSWORD",
	"INKASSO_DATABASE_DBNAME",
	"INKASSO_DATABASE_SSLMODE",
	"INKASSO_DATABASE_MAX_OPEN_CONNS",
	"INKASSO_DATABASE_MAX_IDLE_CONNS",
	"INKASSO_JWT_SECRET",
	"INKASSO_JWT_ACCESS_TOKEN_EXPIRATION",
	"INKASSO_LOG_LEVEL",
}

func withCleanEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string, len(configEnvVars))
	for _, k := range configEnvVars {
		original[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		withCleanEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "inkasso-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "inkasso", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
		assert.Equal(t, 10, cfg.JWT.MaxRefreshCount)
		assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("loads values from environment variables with INKASSO prefix", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("INKASSO_APP_NAME", "test-app")
		os.Setenv("INKASSO_APP_PORT", "9000")
		os.Setenv("INKASSO_DATABASE_HOST", "testdb.local")
		os.Setenv("INKASSO_DATABASE_PORT", "5433")
		os.Setenv("INKASSO_DATABASE_USER", "testuser")
		os.Setenv("INKASSO_DATABASE_PASSWORD", "testpass")
		os.Setenv("INKASSO_DATABASE_DBNAME", "testdb")
		os.Setenv("INKASSO_DATABASE_SSLMODE", "require")
		os.Setenv("INKASSO_JWT_ACCESS_TOKEN_EXPIRATION", "30m")
		os.Setenv("INKASSO_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("INKASSO_DATABASE_DRIVER", "oracle")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("accepts sqlite driver in development", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("INKASSO_DATABASE_DRIVER", "sqlite")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "inkasso.db", cfg.Database.SQLitePath)
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setProduction := func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("INKASSO_APP_ENV", "production")
		os.Setenv("INKASSO_JWT_SECRET", "a-very-long-production-secret-key-123456")
		os.Setenv("INKASSO_DATABASE_PASSWORD", "prodpass")
		os.Setenv("INKASSO_DATABASE_SSLMODE", "require")
	}

	t.Run("valid production config passes", func(t *testing.T) {
		setProduction(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("missing jwt secret fails", func(t *testing.T) {
		setProduction(t)
		os.Unsetenv("INKASSO_JWT_SECRET")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("short jwt secret fails", func(t *testing.T) {
		setProduction(t)
		os.Setenv("INKASSO_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("missing database password fails", func(t *testing.T) {
		setProduction(t)
		os.Unsetenv("INKASSO_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("sslmode disable fails", func(t *testing.T) {
		setProduction(t)
		os.Setenv("INKASSO_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("sqlite driver fails", func(t *testing.T) {
		setProduction(t)
		os.Setenv("INKASSO_DATABASE_DRIVER", "sqlite")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("postgres DSN escapes special characters", func(t *testing.T) {
		d := DatabaseConfig{
			Driver:   "postgres",
			Host:     "db.internal",
			Port:     5432,
			User:     "inkasso",
			Password: "p@ss/word",
			DBName:   "inkasso",
			SSLMode:  "require",
		}

		dsn := d.DSN()
		assert.Contains(t, dsn, "postgres://")
		assert.Contains(t, dsn, "db.internal:5432")
		assert.Contains(t, dsn, "sslmode=require")
		assert.NotContains(t, dsn, "p@ss/word")
	})

	t.Run("sqlite DSN is the file path", func(t *testing.T) {
		d := DatabaseConfig{Driver: "sqlite", SQLitePath: "/tmp/test.db"}
		assert.Equal(t, "/tmp/test.db", d.DSN())
	})
}
