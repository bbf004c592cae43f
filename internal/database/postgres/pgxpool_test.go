package postgres

import (
	"testing"
	"time"

	"talentbridge/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     " db ",
		DBPort:     "5432",
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "talentbridge",
		DBSSLMode:  "disable",
	})
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=talentbridge sslmode=disable", dsn)
}

func TestApplyPoolConfig(t *testing.T) {
	pcfg, err := pgxpool.ParseConfig("host=localhost port=5432 user=app dbname=talentbridge sslmode=disable")
	require.NoError(t, err)

	applyPoolConfig(pcfg, config.DatabaseConfig{
		ConnectTimeout:      3 * time.Second,
		PoolMaxConns:        20,
		PoolMinConns:        2,
		PoolMaxConnLifetime: time.Hour,
	})

	assert.Equal(t, 3*time.Second, pcfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, int32(20), pcfg.MaxConns)
	assert.Equal(t, int32(2), pcfg.MinConns)
	assert.Equal(t, time.Hour, pcfg.MaxConnLifetime)
}
