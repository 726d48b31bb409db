package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.False(t, cfg.Database.Postgres())
	assert.Equal(t, "microblog.db", cfg.Database.SQLitePath)
	assert.Equal(t, MEDIA_STORAGE_DISK, cfg.Media.Storage)
	assert.Equal(t, "/static/media_files/", cfg.Media.URLPrefix)
	assert.Equal(t, 2*time.Second, cfg.Log.SlowRequestThreshold)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := `
port: ":7070"
database:
  host: db
  user: admin
  password: admin
  name: microblog
  sslmode: disable
log:
  level: debug
media:
  storage: s3
  s3:
    bucket: tweets
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0o600))

	t.Setenv(ENV_DB_NAME, "from_env")
	t.Setenv(ENV_S3_USE_SSL, "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Port)
	assert.True(t, cfg.Database.Postgres())
	assert.Equal(t, "from_env", cfg.Database.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, MEDIA_STORAGE_S3, cfg.Media.Storage)
	assert.Equal(t, "tweets", cfg.Media.S3.Bucket)
	assert.True(t, cfg.Media.S3.UseSSL)
	assert.Equal(t, "host=db port=5432 user=admin password=admin dbname=from_env sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown storage", func(t *testing.T) {
		t.Setenv(ENV_MEDIA_STORAGE, "ftp")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv(ENV_SLOW_REQUEST, "soon")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
