package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	for _, env := range envBindings {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	cfg, err := InitConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, DefaultAdminKey, cfg.Admin.Key)
	assert.True(t, cfg.UsingDefaultAdminKey())
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.Equal(t, "files", cfg.Storage.Bucket)
	assert.Equal(t, "bucket", cfg.Storage.PublicBucket)
	assert.Equal(t, "cdn.poehali.dev", cfg.Storage.CDNHost)
	assert.Empty(t, cfg.Postgres.DSN)
}

func TestInitConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte(`
server:
  port: ":9000"
postgres:
  dsn: "postgres://file"
  autocreate: true
admin:
  key: "from-file"
storage:
  bucket: "file-bucket"
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	t.Setenv("ADMIN_KEY", "from-env")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")

	cfg, err := InitConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Port)
	assert.Equal(t, "postgres://file", cfg.Postgres.DSN)
	assert.True(t, cfg.Postgres.AutoCreate)
	assert.Equal(t, "from-env", cfg.Admin.Key)
	assert.False(t, cfg.UsingDefaultAdminKey())
	assert.Equal(t, "file-bucket", cfg.Storage.Bucket)
	assert.Equal(t, "AKID", cfg.Storage.AccessKey)
}

func TestInitConfig_MissingFileIsIgnored(t *testing.T) {
	_, err := InitConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
}
