package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults when config file is missing", func(t *testing.T) {
		// when
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.NoError(t, err)
		assert.Equal(t, Defaults(), cfg)
	})

	t.Run("should override defaults with file and environment", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "application.yaml")
		content := []byte("port: 9090\ndb:\n  host: db.internal\n  name: office\nfrontend:\n  enabled: false\n")
		require.NoError(t, os.WriteFile(path, content, 0o644))
		t.Setenv("BACKOFFICE_DB_USER", "admin")

		// when
		cfg, err := Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "office", cfg.Database.Name)
		assert.Equal(t, "admin", cfg.Database.User)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.False(t, cfg.Frontend.Enabled)
		assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	})
}
