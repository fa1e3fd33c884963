package iomycnf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/internal/iomycnf"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const myCnf = `[client]
user = symbiota
password = s3cret
host = db.example.org
port = 3307

[mysql]
database = symbscan_prod
`

func writeCnf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".my.cnf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRead(t *testing.T) {
	path := writeCnf(t, myCnf)
	creds, err := iomycnf.Read(path)
	require.NoError(t, err)
	assert.Equal(t, iomycnf.Credentials{
		User:     "symbiota",
		Password: "s3cret",
		Host:     "db.example.org",
		Port:     3307,
		Database: "symbscan_prod",
	}, creds)
}

func TestReadMissing(t *testing.T) {
	creds, err := iomycnf.Read(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Equal(t, iomycnf.Credentials{}, creds)
}

func TestReadBadPort(t *testing.T) {
	path := writeCnf(t, "[client]\nuser = a\nport = abc\n")
	_, err := iomycnf.Read(path)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ConfigCredentialsError, gnErr.Code)
}

func TestApply(t *testing.T) {
	t.Run("fills credentials", func(t *testing.T) {
		cfg := config.New()
		require.NoError(t, iomycnf.Apply(cfg, writeCnf(t, myCnf), nil))
		assert.Equal(t, "symbiota", cfg.Source.User)
		assert.Equal(t, "s3cret", cfg.Source.Password)
		assert.Equal(t, 3307, cfg.Source.Port)
		assert.Equal(t, "symbscan_prod", cfg.Source.Database)
	})

	t.Run("explicit host and database win", func(t *testing.T) {
		explicit := []config.Option{
			config.OptSourceHost("flaghost"),
			config.OptSourceDatabase("flagdb"),
		}
		cfg := config.New()
		cfg.Update(explicit)
		require.NoError(t, iomycnf.Apply(cfg, writeCnf(t, myCnf), explicit))
		assert.Equal(t, "flaghost", cfg.Source.Host)
		assert.Equal(t, "flagdb", cfg.Source.Database)
		assert.Equal(t, 3307, cfg.Source.Port)
		assert.Equal(t, "symbiota", cfg.Source.User)
		assert.Equal(t, "s3cret", cfg.Source.Password)
	})

	t.Run("configured user wins", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptSourceUser("reader")})
		require.NoError(t, iomycnf.Apply(cfg, writeCnf(t, myCnf), nil))
		assert.Equal(t, "reader", cfg.Source.User)
		assert.Equal(t, "", cfg.Source.Password)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg := config.New()
		path := writeCnf(t, "[client]\nuser = u\n")
		require.NoError(t, iomycnf.Apply(cfg, path, nil))
		assert.Equal(t, "u", cfg.Source.User)
		assert.Equal(t, "localhost", cfg.Source.Host)
		assert.Equal(t, "symbscan", cfg.Source.Database)
	})

	t.Run("no user anywhere", func(t *testing.T) {
		cfg := config.New()
		err := iomycnf.Apply(cfg, filepath.Join(t.TempDir(), "none"), nil)
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.ConfigCredentialsError, gnErr.Code)
	})
}
