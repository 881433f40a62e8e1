package standalone

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Kirov7/kraglin"
	"github.com/Kirov7/kraglin/meta"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "standalone"}
	addFlags(cmd)
	return cmd
}

func TestLoadOptions_Defaults(t *testing.T) {
	v, err := newViper(newTestCmd(), "")
	require.NoError(t, err)
	opt, logCfg, err := loadOptions(v)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:6379", opt.Addr())
	assert.Equal(t, kraglin.Simple, opt.Engine.Backend)
	assert.Equal(t, meta.Btree, opt.Engine.MemTableType)
	assert.Equal(t, "info", logCfg.Level)
	assert.Empty(t, opt.MetricsAddr)
}

func TestLoadOptions_Layers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kraglin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 7000
  readTimeout: 5s
engine:
  backend: sharded
  shards: 8
  indexType: art
log:
  level: debug
  json: true
`), 0o644))

	t.Run("config file", func(t *testing.T) {
		v, err := newViper(newTestCmd(), path)
		require.NoError(t, err)
		opt, logCfg, err := loadOptions(v)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:7000", opt.Addr())
		assert.Equal(t, 5*time.Second, opt.ReadTimeout)
		assert.Equal(t, kraglin.Sharded, opt.Engine.Backend)
		assert.Equal(t, 8, opt.Engine.Shards)
		assert.Equal(t, meta.ART, opt.Engine.MemTableType)
		assert.Equal(t, "debug", logCfg.Level)
		assert.True(t, logCfg.JSON)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("LISTEN_PORT", "7001")
		t.Setenv("KRAGLIN_ENGINE_INDEXTYPE", "hashmap")
		v, err := newViper(newTestCmd(), path)
		require.NoError(t, err)
		opt, _, err := loadOptions(v)
		require.NoError(t, err)
		assert.Equal(t, 7001, opt.Port)
		assert.Equal(t, meta.HashMap, opt.Engine.MemTableType)
	})

	t.Run("flag over env", func(t *testing.T) {
		t.Setenv("LISTEN_PORT", "7001")
		cmd := newTestCmd()
		require.NoError(t, cmd.Flags().Set("port", "7002"))
		v, err := newViper(cmd, path)
		require.NoError(t, err)
		opt, _, err := loadOptions(v)
		require.NoError(t, err)
		assert.Equal(t, 7002, opt.Port)
	})
}

func TestLoadOptions_Invalid(t *testing.T) {
	for _, tt := range []struct {
		Name string
		Flag string
		Val  string
	}{
		{"backend", "backend", "clustered"},
		{"index", "itype", "skiplist"},
		{"port", "port", "70000"},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			cmd := newTestCmd()
			require.NoError(t, cmd.Flags().Set(tt.Flag, tt.Val))
			v, err := newViper(cmd, "")
			require.NoError(t, err)
			_, _, err = loadOptions(v)
			assert.Error(t, err)
		})
	}

	_, err := newViper(newTestCmd(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLockPidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kraglin.pid")
	unlock, err := lockPidFile(path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, b)

	_, err = lockPidFile(path)
	assert.Error(t, err)

	unlock()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_StopsOnCancel(t *testing.T) {
	cmd := newTestCmd()
	require.NoError(t, cmd.Flags().Set("host", "127.0.0.1"))
	require.NoError(t, cmd.Flags().Set("port", "0"))
	require.NoError(t, cmd.Flags().Set("metrics", "127.0.0.1:0"))
	require.NoError(t, cmd.Flags().Set("pidfile", filepath.Join(t.TempDir(), "kraglin.pid")))
	v, err := newViper(cmd, "")
	require.NoError(t, err)
	opt, _, err := loadOptions(v)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, opt, hclog.NewNullLogger())
	}()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
