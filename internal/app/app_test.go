package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/config"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.ENV_DB_HOST, "")
	t.Setenv(config.ENV_MEDIA_STORAGE, "")

	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`port: "127.0.0.1:0"
database:
  sqlite_path: %q
log:
  level: warn
media:
  dir: %q
`, filepath.Join(dir, "app.db"), filepath.Join(dir, "media"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuildContainer(t *testing.T) {
	container, err := BuildContainer(writeConfig(t))
	require.NoError(t, err)

	err = container.Invoke(func(app *Application) {
		rec := httptest.NewRecorder()
		app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("api-key", "missing")
		app.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		require.NoError(t, app.store.Close())
	})
	require.NoError(t, err)
}

func TestBuildContainer_BadConfig(t *testing.T) {
	t.Setenv(config.ENV_MEDIA_STORAGE, "ftp")

	container, err := BuildContainer("")
	require.NoError(t, err)

	err = container.Invoke(func(app *Application) {})
	assert.Error(t, err)
}

func TestApplication_RunStopsOnCancel(t *testing.T) {
	container, err := BuildContainer(writeConfig(t))
	require.NoError(t, err)

	err = container.Invoke(func(app *Application) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- app.Run(ctx)
		}()

		time.Sleep(100 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})
	require.NoError(t, err)
}

func TestApplication_RunListenFailureReleasesStore(t *testing.T) {
	path := writeConfig(t)
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	t.Setenv(config.ENV_PORT, busy.Addr().String())

	container, err := BuildContainer(path)
	require.NoError(t, err)

	err = container.Invoke(func(app *Application) {
		require.NoError(t, app.store.Ping(context.Background()))

		err := app.Run(context.Background())
		assert.ErrorContains(t, err, "failed to listen")
		assert.Error(t, app.store.Ping(context.Background()))
	})
	require.NoError(t, err)
}
